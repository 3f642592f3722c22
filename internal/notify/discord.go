// Package notify sends mood updates to a shared Discord channel. The
// notifier is optional: without a token the process runs without it.
package notify

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/geppie/lilazul/internal/logging"
)

// Notifier posts short messages to one fixed channel.
type Notifier struct {
	session   *discordgo.Session
	channelID string
}

// New creates a notifier from a bot token and channel ID. Message sends go
// over the REST API, so no gateway connection is opened.
func New(token, channelID string) (*Notifier, error) {
	if token == "" || channelID == "" {
		return nil, fmt.Errorf("notify: token and channel ID required")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("notify: create session: %w", err)
	}
	return &Notifier{session: session, channelID: channelID}, nil
}

// MoodUpdated announces a mood change. Errors are logged, not returned:
// a failed notification never fails the mood write itself.
func (n *Notifier) MoodUpdated(owner, mood string) {
	msg := fmt.Sprintf("%s is feeling: %s", owner, mood)
	if _, err := n.session.ChannelMessageSend(n.channelID, msg); err != nil {
		logging.Error("notify", "mood notification failed: %v", err)
		return
	}
	logging.Debug("notify", "sent mood update for %s", owner)
}
