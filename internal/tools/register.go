package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/geppie/lilazul/internal/logging"
	"github.com/geppie/lilazul/internal/observability"
	"github.com/geppie/lilazul/internal/store"
	"github.com/geppie/lilazul/internal/upstream"
)

// RegisterAll registers all MCP tools with the given server and dependencies.
func RegisterAll(s *server.MCPServer, deps *Dependencies) {
	registerCoreTools(s, deps)
	registerCrochetTools(s, deps)
	registerBookTools(s, deps)
	registerCakeTools(s, deps)
	registerMoodTools(s, deps)

	if deps.Journal != nil {
		registerJournalTools(s, deps)
	}
}

// jsonResult renders a success envelope as the tool's text content.
func jsonResult(v map[string]any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(data))
}

// args pulls the argument map out of a call request.
func args(req mcp.CallToolRequest) map[string]any {
	m, _ := req.Params.Arguments.(map[string]any)
	return m
}

// record tracks one finished tool call in metrics and the journal.
func (d *Dependencies) record(tool, detail string, err error) {
	observability.RecordToolCall(tool, err != nil)
	if err != nil {
		logging.Error("tools", "%s: %v", tool, err)
		return
	}
	logging.Debug("tools", "%s %s", tool, logging.Truncate(detail, 80))
	if d.Journal != nil {
		if jerr := d.Journal.Record("tool", tool, detail); jerr != nil {
			logging.Error("tools", "journal write failed: %v", jerr)
		}
	}
}

func (d *Dependencies) fail(tool string, err error) *mcp.CallToolResult {
	d.record(tool, "", err)
	return mcp.NewToolResultError(err.Error())
}

func registerCoreTools(s *server.MCPServer, deps *Dependencies) {
	s.AddTool(mcp.NewTool("ping",
		mcp.WithDescription("Simple health check tool to verify MCP calls work."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		deps.record("ping", "", nil)
		return jsonResult(map[string]any{"ok": true, "pong": "💜"}), nil
	})

	s.AddTool(mcp.NewTool("get_time",
		mcp.WithDescription("Get the current time, date and weekday in the household timezone (Europe/Amsterdam)."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		now := deps.Clock.Now()
		deps.record("get_time", now.ISO, nil)
		return jsonResult(map[string]any{
			"ok":           true,
			"current_time": now.CurrentTime,
			"date":         now.Date,
			"weekday":      now.Weekday,
			"timezone":     now.Timezone,
			"iso":          now.ISO,
		}), nil
	})
}

func registerCrochetTools(s *server.MCPServer, deps *Dependencies) {
	s.AddTool(mcp.NewTool("crochet_add",
		mcp.WithDescription("Add a crochet project, or overwrite the status of an existing one with the same name."),
		mcp.WithString("item", mcp.Required(), mcp.Description("Project name, unique per project")),
		mcp.WithString("status", mcp.Description("Project status, e.g. 'wip' or 'done'. Defaults to 'wip'.")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a := args(req)
		item, _ := a["item"].(string)
		if item == "" {
			return deps.fail("crochet_add", fmt.Errorf("item is required")), nil
		}
		status, _ := a["status"].(string)
		if status == "" {
			status = "wip"
		}

		if deps.Store == nil {
			return deps.fail("crochet_add", store.ErrUnavailable), nil
		}
		saved, err := deps.Store.UpsertWorkItem(ctx, item, status)
		if err != nil {
			return deps.fail("crochet_add", err), nil
		}

		deps.record("crochet_add", fmt.Sprintf("item=%s status=%s", item, status), nil)
		return jsonResult(map[string]any{"ok": true, "item": saved}), nil
	})

	s.AddTool(mcp.NewTool("crochet_mark_done",
		mcp.WithDescription("Mark a crochet project as done by name. A name with no matching project is not an error."),
		mcp.WithString("item", mcp.Required(), mcp.Description("Project name")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		item, _ := args(req)["item"].(string)
		if item == "" {
			return deps.fail("crochet_mark_done", fmt.Errorf("item is required")), nil
		}

		if deps.Store == nil {
			return deps.fail("crochet_mark_done", store.ErrUnavailable), nil
		}
		saved, err := deps.Store.SetWorkItemStatus(ctx, item, "done")
		if err != nil {
			return deps.fail("crochet_mark_done", err), nil
		}

		deps.record("crochet_mark_done", "item="+item, nil)
		return jsonResult(map[string]any{"ok": true, "item": saved}), nil
	})

	s.AddTool(mcp.NewTool("crochet_list",
		mcp.WithDescription("List all locally tracked crochet projects."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if deps.Store == nil {
			return deps.fail("crochet_list", store.ErrUnavailable), nil
		}
		items, err := deps.Store.ListWorkItems(ctx)
		if err != nil {
			return deps.fail("crochet_list", err), nil
		}

		deps.record("crochet_list", fmt.Sprintf("%d items", len(items)), nil)
		return jsonResult(map[string]any{"ok": true, "items": items}), nil
	})

	// The remote crochet endpoints address the upstream API's own id-keyed
	// records, a separate identifier space from the local title-keyed table.
	s.AddTool(mcp.NewTool("crochet_toggle",
		mcp.WithDescription("Toggle the done state of a crochet item in the remote API."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Remote crochet item id")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := args(req)["id"].(string)
		if id == "" {
			return deps.fail("crochet_toggle", fmt.Errorf("id is required")), nil
		}

		payload, err := deps.Upstream.ToggleWorkItem(id)
		if err != nil {
			return deps.fail("crochet_toggle", err), nil
		}

		deps.record("crochet_toggle", "id="+id, nil)
		return jsonResult(map[string]any{"ok": true, "id": id, "result": payload}), nil
	})

	s.AddTool(mcp.NewTool("crochet_delete",
		mcp.WithDescription("Delete a crochet item from the remote API."),
		mcp.WithString("item_id", mcp.Required(), mcp.Description("Remote crochet item id")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := args(req)["item_id"].(string)
		if id == "" {
			return deps.fail("crochet_delete", fmt.Errorf("item_id is required")), nil
		}

		payload, err := deps.Upstream.DeleteWorkItem(id)
		if err != nil {
			return deps.fail("crochet_delete", err), nil
		}

		deps.record("crochet_delete", "id="+id, nil)
		return jsonResult(map[string]any{"ok": true, "deleted": id, "result": payload}), nil
	})
}

func registerBookTools(s *server.MCPServer, deps *Dependencies) {
	s.AddTool(mcp.NewTool("book_get_current",
		mcp.WithDescription("Get the book currently being read."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := deps.Upstream.CurrentBook()
		if err != nil {
			return deps.fail("book_get_current", err), nil
		}
		deps.record("book_get_current", "", nil)
		return jsonResult(map[string]any{"ok": true, "book": payload}), nil
	})

	s.AddTool(mcp.NewTool("book_set_current",
		mcp.WithDescription("Set the book currently being read."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Book title")),
		mcp.WithString("author", mcp.Description("Book author (optional)")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a := args(req)
		title, _ := a["title"].(string)
		if title == "" {
			return deps.fail("book_set_current", fmt.Errorf("title is required")), nil
		}
		author, _ := a["author"].(string)

		payload, err := deps.Upstream.SetCurrentBook(title, author)
		if err != nil {
			return deps.fail("book_set_current", err), nil
		}

		deps.record("book_set_current", "title="+title, nil)
		return jsonResult(map[string]any{"ok": true, "book": payload}), nil
	})

	s.AddTool(mcp.NewTool("book_list_finished",
		mcp.WithDescription("List finished books."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := deps.Upstream.FinishedBooks()
		if err != nil {
			return deps.fail("book_list_finished", err), nil
		}
		deps.record("book_list_finished", "", nil)
		return jsonResult(map[string]any{"ok": true, "books": payload}), nil
	})

	s.AddTool(mcp.NewTool("book_add_finished",
		mcp.WithDescription("Add a book to the finished shelf. A fresh id is generated when book_id is omitted."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Book title")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date finished, YYYY-MM-DD")),
		mcp.WithString("book_id", mcp.Description("Identifier to use (optional)")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a := args(req)
		title, _ := a["title"].(string)
		date, _ := a["date"].(string)
		if title == "" || date == "" {
			return deps.fail("book_add_finished", fmt.Errorf("title and date are required")), nil
		}
		bookID, _ := a["book_id"].(string)

		id, payload, err := deps.Upstream.AddFinishedBook(bookID, title, date)
		if err != nil {
			return deps.fail("book_add_finished", err), nil
		}

		deps.record("book_add_finished", "title="+title, nil)
		return jsonResult(map[string]any{"ok": true, "book_id": id, "result": payload}), nil
	})

	s.AddTool(mcp.NewTool("book_delete_finished",
		mcp.WithDescription("Delete a book from the finished shelf."),
		mcp.WithString("book_id", mcp.Required(), mcp.Description("Book id")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := args(req)["book_id"].(string)
		if id == "" {
			return deps.fail("book_delete_finished", fmt.Errorf("book_id is required")), nil
		}

		payload, err := deps.Upstream.DeleteFinishedBook(id)
		if err != nil {
			return deps.fail("book_delete_finished", err), nil
		}

		deps.record("book_delete_finished", "id="+id, nil)
		return jsonResult(map[string]any{"ok": true, "deleted": id, "result": payload}), nil
	})
}

func registerCakeTools(s *server.MCPServer, deps *Dependencies) {
	s.AddTool(mcp.NewTool("cake_get",
		mcp.WithDescription("Get the cake note for a month, or the most recent one when month is omitted."),
		mcp.WithString("month", mcp.Description("Month filter, YYYY-MM (optional)")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		month, _ := args(req)["month"].(string)

		payload, err := deps.Upstream.Cake(month)
		if err != nil {
			return deps.fail("cake_get", err), nil
		}

		deps.record("cake_get", "month="+month, nil)
		return jsonResult(map[string]any{"ok": true, "cake": payload}), nil
	})

	s.AddTool(mcp.NewTool("cake_set",
		mcp.WithDescription("Create or replace the cake note for a month."),
		mcp.WithString("month", mcp.Required(), mcp.Description("Month key, YYYY-MM")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Cake name")),
		mcp.WithString("note", mcp.Required(), mcp.Description("Tasting note")),
		mcp.WithString("photo_url", mcp.Required(), mcp.Description("Photo URL")),
		mcp.WithString("recipe", mcp.Required(), mcp.Description("Recipe text or link")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a := args(req)
		note := upstream.CakeNote{
			Month:    stringArg(a, "month"),
			Name:     stringArg(a, "name"),
			Note:     stringArg(a, "note"),
			PhotoURL: stringArg(a, "photo_url"),
			Recipe:   stringArg(a, "recipe"),
		}
		if note.Month == "" {
			return deps.fail("cake_set", fmt.Errorf("month is required")), nil
		}

		payload, err := deps.Upstream.SetCake(note)
		if err != nil {
			return deps.fail("cake_set", err), nil
		}

		deps.record("cake_set", "month="+note.Month, nil)
		return jsonResult(map[string]any{"ok": true, "month": note.Month, "result": payload}), nil
	})

	s.AddTool(mcp.NewTool("cake_delete",
		mcp.WithDescription("Delete a cake note."),
		mcp.WithString("cake_id", mcp.Required(), mcp.Description("Cake note id")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := args(req)["cake_id"].(string)
		if id == "" {
			return deps.fail("cake_delete", fmt.Errorf("cake_id is required")), nil
		}

		payload, err := deps.Upstream.DeleteCake(id)
		if err != nil {
			return deps.fail("cake_delete", err), nil
		}

		deps.record("cake_delete", "id="+id, nil)
		return jsonResult(map[string]any{"ok": true, "deleted": id, "result": payload}), nil
	})
}

func registerMoodTools(s *server.MCPServer, deps *Dependencies) {
	s.AddTool(mcp.NewTool("mood_get_lau",
		mcp.WithDescription("Get lau's current mood."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if deps.Store == nil {
			return deps.fail("mood_get_lau", store.ErrUnavailable), nil
		}
		mood, err := deps.Store.GetMood(ctx, OwnerLau)
		if err != nil {
			return deps.fail("mood_get_lau", err), nil
		}

		deps.record("mood_get_lau", "", nil)
		return jsonResult(map[string]any{
			"ok":         true,
			"owner":      mood.Owner,
			"mood":       mood.Mood,
			"updated_at": mood.UpdatedAt,
		}), nil
	})

	s.AddTool(mcp.NewTool("mood_set_geppie",
		mcp.WithDescription("Set geppie's current mood."),
		mcp.WithString("mood", mcp.Required(), mcp.Description("How geppie is feeling")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		moodText, _ := args(req)["mood"].(string)
		if moodText == "" {
			return deps.fail("mood_set_geppie", fmt.Errorf("mood is required")), nil
		}

		if deps.Store == nil {
			return deps.fail("mood_set_geppie", store.ErrUnavailable), nil
		}
		saved, err := deps.Store.SetMood(ctx, OwnerGeppie, moodText)
		if err != nil {
			return deps.fail("mood_set_geppie", err), nil
		}

		if deps.NotifyMood != nil {
			deps.NotifyMood(saved.Owner, saved.Mood)
		}

		deps.record("mood_set_geppie", "mood="+moodText, nil)
		return jsonResult(map[string]any{
			"ok":         true,
			"owner":      saved.Owner,
			"mood":       saved.Mood,
			"updated_at": saved.UpdatedAt,
		}), nil
	})
}

func registerJournalTools(s *server.MCPServer, deps *Dependencies) {
	s.AddTool(mcp.NewTool("journal_recent",
		mcp.WithDescription("Get recent journal entries (recorded tool invocations), newest first."),
		mcp.WithNumber("count", mcp.Description("Number of entries to return (default 20)")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		count := 20
		if c, ok := args(req)["count"].(float64); ok && c > 0 {
			count = int(c)
		}

		entries, err := deps.Journal.Recent(count)
		if err != nil {
			return deps.fail("journal_recent", err), nil
		}

		observability.RecordToolCall("journal_recent", false)
		return jsonResult(map[string]any{"ok": true, "entries": entries}), nil
	})
}

func stringArg(a map[string]any, key string) string {
	v, _ := a[key].(string)
	return v
}
