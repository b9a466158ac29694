package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "timekeep://docs/index",
		Name:        "docs_index",
		Title:       "timekeep docs index",
		Description: "Entry point for agent-facing docs: the tool surface and when to use what.",
		Content: `# timekeep: Agent Docs Index

## Quick start

1. ` + "`get_snapshot`" + ` to see the full current state (activities, reminders, todos, per-day totals).
2. ` + "`start_activity`" + ` by name to begin timing; starting another activity switches to it.
3. ` + "`stop_activity`" + ` when done, or start the running activity again to toggle it off.
4. ` + "`export_csv`" + ` for a per-day time report.

## Docs (read on demand)

- ` + "`timekeep://docs/timer`" + ` — timer semantics: single active activity, switching, daily buckets.
- ` + "`timekeep://docs/reminders`" + ` — interval vs daily reminders and acknowledgements.
`,
	},
	{
		URI:         "timekeep://docs/timer",
		Name:        "docs_timer",
		Title:       "Timer semantics",
		Description: "How activity timing, switching, and per-day totals behave.",
		Content: `# Timer semantics

- At most one activity runs at a time. ` + "`start_activity`" + ` on a different activity
  closes the running session and opens a new one.
- ` + "`start_activity`" + ` on the already-running activity stops it (toggle).
- ` + "`start_activity`" + ` with an unknown name creates the activity and starts it.
  ` + "`start_activity`" + ` with an id never creates; unknown ids are an error.
- Totals accumulate in whole seconds. Each closed session also credits the day
  bucket of its end date, which is what ` + "`export_csv`" + ` reports.
- Deleting the running activity closes its session first, then removes it.
  Renaming keeps all accumulated time.
`,
	},
	{
		URI:         "timekeep://docs/reminders",
		Name:        "docs_reminders",
		Title:       "Reminder semantics",
		Description: "Interval and daily reminder triggering and done-for-today acknowledgements.",
		Content: `# Reminder semantics

- ` + "`interval`" + ` reminders fire when at least ` + "`interval`" + ` seconds have passed
  since they last fired. Acknowledging one with ` + "`toggle_reminder`" + ` suppresses
  it for the rest of the day.
- ` + "`daily`" + ` reminders fire once per day at their ` + "`dailyTime`" + ` (HH:MM). A missed
  minute is skipped, not caught up.
- Acknowledgements reset at midnight. Each acknowledgement is logged to the
  reminder history, which survives deleting the reminder.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
