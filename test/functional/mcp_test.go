package functional_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"timekeep/internal/testserver"
)

// connect opens an initialized MCP client session against the test server's
// streamable /mcp endpoint.
func connect(t *testing.T, ts *testserver.TestServer) *sdkmcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{
		Endpoint: ts.Server.URL + "/mcp",
	}, nil)
	require.NoError(t, err, "Failed to connect to server")

	t.Cleanup(func() {
		session.Close()
		cancel()
	})

	return session
}

// callTool invokes a tool and unwraps its text content as raw JSON.
func callTool(t *testing.T, session *sdkmcp.ClientSession, toolName string, args map[string]any) json.RawMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", toolName)
	require.NotEmpty(t, result.Content, "Tool %s returned no content", toolName)
	require.False(t, result.IsError, "Tool %s returned error: %v", toolName, result.Content)

	for _, content := range result.Content {
		if textContent, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(textContent.Text)
		}
	}
	t.Fatalf("Tool %s returned no text content", toolName)
	return nil
}

func TestFunctional_TimerWorkflow(t *testing.T) {
	ts := testserver.New(t)
	session := connect(t, ts)

	startResp := callTool(t, session, "start_activity", map[string]any{"name": "Writing"})
	var started struct {
		Activities []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"activities"`
		ActiveTask *struct {
			ID string `json:"id"`
		} `json:"activeTask"`
	}
	require.NoError(t, json.Unmarshal(startResp, &started))
	require.NotNil(t, started.ActiveTask)

	// Starting the running activity toggles it off.
	stopResp := callTool(t, session, "start_activity", map[string]any{"name": "Writing"})
	var stopped struct {
		ActiveTask *struct {
			ID string `json:"id"`
		} `json:"activeTask"`
	}
	require.NoError(t, json.Unmarshal(stopResp, &stopped))
	require.Nil(t, stopped.ActiveTask)

	listResp := callTool(t, session, "list_activities", nil)
	require.Contains(t, string(listResp), "Writing")

	snapshot := callTool(t, session, "get_snapshot", nil)
	require.Contains(t, string(snapshot), "sessionHistory")
	require.Contains(t, string(snapshot), "reminders")
}

func TestFunctional_ChecklistWorkflow(t *testing.T) {
	ts := testserver.New(t)
	session := connect(t, ts)

	addResp := callTool(t, session, "add_todo", map[string]any{"name": "Stretch"})
	var added struct {
		Todo struct {
			ID string `json:"id"`
		} `json:"todo"`
	}
	require.NoError(t, json.Unmarshal(addResp, &added))
	require.NotEmpty(t, added.Todo.ID)

	toggleResp := callTool(t, session, "toggle_todo", map[string]any{"id": added.Todo.ID})
	var toggled struct {
		Completed bool `json:"completed"`
	}
	require.NoError(t, json.Unmarshal(toggleResp, &toggled))
	require.True(t, toggled.Completed)

	getResp := callTool(t, session, "get_todo", map[string]any{"id": added.Todo.ID})
	require.Contains(t, string(getResp), `"completed":true`)
}

func TestFunctional_ReminderWorkflow(t *testing.T) {
	ts := testserver.New(t)
	session := connect(t, ts)

	addResp := callTool(t, session, "add_reminder", map[string]any{
		"name":     "Drink water",
		"type":     "interval",
		"interval": 3600,
	})
	var added struct {
		Reminder struct {
			ID string `json:"id"`
		} `json:"reminder"`
	}
	require.NoError(t, json.Unmarshal(addResp, &added))
	require.NotEmpty(t, added.Reminder.ID)

	toggleResp := callTool(t, session, "toggle_reminder", map[string]any{"id": added.Reminder.ID})
	require.Contains(t, string(toggleResp), `"checkedToday":true`)

	deleteResp := callTool(t, session, "delete_reminder", map[string]any{"id": added.Reminder.ID})
	require.Contains(t, string(deleteResp), `"deleted":true`)
}

func TestFunctional_ToolErrorsCarryDomainCodes(t *testing.T) {
	ts := testserver.New(t)
	session := connect(t, ts)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "start_activity",
		Arguments: map[string]any{"id": "no-such-id"},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.Contains(t, text.Text, "ACTIVITY_NOT_FOUND")
}

func TestFunctional_ExportRoutes(t *testing.T) {
	ts := testserver.New(t)

	resp, err := http.Get(ts.Server.URL + "/export/csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Date,Task,Time (hours)")

	resp, err = http.Get(ts.Server.URL + "/export/json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "activities")
}

func TestFunctional_MCPProtocolCompliance(t *testing.T) {
	ts := testserver.New(t)
	session := connect(t, ts)

	initResult := session.InitializeResult()
	require.NotNil(t, initResult)
	require.NotNil(t, initResult.ServerInfo)
	require.Equal(t, "timekeep", initResult.ServerInfo.Name)
	require.Equal(t, "0.1.0", initResult.ServerInfo.Version)
	require.NotEmpty(t, initResult.Instructions)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err, "tools/list failed")
	require.GreaterOrEqual(t, len(tools.Tools), 14)

	toolNames := make(map[string]bool)
	for _, tool := range tools.Tools {
		toolNames[tool.Name] = true
		require.NotEmpty(t, tool.Description, "tool %s should have description", tool.Name)
		require.NotNil(t, tool.InputSchema, "tool %s should have inputSchema", tool.Name)
	}
	require.True(t, toolNames["start_activity"], "should have start_activity tool")
	require.True(t, toolNames["add_reminder"], "should have add_reminder tool")
	require.True(t, toolNames["export_csv"], "should have export_csv tool")
}
