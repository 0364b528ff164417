package cmd

import (
	"net/http"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/charm/internal/mcp"
	"github.com/josephgoksu/charm/internal/telemetry"
)

func TestMCPResponse(t *testing.T) {
	res, err := mcpResponse(&mcp.ToolResult{Content: "BMI: 24.2 (Normal)"})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "BMI: 24.2 (Normal)", res.Content[0].(*mcpsdk.TextContent).Text)

	res, err = mcpResponse(&mcp.ToolResult{Error: mcp.FormatError("boom")})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(*mcpsdk.TextContent).Text, "boom")
}

func TestNewMCPServer(t *testing.T) {
	svc := newFakePlanService(t, http.StatusOK, weekBody)
	setupTestEnv(t, svc.URL)

	client, svcCfg, err := newPlanClient()
	require.NoError(t, err)
	assert.Equal(t, svc.URL+"/generate_plan", client.Endpoint())

	server := newMCPServer(client, sessionOptions(svcCfg, telemetry.NoopClient{}, "mcp"))
	assert.NotNil(t, server)
}
