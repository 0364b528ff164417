/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/charm/internal/mcp"
	"github.com/josephgoksu/charm/internal/session"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing BMI and plan generation",
	Long: `Start a Model Context Protocol (MCP) server over stdio so AI assistants can
compute BMI, check a profile and generate weekly plans.

The server runs until the client disconnects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// mcpMarkdownResponse wraps Markdown content in an MCP tool result.
func mcpMarkdownResponse(markdown string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: markdown}},
	}, nil
}

// mcpFormattedErrorResponse wraps pre-formatted error text with IsError=true, so
// the client sees the failure and can correct its input.
func mcpFormattedErrorResponse(formattedError string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: formattedError}},
		IsError: true,
	}, nil
}

func mcpResponse(res *mcp.ToolResult) (*mcpsdk.CallToolResultFor[any], error) {
	if res.Error != "" {
		return mcpFormattedErrorResponse(res.Error)
	}
	return mcpMarkdownResponse(res.Content)
}

// newMCPServer registers the charm tools. Each generate_plan call runs in its own
// session built from sub and opts.
func newMCPServer(sub session.Submitter, opts []session.Option) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    "charm-mcp",
		Version: version,
	}
	serverOpts := &mcpsdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.InitializedParams) {
			if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "[DEBUG] MCP client initialized")
			}
		},
	}
	server := mcpsdk.NewServer(impl, serverOpts)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        mcp.ToolComputeBMI,
		Description: "Compute BMI (rounded to one decimal) and BMI category from height_cm and weight_kg.",
	}, func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcp.ProfileParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return mcpResponse(mcp.HandleComputeBMI(params.Arguments))
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        mcp.ToolCheckProfile,
		Description: "Check a profile without submitting it: BMI, whether age/height/weight are complete, and range advisories.",
	}, func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcp.ProfileParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return mcpResponse(mcp.HandleCheckProfile(params.Arguments))
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name: mcp.ToolGeneratePlan,
		Description: "Generate a 7-day diet and workout plan from a profile. age, height_cm and weight_kg are required; " +
			"goal (loss|gain|muscle), deficiency (none|iron|vitd|protein), chronic (none|diabetes|hypertension), " +
			"food_type (none|vegetarian|vegan|non-vegetarian), activity_level (1.2|1.375|1.55|1.725|1.9) and cuisine_pref are optional.",
	}, func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcp.ProfileParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return mcpResponse(mcp.HandleGeneratePlan(ctx, sub, params.Arguments, opts...))
	})

	return server
}

func runMCPServer(ctx context.Context) error {
	// stdout carries JSON-RPC only; status goes to stderr.
	fmt.Fprintln(os.Stderr, "charm MCP server starting...")

	client, svc, err := newPlanClient()
	if err != nil {
		return err
	}
	tc := newTelemetryClient()
	defer func() { _ = tc.Close() }()

	server := newMCPServer(client, sessionOptions(svc, tc, "mcp"))
	if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
