package commands

import (
	"github.com/spf13/cobra"

	"github.com/brickyard/brickyard-cli/internal/cli"
	"github.com/brickyard/brickyard-cli/pkg/files"
	"github.com/brickyard/brickyard-cli/pkg/logger"
	"github.com/brickyard/brickyard-cli/pkg/mcpserver"
)

// NewMCPCommand creates the mcp command
func NewMCPCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout so assistants can
list the catalogue, create pages and place components with the same
rules as the builder.

Logs go to .brickyard/brickyard.log since stdout carries the protocol.

Example client configuration:
  {"command": "brickyard", "args": ["mcp"]}`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewCommandContext().ValidateProject()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext()
			settings := ctx.LoadSettings()

			log, closer, err := logger.NewFile(files.Path(files.LogFile), settings.Log.Level)
			if err != nil {
				return err
			}
			defer closer.Close()
			ctx.Logger = log

			cat, err := ctx.Catalogue()
			if err != nil {
				return err
			}

			return mcpserver.New(mcpserver.Deps{
				Catalogue: cat,
				Settings:  settings,
				Logger:    log,
				Version:   version,
			}).ServeStdio()
		},
	}
}
