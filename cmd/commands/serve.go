package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brickyard/brickyard-cli/internal/cli"
	"github.com/brickyard/brickyard-cli/pkg/preview"
)

var serveAddr string

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve live previews of the project's pages over HTTP",
		Long: `Start a local HTTP server that renders every saved page with its theme.
Pages are read from disk on each request, so saving in the builder and
reloading the browser shows the change.

Routes:
  /                    page index
  /pages/{name}        rendered document
  /pages/{name}/code   highlighted source
  /catalogue           catalogue as JSON`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewCommandContext().ValidateProject()
		},
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from settings preview.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cli.NewCommandContext()
	settings := ctx.LoadSettings()
	cat, err := ctx.Catalogue()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = settings.Preview.Addr
	}

	srv := preview.New(preview.Deps{
		Catalogue: cat,
		Settings:  settings,
		Logger:    ctx.Log(),
	})

	runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli.PrintInfo("Previewing pages at http://%s (Ctrl+C to stop)", addr)
	return srv.Run(runCtx, addr)
}
