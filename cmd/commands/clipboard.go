package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/brickyard/brickyard-cli/internal/cli"
	"github.com/brickyard/brickyard-cli/pkg/export"
)

// copyToClipboard is swapped out in tests
var copyToClipboard = clipboard.WriteAll

var clipboardTheme string

// NewClipboardCommand creates the clipboard command
func NewClipboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard <page>",
		Short: "Copy a page's exported HTML to the clipboard",
		Long: `Copy the complete HTML document of a page to the system clipboard,
ready to paste into an editor or hosting tool.

Examples:
  brickyard clipboard landing
  brickyard clipboard landing --theme flatly`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"clip", "copy"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.NewCommandContext().ValidateProject(); err != nil {
				return err
			}
			if clipboardTheme != "" {
				return cli.ValidateTheme(clipboardTheme)
			}
			return nil
		},
		RunE: runClipboard,
	}

	cmd.Flags().StringVar(&clipboardTheme, "theme", "", "Theme to export with (default: the page's theme)")

	return cmd
}

func runClipboard(cmd *cobra.Command, args []string) error {
	ctx := cli.NewCommandContext()
	settings := ctx.LoadSettings()

	sess, err := ctx.OpenSession(args[0])
	if err != nil {
		return err
	}

	theme := clipboardTheme
	if theme == "" {
		theme = sess.Page.Theme
	}
	doc, err := export.Page(sess.Canvas(), theme, settings.Export.Title)
	if err != nil {
		return fmt.Errorf("failed to export page: %w", err)
	}

	if err := copyToClipboard(doc); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	cli.PrintSuccess("Copied %s to clipboard (%s)", sess.Page.Name, cli.FormatBytes(int64(len(doc))))
	return nil
}
