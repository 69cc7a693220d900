package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/brickyard/brickyard-cli/internal/cli"
	"github.com/brickyard/brickyard-cli/pkg/export"
	"github.com/brickyard/brickyard-cli/pkg/workspace"
)

// ExportResult describes a written export
type ExportResult struct {
	Page   string `json:"page" yaml:"page"`
	File   string `json:"file" yaml:"file"`
	Theme  string `json:"theme" yaml:"theme"`
	Format string `json:"format" yaml:"format"`
	Bytes  int    `json:"bytes" yaml:"bytes"`
}

const (
	exportFormatHTML     = "html"
	exportFormatFragment = "fragment"
)

var (
	exportToFile string
	exportTheme  string
	exportFormat string
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <page>",
		Short: "Export a page as a standalone HTML document",
		Long: `Export a page as a Bootstrap document.

By default the full document is written to the file named in settings
(export.filename). Use --file - to write to stdout instead.

Formats:
  html      - complete document with the theme stylesheet (default)
  fragment  - only the page markup, formatted

Examples:
  # Export with the page's theme
  brickyard export landing

  # Export with another theme to a chosen file
  brickyard export landing --theme darkly --file dist/index.html

  # Print just the markup
  brickyard export landing --format fragment --file -`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.NewCommandContext().ValidateProject(); err != nil {
				return err
			}
			if !slices.Contains([]string{exportFormatHTML, exportFormatFragment}, exportFormat) {
				return fmt.Errorf("invalid format: %s (must be: html or fragment)", exportFormat)
			}
			if exportTheme != "" {
				return cli.ValidateTheme(exportTheme)
			}
			return nil
		},
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Output file, - for stdout (default from settings)")
	cmd.Flags().StringVar(&exportTheme, "theme", "", "Theme to export with (default: the page's theme)")
	cmd.Flags().StringVar(&exportFormat, "format", exportFormatHTML, "Export format (html, fragment)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cli.NewCommandContext()
	settings := ctx.LoadSettings()

	sess, err := ctx.OpenSession(args[0])
	if err != nil {
		return err
	}

	theme := exportTheme
	if theme == "" {
		theme = sess.Page.Theme
	}
	if theme == "" {
		theme = settings.Export.Theme
	}

	doc, err := renderExport(sess, exportFormat, theme, settings.Export.Title)
	if err != nil {
		return err
	}

	if exportToFile == "-" {
		fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	}

	path := exportToFile
	if path == "" {
		path = settings.Export.Filename
	}
	if err := cli.ValidateOutputPath(path); err != nil {
		return err
	}
	size, err := export.WriteFile(path, doc)
	if err != nil {
		return err
	}

	result := ExportResult{Page: sess.Page.Name, File: path, Theme: theme, Format: exportFormat, Bytes: size}
	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "json" || outputFormat == "yaml" {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}
	cli.PrintSuccess("Exported %s to %s (%s, %s theme)", result.Page, path, cli.FormatBytes(int64(size)), theme)
	return nil
}

func renderExport(sess *workspace.Session, format, theme, title string) (string, error) {
	if format == exportFormatFragment {
		content, err := export.ExtractCanvasHTML(sess.Canvas())
		if err != nil {
			return "", err
		}
		return export.FormatHTML(content), nil
	}
	return export.Page(sess.Canvas(), theme, title)
}
