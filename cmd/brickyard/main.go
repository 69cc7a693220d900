package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/brickyard/brickyard-cli/cmd/commands"
	"github.com/brickyard/brickyard-cli/internal/cli"
	"github.com/brickyard/brickyard-cli/pkg/catalogue"
	"github.com/brickyard/brickyard-cli/pkg/files"
	"github.com/brickyard/brickyard-cli/pkg/logger"
	"github.com/brickyard/brickyard-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	quietFlag   bool
	noColorFlag bool
	yesFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "brickyard [page]",
	Short: "Terminal page builder for Bootstrap components",
	Long: `Brickyard builds Bootstrap pages from a catalogue of component snippets.
Pages are stored as YAML under .brickyard/pages and exported as a single
HTML document.

Run without arguments to pick a page, or pass a page name to open it
straight in the builder. A missing page is created.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cli.SetGlobalFlags(quietFlag, noColorFlag, yesFlag)
		format, _ := cmd.Flags().GetString("output")
		return cli.ValidateOutputFormat(format)
	},
	RunE: runBuilder,
}

func runBuilder(cmd *cobra.Command, args []string) error {
	ctx := cli.NewCommandContext()
	if err := ctx.ValidateProject(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: No %s directory found in the current directory.\n", files.BrickyardDir)
		fmt.Fprintf(os.Stderr, "Please run 'brickyard init' first to initialize a new project.\n")
		os.Exit(1)
	}

	var page string
	if len(args) == 1 {
		if err := cli.ValidatePageName(files.PageFile(args[0])); err != nil {
			return err
		}
		page = args[0]
	}

	settings := ctx.LoadSettings()

	// The TUI owns stdout, so logs go to a file
	log, closer, err := logger.NewFile(files.Path(files.LogFile), settings.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closer.Close()
	ctx.Logger = log

	cat, err := ctx.Catalogue()
	if err != nil {
		return err
	}

	kv, err := ctx.OpenStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	app := tui.NewApp(tui.AppDeps{
		Catalogue: cat,
		Settings:  settings,
		KV:        kv,
		Logger:    log,
	}, page)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	watchCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watcher := catalogue.NewWatcher(files.Path(files.CatalogueFile), log, func(c *catalogue.Catalogue) {
		p.Send(tui.CatalogueReloadedMsg{Catalogue: c})
	})
	if err := watcher.Start(watchCtx); err != nil {
		log.WithField("error", err).Warn("catalogue reload disabled")
	} else {
		defer watcher.Stop()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
		fmt.Fprintf(os.Stderr, "This could be due to terminal compatibility issues. Try running in a different terminal.\n")
		os.Exit(1)
	}
	return nil
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new Brickyard project",
	Long:  `Creates the .brickyard folder structure in the current directory`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to determine current directory: %v\n", err)
			os.Exit(1)
		}

		cli.PrintInfo("Initializing Brickyard project in %s...", cwd)

		if err := files.InitProjectStructure(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to initialize project structure: %v\n", err)
			fmt.Fprintf(os.Stderr, "Make sure you have write permissions in the current directory.\n")
			os.Exit(1)
		}

		cli.PrintSuccess("Created %s folder structure", files.BrickyardDir)
		cli.PrintSuccess("You can now create pages!")
		cli.PrintInfo("Run 'brickyard' to start the interactive builder.")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Brickyard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Brickyard version %s\n", version)
	},
}

func init() {
	// page sub-commands add their own pre-run on top of the root's
	cobra.EnableTraverseRunHooks = true

	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text, json, yaml)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewCatalogueCommand())
	rootCmd.AddCommand(commands.NewPageCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewClipboardCommand())
	rootCmd.AddCommand(commands.NewPanelsCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMCPCommand(version))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
