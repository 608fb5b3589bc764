// Package cli implements the craftflags command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jwebster45206/craft-flags/internal/config"
	"github.com/jwebster45206/craft-flags/internal/logger"
	"github.com/jwebster45206/craft-flags/pkg/flags"
	"github.com/jwebster45206/craft-flags/pkg/item"
	"github.com/jwebster45206/craft-flags/pkg/messages"
	"github.com/spf13/cobra"
)

// app is the state shared by subcommands once configuration is loaded.
type app struct {
	configPath string

	cfg      *config.Config
	logger   *slog.Logger
	registry *flags.Registry
	items    *item.Catalog
	messages *messages.Catalog
}

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	a := &app{registry: flags.Builtin()}

	rootCmd := &cobra.Command{
		Use:   "craftflags",
		Short: "Author, check and try out recipe flags",
		Long: `craftflags works with recipe flag files: one "@name value" line per flag.

Examples:
  craftflags docs weather
  craftflags validate recipes/*.flags
  craftflags craft recipes/axe.flags --player steve --hold iron_axe:0 --balance 10`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("CRAFT_CONFIG"),
		"Path to a YAML config file")

	rootCmd.AddCommand(NewDocsCommand(a))
	rootCmd.AddCommand(NewValidateCommand(a))
	rootCmd.AddCommand(NewCraftCommand(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.SetupWriter(cfg, cmd.ErrOrStderr())

	a.items = item.DefaultCatalog()
	if cfg.ItemsFile != "" {
		if err := loadFile(cfg.ItemsFile, a.items.LoadYAML); err != nil {
			return err
		}
	}

	a.messages = messages.NewCatalog()
	if cfg.MessagesFile != "" {
		if err := loadFile(cfg.MessagesFile, a.messages.LoadYAML); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
