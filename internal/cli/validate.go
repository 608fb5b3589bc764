package cli

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/craft-flags/internal/economy"
	"github.com/jwebster45206/craft-flags/pkg/flags"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command
func NewValidateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check recipe flag files for errors",
		Long: `Parse every flag line of each file and report warnings and errors with
their line numbers. Exits non-zero when any file has errors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := economy.Open(a.cfg.Economy, a.logger)
			if err != nil {
				return fmt.Errorf("failed to open economy: %w", err)
			}
			defer ledger.Close()

			v := &flagFileValidator{app: a, services: flags.Services{Economy: ledger}}
			for _, path := range args {
				v.validateFile(cmd, path)
			}

			if len(v.errors) > 0 {
				return fmt.Errorf("validation failed:\n  %s", strings.Join(v.errors, "\n  "))
			}
			return nil
		},
	}

	return cmd
}

type flagFileValidator struct {
	app      *app
	services flags.Services
	errors   []string
}

func (v *flagFileValidator) addError(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *flagFileValidator) validateFile(cmd *cobra.Command, path string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n", path)

	r, diags, err := v.app.loadRecipe(path, v.services)
	if err != nil {
		v.addError("%v", err)
		return
	}

	printDiagnostics(out, diags)

	if n := len(diags.Errors()); n > 0 {
		v.addError("%s has %d error(s)", path, n)
		return
	}
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("%s is valid! (%d flag(s))", path, len(r.Flags()))))
}
