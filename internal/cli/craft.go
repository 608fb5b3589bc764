package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/craft-flags/internal/economy"
	"github.com/jwebster45206/craft-flags/internal/logger"
	"github.com/jwebster45206/craft-flags/internal/world"
	"github.com/jwebster45206/craft-flags/pkg/flags"
	"github.com/jwebster45206/craft-flags/pkg/recipe"
	"github.com/spf13/cobra"
)

type craftOptions struct {
	player    string
	hold      string
	enchant   string
	weather   string
	worldName string
	worldFile string
	balance   float64
	timeout   time.Duration
}

// NewCraftCommand creates the craft command
func NewCraftCommand(a *app) *cobra.Command {
	opts := &craftOptions{}

	cmd := &cobra.Command{
		Use:   "craft <file>",
		Short: "Simulate one craft attempt against a recipe flag file",
		Long: `Build a world from the options, run every flag check of the recipe and,
if nothing blocks, apply the flags against the configured economy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
			defer cancel()
			return a.craft(ctx, cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.player, "player", "player", "Name of the crafting player")
	cmd.Flags().StringVar(&opts.hold, "hold", "", "Item the player holds, as kind[:data[:amount]]")
	cmd.Flags().StringVar(&opts.enchant, "enchant", "", "Enchantments on the held item, as name:level, ...")
	cmd.Flags().StringVar(&opts.weather, "weather", "clear", "Weather in the crafting world: clear, downfall or thunder")
	cmd.Flags().StringVar(&opts.worldName, "world", "world", "Name of the crafting world")
	cmd.Flags().StringVar(&opts.worldFile, "world-file", "", "YAML snapshot of world weather and held items")
	cmd.Flags().Float64Var(&opts.balance, "balance", 0, "Set the player's balance before crafting")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Time allowed for economy backend calls")

	return cmd
}

func (a *app) craft(ctx context.Context, cmd *cobra.Command, path string, opts *craftOptions) error {
	out := cmd.OutOrStdout()

	ledger, err := economy.Open(a.cfg.Economy, a.logger)
	if err != nil {
		return fmt.Errorf("failed to open economy: %w", err)
	}
	defer ledger.Close()

	if rl, ok := ledger.(*economy.RedisLedger); ok {
		if err := rl.WaitForConnection(ctx, 5, 200*time.Millisecond); err != nil {
			return err
		}
	}

	state, err := a.buildWorld(cmd, opts)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("balance") {
		if err := setBalance(ctx, ledger, opts.player, opts.balance); err != nil {
			return err
		}
	}

	svc := flags.Services{Economy: ledger, World: state}
	r, diags, err := a.loadRecipe(path, svc)
	if err != nil {
		return err
	}
	printDiagnostics(out, diags)
	if diags.HasErrors() {
		return fmt.Errorf("%s has %d error(s)", path, len(diags.Errors()))
	}

	args := flags.NewArgs(svc).
		WithContext(ctx).
		WithPlayer(flags.Player{ID: uuid.New(), Name: opts.player}).
		WithLocation(flags.Location{World: opts.worldName})

	log := logger.WithRecipe(logger.WithAttempt(a.logger, args.ID), r.Name)
	outcome := recipe.NewCrafter(a.messages, log).Craft(r.Clone(), args)

	printOutcome(out, r, outcome)

	if ledger.Enabled() {
		balance, err := ledger.Balance(ctx, opts.player)
		if err != nil {
			return fmt.Errorf("failed to read balance: %w", err)
		}
		fmt.Fprintf(out, "Balance of %s: %s\n", opts.player, ledger.Format(balance))
	}

	if !outcome.Allowed {
		return fmt.Errorf("craft of %s was blocked", r.Name)
	}
	return nil
}

func (a *app) buildWorld(cmd *cobra.Command, opts *craftOptions) (*world.State, error) {
	state := world.New()
	if opts.worldFile != "" {
		if err := loadFile(opts.worldFile, state.LoadYAML); err != nil {
			return nil, err
		}
	}

	if opts.worldFile == "" || cmd.Flags().Changed("weather") {
		c, ok := flags.ParseCondition(opts.weather)
		if !ok {
			return nil, fmt.Errorf("unknown weather %q, use clear, downfall or thunder", opts.weather)
		}
		state.SetCondition(opts.worldName, c)
	}

	if opts.hold != "" {
		held, err := a.items.ParseItem(opts.hold, opts.enchant)
		if err != nil {
			return nil, fmt.Errorf("invalid --hold: %w", err)
		}
		state.Hold(flags.Player{Name: opts.player}, held)
	}
	return state, nil
}

func setBalance(ctx context.Context, ledger economy.Ledger, player string, amount float64) error {
	if !ledger.Enabled() {
		return fmt.Errorf("--balance needs an economy backend: %w", economy.ErrDisabled)
	}
	current, err := ledger.Balance(ctx, player)
	if err != nil {
		return err
	}
	return ledger.Modify(ctx, player, amount-current)
}

func printOutcome(w io.Writer, r *recipe.Recipe, o recipe.Outcome) {
	if !o.Allowed {
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Craft of %s blocked.", r.Name)))
		for _, reason := range o.Reasons {
			fmt.Fprintf(w, "  - %s\n", reason)
		}
		return
	}

	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("Crafted %s.", r.Name)))
	for _, effect := range o.Effects {
		fmt.Fprintf(w, "  + %s\n", effect)
	}
	for _, problem := range o.Problems {
		fmt.Fprintln(w, warningStyle.Render("  ! "+problem))
	}
	if lore := r.Lore(); len(lore) > 0 {
		fmt.Fprintln(w, mutedStyle.Render("Lore:"))
		for _, line := range lore {
			fmt.Fprintln(w, mutedStyle.Render("  "+line))
		}
	}
}
