package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/craft-flags/internal/diagnostics"
	"github.com/jwebster45206/craft-flags/pkg/flags"
	"github.com/jwebster45206/craft-flags/pkg/recipe"
)

func loadFile(path string, load func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := load(f); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// recipeName derives a recipe name from its file, e.g. "recipes/iron_axe.flags"
// becomes "iron_axe".
func recipeName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// loadRecipe reads a flag file into a new recipe, collecting diagnostics.
func (a *app) loadRecipe(path string, svc flags.Services) (*recipe.Recipe, *diagnostics.Collector, error) {
	diags := diagnostics.NewCollector(a.logger)
	pc := &flags.ParseContext{
		Reporter: diags,
		Services: svc,
		Items:    a.items,
	}

	r := recipe.New(recipeName(path))
	err := loadFile(path, func(rd io.Reader) error {
		_, err := r.LoadFlags(rd, path, a.registry, pc)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return r, diags, nil
}

func printDiagnostics(w io.Writer, diags *diagnostics.Collector) {
	for _, e := range diags.Entries() {
		style := warningStyle
		if e.Severity == diagnostics.SeverityError {
			style = errorStyle
		}
		fmt.Fprintln(w, style.Render(e.String()))
	}
}
