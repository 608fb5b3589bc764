package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/craft-flags/pkg/flags"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

const docsWidth = 78

// NewDocsCommand creates the docs command
func NewDocsCommand(a *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "docs [flag]...",
		Short: "Show documentation for recipe flags",
		Long:  `Print arguments, description and examples of every flag, or of the named flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs := a.registry.Definitions()
			if len(args) > 0 {
				defs = defs[:0]
				for _, name := range args {
					def, ok := a.registry.Lookup(name)
					if !ok {
						_, err := a.registry.New(name)
						return err
					}
					defs = append(defs, def)
				}
			}

			for i, def := range defs {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				text := renderDefinition(def, docsWidth)
				if !plain {
					text = docBlockStyle.Render(text)
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print without a border")

	return cmd
}

// renderDefinition formats one flag definition. "{flag}" placeholders become
// the flag's "@name".
func renderDefinition(def flags.Definition, width int) string {
	var sb strings.Builder
	fill := strings.NewReplacer("{flag}", "@"+def.Name)

	title := "@" + def.Name
	if len(def.Aliases) > 0 {
		title += mutedStyle.Render(" (aliases: @" + strings.Join(def.Aliases, ", @") + ")")
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")

	writeSection(&sb, "Arguments", def.Arguments, fill, width, nil)
	writeSection(&sb, "Description", def.Description, fill, width, nil)
	writeSection(&sb, "Examples", def.Examples, fill, width, &exampleStyle)

	return strings.TrimRight(sb.String(), "\n")
}

func writeSection(w io.StringWriter, heading string, lines []string, fill *strings.Replacer, width int, style *lipgloss.Style) {
	if len(lines) == 0 {
		return
	}
	w.WriteString("\n" + headingStyle.Render(heading) + "\n")
	for _, line := range lines {
		line = wordwrap.String(fill.Replace(line), width)
		if style != nil {
			line = style.Render(line)
		}
		w.WriteString(line + "\n")
	}
}
