package recipe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jwebster45206/craft-flags/pkg/flags"
)

// Positioner is implemented by reporters that tag diagnostics with a source
// position.
type Positioner interface {
	At(source string, line int)
}

// maxLineLength bounds one flag line. Longer lines are reported and skipped.
const maxLineLength = 64 * 1024

// LoadFlags reads flag lines into the recipe:
//
//	// comment
//	@holditem iron_axe:0 // trailing comment
//	@modmoney -2.5 | You lost {money}!
//
// Blank lines and comments are skipped. A bad line is reported and skipped;
// ok is false when any line failed. err is set only on read failures.
func (r *Recipe) LoadFlags(rd io.Reader, source string, reg *flags.Registry, pc *flags.ParseContext) (ok bool, err error) {
	var pos Positioner
	if pc != nil {
		pos, _ = pc.Reporter.(Positioner)
	}

	ok = true
	br := bufio.NewReader(rd)
	for lineNo := 1; ; lineNo++ {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return false, fmt.Errorf("failed to read %s: %w", source, readErr)
		}
		if raw == "" && readErr != nil {
			break
		}

		if !r.loadLine(raw, lineNo, source, pos, reg, pc) {
			ok = false
		}
		if readErr != nil {
			break
		}
	}
	return ok, nil
}

func (r *Recipe) loadLine(raw string, lineNo int, source string, pos Positioner, reg *flags.Registry, pc *flags.ParseContext) bool {
	if len(raw) > maxLineLength {
		if pos != nil {
			pos.At(source, lineNo)
		}
		report(pc, fmt.Sprintf("Line is too long (%d characters).", len(raw)),
			fmt.Sprintf("Lines can have at most %d characters.", maxLineLength))
		return false
	}

	line := stripComment(strings.TrimRight(raw, "\r\n"))
	if line == "" {
		return true
	}
	if pos != nil {
		pos.At(source, lineNo)
	}

	name, value, valid := splitFlagLine(line)
	if !valid {
		report(pc, "Expected a flag line starting with @, got: "+line)
		return false
	}
	return r.AddFlag(reg, name, value, pc)
}

// stripComment cuts a "//" comment that starts the line or follows
// whitespace, so "https://..." inside a message survives.
func stripComment(line string) string {
	for i := 0; ; {
		j := strings.Index(line[i:], "//")
		if j < 0 {
			break
		}
		j += i
		if j == 0 || unicode.IsSpace(rune(line[j-1])) {
			line = line[:j]
			break
		}
		i = j + 2
	}
	return strings.TrimSpace(line)
}

// splitFlagLine splits "@name value" at the first whitespace.
func splitFlagLine(line string) (name, value string, ok bool) {
	if !strings.HasPrefix(line, "@") {
		return "", "", false
	}
	name = line[1:]
	if i := strings.IndexFunc(name, unicode.IsSpace); i >= 0 {
		name, value = name[:i], name[i+1:]
	}
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(value), true
}
