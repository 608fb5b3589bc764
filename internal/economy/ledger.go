// Package economy provides the currency backends money flags modify.
package economy

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrDisabled = errors.New("economy is disabled")

// Ledger is a currency backend keyed by player name.
type Ledger interface {
	Enabled() bool
	Balance(ctx context.Context, player string) (float64, error)
	Modify(ctx context.Context, player string, delta float64) error
	Format(amount float64) string
	Close() error
}

// Formatter renders amounts as localized decimals followed by the currency
// name, e.g. "1,234.50 coins".
type Formatter struct {
	Currency string
	Decimals int
	Language language.Tag
}

// NewFormatter returns an English formatter.
func NewFormatter(currency string, decimals int) Formatter {
	return Formatter{
		Currency: currency,
		Decimals: decimals,
		Language: language.English,
	}
}

func (f Formatter) Format(amount float64) string {
	p := message.NewPrinter(f.Language)
	s := p.Sprintf("%v", number.Decimal(amount, number.Scale(f.Decimals)))
	if f.Currency == "" {
		return s
	}
	return fmt.Sprintf("%s %s", s, f.Currency)
}

// Disabled is the ledger used when no economy is configured.
type Disabled struct {
	Formatter
}

var _ Ledger = Disabled{}

func (Disabled) Enabled() bool { return false }

func (Disabled) Balance(ctx context.Context, player string) (float64, error) {
	return 0, ErrDisabled
}

func (Disabled) Modify(ctx context.Context, player string, delta float64) error {
	return ErrDisabled
}

func (Disabled) Close() error { return nil }
