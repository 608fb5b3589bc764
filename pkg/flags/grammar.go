package flags

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jwebster45206/craft-flags/pkg/messages"
)

// Modifier says how a numeric flag value combines with the current value.
type Modifier rune

const (
	Add      Modifier = '+'
	Subtract Modifier = '-'
	Set      Modifier = '='
)

func (m Modifier) Valid() bool {
	return m == Add || m == Subtract || m == Set
}

func (m Modifier) String() string {
	return string(m)
}

// maxNumberLength bounds numeric literals to the width of a 32-bit integer.
const maxNumberLength = len("2147483647")

var (
	ErrMissingNumber   = errors.New("missing number")
	ErrNumberTooLong   = errors.New("number is too long")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrZeroAmount      = errors.New("amount can only be 0 with the = modifier")
	ErrUnknownModifier = errors.New("modifier must be one of +, - or =")
)

// cutMessage splits "value | message" at the first pipe. The message is
// trimmed; an absent or blank message leaves the override unset.
func cutMessage(s string) (string, messages.Override) {
	value, msg, found := strings.Cut(s, "|")
	if !found {
		return strings.TrimSpace(value), messages.Override{}
	}
	return strings.TrimSpace(value), messageOverride(msg)
}

// messageOverride turns author text into an override. Blank text means the
// default template is kept.
func messageOverride(text string) messages.Override {
	text = strings.TrimSpace(text)
	if text == "" {
		return messages.Override{}
	}
	return messages.NewOverride(text)
}

// parseModifiedNumber parses "[+|-|=] number". The sign of the number itself
// is discarded: "-2.5" and "- 2.5" are both (Subtract, 2.5).
func parseModifiedNumber(s string) (Modifier, float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, ErrMissingNumber
	}

	mod := Add
	switch Modifier(s[0]) {
	case Add, Subtract, Set:
		mod = Modifier(s[0])
		s = strings.TrimSpace(s[1:])
	}

	if s == "" {
		return 0, 0, ErrMissingNumber
	}
	if len(s) > maxNumberLength {
		return 0, 0, fmt.Errorf("%w: %s", ErrNumberTooLong, s)
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, 0, fmt.Errorf("%w: %s", ErrInvalidNumber, s)
	}
	n = math.Abs(n)

	if err := validateAmount(mod, n); err != nil {
		return 0, 0, err
	}
	return mod, n, nil
}

func validateAmount(mod Modifier, amount float64) error {
	if !mod.Valid() {
		return ErrUnknownModifier
	}
	if mod != Set && amount == 0 {
		return ErrZeroAmount
	}
	return nil
}

// scanTokens lowercases s, splits it on commas and passes each trimmed token
// to accept. Tokens that accept rejects are returned in input order.
func scanTokens(s string, accept func(tok string) bool) []string {
	var unknown []string
	for _, tok := range strings.Split(strings.ToLower(s), ",") {
		tok = strings.TrimSpace(tok)
		if !accept(tok) {
			unknown = append(unknown, tok)
		}
	}
	return unknown
}
