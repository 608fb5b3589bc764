package flags

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jwebster45206/craft-flags/pkg/messages"
)

const NameModMoney = "modmoney"

func modMoneyDefinition() Definition {
	return Definition{
		Name:    NameModMoney,
		Aliases: []string{"money"},
		Arguments: []string{
			"{flag} [modifier]<number> | [message]",
		},
		Description: []string{
			"Modifies the crafter's money.",
			"Using this flag more than once will overwrite the previous one.",
			"",
			"The '[modifier]' argument can be nothing at all or you can use + (which is the same as nothing, to add), - (to subtract) or = (to set).",
			"The '<number>' argument must be the amount of money to modify.",
			"The '[message]' argument is optional and can be used to overwrite the default message or you can set it to false to hide it.",
			"In the message you can use the following variables:",
			"  {money}    = the amount formatted by the economy.",
			"  {amount}   = the amount defined in the flag, never has the modifier prefix.",
			"  {modifier} = the modifier prefix.",
			"",
			"NOTE: An economy backend is required for this flag to do anything.",
			"NOTE: This flag does not check if the player has enough money when subtracting; balances can go below zero.",
		},
		Examples: []string{
			"{flag} 0.5 // gives 0.5 currency to the crafter",
			"{flag} +0.5 // exactly the same as above",
			"{flag} -2.5 | You lost {money}! // takes 2.5 currency from the crafter",
			"{flag} = 0 | You lost all your money! // sets the crafter's money to 0, that space is valid there too",
		},
		New: func() Flag { return NewModMoney() },
	}
}

// ModMoney adds to, subtracts from or sets the crafter's balance.
type ModMoney struct {
	mod     Modifier
	amount  float64
	message messages.Override
}

func NewModMoney() *ModMoney {
	return &ModMoney{mod: Add}
}

func (f *ModMoney) Name() string {
	return NameModMoney
}

func (f *ModMoney) Modifier() Modifier {
	return f.mod
}

// Amount is never negative; the direction lives in Modifier.
func (f *ModMoney) Amount() float64 {
	return f.amount
}

func (f *ModMoney) Message() messages.Override {
	return f.message
}

func (f *ModMoney) SetMessage(o messages.Override) {
	f.message = o
}

// SetAmount sets modifier and magnitude. The magnitude is stored as its
// absolute value; zero is only allowed with Set.
func (f *ModMoney) SetAmount(mod Modifier, amount float64) error {
	if amount < 0 {
		amount = -amount
	}
	if err := validateAmount(mod, amount); err != nil {
		return err
	}
	f.mod = mod
	f.amount = amount
	return nil
}

// SetSignedAmount adds positive amounts and subtracts negative ones.
func (f *ModMoney) SetSignedAmount(amount float64) error {
	if amount < 0 {
		return f.SetAmount(Subtract, -amount)
	}
	return f.SetAmount(Add, amount)
}

func (f *ModMoney) Parse(value string, pc *ParseContext) bool {
	if eco := pc.services().Economy; eco == nil || !eco.Enabled() {
		pc.warn(f, "does nothing because no economy backend is enabled.")
	}

	value, message := cutMessage(value)

	mod, amount, err := parseModifiedNumber(value)
	switch {
	case errors.Is(err, ErrNumberTooLong):
		return pc.fail(f, "has a value that is too long: "+value,
			fmt.Sprintf("Values can have at most %d characters.", maxNumberLength))
	case errors.Is(err, ErrZeroAmount):
		return pc.fail(f, "can only have 0 amount for = modifier, not for + or -")
	case err != nil:
		return pc.fail(f, "has invalid number: "+value, err.Error())
	}

	f.mod = mod
	f.amount = amount
	if message.Present {
		f.message = message
	}
	return true
}

// Clone copies the flag; it holds no collections.
func (f *ModMoney) Clone() Flag {
	return &ModMoney{
		mod:     f.mod,
		amount:  f.amount,
		message: f.message,
	}
}

// Check does nothing; the flag never blocks a craft.
func (f *ModMoney) Check(a *Args) {}

// Apply modifies the balance. A disabled or missing economy makes it a
// no-op. Set is done as "remove the whole balance, then add the amount" so
// it works whatever the current balance is.
func (f *ModMoney) Apply(a *Args) {
	if err := validateAmount(f.mod, f.amount); err != nil {
		a.AddCustomReason(fmt.Sprintf("Invalid money modifier %s%v: %v", f.mod, f.amount, err))
		return
	}

	eco := a.Services.Economy
	if eco == nil || !eco.Enabled() {
		return
	}

	player, ok := a.PlayerName()
	if !ok {
		a.AddCustomReason("Need a player name!")
		return
	}

	ctx := a.Context()
	var key messages.Key
	switch f.mod {
	case Add:
		if err := eco.Modify(ctx, player, f.amount); err != nil {
			a.AddCustomReason("Could not modify money: " + err.Error())
			return
		}
		key = messages.ModMoneyAdd
	case Subtract:
		if err := eco.Modify(ctx, player, -f.amount); err != nil {
			a.AddCustomReason("Could not modify money: " + err.Error())
			return
		}
		key = messages.ModMoneySub
	case Set:
		balance, err := eco.Balance(ctx, player)
		if err != nil {
			a.AddCustomReason("Could not read money: " + err.Error())
			return
		}
		if err := eco.Modify(ctx, player, -balance); err != nil {
			a.AddCustomReason("Could not modify money: " + err.Error())
			return
		}
		if f.amount > 0 {
			if err := eco.Modify(ctx, player, f.amount); err != nil {
				a.AddCustomReason("Could not modify money: " + err.Error())
				return
			}
		}
		key = messages.ModMoneySet
	}

	a.AddEffect(key, f.message,
		messages.P("{money}", eco.Format(f.amount)),
		messages.P("{amount}", f.amount),
		messages.P("{modifier}", f.mod.String()))
}

func (f *ModMoney) Lore() string {
	return fmt.Sprintf("Mod Money: %s %s", f.mod, strconv.FormatFloat(f.amount, 'f', -1, 64))
}
