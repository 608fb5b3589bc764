package flags

import (
	"strings"

	"github.com/jwebster45206/craft-flags/pkg/messages"
)

const NameWeather = "weather"

// Condition is an observable weather category.
type Condition uint8

const (
	Clear Condition = iota
	Downfall
	Thunder

	numConditions
)

var conditionNames = [numConditions]string{"clear", "downfall", "thunder"}

func (c Condition) String() string {
	if c >= numConditions {
		return "unknown"
	}
	return conditionNames[c]
}

// conditionByInitial maps the first letter of an author's token to a
// condition. Any future condition whose name starts with one of these letters
// cannot be told apart from the existing one.
var conditionByInitial = map[byte]Condition{
	'c': Clear, 'n': Clear,
	'd': Downfall, 'r': Downfall, 's': Downfall,
	't': Thunder, 'l': Thunder,
}

// ParseCondition resolves a weather token such as "rain" or "Thunder".
func ParseCondition(tok string) (Condition, bool) {
	tok = strings.ToLower(strings.TrimSpace(tok))
	if tok == "" {
		return 0, false
	}
	c, ok := conditionByInitial[tok[0]]
	return c, ok
}

// ConditionSet is a set of weather conditions.
type ConditionSet struct {
	members [numConditions]bool
}

// NewConditionSet returns a set holding conds.
func NewConditionSet(conds ...Condition) ConditionSet {
	var s ConditionSet
	for _, c := range conds {
		s.Add(c)
	}
	return s
}

func (s *ConditionSet) Add(c Condition) {
	if c < numConditions {
		s.members[c] = true
	}
}

func (s ConditionSet) Contains(c Condition) bool {
	return c < numConditions && s.members[c]
}

func (s ConditionSet) Empty() bool {
	return len(s.Conditions()) == 0
}

// Conditions lists the members in the order clear, downfall, thunder.
func (s ConditionSet) Conditions() []Condition {
	var out []Condition
	for c := Condition(0); c < numConditions; c++ {
		if s.members[c] {
			out = append(out, c)
		}
	}
	return out
}

func (s ConditionSet) String() string {
	conds := s.Conditions()
	names := make([]string, len(conds))
	for i, c := range conds {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}

// Observe derives the current condition of a world.
func Observe(w World, world string) Condition {
	switch {
	case !w.HasStorm(world):
		return Clear
	case w.IsThundering(world):
		return Thunder
	default:
		return Downfall
	}
}

func weatherDefinition() Definition {
	return Definition{
		Name: NameWeather,
		Arguments: []string{
			"{flag} <type>, [type] | [fail message]",
		},
		Description: []string{
			"Sets the weather type(s) required to allow crafting.",
			"Using this flag more than once will overwrite the previous one.",
			"",
			"The 'type' argument can be:",
			"  clear    = clear skies, no precipitation.",
			"  downfall = precipitation (rain/snow depends on biome).",
			"  thunder  = precipitation + thundering.",
			"You can set more than one type separated by , character, but setting all of them is pointless.",
			"",
			"Optionally you can set the 'fail message' argument to overwrite the failure message or set it to 'false' to hide it.",
			"In the fail message you can use the following variables:",
			"  {weather} = the weather type required.",
		},
		Examples: []string{
			"{flag} downfall // works only if it's raining peacefully.",
			"{flag} clear, thunder | To be struck by lightning... or to be not.",
		},
		New: func() Flag { return NewWeather() },
	}
}

// Weather requires the world at the crafting location to be in one of the
// accepted conditions.
type Weather struct {
	accepted ConditionSet
	message  messages.Override
}

func NewWeather() *Weather {
	return &Weather{}
}

func (f *Weather) Name() string {
	return NameWeather
}

func (f *Weather) Accepted() ConditionSet {
	return f.accepted
}

func (f *Weather) SetAccepted(s ConditionSet) {
	f.accepted = s
}

func (f *Weather) Message() messages.Override {
	return f.message
}

func (f *Weather) SetMessage(o messages.Override) {
	f.message = o
}

// Parse replaces the accepted set with the conditions listed in value.
func (f *Weather) Parse(value string, pc *ParseContext) bool {
	value, message := cutMessage(value)

	var accepted ConditionSet
	unknown := scanTokens(value, func(tok string) bool {
		if tok == "" {
			return true
		}
		c, ok := ParseCondition(tok)
		if ok {
			accepted.Add(c)
		}
		return ok
	})
	for _, tok := range unknown {
		pc.warn(f, "has unknown weather type: %q", tok)
	}

	if accepted.Empty() {
		return pc.fail(f, "needs at least one valid weather type!")
	}

	f.accepted = accepted
	if message.Present {
		f.message = message
	}
	return true
}

// Clone copies the flag; the condition set is a value.
func (f *Weather) Clone() Flag {
	return &Weather{
		accepted: f.accepted,
		message:  f.message,
	}
}

func (f *Weather) Check(a *Args) {
	loc, ok := a.Location()
	if !ok {
		a.AddCustomReason("Needs location!")
		return
	}
	if a.Services.World == nil {
		a.AddCustomReason("Needs world state!")
		return
	}

	if !f.accepted.Contains(Observe(a.Services.World, loc.World)) {
		a.AddReason(messages.Weather, f.message, messages.P("{weather}", f.accepted.String()))
	}
}

// Apply does nothing; weather is a requirement only.
func (f *Weather) Apply(a *Args) {}
