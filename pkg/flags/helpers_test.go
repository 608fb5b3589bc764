package flags

import (
	"github.com/jwebster45206/craft-flags/pkg/item"
)

type reported struct {
	msg     string
	details []string
}

type fakeReporter struct {
	warnings []string
	errors   []reported
}

func (r *fakeReporter) Warning(msg string) {
	r.warnings = append(r.warnings, msg)
}

func (r *fakeReporter) Error(msg string, details ...string) bool {
	r.errors = append(r.errors, reported{msg: msg, details: details})
	return false
}

type weatherState struct {
	storm   bool
	thunder bool
}

type fakeWorld struct {
	weather map[string]weatherState
	held    map[string]item.Item
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		weather: make(map[string]weatherState),
		held:    make(map[string]item.Item),
	}
}

func (w *fakeWorld) HasStorm(world string) bool {
	return w.weather[world].storm
}

func (w *fakeWorld) IsThundering(world string) bool {
	return w.weather[world].thunder
}

func (w *fakeWorld) HeldItem(p Player) (item.Item, bool) {
	it, ok := w.held[p.Name]
	return it, ok
}

func newParseContext(svc Services) (*ParseContext, *fakeReporter) {
	r := &fakeReporter{}
	return &ParseContext{Reporter: r, Services: svc}, r
}
