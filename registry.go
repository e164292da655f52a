package gfx

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Info describes a registered filter.
type Info struct {
	// Name is the lookup key, lower-case with dashes (e.g. "channel-mixer").
	Name string

	// Category groups related filters (e.g. "color", "noise", "render").
	Category string

	// New returns a filter with default parameters.
	New func() Filter
}

// DisplayName returns the human-readable name, e.g. "Channel Mixer".
func (i Info) DisplayName() string {
	return DisplayName(i.Name)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Info)
)

// Register adds a filter to the registry. Registering the same name twice
// panics, since it always indicates a programming error.
func Register(info Info) {
	if info.Name == "" || info.New == nil {
		panic("gfx: Register called with empty name or nil constructor")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[info.Name]; dup {
		panic("gfx: Register called twice for filter " + info.Name)
	}
	registry[info.Name] = info
}

// Lookup returns the registered filter with the given name.
func Lookup(name string) (Info, error) {
	registryMu.RLock()
	info, ok := registry[normalizeName(name)]
	registryMu.RUnlock()
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	return info, nil
}

// Filters returns all registered filters sorted by category, then name.
func Filters() []Info {
	registryMu.RLock()
	infos := lo.Values(registry)
	registryMu.RUnlock()

	slices.SortFunc(infos, func(a, b Info) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Name, b.Name))
	})
	return infos
}

// Categories returns the sorted set of categories in use.
func Categories() []string {
	cats := lo.Uniq(lo.Map(Filters(), func(i Info, _ int) string { return i.Category }))
	slices.Sort(cats)
	return cats
}

// DisplayName converts a registry key to title case.
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(name)
}
