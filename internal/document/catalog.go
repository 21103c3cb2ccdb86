package document

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/dblmodel/pkg/theory"
)

// Kind distinguishes the two kinds of theory a model file can name.
type Kind string

// Theory kinds.
const (
	KindDiscrete Kind = "discrete"
	KindTab      Kind = "tabulator"
)

// TheoryEntry is a named theory that model files can refer to. Exactly one
// of Discrete and Tab is set, according to Kind. The theories are shared by
// every model built from the catalog and must not be modified.
type TheoryEntry struct {
	Name        string                   `json:"name"`
	Kind        Kind                     `json:"kind"`
	Description string                   `json:"description"`
	ObTypes     []string                 `json:"ob_types"`
	MorTypes    []string                 `json:"mor_types"`
	Discrete    *theory.Discrete[string] `json:"-"`
	Tab         *theory.Tab[string]      `json:"-"`
}

var catalog = []TheoryEntry{
	discreteEntry("category", "categories: objects and morphisms", theory.Category()),
	discreteEntry("signed-category", "signed categories: morphisms may be negative", theory.SignedCategory()),
	discreteEntry("schema", "database schemas: entities, attribute types and attributes", theory.Schema()),
	tabEntry("category-links", "categories with links from objects to morphisms", theory.CategoryLinks()),
}

func discreteEntry(name, desc string, th *theory.Discrete[string]) TheoryEntry {
	e := TheoryEntry{Name: name, Kind: KindDiscrete, Description: desc, Discrete: th}
	e.ObTypes = th.ObTypes()
	for _, t := range th.MorTypes() {
		e.MorTypes = append(e.MorTypes, formatFinMor(t))
	}
	return e
}

func tabEntry(name, desc string, th *theory.Tab[string]) TheoryEntry {
	e := TheoryEntry{Name: name, Kind: KindTab, Description: desc, Tab: th}
	for _, t := range th.ObTypes() {
		e.ObTypes = append(e.ObTypes, formatTabObType(t))
	}
	for _, t := range th.MorTypes() {
		e.MorTypes = append(e.MorTypes, formatTabMorType(t))
	}
	return e
}

// Theories returns the catalog in a stable order.
func Theories() []TheoryEntry {
	return slices.Clone(catalog)
}

// LookupTheory returns the catalog entry with the given name.
func LookupTheory(name string) (TheoryEntry, error) {
	i := slices.IndexFunc(catalog, func(e TheoryEntry) bool { return e.Name == name })
	if i < 0 {
		return TheoryEntry{}, fmt.Errorf("%w: %q", ErrUnknownTheory, name)
	}
	return catalog[i], nil
}
