package document

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/dblmodel/pkg/theory"
)

// Type syntax. In discrete theories a morphism type is a type id or id:X
// for the identity on X. In tabulator theories object types may be tab:M,
// the tabulator of the morphism type M, and morphism types may be hom:X,
// the hom type on X; both nest, as in tab:hom:Object.
const (
	tabPrefix = "tab:"
	homPrefix = "hom:"
)

func parseObType(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty object type", ErrMalformedType)
	}
	return s, nil
}

func parseFinMor(s string) (theory.FinMor[string], error) {
	if x, ok := strings.CutPrefix(s, identityPrefix); ok {
		if x == "" {
			return theory.FinMor[string]{}, fmt.Errorf("%w: %q", ErrMalformedType, s)
		}
		return theory.Identity(x), nil
	}
	if s == "" {
		return theory.FinMor[string]{}, fmt.Errorf("%w: empty morphism type", ErrMalformedType)
	}
	return theory.Generator(s), nil
}

func formatFinMor(t theory.FinMor[string]) string {
	if t.IsIdentity {
		return identityPrefix + t.ID
	}
	return t.ID
}

func parseTabObType(s string) (theory.TabObType[string], error) {
	if rest, ok := strings.CutPrefix(s, tabPrefix); ok {
		m, err := parseTabMorType(rest)
		if err != nil {
			return theory.TabObType[string]{}, err
		}
		return theory.TabulatorOf(m), nil
	}
	if s == "" {
		return theory.TabObType[string]{}, fmt.Errorf("%w: empty object type", ErrMalformedType)
	}
	return theory.BasicObType(s), nil
}

func parseTabMorType(s string) (theory.TabMorType[string], error) {
	if rest, ok := strings.CutPrefix(s, homPrefix); ok {
		x, err := parseTabObType(rest)
		if err != nil {
			return theory.TabMorType[string]{}, err
		}
		return theory.HomOf(x), nil
	}
	if s == "" {
		return theory.TabMorType[string]{}, fmt.Errorf("%w: empty morphism type", ErrMalformedType)
	}
	return theory.BasicMorType(s), nil
}

func formatTabObType(t theory.TabObType[string]) string {
	if m, ok := t.Tabulated(); ok {
		return tabPrefix + formatTabMorType(m)
	}
	x, _ := t.Basic()
	return x
}

func formatTabMorType(t theory.TabMorType[string]) string {
	if x, ok := t.Hom(); ok {
		return homPrefix + formatTabObType(x)
	}
	f, _ := t.Basic()
	return f
}
