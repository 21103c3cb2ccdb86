// Package theory defines the read-only query interface that models use to
// consult their double theory, plus the two concrete kinds of theory the
// model package supports: discrete theories, presented by a finite category
// of types, and discrete tabulator theories.
//
// A theory is built once and then shared by reference between any number of
// models. Nothing in this module mutates a theory after it has been handed
// to a model, so concurrent readers are safe.
package theory

import "github.com/mesh-intelligence/dblmodel/pkg/path"

// Theory is the query interface a model reads its theory through.
type Theory[ObType, MorType any] interface {
	// HasObType reports whether t is an object type of the theory.
	HasObType(t ObType) bool

	// HasMorType reports whether t is a morphism type of the theory.
	HasMorType(t MorType) bool

	// Src returns the source object type of a morphism type.
	Src(t MorType) ObType

	// Tgt returns the target object type of a morphism type.
	Tgt(t MorType) ObType

	// ComposeTypes returns the composite of a path of morphism types. An
	// identity path yields the identity morphism type on its object type.
	// The path must be composable in the theory.
	ComposeTypes(p path.Path[ObType, MorType]) MorType
}
