// Package model implements models of double theories.
//
// A model of a double theory is a category equipped with the operations the
// theory specifies. Its elements come in two kinds: objects, each assigned
// an object type of the theory, and morphisms, each with a domain and
// codomain object and a morphism type compatible with theirs. Object and
// morphism operations of the theory act on the elements of the model, and a
// path of morphisms composes to a morphism whose type is the composite of
// the types along the path.
//
// Two concrete models are provided. Discrete is a model of a discrete
// theory, which amounts to a typed finite presentation of a category.
// Tab is a model of a discrete tabulator theory, where a morphism can itself
// be viewed as an object and commuting squares between such objects are
// morphisms.
//
// Models are built incrementally and permissively: adding an element never
// checks its types or endpoints. Well-formedness is checked on demand by
// validation, which reports defects as data. Models are not safe for
// concurrent mutation; typing, composition and validation only read.
package model

import (
	"iter"

	"github.com/mesh-intelligence/dblmodel/pkg/path"
	"github.com/mesh-intelligence/dblmodel/pkg/theory"
)

// Category is the category underlying a model. Morphisms compose along
// paths; Compose must only be given paths whose adjacent morphisms meet.
type Category[Ob, Mor any] interface {
	HasOb(x Ob) bool
	HasMor(m Mor) bool
	Dom(m Mor) Ob
	Cod(m Mor) Ob
	Compose(p path.Path[Ob, Mor]) Mor
}

// Model is a model of a double theory. Identifiers of objects and morphisms
// are global to the model rather than relative to their types.
//
// ObAct and MorAct must send elements of the operation's source type to
// elements of its target type. Models do not check this; validation and
// tests do.
type Model[Ob, Mor, ObType, MorType, ObOp, MorOp any] interface {
	Category[Ob, Mor]

	// Theory returns the theory this is a model of.
	Theory() theory.Theory[ObType, MorType]

	// ObType returns the type of an object.
	ObType(x Ob) ObType

	// MorType returns the type of a morphism, composing generator types
	// along composites.
	MorType(m Mor) MorType

	// ObAct acts on an object with an object operation.
	ObAct(x Ob, f ObOp) Ob

	// MorAct acts on a morphism with a morphism operation.
	MorAct(m Mor, a MorOp) Mor
}

// FgCategory is a finitely generated category.
type FgCategory[Ob, Mor, ObGen, MorGen any] interface {
	Category[Ob, Mor]
	ObjectGenerators() iter.Seq[ObGen]
	MorphismGenerators() iter.Seq[MorGen]
	MorphismGeneratorDom(f MorGen) Ob
	MorphismGeneratorCod(f MorGen) Ob
}

// FgModel is a finitely generated model: a model whose category is
// finitely generated and whose generators carry declared types.
type FgModel[Ob, Mor, ObGen, MorGen, ObType, MorType, ObOp, MorOp any] interface {
	Model[Ob, Mor, ObType, MorType, ObOp, MorOp]
	FgCategory[Ob, Mor, ObGen, MorGen]

	// ObGenType returns the declared type of an object generator.
	ObGenType(x ObGen) ObType

	// MorGenType returns the declared type of a morphism generator.
	MorGenType(f MorGen) MorType
}
