package model

import (
	"fmt"
	"iter"
	"slices"

	"github.com/mesh-intelligence/dblmodel/internal/column"
	"github.com/mesh-intelligence/dblmodel/internal/fpcat"
	"github.com/mesh-intelligence/dblmodel/pkg/path"
	"github.com/mesh-intelligence/dblmodel/pkg/theory"
	"github.com/mesh-intelligence/dblmodel/pkg/validate"
)

// Discrete is a finitely presented model of a discrete double theory whose
// types are identified by ThId. Objects and morphism generators share the
// id space Id; morphisms are paths of generators, and equations are keyed
// by Id as well.
type Discrete[Id, ThId comparable] struct {
	theory   theory.Theory[ThId, theory.FinMor[ThId]]
	category *fpcat.Category[Id, Id, Id]
	obTypes  *column.Indexed[Id, ThId]
	morTypes *column.Indexed[Id, theory.FinMor[ThId]]
}

// NewDiscrete returns an empty model of th.
func NewDiscrete[Id, ThId comparable](th theory.Theory[ThId, theory.FinMor[ThId]]) *Discrete[Id, ThId] {
	return &Discrete[Id, ThId]{
		theory:   th,
		category: fpcat.New[Id, Id, Id](),
		obTypes:  column.NewIndexed[Id, ThId](),
		morTypes: column.NewIndexed[Id, theory.FinMor[ThId]](),
	}
}

// Theory returns the theory the model is bound to.
func (m *Discrete[Id, ThId]) Theory() theory.Theory[ThId, theory.FinMor[ThId]] {
	return m.theory
}

// AddOb adds an object generator of type t, or retypes an existing one, and
// reports whether x is new.
func (m *Discrete[Id, ThId]) AddOb(x Id, t ThId) bool {
	m.obTypes.Set(x, t)
	return m.category.AddObGenerator(x)
}

// AddMor adds a morphism generator f: dom -> cod of type t, overwriting the
// endpoints and type of an existing one, and reports whether f is new.
func (m *Discrete[Id, ThId]) AddMor(f, dom, cod Id, t theory.FinMor[ThId]) bool {
	m.morTypes.Set(f, t)
	return m.category.AddMorGenerator(f, dom, cod)
}

// MakeMor adds a morphism generator of type t whose endpoints are not yet
// known and reports whether f is new.
func (m *Discrete[Id, ThId]) MakeMor(f Id, t theory.FinMor[ThId]) bool {
	m.morTypes.Set(f, t)
	return m.category.MakeMorGenerator(f)
}

// GetDom returns the domain of f, if set.
func (m *Discrete[Id, ThId]) GetDom(f Id) (Id, bool) {
	return m.category.GetDom(f)
}

// GetCod returns the codomain of f, if set.
func (m *Discrete[Id, ThId]) GetCod(f Id) (Id, bool) {
	return m.category.GetCod(f)
}

// SetDom sets the domain of f and returns the previous one, if any.
func (m *Discrete[Id, ThId]) SetDom(f, x Id) (Id, bool) {
	return m.category.SetDom(f, x)
}

// SetCod sets the codomain of f and returns the previous one, if any.
func (m *Discrete[Id, ThId]) SetCod(f, x Id) (Id, bool) {
	return m.category.SetCod(f, x)
}

// AddEquation asserts lhs = rhs under the given key. The model is no longer
// free afterwards.
func (m *Discrete[Id, ThId]) AddEquation(key Id, lhs, rhs path.Path[Id, Id]) {
	m.category.AddEquation(key, path.NewEq(lhs, rhs))
}

// Equations enumerates the equations in the order they were added.
func (m *Discrete[Id, ThId]) Equations() iter.Seq2[Id, path.Eq[Id, Id]] {
	return m.category.Equations()
}

// IsFree reports whether the model has no equations.
func (m *Discrete[Id, ThId]) IsFree() bool {
	return m.category.IsFree()
}

// InferMissing adds every object that a morphism refers to but that is not
// yet an object generator, typed by the source or target of the morphism's
// type. Existing objects are never retyped, and morphisms whose type the
// theory does not know are left alone. The result need not be valid.
func (m *Discrete[Id, ThId]) InferMissing() {
	for _, f := range slices.Collect(m.category.MorphismGenerators()) {
		t, ok := m.morTypes.Apply(f)
		if !ok || !m.theory.HasMorType(t) {
			continue
		}
		if x, ok := m.GetDom(f); ok && !m.HasOb(x) {
			m.AddOb(x, m.theory.Src(t))
		}
		if x, ok := m.GetCod(f); ok && !m.HasOb(x) {
			m.AddOb(x, m.theory.Tgt(t))
		}
	}
}

// HasOb reports whether x is an object generator.
func (m *Discrete[Id, ThId]) HasOb(x Id) bool {
	return m.category.HasOb(x)
}

// HasMor reports whether p is a path of morphism generators.
func (m *Discrete[Id, ThId]) HasMor(p path.Path[Id, Id]) bool {
	return m.category.HasMor(p)
}

// Dom returns the domain of a morphism.
func (m *Discrete[Id, ThId]) Dom(p path.Path[Id, Id]) Id {
	return m.category.Dom(p)
}

// Cod returns the codomain of a morphism.
func (m *Discrete[Id, ThId]) Cod(p path.Path[Id, Id]) Id {
	return m.category.Cod(p)
}

// Compose composes a path of morphisms. It panics unless adjacent
// morphisms meet.
func (m *Discrete[Id, ThId]) Compose(pp path.Path[Id, path.Path[Id, Id]]) path.Path[Id, Id] {
	return m.category.Compose(pp)
}

// ObjectGenerators enumerates object generators in the order they were
// added.
func (m *Discrete[Id, ThId]) ObjectGenerators() iter.Seq[Id] {
	return m.category.ObjectGenerators()
}

// MorphismGenerators enumerates morphism generators in the order they were
// added.
func (m *Discrete[Id, ThId]) MorphismGenerators() iter.Seq[Id] {
	return m.category.MorphismGenerators()
}

// MorphismGeneratorDom returns the domain of f. It panics if the domain is
// not set.
func (m *Discrete[Id, ThId]) MorphismGeneratorDom(f Id) Id {
	x, ok := m.GetDom(f)
	if !ok {
		panic(fmt.Sprintf("model: domain of %v is not set", f))
	}
	return x
}

// MorphismGeneratorCod returns the codomain of f. It panics if the codomain
// is not set.
func (m *Discrete[Id, ThId]) MorphismGeneratorCod(f Id) Id {
	x, ok := m.GetCod(f)
	if !ok {
		panic(fmt.Sprintf("model: codomain of %v is not set", f))
	}
	return x
}

// ObGenType returns the declared type of x. It panics if x is not an object
// generator.
func (m *Discrete[Id, ThId]) ObGenType(x Id) ThId {
	t, ok := m.obTypes.Apply(x)
	if !ok {
		panic(fmt.Sprintf("model: object %v has no type", x))
	}
	return t
}

// MorGenType returns the declared type of f. It panics if f is not a
// morphism generator.
func (m *Discrete[Id, ThId]) MorGenType(f Id) theory.FinMor[ThId] {
	t, ok := m.morTypes.Apply(f)
	if !ok {
		panic(fmt.Sprintf("model: morphism %v has no type", f))
	}
	return t
}

// ObjectGeneratorsWithType enumerates the object generators of type t.
func (m *Discrete[Id, ThId]) ObjectGeneratorsWithType(t ThId) iter.Seq[Id] {
	return m.obTypes.Preimage(t)
}

// MorphismGeneratorsWithType enumerates the morphism generators of type t.
func (m *Discrete[Id, ThId]) MorphismGeneratorsWithType(t theory.FinMor[ThId]) iter.Seq[Id] {
	return m.morTypes.Preimage(t)
}

// ObType returns the type of an object.
func (m *Discrete[Id, ThId]) ObType(x Id) ThId {
	return m.ObGenType(x)
}

// MorType returns the type of a morphism: the composite in the theory of
// the types of its generators, or the identity type for an identity.
func (m *Discrete[Id, ThId]) MorType(p path.Path[Id, Id]) theory.FinMor[ThId] {
	return m.theory.ComposeTypes(path.Map(p, m.ObGenType, m.MorGenType))
}

// ObAct applies an object operation. Discrete theories have only identity
// operations, so x is returned unchanged.
func (m *Discrete[Id, ThId]) ObAct(x Id, _ ThId) Id {
	return x
}

// MorAct applies a morphism operation. Discrete theories have only identity
// operations, so p is returned unchanged.
func (m *Discrete[Id, ThId]) MorAct(p path.Path[Id, Id], _ theory.FinMor[ThId]) path.Path[Id, Id] {
	return p
}

// IterInvalid enumerates the defects of the model: defects of the
// underlying presentation, then object types, then morphism types and the
// types of their endpoints, then equations whose sides have different
// types. Defects found by different checks are not deduplicated.
func (m *Discrete[Id, ThId]) IterInvalid() iter.Seq[Invalid[Id]] {
	return func(yield func(Invalid[Id]) bool) {
		for err := range m.category.IterInvalid() {
			if !yield(fromPresentation(err)) {
				return
			}
		}
		for x := range m.ObjectGenerators() {
			if !m.theory.HasObType(m.ObGenType(x)) {
				if !yield(Invalid[Id]{Tag: TagObType, Content: x}) {
					return
				}
			}
		}
		for f := range m.MorphismGenerators() {
			for _, tag := range m.morTypeDefects(f) {
				if !yield(Invalid[Id]{Tag: tag, Content: f}) {
					return
				}
			}
		}
		for key, eq := range m.Equations() {
			if !m.eqTypesAgree(eq) {
				if !yield(Invalid[Id]{Tag: TagEqType, Content: key}) {
					return
				}
			}
		}
	}
}

// Validate returns nil if the model has no defects and a
// validate.Errors[Invalid[Id]] holding all of them otherwise.
func (m *Discrete[Id, ThId]) Validate() error {
	return validate.Validate[Invalid[Id]](m)
}

func (m *Discrete[Id, ThId]) morTypeDefects(f Id) []Tag {
	t := m.MorGenType(f)
	if !m.theory.HasMorType(t) {
		return []Tag{TagMorType}
	}
	var tags []Tag
	if x, ok := m.GetDom(f); ok && m.HasOb(x) && m.ObGenType(x) != m.theory.Src(t) {
		tags = append(tags, TagDomType)
	}
	if x, ok := m.GetCod(f); ok && m.HasOb(x) && m.ObGenType(x) != m.theory.Tgt(t) {
		tags = append(tags, TagCodType)
	}
	return tags
}

// eqTypesAgree reports false only when both sides of eq are paths of
// generators with known types whose composite types differ. Structurally
// broken equations are reported by the presentation checks instead.
func (m *Discrete[Id, ThId]) eqTypesAgree(eq path.Eq[Id, Id]) bool {
	if len(eq.Defects(m.category.Graph())) > 0 {
		return true
	}
	lhs, ok := m.typeOf(eq.Lhs)
	if !ok {
		return true
	}
	rhs, ok := m.typeOf(eq.Rhs)
	if !ok {
		return true
	}
	return lhs == rhs
}

func (m *Discrete[Id, ThId]) typeOf(p path.Path[Id, Id]) (theory.FinMor[ThId], bool) {
	for _, f := range p.Edges() {
		if !m.theory.HasMorType(m.MorGenType(f)) {
			return theory.FinMor[ThId]{}, false
		}
	}
	return tryComposeTypes(m.theory, path.Map(p, m.ObGenType, m.MorGenType))
}
