package model

import (
	"fmt"
	"iter"

	"github.com/mesh-intelligence/dblmodel/internal/column"
	"github.com/mesh-intelligence/dblmodel/pkg/path"
	"github.com/mesh-intelligence/dblmodel/pkg/theory"
	"github.com/mesh-intelligence/dblmodel/pkg/validate"
)

// TabOb is an object of a tabulator model: a basic object generator, or a
// morphism viewed as an object.
type TabOb[Id comparable] struct {
	basic Id
	mor   *path.Path[TabOb[Id], TabEdge[Id]]
}

// TabEdge is a generating edge of a tabulator model: a basic morphism
// generator, or a commuting square between tabulated objects.
type TabEdge[Id comparable] struct {
	basic  Id
	square *Square[Id]
}

// Square is a square from the tabulation of Dom to the tabulation of Cod.
// Pre goes from the source of Dom to the source of Cod and Post from the
// target of Dom to the target of Cod. The square is an edge of the model
// only if Dom then Post equals Pre then Cod.
type Square[Id comparable] struct {
	Dom  path.Path[TabOb[Id], TabEdge[Id]]
	Cod  path.Path[TabOb[Id], TabEdge[Id]]
	Pre  TabEdge[Id]
	Post TabEdge[Id]
}

// BasicOb returns the basic object x.
func BasicOb[Id comparable](x Id) TabOb[Id] {
	return TabOb[Id]{basic: x}
}

// TabulatedOb returns the morphism m viewed as an object.
func TabulatedOb[Id comparable](m path.Path[TabOb[Id], TabEdge[Id]]) TabOb[Id] {
	return TabOb[Id]{mor: &m}
}

// BasicEdge returns the basic morphism f.
func BasicEdge[Id comparable](f Id) TabEdge[Id] {
	return TabEdge[Id]{basic: f}
}

// SquareEdge returns the commuting square sq.
func SquareEdge[Id comparable](sq Square[Id]) TabEdge[Id] {
	return TabEdge[Id]{square: &sq}
}

// Basic returns the id of a basic object.
func (x TabOb[Id]) Basic() (Id, bool) {
	return x.basic, x.mor == nil
}

// Tabulated returns the morphism a tabulated object wraps.
func (x TabOb[Id]) Tabulated() (path.Path[TabOb[Id], TabEdge[Id]], bool) {
	if x.mor == nil {
		return path.Path[TabOb[Id], TabEdge[Id]]{}, false
	}
	return *x.mor, true
}

// Equal reports structural equality.
func (x TabOb[Id]) Equal(y TabOb[Id]) bool {
	switch {
	case x.mor == nil && y.mor == nil:
		return x.basic == y.basic
	case x.mor != nil && y.mor != nil:
		return equalTabMor(*x.mor, *y.mor)
	}
	return false
}

func (x TabOb[Id]) String() string {
	if x.mor != nil {
		return fmt.Sprintf("Tab(%v)", *x.mor)
	}
	return fmt.Sprintf("%v", x.basic)
}

// Basic returns the id of a basic edge.
func (e TabEdge[Id]) Basic() (Id, bool) {
	return e.basic, e.square == nil
}

// Square returns the square of a square edge.
func (e TabEdge[Id]) Square() (Square[Id], bool) {
	if e.square == nil {
		return Square[Id]{}, false
	}
	return *e.square, true
}

// Equal reports structural equality.
func (e TabEdge[Id]) Equal(f TabEdge[Id]) bool {
	switch {
	case e.square == nil && f.square == nil:
		return e.basic == f.basic
	case e.square != nil && f.square != nil:
		s, t := e.square, f.square
		return equalTabMor(s.Dom, t.Dom) && equalTabMor(s.Cod, t.Cod) &&
			s.Pre.Equal(t.Pre) && s.Post.Equal(t.Post)
	}
	return false
}

func (e TabEdge[Id]) String() string {
	if e.square != nil {
		return fmt.Sprintf("Square(%v, %v, %v, %v)", e.square.Dom, e.square.Cod, e.square.Pre, e.square.Post)
	}
	return fmt.Sprintf("%v", e.basic)
}

func equalTabMor[Id comparable](p, q path.Path[TabOb[Id], TabEdge[Id]]) bool {
	return path.EqualFunc(p, q, TabOb[Id].Equal, TabEdge[Id].Equal)
}

// tabGenerators is the generating graph of a tabulator model. Membership
// of tabulated objects and squares is computed recursively, never stored.
type tabGenerators[Id comparable] struct {
	objects   *column.FinSet[Id]
	morphisms *column.FinSet[Id]
	dom       *column.Column[Id, TabOb[Id]]
	cod       *column.Column[Id, TabOb[Id]]
}

func (g *tabGenerators[Id]) HasVertex(x TabOb[Id]) bool {
	if m, ok := x.Tabulated(); ok {
		return path.ContainedIn[TabOb[Id], TabEdge[Id]](g, m)
	}
	return g.objects.Contains(x.basic)
}

func (g *tabGenerators[Id]) HasEdge(e TabEdge[Id]) bool {
	sq, ok := e.Square()
	if !ok {
		return g.morphisms.Contains(e.basic) && g.dom.IsSet(e.basic) && g.cod.IsSet(e.basic)
	}
	if !path.ContainedIn[TabOb[Id], TabEdge[Id]](g, sq.Dom) || !path.ContainedIn[TabOb[Id], TabEdge[Id]](g, sq.Cod) {
		return false
	}
	if !g.HasEdge(sq.Pre) || !g.HasEdge(sq.Post) {
		return false
	}
	lhs, ok := path.ConcatIn[TabOb[Id], TabEdge[Id]](g, sq.Dom, path.Single[TabOb[Id]](sq.Post))
	if !ok {
		return false
	}
	rhs, ok := path.ConcatIn[TabOb[Id], TabEdge[Id]](g, path.Single[TabOb[Id]](sq.Pre), sq.Cod)
	if !ok {
		return false
	}
	return equalTabMor(lhs, rhs)
}

func (g *tabGenerators[Id]) Src(e TabEdge[Id]) TabOb[Id] {
	if sq, ok := e.Square(); ok {
		return TabulatedOb(sq.Dom)
	}
	x, ok := g.dom.Apply(e.basic)
	if !ok {
		panic(fmt.Sprintf("model: domain of %v is not set", e.basic))
	}
	return x
}

func (g *tabGenerators[Id]) Tgt(e TabEdge[Id]) TabOb[Id] {
	if sq, ok := e.Square(); ok {
		return TabulatedOb(sq.Cod)
	}
	x, ok := g.cod.Apply(e.basic)
	if !ok {
		panic(fmt.Sprintf("model: codomain of %v is not set", e.basic))
	}
	return x
}

func (g *tabGenerators[Id]) SameVertex(x, y TabOb[Id]) bool {
	return x.Equal(y)
}

// Tab is a finitely generated model of a discrete tabulator theory whose
// basic types are identified by ThId. Basic objects and morphisms share
// the id space Id.
//
// Tab models have no equations, so they are always free.
type Tab[Id, ThId comparable] struct {
	theory   theory.Theory[theory.TabObType[ThId], theory.TabMorType[ThId]]
	gens     *tabGenerators[Id]
	obTypes  *column.Column[Id, theory.TabObType[ThId]]
	morTypes *column.Column[Id, theory.TabMorType[ThId]]
}

// NewTab returns an empty model of th.
func NewTab[Id, ThId comparable](th theory.Theory[theory.TabObType[ThId], theory.TabMorType[ThId]]) *Tab[Id, ThId] {
	return &Tab[Id, ThId]{
		theory: th,
		gens: &tabGenerators[Id]{
			objects:   column.NewFinSet[Id](),
			morphisms: column.NewFinSet[Id](),
			dom:       column.NewColumn[Id, TabOb[Id]](),
			cod:       column.NewColumn[Id, TabOb[Id]](),
		},
		obTypes:  column.NewColumn[Id, theory.TabObType[ThId]](),
		morTypes: column.NewColumn[Id, theory.TabMorType[ThId]](),
	}
}

// Theory returns the theory the model is bound to.
func (m *Tab[Id, ThId]) Theory() theory.Theory[theory.TabObType[ThId], theory.TabMorType[ThId]] {
	return m.theory
}

// Tabulated views a morphism of the model as an object.
func (m *Tab[Id, ThId]) Tabulated(p path.Path[TabOb[Id], TabEdge[Id]]) TabOb[Id] {
	return TabulatedOb(p)
}

// TabulatedGen views the morphism generator f as an object.
func (m *Tab[Id, ThId]) TabulatedGen(f Id) TabOb[Id] {
	return TabulatedOb(path.Single[TabOb[Id]](BasicEdge(f)))
}

// AddOb adds a basic object of type t, or retypes an existing one, and
// reports whether x is new.
func (m *Tab[Id, ThId]) AddOb(x Id, t theory.TabObType[ThId]) bool {
	m.obTypes.Set(x, t)
	return m.gens.objects.Insert(x)
}

// AddMor adds a basic morphism f: dom -> cod of type t, overwriting the
// endpoints and type of an existing one, and reports whether f is new.
// Either endpoint may be a tabulated object.
func (m *Tab[Id, ThId]) AddMor(f Id, dom, cod TabOb[Id], t theory.TabMorType[ThId]) bool {
	m.morTypes.Set(f, t)
	m.gens.dom.Set(f, dom)
	m.gens.cod.Set(f, cod)
	return m.gens.morphisms.Insert(f)
}

// IsFree reports true: tabulator models carry no equations.
func (m *Tab[Id, ThId]) IsFree() bool {
	return true
}

// HasOb reports whether x is an object of the model.
func (m *Tab[Id, ThId]) HasOb(x TabOb[Id]) bool {
	return m.gens.HasVertex(x)
}

// HasMor reports whether p is a path in the model.
func (m *Tab[Id, ThId]) HasMor(p path.Path[TabOb[Id], TabEdge[Id]]) bool {
	return path.ContainedIn[TabOb[Id], TabEdge[Id]](m.gens, p)
}

// HasEdge reports whether e is an edge of the model. For a square this
// holds only when both of its decompositions are defined and agree.
func (m *Tab[Id, ThId]) HasEdge(e TabEdge[Id]) bool {
	return m.gens.HasEdge(e)
}

// Dom returns the domain of a morphism.
func (m *Tab[Id, ThId]) Dom(p path.Path[TabOb[Id], TabEdge[Id]]) TabOb[Id] {
	return path.Src[TabOb[Id], TabEdge[Id]](m.gens, p)
}

// Cod returns the codomain of a morphism.
func (m *Tab[Id, ThId]) Cod(p path.Path[TabOb[Id], TabEdge[Id]]) TabOb[Id] {
	return path.Tgt[TabOb[Id], TabEdge[Id]](m.gens, p)
}

// Compose flattens a path of morphisms. It panics unless adjacent
// morphisms meet.
func (m *Tab[Id, ThId]) Compose(pp path.Path[TabOb[Id], path.Path[TabOb[Id], TabEdge[Id]]]) path.Path[TabOb[Id], TabEdge[Id]] {
	p, ok := path.FlattenIn[TabOb[Id], TabEdge[Id]](m.gens, pp)
	if !ok {
		panic(fmt.Sprintf("model: paths %v are not composable", pp))
	}
	return p
}

// ObjectGenerators enumerates the basic objects in the order they were
// added.
func (m *Tab[Id, ThId]) ObjectGenerators() iter.Seq[Id] {
	return m.gens.objects.All()
}

// MorphismGenerators enumerates the basic morphisms in the order they were
// added.
func (m *Tab[Id, ThId]) MorphismGenerators() iter.Seq[Id] {
	return m.gens.morphisms.All()
}

// MorphismGeneratorDom returns the domain of the basic morphism f.
func (m *Tab[Id, ThId]) MorphismGeneratorDom(f Id) TabOb[Id] {
	return m.gens.Src(BasicEdge(f))
}

// MorphismGeneratorCod returns the codomain of the basic morphism f.
func (m *Tab[Id, ThId]) MorphismGeneratorCod(f Id) TabOb[Id] {
	return m.gens.Tgt(BasicEdge(f))
}

// ObGenType returns the declared type of the basic object x. It panics if
// x is not an object generator.
func (m *Tab[Id, ThId]) ObGenType(x Id) theory.TabObType[ThId] {
	t, ok := m.obTypes.Apply(x)
	if !ok {
		panic(fmt.Sprintf("model: object %v has no type", x))
	}
	return t
}

// MorGenType returns the declared type of the basic morphism f. It panics
// if f is not a morphism generator.
func (m *Tab[Id, ThId]) MorGenType(f Id) theory.TabMorType[ThId] {
	t, ok := m.morTypes.Apply(f)
	if !ok {
		panic(fmt.Sprintf("model: morphism %v has no type", f))
	}
	return t
}

// ObType returns the type of an object. A tabulated object has the
// tabulator of the type of the morphism it wraps.
func (m *Tab[Id, ThId]) ObType(x TabOb[Id]) theory.TabObType[ThId] {
	if p, ok := x.Tabulated(); ok {
		return theory.TabulatorOf(m.MorType(p))
	}
	return m.ObGenType(x.basic)
}

// MorType returns the type of a morphism. A square contributes the hom type
// on the tabulator of the type of its domain, which it shares with its
// codomain.
func (m *Tab[Id, ThId]) MorType(p path.Path[TabOb[Id], TabEdge[Id]]) theory.TabMorType[ThId] {
	return m.theory.ComposeTypes(path.Map(p, m.ObType, m.edgeType))
}

func (m *Tab[Id, ThId]) edgeType(e TabEdge[Id]) theory.TabMorType[ThId] {
	if sq, ok := e.Square(); ok {
		return theory.HomOf(theory.TabulatorOf(m.MorType(sq.Dom)))
	}
	return m.MorGenType(e.basic)
}

// ObAct applies an object operation. Only identities and the projections
// out of a tabulated object are supported; anything else panics.
func (m *Tab[Id, ThId]) ObAct(x TabOb[Id], op theory.TabObOp[ThId]) TabOb[Id] {
	switch op.Kind {
	case theory.ObOpID:
		return x
	case theory.ObOpProjSrc:
		if p, ok := x.Tabulated(); ok {
			return m.Dom(p)
		}
	case theory.ObOpProjTgt:
		if p, ok := x.Tabulated(); ok {
			return m.Cod(p)
		}
	}
	panic(fmt.Sprintf("model: object operation %v cannot act on %v", op.Kind, x))
}

// MorAct applies a morphism operation. Only identities are supported;
// anything else panics.
func (m *Tab[Id, ThId]) MorAct(p path.Path[TabOb[Id], TabEdge[Id]], op theory.TabMorOp[ThId]) path.Path[TabOb[Id], TabEdge[Id]] {
	if op.Kind == theory.MorOpID {
		return p
	}
	panic(fmt.Sprintf("model: morphism operation %v is not implemented", op.Kind))
}

// IterInvalid enumerates the defects of the model: morphisms whose
// endpoints are not objects, then object types, then morphism types and
// the types of their endpoints.
func (m *Tab[Id, ThId]) IterInvalid() iter.Seq[Invalid[Id]] {
	return func(yield func(Invalid[Id]) bool) {
		for f := range m.MorphismGenerators() {
			if x, ok := m.gens.dom.Apply(f); !ok || !m.HasOb(x) {
				if !yield(Invalid[Id]{Tag: TagDom, Content: f}) {
					return
				}
			}
			if x, ok := m.gens.cod.Apply(f); !ok || !m.HasOb(x) {
				if !yield(Invalid[Id]{Tag: TagCod, Content: f}) {
					return
				}
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
	}
}

// Validate returns nil if the model has no defects and a
// validate.Errors[Invalid[Id]] holding all of them otherwise.
func (m *Tab[Id, ThId]) Validate() error {
	return validate.Validate[Invalid[Id]](m)
}

func (m *Tab[Id, ThId]) morTypeDefects(f Id) []Tag {
	t := m.MorGenType(f)
	if !m.theory.HasMorType(t) {
		return []Tag{TagMorType}
	}
	var tags []Tag
	if x, ok := m.gens.dom.Apply(f); ok && m.HasOb(x) {
		if xt, ok := m.tryObType(x); ok && !xt.Equal(m.theory.Src(t)) {
			tags = append(tags, TagDomType)
		}
	}
	if x, ok := m.gens.cod.Apply(f); ok && m.HasOb(x) {
		if xt, ok := m.tryObType(x); ok && !xt.Equal(m.theory.Tgt(t)) {
			tags = append(tags, TagCodType)
		}
	}
	return tags
}

// tryObType is ObType for objects known to exist, reporting false where the
// theory cannot compose the types of a tabulated morphism.
func (m *Tab[Id, ThId]) tryObType(x TabOb[Id]) (t theory.TabObType[ThId], ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return m.ObType(x), true
}
