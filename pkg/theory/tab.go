package theory

import (
	"fmt"

	"github.com/mesh-intelligence/dblmodel/internal/column"
	"github.com/mesh-intelligence/dblmodel/pkg/path"
)

// TabObType is an object type in a discrete tabulator theory: a basic type
// or the tabulator of a morphism type.
type TabObType[Id comparable] struct {
	basic Id
	tab   *TabMorType[Id]
}

// TabMorType is a morphism type in a discrete tabulator theory: a basic type
// or the hom type (identity) on an object type.
type TabMorType[Id comparable] struct {
	basic Id
	hom   *TabObType[Id]
}

// BasicObType returns the basic object type x.
func BasicObType[Id comparable](x Id) TabObType[Id] {
	return TabObType[Id]{basic: x}
}

// TabulatorOf returns the tabulator of the morphism type m.
func TabulatorOf[Id comparable](m TabMorType[Id]) TabObType[Id] {
	return TabObType[Id]{tab: &m}
}

// BasicMorType returns the basic morphism type f.
func BasicMorType[Id comparable](f Id) TabMorType[Id] {
	return TabMorType[Id]{basic: f}
}

// HomOf returns the hom type on the object type x.
func HomOf[Id comparable](x TabObType[Id]) TabMorType[Id] {
	return TabMorType[Id]{hom: &x}
}

// Basic returns the id of a basic object type.
func (t TabObType[Id]) Basic() (Id, bool) {
	return t.basic, t.tab == nil
}

// Tabulated returns the morphism type a tabulator is taken of.
func (t TabObType[Id]) Tabulated() (TabMorType[Id], bool) {
	if t.tab == nil {
		return TabMorType[Id]{}, false
	}
	return *t.tab, true
}

// Equal reports structural equality.
func (t TabObType[Id]) Equal(u TabObType[Id]) bool {
	switch {
	case t.tab == nil && u.tab == nil:
		return t.basic == u.basic
	case t.tab != nil && u.tab != nil:
		return t.tab.Equal(*u.tab)
	}
	return false
}

func (t TabObType[Id]) String() string {
	if t.tab != nil {
		return fmt.Sprintf("Tab(%v)", *t.tab)
	}
	return fmt.Sprintf("%v", t.basic)
}

// Basic returns the id of a basic morphism type.
func (t TabMorType[Id]) Basic() (Id, bool) {
	return t.basic, t.hom == nil
}

// Hom returns the object type of a hom type.
func (t TabMorType[Id]) Hom() (TabObType[Id], bool) {
	if t.hom == nil {
		return TabObType[Id]{}, false
	}
	return *t.hom, true
}

// Equal reports structural equality.
func (t TabMorType[Id]) Equal(u TabMorType[Id]) bool {
	switch {
	case t.hom == nil && u.hom == nil:
		return t.basic == u.basic
	case t.hom != nil && u.hom != nil:
		return t.hom.Equal(*u.hom)
	}
	return false
}

func (t TabMorType[Id]) String() string {
	if t.hom != nil {
		return fmt.Sprintf("Hom(%v)", *t.hom)
	}
	return fmt.Sprintf("%v", t.basic)
}

// ObOpKind enumerates object operations of a tabulator theory.
type ObOpKind int

// Object operations.
const (
	ObOpID      ObOpKind = iota // identity on an object type
	ObOpProjSrc                 // projection of a tabulator onto its source
	ObOpProjTgt                 // projection of a tabulator onto its target
)

// TabObOp is an object operation: the identity on an object type or a
// projection out of the tabulator of a morphism type.
type TabObOp[Id comparable] struct {
	Kind    ObOpKind
	ObType  TabObType[Id]  // for ObOpID
	MorType TabMorType[Id] // for the projections
}

// IDOb returns the identity operation on x.
func IDOb[Id comparable](x TabObType[Id]) TabObOp[Id] {
	return TabObOp[Id]{Kind: ObOpID, ObType: x}
}

// ProjSrc returns the projection from the tabulator of m onto its source.
func ProjSrc[Id comparable](m TabMorType[Id]) TabObOp[Id] {
	return TabObOp[Id]{Kind: ObOpProjSrc, MorType: m}
}

// ProjTgt returns the projection from the tabulator of m onto its target.
func ProjTgt[Id comparable](m TabMorType[Id]) TabObOp[Id] {
	return TabObOp[Id]{Kind: ObOpProjTgt, MorType: m}
}

// MorOpKind enumerates morphism operations of a tabulator theory.
type MorOpKind int

// Morphism operations.
const (
	MorOpID  MorOpKind = iota // identity on a morphism type
	MorOpHom                  // hom of an object operation
)

// TabMorOp is a morphism operation: the identity on a morphism type or the
// hom of an object operation.
type TabMorOp[Id comparable] struct {
	Kind    MorOpKind
	MorType TabMorType[Id] // for MorOpID
	ObOp    TabObOp[Id]    // for MorOpHom
}

// IDMor returns the identity operation on m.
func IDMor[Id comparable](m TabMorType[Id]) TabMorOp[Id] {
	return TabMorOp[Id]{Kind: MorOpID, MorType: m}
}

// HomOp returns the hom of the object operation f.
func HomOp[Id comparable](f TabObOp[Id]) TabMorOp[Id] {
	return TabMorOp[Id]{Kind: MorOpHom, ObOp: f}
}

// Tab is a discrete tabulator theory: basic object and morphism types,
// closed under tabulators and hom types, with composition of basic
// morphism types given by declared composites.
type Tab[Id comparable] struct {
	obs        *column.FinSet[Id]
	dom, cod   *column.Column[Id, TabObType[Id]]
	composites map[[2]Id]TabMorType[Id]
}

// NewTab returns a tabulator theory with no basic types.
func NewTab[Id comparable]() *Tab[Id] {
	return &Tab[Id]{
		obs:        column.NewFinSet[Id](),
		dom:        column.NewColumn[Id, TabObType[Id]](),
		cod:        column.NewColumn[Id, TabObType[Id]](),
		composites: make(map[[2]Id]TabMorType[Id]),
	}
}

// AddObType adds a basic object type.
func (th *Tab[Id]) AddObType(x Id) *Tab[Id] {
	th.obs.Insert(x)
	return th
}

// AddMorType adds a basic morphism type f: dom -> cod.
func (th *Tab[Id]) AddMorType(f Id, dom, cod TabObType[Id]) *Tab[Id] {
	th.dom.Set(f, dom)
	th.cod.Set(f, cod)
	return th
}

// SetComposite declares the composite of basic morphism types f then g.
func (th *Tab[Id]) SetComposite(f, g Id, h TabMorType[Id]) error {
	fcod, ok := th.cod.Apply(f)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownMorType, f)
	}
	gdom, ok := th.dom.Apply(g)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownMorType, g)
	}
	if !fcod.Equal(gdom) {
		return fmt.Errorf("%w: %v then %v", ErrNotComposable, f, g)
	}
	if !th.HasMorType(h) {
		return fmt.Errorf("%w: composite %v", ErrUnknownMorType, h)
	}
	th.composites[[2]Id{f, g}] = h
	return nil
}

// ObTypes returns the basic object types.
func (th *Tab[Id]) ObTypes() []TabObType[Id] {
	var obs []TabObType[Id]
	for x := range th.obs.All() {
		obs = append(obs, BasicObType(x))
	}
	return obs
}

// MorTypes returns the basic morphism types.
func (th *Tab[Id]) MorTypes() []TabMorType[Id] {
	var mors []TabMorType[Id]
	for f := range th.dom.All() {
		mors = append(mors, BasicMorType(f))
	}
	return mors
}

// HasObType reports whether t is a basic object type or the tabulator of a
// morphism type of the theory.
func (th *Tab[Id]) HasObType(t TabObType[Id]) bool {
	if m, ok := t.Tabulated(); ok {
		return th.HasMorType(m)
	}
	return th.obs.Contains(t.basic)
}

// HasMorType reports whether t is a basic morphism type or the hom type on
// an object type of the theory.
func (th *Tab[Id]) HasMorType(t TabMorType[Id]) bool {
	if x, ok := t.Hom(); ok {
		return th.HasObType(x)
	}
	return th.dom.IsSet(t.basic)
}

// Src returns the source of t.
func (th *Tab[Id]) Src(t TabMorType[Id]) TabObType[Id] {
	if x, ok := t.Hom(); ok {
		return x
	}
	x, _ := th.dom.Apply(t.basic)
	return x
}

// Tgt returns the target of t.
func (th *Tab[Id]) Tgt(t TabMorType[Id]) TabObType[Id] {
	if x, ok := t.Hom(); ok {
		return x
	}
	x, _ := th.cod.Apply(t.basic)
	return x
}

// ComposeTypes composes a path of morphism types. Hom types are units and
// basic types compose through the declared composites; it panics when a
// pair of basic types has no declared composite.
func (th *Tab[Id]) ComposeTypes(p path.Path[TabObType[Id], TabMorType[Id]]) TabMorType[Id] {
	if x, ok := p.Vertex(); ok {
		return HomOf(x)
	}
	edges := p.Edges()
	acc := edges[0]
	for _, m := range edges[1:] {
		acc = th.compose2(acc, m)
	}
	return acc
}

func (th *Tab[Id]) compose2(f, g TabMorType[Id]) TabMorType[Id] {
	if _, ok := f.Hom(); ok {
		return g
	}
	if _, ok := g.Hom(); ok {
		return f
	}
	h, ok := th.composites[[2]Id{f.basic, g.basic}]
	if !ok {
		panic(fmt.Sprintf("theory: composite of %v and %v is not defined", f, g))
	}
	return h
}
