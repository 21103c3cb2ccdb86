package theory

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/dblmodel/internal/column"
	"github.com/mesh-intelligence/dblmodel/pkg/path"
)

// Theory construction errors.
var (
	ErrUnknownObType  = errors.New("unknown object type")
	ErrUnknownMorType = errors.New("unknown morphism type")
	ErrNotComposable  = errors.New("morphism types are not composable")
)

// FinMor is a morphism of a finitely generated category: either a generator
// or the identity on an object.
type FinMor[Id comparable] struct {
	ID         Id
	IsIdentity bool
}

// Generator returns the generating morphism f.
func Generator[Id comparable](f Id) FinMor[Id] {
	return FinMor[Id]{ID: f}
}

// Identity returns the identity morphism on x.
func Identity[Id comparable](x Id) FinMor[Id] {
	return FinMor[Id]{ID: x, IsIdentity: true}
}

func (m FinMor[Id]) String() string {
	if m.IsIdentity {
		return fmt.Sprintf("Id(%v)", m.ID)
	}
	return fmt.Sprintf("%v", m.ID)
}

// Discrete is a discrete double theory: its object and morphism types form
// a finite category and its only operations are identities. Object types
// are Id and morphism types are FinMor[Id].
//
// A Discrete theory is assembled with AddObType, AddMorType and
// SetComposite and must not be changed once models use it.
type Discrete[Id comparable] struct {
	obs        *column.FinSet[Id]
	dom, cod   *column.Column[Id, Id]
	composites map[[2]Id]FinMor[Id]
}

// NewDiscrete returns a theory with no types.
func NewDiscrete[Id comparable]() *Discrete[Id] {
	return &Discrete[Id]{
		obs:        column.NewFinSet[Id](),
		dom:        column.NewColumn[Id, Id](),
		cod:        column.NewColumn[Id, Id](),
		composites: make(map[[2]Id]FinMor[Id]),
	}
}

// AddObType adds an object type.
func (th *Discrete[Id]) AddObType(x Id) *Discrete[Id] {
	th.obs.Insert(x)
	return th
}

// AddMorType adds a generating morphism type f: dom -> cod.
func (th *Discrete[Id]) AddMorType(f, dom, cod Id) *Discrete[Id] {
	th.dom.Set(f, dom)
	th.cod.Set(f, cod)
	return th
}

// SetComposite declares the composite of generators f then g. It returns
// ErrUnknownMorType when either is not a generator, ErrNotComposable when f
// does not end where g starts, and ErrUnknownObType or ErrUnknownMorType
// when the composite is not a type of the theory.
func (th *Discrete[Id]) SetComposite(f, g Id, h FinMor[Id]) error {
	fcod, ok := th.cod.Apply(f)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownMorType, f)
	}
	gdom, ok := th.dom.Apply(g)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownMorType, g)
	}
	if fcod != gdom {
		return fmt.Errorf("%w: %v then %v", ErrNotComposable, f, g)
	}
	if !th.HasMorType(h) {
		return fmt.Errorf("%w: composite %v", ErrUnknownMorType, h)
	}
	th.composites[[2]Id{f, g}] = h
	return nil
}

// ObTypes returns the object types in the order they were added.
func (th *Discrete[Id]) ObTypes() []Id {
	var obs []Id
	for x := range th.obs.All() {
		obs = append(obs, x)
	}
	return obs
}

// MorTypes returns the generating morphism types in the order they were
// added.
func (th *Discrete[Id]) MorTypes() []FinMor[Id] {
	var mors []FinMor[Id]
	for f := range th.dom.All() {
		mors = append(mors, Generator(f))
	}
	return mors
}

// HasObType reports whether x is an object type.
func (th *Discrete[Id]) HasObType(x Id) bool {
	return th.obs.Contains(x)
}

// HasMorType reports whether m is an identity on an object type or a
// generating morphism type.
func (th *Discrete[Id]) HasMorType(m FinMor[Id]) bool {
	if m.IsIdentity {
		return th.HasObType(m.ID)
	}
	return th.dom.IsSet(m.ID)
}

// Src returns the source of m, or the zero Id when m is not a morphism type.
func (th *Discrete[Id]) Src(m FinMor[Id]) Id {
	if m.IsIdentity {
		return m.ID
	}
	x, _ := th.dom.Apply(m.ID)
	return x
}

// Tgt returns the target of m, or the zero Id when m is not a morphism type.
func (th *Discrete[Id]) Tgt(m FinMor[Id]) Id {
	if m.IsIdentity {
		return m.ID
	}
	x, _ := th.cod.Apply(m.ID)
	return x
}

// ComposeTypes composes a path of morphism types. Identities are units and
// generator pairs compose through the declared composites. It panics when a
// pair of generators has no declared composite.
func (th *Discrete[Id]) ComposeTypes(p path.Path[Id, FinMor[Id]]) FinMor[Id] {
	if x, ok := p.Vertex(); ok {
		return Identity(x)
	}
	edges := p.Edges()
	acc := edges[0]
	for _, m := range edges[1:] {
		acc = th.compose2(acc, m)
	}
	return acc
}

func (th *Discrete[Id]) compose2(f, g FinMor[Id]) FinMor[Id] {
	switch {
	case f.IsIdentity:
		return g
	case g.IsIdentity:
		return f
	}
	h, ok := th.composites[[2]Id{f.ID, g.ID}]
	if !ok {
		panic(fmt.Sprintf("theory: composite of %v and %v is not defined", f, g))
	}
	return h
}
