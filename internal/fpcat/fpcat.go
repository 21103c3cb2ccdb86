// Package fpcat implements finitely presented categories: a graph of object
// and morphism generators together with path equations. Morphism endpoints
// may be left unset while a presentation is under construction; such gaps
// are reported by IterInvalid rather than rejected on insertion.
package fpcat

import (
	"fmt"
	"iter"

	"github.com/mesh-intelligence/dblmodel/internal/column"
	"github.com/mesh-intelligence/dblmodel/pkg/path"
)

// Category is a finitely presented category with object generators V,
// morphism generators E and equations keyed by K. Morphisms are paths of
// generators.
type Category[V, E, K comparable] struct {
	gens      *generators[V, E]
	equations *column.Column[K, path.Eq[V, E]]
}

// New returns an empty presentation.
func New[V, E, K comparable]() *Category[V, E, K] {
	return &Category[V, E, K]{
		gens: &generators[V, E]{
			vertices: column.NewFinSet[V](),
			edges:    column.NewFinSet[E](),
			dom:      column.NewColumn[E, V](),
			cod:      column.NewColumn[E, V](),
		},
		equations: column.NewColumn[K, path.Eq[V, E]](),
	}
}

// generators is the generating graph. An edge counts as an edge of the
// graph for path purposes only once both of its endpoints are set.
type generators[V, E comparable] struct {
	vertices *column.FinSet[V]
	edges    *column.FinSet[E]
	dom      *column.Column[E, V]
	cod      *column.Column[E, V]
}

func (g *generators[V, E]) HasVertex(v V) bool {
	return g.vertices.Contains(v)
}

func (g *generators[V, E]) HasEdge(e E) bool {
	return g.edges.Contains(e) && g.dom.IsSet(e) && g.cod.IsSet(e)
}

func (g *generators[V, E]) Src(e E) V {
	v, ok := g.dom.Apply(e)
	if !ok {
		panic(fmt.Sprintf("fpcat: domain of morphism generator %v is not set", e))
	}
	return v
}

func (g *generators[V, E]) Tgt(e E) V {
	v, ok := g.cod.Apply(e)
	if !ok {
		panic(fmt.Sprintf("fpcat: codomain of morphism generator %v is not set", e))
	}
	return v
}

func (g *generators[V, E]) SameVertex(x, y V) bool {
	return x == y
}

// AddObGenerator adds an object generator and reports whether it is new.
func (c *Category[V, E, K]) AddObGenerator(v V) bool {
	return c.gens.vertices.Insert(v)
}

// AddMorGenerator adds a morphism generator with the given endpoints,
// overwriting endpoints of an existing generator, and reports whether the
// generator is new.
func (c *Category[V, E, K]) AddMorGenerator(e E, dom, cod V) bool {
	c.gens.dom.Set(e, dom)
	c.gens.cod.Set(e, cod)
	return c.MakeMorGenerator(e)
}

// MakeMorGenerator adds a morphism generator without touching its
// endpoints and reports whether it is new.
func (c *Category[V, E, K]) MakeMorGenerator(e E) bool {
	return c.gens.edges.Insert(e)
}

// GetDom returns the domain of a morphism generator, if set.
func (c *Category[V, E, K]) GetDom(e E) (V, bool) {
	return c.gens.dom.Apply(e)
}

// GetCod returns the codomain of a morphism generator, if set.
func (c *Category[V, E, K]) GetCod(e E) (V, bool) {
	return c.gens.cod.Apply(e)
}

// SetDom sets the domain of a morphism generator and returns the previous
// domain, if any.
func (c *Category[V, E, K]) SetDom(e E, v V) (V, bool) {
	return c.gens.dom.Set(e, v)
}

// SetCod sets the codomain of a morphism generator and returns the previous
// codomain, if any.
func (c *Category[V, E, K]) SetCod(e E, v V) (V, bool) {
	return c.gens.cod.Set(e, v)
}

// AddEquation adds or replaces the equation with the given key.
func (c *Category[V, E, K]) AddEquation(key K, eq path.Eq[V, E]) {
	c.equations.Set(key, eq)
}

// Equation returns the equation with the given key, if any.
func (c *Category[V, E, K]) Equation(key K) (path.Eq[V, E], bool) {
	return c.equations.Apply(key)
}

// Equations enumerates the equations in the order they were added.
func (c *Category[V, E, K]) Equations() iter.Seq2[K, path.Eq[V, E]] {
	return c.equations.All()
}

// IsFree reports whether the presentation has no equations.
func (c *Category[V, E, K]) IsFree() bool {
	return c.equations.Len() == 0
}

// ObjectGenerators enumerates the object generators.
func (c *Category[V, E, K]) ObjectGenerators() iter.Seq[V] {
	return c.gens.vertices.All()
}

// MorphismGenerators enumerates the morphism generators.
func (c *Category[V, E, K]) MorphismGenerators() iter.Seq[E] {
	return c.gens.edges.All()
}

// Graph returns the generating graph for path checks.
func (c *Category[V, E, K]) Graph() path.Graph[V, E] {
	return c.gens
}

// HasOb reports whether x is an object generator.
func (c *Category[V, E, K]) HasOb(x V) bool {
	return c.gens.HasVertex(x)
}

// HasMor reports whether m is a path of generators.
func (c *Category[V, E, K]) HasMor(m path.Path[V, E]) bool {
	return path.ContainedIn[V, E](c.gens, m)
}

// Dom returns the domain of a morphism.
func (c *Category[V, E, K]) Dom(m path.Path[V, E]) V {
	return path.Src[V, E](c.gens, m)
}

// Cod returns the codomain of a morphism.
func (c *Category[V, E, K]) Cod(m path.Path[V, E]) V {
	return path.Tgt[V, E](c.gens, m)
}

// Compose composes a path of morphisms. It panics if adjacent morphisms do
// not meet; callers compose only paths they know to be well formed.
func (c *Category[V, E, K]) Compose(pp path.Path[V, path.Path[V, E]]) path.Path[V, E] {
	m, ok := path.FlattenIn[V, E](c.gens, pp)
	if !ok {
		panic(fmt.Sprintf("fpcat: paths %v are not composable", pp))
	}
	return m
}
