package fpcat

import (
	"iter"

	"github.com/mesh-intelligence/dblmodel/pkg/path"
)

// Defect names one way a presentation fails to be well defined.
type Defect string

// Presentation defects.
const (
	Dom   Defect = "Dom"   // domain of a morphism generator is unset or not an object
	Cod   Defect = "Cod"   // codomain of a morphism generator is unset or not an object
	EqLhs Defect = Defect(path.EqLhs)
	EqRhs Defect = Defect(path.EqRhs)
	EqSrc Defect = Defect(path.EqSrc)
	EqTgt Defect = Defect(path.EqTgt)
)

// Invalid is one defect of a presentation. Generator is set for Dom and Cod,
// Equation for the equation defects.
type Invalid[E, K any] struct {
	Defect    Defect
	Generator E
	Equation  K
}

// IterInvalid enumerates the defects of the presentation: dangling morphism
// endpoints first, generator by generator, then ill-defined equations in
// the order they were added.
func (c *Category[V, E, K]) IterInvalid() iter.Seq[Invalid[E, K]] {
	return func(yield func(Invalid[E, K]) bool) {
		for e := range c.gens.edges.All() {
			if x, ok := c.gens.dom.Apply(e); !ok || !c.gens.HasVertex(x) {
				if !yield(Invalid[E, K]{Defect: Dom, Generator: e}) {
					return
				}
			}
			if x, ok := c.gens.cod.Apply(e); !ok || !c.gens.HasVertex(x) {
				if !yield(Invalid[E, K]{Defect: Cod, Generator: e}) {
					return
				}
			}
		}
		for key, eq := range c.equations.All() {
			for _, d := range eq.Defects(c.gens) {
				if !yield(Invalid[E, K]{Defect: Defect(d), Equation: key}) {
					return
				}
			}
		}
	}
}
