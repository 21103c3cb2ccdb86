package model

import (
	"fmt"

	"github.com/mesh-intelligence/dblmodel/internal/fpcat"
	"github.com/mesh-intelligence/dblmodel/pkg/path"
	"github.com/mesh-intelligence/dblmodel/pkg/theory"
)

// Tag names the kind of a model defect.
type Tag string

// Model defects.
const (
	TagDom     Tag = "Dom"     // domain of a morphism is unset or not an object
	TagCod     Tag = "Cod"     // codomain of a morphism is unset or not an object
	TagObType  Tag = "ObType"  // object has a type the theory does not know
	TagMorType Tag = "MorType" // morphism has a type the theory does not know
	TagDomType Tag = "DomType" // domain type differs from the source of the morphism type
	TagCodType Tag = "CodType" // codomain type differs from the target of the morphism type
	TagEqLhs   Tag = "EqLhs"   // left side of an equation is not a path
	TagEqRhs   Tag = "EqRhs"   // right side of an equation is not a path
	TagEqSrc   Tag = "EqSrc"   // sides of an equation start at different objects
	TagEqTgt   Tag = "EqTgt"   // sides of an equation end at different objects
	TagEqType  Tag = "EqType"  // sides of an equation have different types
)

// Invalid is one defect of a model. Content is the id of the offending
// generator or equation.
type Invalid[Id any] struct {
	Tag     Tag `json:"tag"`
	Content Id  `json:"content"`
}

func (e Invalid[Id]) Error() string {
	return fmt.Sprintf("%s(%v)", e.Tag, e.Content)
}

func fromPresentation[Id any](err fpcat.Invalid[Id, Id]) Invalid[Id] {
	switch err.Defect {
	case fpcat.Dom:
		return Invalid[Id]{Tag: TagDom, Content: err.Generator}
	case fpcat.Cod:
		return Invalid[Id]{Tag: TagCod, Content: err.Generator}
	}
	return Invalid[Id]{Tag: Tag(err.Defect), Content: err.Equation}
}

// tryComposeTypes composes p in th, reporting false where the theory has no
// composite for it.
func tryComposeTypes[ObType, MorType any](th theory.Theory[ObType, MorType], p path.Path[ObType, MorType]) (t MorType, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return th.ComposeTypes(p), true
}
