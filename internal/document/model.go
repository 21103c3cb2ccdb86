package document

import (
	"fmt"
	"iter"

	"github.com/mesh-intelligence/dblmodel/pkg/model"
	"github.com/mesh-intelligence/dblmodel/pkg/path"
	"github.com/mesh-intelligence/dblmodel/pkg/validate"
)

// Model is a model built from a file. Exactly one of Discrete and Tab is
// set, according to the kind of the theory the file names.
type Model struct {
	File     *File
	Theory   TheoryEntry
	Discrete *model.Discrete[string, string]
	Tab      *model.Tab[string, string]
}

// Report summarizes the validation of a model.
type Report struct {
	Theory    string                  `json:"theory"`
	Kind      Kind                    `json:"kind"`
	Objects   int                     `json:"objects"`
	Morphisms int                     `json:"morphisms"`
	Equations int                     `json:"equations"`
	Free      bool                    `json:"free"`
	Valid     bool                    `json:"valid"`
	Errors    []model.Invalid[string] `json:"errors"`
}

// Build constructs the model a file declares. Types and references are not
// checked here; they surface as defects when the model is validated.
func Build(f *File) (*Model, error) {
	entry, err := LookupTheory(f.Theory)
	if err != nil {
		return nil, err
	}
	m := &Model{File: f, Theory: entry}
	switch entry.Kind {
	case KindDiscrete:
		m.Discrete, err = buildDiscrete(f, entry)
	case KindTab:
		m.Tab, err = buildTab(f, entry)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func buildDiscrete(f *File, entry TheoryEntry) (*model.Discrete[string, string], error) {
	m := model.NewDiscrete[string, string](entry.Discrete)
	for _, ob := range f.Objects {
		t, err := parseObType(ob.Type)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", ob.ID, err)
		}
		m.AddOb(ob.ID, t)
	}
	for _, mor := range f.Morphisms {
		t, err := parseFinMor(mor.Type)
		if err != nil {
			return nil, fmt.Errorf("morphism %s: %w", mor.ID, err)
		}
		if (mor.Dom != nil && mor.Dom.IsTabulated()) || (mor.Cod != nil && mor.Cod.IsTabulated()) {
			return nil, fmt.Errorf("morphism %s: tabulated endpoint: %w", mor.ID, ErrUnsupported)
		}
		m.MakeMor(mor.ID, t)
		if mor.Dom != nil {
			m.SetDom(mor.ID, mor.Dom.Ob)
		}
		if mor.Cod != nil {
			m.SetCod(mor.ID, mor.Cod.Ob)
		}
	}
	for _, eq := range f.Equations {
		m.AddEquation(eq.ID, discretePath(eq.Lhs), discretePath(eq.Rhs))
	}
	return m, nil
}

func discretePath(p PathDecl) path.Path[string, string] {
	if len(p.Edges) == 0 {
		return path.Empty[string, string](p.Identity)
	}
	return path.Seq[string](p.Edges...)
}

func buildTab(f *File, entry TheoryEntry) (*model.Tab[string, string], error) {
	m := model.NewTab[string, string](entry.Tab)
	for _, ob := range f.Objects {
		t, err := parseTabObType(ob.Type)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", ob.ID, err)
		}
		m.AddOb(ob.ID, t)
	}
	for _, mor := range f.Morphisms {
		t, err := parseTabMorType(mor.Type)
		if err != nil {
			return nil, fmt.Errorf("morphism %s: %w", mor.ID, err)
		}
		if mor.Dom == nil || mor.Cod == nil {
			return nil, fmt.Errorf("morphism %s: pending endpoint: %w", mor.ID, ErrUnsupported)
		}
		m.AddMor(mor.ID, tabOb(*mor.Dom), tabOb(*mor.Cod), t)
	}
	if len(f.Equations) > 0 {
		return nil, fmt.Errorf("equations: %w", ErrUnsupported)
	}
	return m, nil
}

func tabOb(e Endpoint) model.TabOb[string] {
	if !e.IsTabulated() {
		return model.BasicOb(e.Ob)
	}
	edges := make([]model.TabEdge[string], len(e.Tabulated))
	for i, f := range e.Tabulated {
		edges[i] = model.BasicEdge(f)
	}
	return model.TabulatedOb(path.Seq[model.TabOb[string]](edges...))
}

// IterInvalid enumerates the defects of the model.
func (m *Model) IterInvalid() iter.Seq[model.Invalid[string]] {
	if m.Tab != nil {
		return m.Tab.IterInvalid()
	}
	return m.Discrete.IterInvalid()
}

// Validate returns nil if the model has no defects and a
// validate.Errors[model.Invalid[string]] holding all of them otherwise.
func (m *Model) Validate() error {
	return validate.Validate[model.Invalid[string]](m)
}

// InferMissing adds the objects that morphisms refer to but that are not
// declared, both to the model and to its file, and returns the new
// declarations.
func (m *Model) InferMissing() ([]ObjectDecl, error) {
	if m.Discrete == nil {
		return nil, fmt.Errorf("inferring objects: %w", ErrUnsupported)
	}
	declared := make(map[string]bool, len(m.File.Objects))
	for _, ob := range m.File.Objects {
		declared[ob.ID] = true
	}
	m.Discrete.InferMissing()

	var added []ObjectDecl
	for x := range m.Discrete.ObjectGenerators() {
		if declared[x] {
			continue
		}
		added = append(added, ObjectDecl{ID: x, Type: m.Discrete.ObGenType(x)})
	}
	m.File.Objects = append(m.File.Objects, added...)
	return added, nil
}

// Report validates the model and summarizes the result.
func (m *Model) Report() Report {
	r := Report{
		Theory:    m.Theory.Name,
		Kind:      m.Theory.Kind,
		Objects:   len(m.File.Objects),
		Morphisms: len(m.File.Morphisms),
		Equations: len(m.File.Equations),
		Errors:    []model.Invalid[string]{},
	}
	if m.Discrete != nil {
		r.Free = m.Discrete.IsFree()
	} else {
		r.Free = m.Tab.IsFree()
	}
	for err := range m.IterInvalid() {
		r.Errors = append(r.Errors, err)
	}
	r.Valid = len(r.Errors) == 0
	return r
}
