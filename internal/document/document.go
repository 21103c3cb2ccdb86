// Package document reads and writes model files: YAML declarations of the
// objects, morphisms and equations of a model, together with the name of
// the theory it is a model of. Declarations are loaded permissively, the
// same way models are built, so a file can describe an incomplete or
// ill-typed model; only syntax errors are rejected here.
package document

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Document errors.
var (
	ErrInvalidFile   = errors.New("invalid model file")
	ErrUnknownTheory = errors.New("unknown theory")
	ErrUnsupported   = errors.New("not supported for this kind of theory")
	ErrMalformedType = errors.New("malformed type")
	ErrMalformedPath = errors.New("malformed path")
	ErrMalformedOb   = errors.New("malformed object reference")
)

// File is the contents of a model file.
type File struct {
	Theory    string         `yaml:"theory" json:"theory" validate:"required"`
	Objects   []ObjectDecl   `yaml:"objects,omitempty" json:"objects,omitempty" validate:"unique=ID,dive"`
	Morphisms []MorphismDecl `yaml:"morphisms,omitempty" json:"morphisms,omitempty" validate:"unique=ID,dive"`
	Equations []EquationDecl `yaml:"equations,omitempty" json:"equations,omitempty" validate:"unique=ID,dive"`
}

// ObjectDecl declares an object generator.
type ObjectDecl struct {
	ID   string `yaml:"id" json:"id" validate:"required"`
	Type string `yaml:"type" json:"type" validate:"required"`
}

// MorphismDecl declares a morphism generator. Dom and Cod may be omitted
// while the endpoints are not yet known.
type MorphismDecl struct {
	ID   string    `yaml:"id" json:"id" validate:"required"`
	Type string    `yaml:"type" json:"type" validate:"required"`
	Dom  *Endpoint `yaml:"dom,omitempty" json:"dom,omitempty"`
	Cod  *Endpoint `yaml:"cod,omitempty" json:"cod,omitempty"`
}

// EquationDecl declares an equation between two paths.
type EquationDecl struct {
	ID  string   `yaml:"id" json:"id" validate:"required"`
	Lhs PathDecl `yaml:"lhs" json:"lhs"`
	Rhs PathDecl `yaml:"rhs" json:"rhs"`
}

// Endpoint is the domain or codomain of a morphism: an object id, or, in
// models of tabulator theories, a path of morphism ids viewed as an object.
// In YAML the former is a scalar and the latter a mapping with a single
// "tabulated" key.
type Endpoint struct {
	Ob        string   `json:"ob,omitempty"`
	Tabulated []string `json:"tabulated,omitempty"`
}

// IsTabulated reports whether e refers to a tabulated morphism.
func (e Endpoint) IsTabulated() bool {
	return len(e.Tabulated) > 0
}

type tabulatedYAML struct {
	Tabulated []string `yaml:"tabulated"`
}

// UnmarshalYAML decodes an object id or a tabulated path.
func (e *Endpoint) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*e = Endpoint{}
		return node.Decode(&e.Ob)
	case yaml.MappingNode:
		var tab tabulatedYAML
		if err := node.Decode(&tab); err != nil {
			return err
		}
		if len(tab.Tabulated) == 0 {
			return fmt.Errorf("%w: line %d: tabulated path is empty", ErrMalformedOb, node.Line)
		}
		*e = Endpoint{Tabulated: tab.Tabulated}
		return nil
	}
	return fmt.Errorf("%w: line %d", ErrMalformedOb, node.Line)
}

// MarshalYAML encodes e in the form UnmarshalYAML reads.
func (e Endpoint) MarshalYAML() (any, error) {
	if e.IsTabulated() {
		return tabulatedYAML{Tabulated: e.Tabulated}, nil
	}
	return e.Ob, nil
}

// PathDecl is a path of morphism ids, or the identity at an object. In YAML
// a path is a sequence of ids, a single id, or "id:X" for the identity at X.
type PathDecl struct {
	Identity string   `json:"identity,omitempty"`
	Edges    []string `json:"edges,omitempty"`
}

const identityPrefix = "id:"

// UnmarshalYAML decodes a path.
func (p *PathDecl) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		*p = PathDecl{}
		if err := node.Decode(&p.Edges); err != nil {
			return err
		}
		if len(p.Edges) == 0 {
			return fmt.Errorf("%w: line %d: empty path needs an object, write id:X", ErrMalformedPath, node.Line)
		}
		return nil
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		if x, ok := strings.CutPrefix(s, identityPrefix); ok {
			if x == "" {
				return fmt.Errorf("%w: line %d: identity without object", ErrMalformedPath, node.Line)
			}
			*p = PathDecl{Identity: x}
			return nil
		}
		*p = PathDecl{Edges: []string{s}}
		return nil
	}
	return fmt.Errorf("%w: line %d", ErrMalformedPath, node.Line)
}

// MarshalYAML encodes p in the form UnmarshalYAML reads.
func (p PathDecl) MarshalYAML() (any, error) {
	if len(p.Edges) == 0 {
		return identityPrefix + p.Identity, nil
	}
	return p.Edges, nil
}

var declValidator = validator.New(validator.WithRequiredStructEnabled())

// Decode reads a model file. Declarations without an id are given a fresh
// one, so every generator and equation of the result is addressable.
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidFile)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	f.assignIDs()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the declarations are well formed: a theory is named,
// every declaration has an id and a type, and ids are unique per kind.
func (f *File) Validate() error {
	if err := declValidator.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = formatFieldError(fe)
			}
			return fmt.Errorf("%w: %s", ErrInvalidFile, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return nil
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "File.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "unique":
		return fmt.Sprintf("%s has duplicate ids", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func (f *File) assignIDs() {
	for i := range f.Objects {
		if f.Objects[i].ID == "" {
			f.Objects[i].ID = newID()
		}
	}
	for i := range f.Morphisms {
		if f.Morphisms[i].ID == "" {
			f.Morphisms[i].ID = newID()
		}
	}
	for i := range f.Equations {
		if f.Equations[i].ID == "" {
			f.Equations[i].ID = newID()
		}
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Load reads the model file at path.
func Load(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()

	f, err := Decode(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return f, nil
}

// Encode writes f as YAML.
func (f *File) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding model file: %w", err)
	}
	return enc.Close()
}

// Save atomically replaces the file at path with f, writing to a temporary
// file in the same directory, syncing it and renaming it into place.
func (f *File) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".dblmodel-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if err := f.Encode(w); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
