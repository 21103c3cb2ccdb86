package model

import (
	"encoding/json"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/dblmodel/pkg/path"
	"github.com/mesh-intelligence/dblmodel/pkg/theory"
	"github.com/mesh-intelligence/dblmodel/pkg/validate"
)

type discreteMor = path.Path[string, string]

var _ FgModel[string, discreteMor, string, string, string, theory.FinMor[string], string, theory.FinMor[string]] = (*Discrete[string, string])(nil)

var (
	attr     = theory.Generator("Attr")
	negative = theory.Generator("Negative")
)

func newSchemaModel() *Discrete[string, string] {
	return NewDiscrete[string, string](theory.Schema())
}

// walkingAttr is the model x -a-> y of the theory of schemas.
func walkingAttr() *Discrete[string, string] {
	m := newSchemaModel()
	m.AddOb("x", "Entity")
	m.AddOb("y", "AttrType")
	m.AddMor("a", "x", "y", attr)
	return m
}

func invalids(m interface{ IterInvalid() iter.Seq[Invalid[string]] }) []Invalid[string] {
	return slices.Collect(m.IterInvalid())
}

func TestDiscreteEmptyModelIsValid(t *testing.T) {
	m := newSchemaModel()
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsFree())
	assert.Empty(t, slices.Collect(m.ObjectGenerators()))
}

func TestDiscreteReAdd(t *testing.T) {
	m := newSchemaModel()
	assert.True(t, m.AddOb("x", "Entity"))
	assert.False(t, m.AddOb("x", "AttrType"))
	assert.Equal(t, "AttrType", m.ObGenType("x"))

	assert.True(t, m.AddMor("a", "x", "y", attr))
	assert.False(t, m.AddMor("a", "y", "x", theory.Identity("Entity")))
	assert.Equal(t, theory.Identity("Entity"), m.MorGenType("a"))
	assert.Equal(t, "y", m.MorphismGeneratorDom("a"))
	assert.Equal(t, "x", m.MorphismGeneratorCod("a"))

	assert.Equal(t, []string{"x"}, slices.Collect(m.ObjectGenerators()))
	assert.Equal(t, []string{"a"}, slices.Collect(m.MorphismGenerators()))
}

func TestDiscretePendingEndpoints(t *testing.T) {
	m := newSchemaModel()
	m.AddOb("x", "Entity")
	assert.True(t, m.MakeMor("a", attr))
	assert.False(t, m.MakeMor("a", attr))

	_, ok := m.GetDom("a")
	assert.False(t, ok)
	assert.Panics(t, func() { m.MorphismGeneratorDom("a") })
	assert.Equal(t, []Invalid[string]{
		{Tag: TagDom, Content: "a"},
		{Tag: TagCod, Content: "a"},
	}, invalids(m))

	_, had := m.SetDom("a", "x")
	assert.False(t, had)
	prev, had := m.SetDom("a", "x")
	assert.True(t, had)
	assert.Equal(t, "x", prev)
	m.SetCod("a", "y")
	got, ok := m.GetCod("a")
	require.True(t, ok)
	assert.Equal(t, "y", got)

	assert.Equal(t, []Invalid[string]{{Tag: TagCod, Content: "a"}}, invalids(m))
	m.AddOb("y", "AttrType")
	assert.NoError(t, m.Validate())
}

func TestDiscreteInferMissing(t *testing.T) {
	m := newSchemaModel()
	m.AddMor("a", "x", "y", attr)
	m.InferMissing()

	want := walkingAttr()
	assert.Equal(t, slices.Collect(want.ObjectGenerators()), slices.Collect(m.ObjectGenerators()))
	for x := range want.ObjectGenerators() {
		assert.Equal(t, want.ObGenType(x), m.ObGenType(x), "type of %s", x)
	}
	assert.NoError(t, m.Validate())

	m.InferMissing()
	assert.Equal(t, []string{"x", "y"}, slices.Collect(m.ObjectGenerators()))
}

func TestDiscreteInferMissingKeepsExisting(t *testing.T) {
	m := newSchemaModel()
	m.AddOb("x", "AttrType")
	m.AddMor("a", "x", "y", attr)
	m.MakeMor("b", attr)
	m.AddMor("c", "u", "v", theory.Generator("Unknown"))
	m.InferMissing()

	assert.Equal(t, "AttrType", m.ObGenType("x"))
	assert.Equal(t, "AttrType", m.ObGenType("y"))
	assert.False(t, m.HasOb("u"))
	assert.False(t, m.HasOb("v"))

	assert.Equal(t, []Invalid[string]{
		{Tag: TagDom, Content: "b"},
		{Tag: TagCod, Content: "b"},
		{Tag: TagDom, Content: "c"},
		{Tag: TagCod, Content: "c"},
		{Tag: TagDomType, Content: "a"},
		{Tag: TagMorType, Content: "c"},
	}, invalids(m))
}

func TestDiscreteIsFree(t *testing.T) {
	m := NewDiscrete[string, string](theory.SignedCategory())
	m.AddOb("x", "Object")
	m.AddMor("n", "x", "x", negative)
	assert.True(t, m.IsFree())

	m.AddEquation("e", path.Seq[string]("n", "n"), path.Empty[string, string]("x"))
	assert.False(t, m.IsFree())
	m.AddEquation("e", path.Seq[string]("n", "n"), path.Empty[string, string]("x"))
	assert.False(t, m.IsFree())
	assert.NoError(t, m.Validate())
}

func TestDiscreteValidateUnknownObType(t *testing.T) {
	m := newSchemaModel()
	m.AddOb("x", "T1")

	err := m.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrInvalid)

	var errs validate.Errors[Invalid[string]]
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, validate.Errors[Invalid[string]]{{Tag: TagObType, Content: "x"}}, errs)
}

func TestDiscreteValidateIncompatibleMorphism(t *testing.T) {
	m := walkingAttr()
	m.AddMor("b", "x", "y", theory.Identity("Entity"))

	assert.Equal(t, []Invalid[string]{{Tag: TagCodType, Content: "b"}}, invalids(m))
}

func TestDiscreteValidateMorType(t *testing.T) {
	m := newSchemaModel()
	m.AddOb("x", "Entity")
	m.AddMor("f", "x", "x", theory.Generator("NotMorType"))
	m.AddMor("g", "x", "x", attr)

	assert.Equal(t, []Invalid[string]{
		{Tag: TagMorType, Content: "f"},
		{Tag: TagCodType, Content: "g"},
	}, invalids(m))
}

func TestDiscreteValidateEquations(t *testing.T) {
	m := NewDiscrete[string, string](theory.SignedCategory())
	m.AddOb("x", "Object")
	m.AddOb("y", "Object")
	m.AddMor("n", "x", "x", negative)
	m.AddMor("p", "x", "y", theory.Identity("Object"))

	m.AddEquation("square", path.Seq[string]("n", "n"), path.Empty[string, string]("x"))
	m.AddEquation("sign", path.Single[string]("n"), path.Empty[string, string]("x"))
	m.AddEquation("ends", path.Single[string]("p"), path.Empty[string, string]("x"))
	m.AddEquation("dangling", path.Single[string]("q"), path.Single[string]("n"))

	assert.Equal(t, []Invalid[string]{
		{Tag: TagEqTgt, Content: "ends"},
		{Tag: TagEqLhs, Content: "dangling"},
		{Tag: TagEqType, Content: "sign"},
	}, invalids(m))
}

func TestDiscreteIterInvalidStopsEarly(t *testing.T) {
	m := newSchemaModel()
	m.AddOb("x", "T1")
	m.AddOb("y", "T2")
	m.MakeMor("a", attr)

	var seen []Invalid[string]
	for err := range m.IterInvalid() {
		seen = append(seen, err)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []Invalid[string]{
		{Tag: TagDom, Content: "a"},
		{Tag: TagCod, Content: "a"},
	}, seen)
}

func TestDiscreteCompose(t *testing.T) {
	m := NewDiscrete[string, string](theory.Category())
	m.AddOb("x", "Object")
	m.AddOb("y", "Object")
	m.AddOb("z", "Object")
	m.AddMor("f", "x", "y", theory.Identity("Object"))
	m.AddMor("g", "y", "z", theory.Identity("Object"))

	fg := m.Compose(path.Seq[string](path.Single[string]("f"), path.Single[string]("g")))
	assert.True(t, path.Equal(path.Seq[string]("f", "g"), fg))
	assert.True(t, m.HasMor(fg))
	assert.Equal(t, "x", m.Dom(fg))
	assert.Equal(t, "z", m.Cod(fg))

	id := m.Compose(path.Seq[string](path.Empty[string, string]("y"), path.Single[string]("g")))
	assert.True(t, path.Equal(path.Single[string]("g"), id))

	assert.False(t, m.HasMor(path.Seq[string]("g", "f", "g")))
	assert.Panics(t, func() {
		m.Compose(path.Seq[string](path.Single[string]("g"), path.Single[string]("g")))
	})
}

func TestDiscreteTyping(t *testing.T) {
	m := walkingAttr()
	assert.Equal(t, "Entity", m.ObType("x"))
	assert.Equal(t, attr, m.MorType(path.Single[string]("a")))
	assert.Equal(t, theory.Identity("Entity"), m.MorType(path.Empty[string, string]("x")))
	assert.Equal(t, "x", m.ObAct("x", "Entity"))
	assert.True(t, path.Equal(path.Single[string]("a"), m.MorAct(path.Single[string]("a"), attr)))
	assert.Panics(t, func() { m.ObGenType("missing") })

	signed := NewDiscrete[string, string](theory.SignedCategory())
	signed.AddOb("x", "Object")
	signed.AddMor("n", "x", "x", negative)
	assert.Equal(t, theory.Identity("Object"), signed.MorType(path.Seq[string]("n", "n")))
	assert.Equal(t, negative, signed.MorType(path.Seq[string]("n", "n", "n")))
}

// scanOnly hides the type index of a model so the generic helpers fall back
// to filtering.
type scanOnly struct{ m *Discrete[string, string] }

func (s scanOnly) ObjectGenerators() iter.Seq[string] { return s.m.ObjectGenerators() }

func (s scanOnly) ObGenType(x string) string { return s.m.ObGenType(x) }

func (s scanOnly) MorphismGenerators() iter.Seq[string] { return s.m.MorphismGenerators() }

func (s scanOnly) MorGenType(f string) theory.FinMor[string] { return s.m.MorGenType(f) }

func TestGeneratorsWithType(t *testing.T) {
	m := walkingAttr()
	m.AddOb("z", "Entity")
	m.AddMor("b", "z", "y", attr)
	m.AddOb("x", "AttrType")

	tests := []struct {
		name string
		obs  iter.Seq[string]
		mors iter.Seq[string]
	}{
		{
			"indexed",
			ObGeneratorsWithType[string, string](m, "Entity"),
			MorGeneratorsWithType[string, theory.FinMor[string]](m, attr),
		},
		{
			"scan",
			ObGeneratorsWithType[string, string](scanOnly{m}, "Entity"),
			MorGeneratorsWithType[string, theory.FinMor[string]](scanOnly{m}, attr),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{"z"}, slices.Collect(tt.obs))
			assert.Equal(t, []string{"a", "b"}, slices.Collect(tt.mors))
		})
	}
	assert.Empty(t, slices.Collect(m.ObjectGeneratorsWithType("Missing")))
}

func TestInvalidJSON(t *testing.T) {
	data, err := json.Marshal(Invalid[string]{Tag: TagObType, Content: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tag":"ObType","content":"x"}`, string(data))
	assert.Equal(t, "CodType(b)", Invalid[string]{Tag: TagCodType, Content: "b"}.Error())
}
