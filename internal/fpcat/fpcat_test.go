package fpcat

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/dblmodel/pkg/path"
)

type sp = path.Path[string, string]

func defects(c *Category[string, string, string]) []Invalid[string, string] {
	return slices.Collect(c.IterInvalid())
}

func TestAddGenerators(t *testing.T) {
	c := New[string, string, string]()
	assert.True(t, c.AddObGenerator("x"))
	assert.False(t, c.AddObGenerator("x"))
	assert.True(t, c.AddObGenerator("y"))

	assert.True(t, c.AddMorGenerator("f", "x", "y"))
	assert.False(t, c.AddMorGenerator("f", "y", "x"), "re-adding overwrites endpoints")

	dom, ok := c.GetDom("f")
	require.True(t, ok)
	assert.Equal(t, "y", dom)
	cod, ok := c.GetCod("f")
	require.True(t, ok)
	assert.Equal(t, "x", cod)

	assert.Equal(t, []string{"x", "y"}, slices.Collect(c.ObjectGenerators()))
	assert.Equal(t, []string{"f"}, slices.Collect(c.MorphismGenerators()))
	assert.Empty(t, defects(c))
}

func TestPendingEndpoints(t *testing.T) {
	c := New[string, string, string]()
	c.AddObGenerator("x")
	assert.True(t, c.MakeMorGenerator("f"))

	_, ok := c.GetDom("f")
	assert.False(t, ok)
	assert.Equal(t, []Invalid[string, string]{
		{Defect: Dom, Generator: "f"},
		{Defect: Cod, Generator: "f"},
	}, defects(c))
	assert.False(t, c.HasMor(path.Single[string]("f")), "edge without endpoints is not a path")

	_, had := c.SetDom("f", "x")
	assert.False(t, had)
	old, had := c.SetDom("f", "x")
	assert.True(t, had)
	assert.Equal(t, "x", old)
	c.SetCod("f", "missing")

	assert.Equal(t, []Invalid[string, string]{
		{Defect: Cod, Generator: "f"},
	}, defects(c))
}

func TestEquations(t *testing.T) {
	c := New[string, string, string]()
	c.AddObGenerator("x")
	c.AddObGenerator("y")
	c.AddMorGenerator("f", "x", "y")
	c.AddMorGenerator("g", "x", "y")
	c.AddMorGenerator("h", "y", "y")
	assert.True(t, c.IsFree())

	c.AddEquation("ok", path.NewEq(path.Single[string]("f"), path.Single[string]("g")))
	assert.False(t, c.IsFree())
	c.AddEquation("tgt", path.NewEq(path.Seq[string]("f", "h"), path.Empty[string, string]("x")))
	c.AddEquation("ends", path.NewEq(path.Single[string]("h"), path.Empty[string, string]("x")))
	c.AddEquation("lhs", path.NewEq(path.Seq[string]("h", "f"), path.Single[string]("g")))

	assert.Equal(t, []Invalid[string, string]{
		{Defect: EqTgt, Equation: "tgt"},
		{Defect: EqSrc, Equation: "ends"},
		{Defect: EqTgt, Equation: "ends"},
		{Defect: EqLhs, Equation: "lhs"},
	}, defects(c))

	eq, ok := c.Equation("ok")
	require.True(t, ok)
	assert.True(t, path.Equal(path.Single[string]("f"), eq.Lhs))
	assert.False(t, c.IsFree())
}

func TestCompose(t *testing.T) {
	c := New[string, string, string]()
	for _, x := range []string{"a", "b", "c", "d"} {
		c.AddObGenerator(x)
	}
	c.AddMorGenerator("f", "a", "b")
	c.AddMorGenerator("g", "b", "c")
	c.AddMorGenerator("h", "c", "d")

	pp := path.Seq[string](sp(path.Seq[string]("f", "g")), sp(path.Single[string]("h")))
	m := c.Compose(pp)
	assert.Equal(t, []string{"f", "g", "h"}, m.Edges())
	assert.True(t, c.HasMor(m))
	assert.Equal(t, "a", c.Dom(m))
	assert.Equal(t, "d", c.Cod(m))

	assert.Panics(t, func() {
		c.Compose(path.Seq[string](sp(path.Single[string]("h")), sp(path.Single[string]("f"))))
	})
}

func TestIterInvalidStopsEarly(t *testing.T) {
	c := New[string, string, string]()
	c.MakeMorGenerator("f")
	c.MakeMorGenerator("g")

	var got []Invalid[string, string]
	for inv := range c.IterInvalid() {
		got = append(got, inv)
		break
	}
	assert.Len(t, got, 1)
}
