package model

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/dblmodel/pkg/path"
	"github.com/mesh-intelligence/dblmodel/pkg/theory"
)

type (
	tabMor  = path.Path[TabOb[string], TabEdge[string]]
	tabType = theory.TabObType[string]
)

var _ FgModel[TabOb[string], tabMor, string, string,
	theory.TabObType[string], theory.TabMorType[string],
	theory.TabObOp[string], theory.TabMorOp[string]] = (*Tab[string, string])(nil)

var (
	object = theory.BasicObType("Object")
	homOb  = theory.HomOf(object)
	link   = theory.BasicMorType("Link")
)

func edges(ids ...string) tabMor {
	es := make([]TabEdge[string], len(ids))
	for i, id := range ids {
		es[i] = BasicEdge(id)
	}
	return path.Seq[TabOb[string]](es...)
}

// newLinksModel returns a model of categories with links: f: x -> y and
// g: y -> z, h: x -> y parallel to f, and a link l from w to f.
func newLinksModel() *Tab[string, string] {
	m := NewTab[string, string](theory.CategoryLinks())
	for _, x := range []string{"x", "y", "z", "w"} {
		m.AddOb(x, object)
	}
	m.AddMor("f", BasicOb("x"), BasicOb("y"), homOb)
	m.AddMor("g", BasicOb("y"), BasicOb("z"), homOb)
	m.AddMor("h", BasicOb("x"), BasicOb("y"), homOb)
	m.AddMor("l", BasicOb("w"), m.TabulatedGen("f"), link)
	return m
}

func TestTabEmptyModelIsValid(t *testing.T) {
	m := NewTab[string, string](theory.CategoryLinks())
	assert.NoError(t, m.Validate())
	assert.True(t, m.IsFree())
}

func TestTabObjects(t *testing.T) {
	m := newLinksModel()
	assert.NoError(t, m.Validate())

	assert.True(t, m.HasOb(BasicOb("x")))
	assert.False(t, m.HasOb(BasicOb("missing")))
	assert.True(t, m.HasOb(m.TabulatedGen("f")))
	assert.False(t, m.HasOb(m.TabulatedGen("missing")))
	assert.True(t, m.HasOb(m.Tabulated(edges("f", "g"))))
	assert.False(t, m.HasOb(m.Tabulated(edges("g", "f"))))
	assert.True(t, m.HasOb(m.Tabulated(path.Empty[TabOb[string], TabEdge[string]](BasicOb("z")))))
	assert.True(t, m.HasOb(m.TabulatedGen("l")), "tabulation of a link into a tabulation")

	assert.True(t, m.TabulatedGen("f").Equal(m.Tabulated(edges("f"))))
	assert.False(t, m.TabulatedGen("f").Equal(m.TabulatedGen("h")))
	assert.False(t, m.TabulatedGen("f").Equal(BasicOb("f")))
}

func TestTabReAdd(t *testing.T) {
	m := newLinksModel()
	assert.False(t, m.AddOb("x", object))
	assert.False(t, m.AddMor("h", BasicOb("y"), BasicOb("x"), homOb))
	assert.True(t, m.MorphismGeneratorDom("h").Equal(BasicOb("y")))
	assert.True(t, m.AddMor("k", BasicOb("x"), BasicOb("x"), homOb))
	assert.Equal(t, []string{"f", "g", "h", "l", "k"}, slices.Collect(m.MorphismGenerators()))
}

func TestTabSquareExistence(t *testing.T) {
	m := newLinksModel()
	tests := []struct {
		name string
		sq   Square[string]
		want bool
	}{
		{
			"decompositions agree",
			Square[string]{Dom: edges("f"), Cod: edges("g"), Pre: BasicEdge("f"), Post: BasicEdge("g")},
			true,
		},
		{
			"between identities",
			Square[string]{
				Dom:  path.Empty[TabOb[string], TabEdge[string]](BasicOb("x")),
				Cod:  path.Empty[TabOb[string], TabEdge[string]](BasicOb("y")),
				Pre:  BasicEdge("f"),
				Post: BasicEdge("f"),
			},
			true,
		},
		{
			"decompositions differ",
			Square[string]{Dom: edges("f"), Cod: edges("g"), Pre: BasicEdge("h"), Post: BasicEdge("g")},
			false,
		},
		{
			"post does not meet dom",
			Square[string]{Dom: edges("f"), Cod: edges("g"), Pre: BasicEdge("f"), Post: BasicEdge("f")},
			false,
		},
		{
			"pre is missing",
			Square[string]{Dom: edges("f"), Cod: edges("g"), Pre: BasicEdge("missing"), Post: BasicEdge("g")},
			false,
		},
		{
			"cod is not a path",
			Square[string]{Dom: edges("f"), Cod: edges("g", "g"), Pre: BasicEdge("f"), Post: BasicEdge("g")},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := SquareEdge(tt.sq)
			assert.Equal(t, tt.want, m.HasEdge(e))
			assert.Equal(t, tt.want, m.HasMor(path.Single[TabOb[string]](e)))
		})
	}
}

func TestTabSquareEndpointsAndType(t *testing.T) {
	m := newLinksModel()
	sq := SquareEdge(Square[string]{Dom: edges("f"), Cod: edges("g"), Pre: BasicEdge("f"), Post: BasicEdge("g")})
	p := path.Single[TabOb[string]](sq)

	assert.True(t, m.Dom(p).Equal(m.TabulatedGen("f")))
	assert.True(t, m.Cod(p).Equal(m.TabulatedGen("g")))
	assert.True(t, m.MorType(p).Equal(theory.HomOf(theory.TabulatorOf(homOb))))
	assert.True(t, m.HasOb(m.Tabulated(p)))
	assert.True(t, m.ObType(m.Tabulated(p)).Equal(theory.TabulatorOf(theory.HomOf(theory.TabulatorOf(homOb)))))

	other := SquareEdge(Square[string]{Dom: edges("f"), Cod: edges("g"), Pre: BasicEdge("f"), Post: BasicEdge("g")})
	assert.True(t, sq.Equal(other))
	assert.False(t, sq.Equal(BasicEdge("f")))
}

func TestTabTyping(t *testing.T) {
	m := newLinksModel()
	assert.True(t, m.ObType(BasicOb("x")).Equal(object))
	assert.True(t, m.ObType(m.TabulatedGen("f")).Equal(theory.TabulatorOf(homOb)))
	assert.True(t, m.MorType(edges("l")).Equal(link))
	assert.True(t, m.MorType(edges("f", "g")).Equal(homOb))
	assert.True(t, m.MorType(path.Empty[TabOb[string], TabEdge[string]](BasicOb("x"))).Equal(homOb))
	assert.Panics(t, func() { m.ObGenType("missing") })
	assert.Panics(t, func() { m.MorGenType("missing") })
}

func TestTabCompose(t *testing.T) {
	m := newLinksModel()
	fg := m.Compose(path.Seq[TabOb[string]](edges("f"), edges("g")))
	assert.True(t, equalTabMor(edges("f", "g"), fg))
	assert.True(t, m.Dom(fg).Equal(BasicOb("x")))
	assert.True(t, m.Cod(fg).Equal(BasicOb("z")))

	assert.Panics(t, func() {
		m.Compose(path.Seq[TabOb[string]](edges("g"), edges("f")))
	})
}

func TestTabOperations(t *testing.T) {
	m := newLinksModel()
	tf := m.TabulatedGen("f")

	assert.True(t, m.ObAct(tf, theory.IDOb(theory.TabulatorOf(homOb))).Equal(tf))
	assert.True(t, m.ObAct(tf, theory.ProjSrc(homOb)).Equal(BasicOb("x")))
	assert.True(t, m.ObAct(tf, theory.ProjTgt(homOb)).Equal(BasicOb("y")))
	assert.Panics(t, func() { m.ObAct(BasicOb("x"), theory.ProjSrc(homOb)) })

	p := edges("f")
	assert.True(t, equalTabMor(p, m.MorAct(p, theory.IDMor(homOb))))
	assert.Panics(t, func() { m.MorAct(p, theory.HomOp(theory.ProjSrc(homOb))) })
}

func TestTabGeneratorsWithType(t *testing.T) {
	m := newLinksModel()
	m.AddOb("v", theory.TabulatorOf(homOb))

	obs := ObGeneratorsWithTypeFunc[string, tabType](m, object, tabType.Equal)
	assert.Equal(t, []string{"x", "y", "z", "w"}, slices.Collect(obs))
	mors := MorGeneratorsWithTypeFunc[string, theory.TabMorType[string]](m, link, theory.TabMorType[string].Equal)
	assert.Equal(t, []string{"l"}, slices.Collect(mors))
}

func TestTabValidate(t *testing.T) {
	m := newLinksModel()
	m.AddOb("bad", theory.BasicObType("Missing"))
	m.AddMor("dangling", BasicOb("x"), m.TabulatedGen("missing"), link)
	m.AddMor("wrong", m.TabulatedGen("f"), m.TabulatedGen("g"), link)
	m.AddMor("unknown", BasicOb("x"), BasicOb("x"), theory.BasicMorType("Missing"))

	assert.Equal(t, []Invalid[string]{
		{Tag: TagCod, Content: "dangling"},
		{Tag: TagObType, Content: "bad"},
		{Tag: TagDomType, Content: "wrong"},
		{Tag: TagMorType, Content: "unknown"},
	}, invalids(m))
}
