package path

// Graph is the view of a graph that paths are checked and composed against.
// SameVertex decides when two vertices coincide, which is how paths are
// judged composable; for comparable vertices it is plain equality.
type Graph[V, E any] interface {
	HasVertex(v V) bool
	HasEdge(e E) bool
	Src(e E) V
	Tgt(e E) V
	SameVertex(x, y V) bool
}

// Src returns the source of p in g.
func Src[V, E any](g Graph[V, E], p Path[V, E]) V {
	if e, ok := p.First(); ok {
		return g.Src(e)
	}
	return p.vertex
}

// Tgt returns the target of p in g.
func Tgt[V, E any](g Graph[V, E], p Path[V, E]) V {
	if e, ok := p.Last(); ok {
		return g.Tgt(e)
	}
	return p.vertex
}

// ContainedIn reports whether p is a path in g: an identity at a vertex of
// g, or a sequence of edges of g where each edge ends where the next begins.
func ContainedIn[V, E any](g Graph[V, E], p Path[V, E]) bool {
	if p.IsEmpty() {
		return g.HasVertex(p.vertex)
	}
	for _, e := range p.edges {
		if !g.HasEdge(e) {
			return false
		}
	}
	for i := 1; i < len(p.edges); i++ {
		if !g.SameVertex(g.Tgt(p.edges[i-1]), g.Src(p.edges[i])) {
			return false
		}
	}
	return true
}

// ConcatIn concatenates p and q when the target of p is the source of q in
// g. The second result is false when they do not meet.
func ConcatIn[V, E any](g Graph[V, E], p, q Path[V, E]) (Path[V, E], bool) {
	if !g.SameVertex(Tgt(g, p), Src(g, q)) {
		return Path[V, E]{}, false
	}
	return Concat(p, q), true
}

// FlattenIn flattens a path of paths in g, provided each inner path ends
// where the next begins. The second result is false otherwise.
func FlattenIn[V, E any](g Graph[V, E], pp Path[V, Path[V, E]]) (Path[V, E], bool) {
	for i := 1; i < len(pp.edges); i++ {
		if !g.SameVertex(Tgt(g, pp.edges[i-1]), Src(g, pp.edges[i])) {
			return Path[V, E]{}, false
		}
	}
	return Flatten(pp), true
}
