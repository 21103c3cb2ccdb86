package path

// Eq is an asserted equation between two paths with a common source and
// target.
type Eq[V, E any] struct {
	Lhs Path[V, E]
	Rhs Path[V, E]
}

// NewEq returns the equation lhs = rhs.
func NewEq[V, E any](lhs, rhs Path[V, E]) Eq[V, E] {
	return Eq[V, E]{Lhs: lhs, Rhs: rhs}
}

// EqDefect names one way an equation fails to be well defined in a graph.
type EqDefect string

// Equation defects, reported in this order.
const (
	EqLhs EqDefect = "EqLhs" // left side is not a path in the graph
	EqRhs EqDefect = "EqRhs" // right side is not a path in the graph
	EqSrc EqDefect = "EqSrc" // sides have different sources
	EqTgt EqDefect = "EqTgt" // sides have different targets
)

// Defects returns every defect of eq relative to g. Sources and targets are
// only compared once both sides are paths in g.
func (eq Eq[V, E]) Defects(g Graph[V, E]) []EqDefect {
	var defects []EqDefect
	if !ContainedIn(g, eq.Lhs) {
		defects = append(defects, EqLhs)
	}
	if !ContainedIn(g, eq.Rhs) {
		defects = append(defects, EqRhs)
	}
	if len(defects) > 0 {
		return defects
	}
	if !g.SameVertex(Src(g, eq.Lhs), Src(g, eq.Rhs)) {
		defects = append(defects, EqSrc)
	}
	if !g.SameVertex(Tgt(g, eq.Lhs), Tgt(g, eq.Rhs)) {
		defects = append(defects, EqTgt)
	}
	return defects
}
