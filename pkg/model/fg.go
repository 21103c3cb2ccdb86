package model

import "iter"

// ObGenTyper enumerates object generators and reports their types.
type ObGenTyper[ObGen, ObType any] interface {
	ObjectGenerators() iter.Seq[ObGen]
	ObGenType(x ObGen) ObType
}

// MorGenTyper enumerates morphism generators and reports their types.
type MorGenTyper[MorGen, MorType any] interface {
	MorphismGenerators() iter.Seq[MorGen]
	MorGenType(f MorGen) MorType
}

// ObTypeIndex is implemented by models that index object generators by
// type. ObGeneratorsWithType uses it when present.
type ObTypeIndex[ObGen, ObType any] interface {
	ObjectGeneratorsWithType(t ObType) iter.Seq[ObGen]
}

// MorTypeIndex is implemented by models that index morphism generators by
// type. MorGeneratorsWithType uses it when present.
type MorTypeIndex[MorGen, MorType any] interface {
	MorphismGeneratorsWithType(t MorType) iter.Seq[MorGen]
}

// ObGeneratorsWithType enumerates the object generators of type t, using
// the model's index if it has one and a scan otherwise.
func ObGeneratorsWithType[ObGen any, ObType comparable](m ObGenTyper[ObGen, ObType], t ObType) iter.Seq[ObGen] {
	return ObGeneratorsWithTypeFunc(m, t, func(a, b ObType) bool { return a == b })
}

// ObGeneratorsWithTypeFunc is ObGeneratorsWithType for types compared with
// eq.
func ObGeneratorsWithTypeFunc[ObGen, ObType any](m ObGenTyper[ObGen, ObType], t ObType, eq func(ObType, ObType) bool) iter.Seq[ObGen] {
	if idx, ok := m.(ObTypeIndex[ObGen, ObType]); ok {
		return idx.ObjectGeneratorsWithType(t)
	}
	return filter(m.ObjectGenerators(), func(x ObGen) bool { return eq(m.ObGenType(x), t) })
}

// MorGeneratorsWithType enumerates the morphism generators of type t, using
// the model's index if it has one and a scan otherwise.
func MorGeneratorsWithType[MorGen any, MorType comparable](m MorGenTyper[MorGen, MorType], t MorType) iter.Seq[MorGen] {
	return MorGeneratorsWithTypeFunc(m, t, func(a, b MorType) bool { return a == b })
}

// MorGeneratorsWithTypeFunc is MorGeneratorsWithType for types compared
// with eq.
func MorGeneratorsWithTypeFunc[MorGen, MorType any](m MorGenTyper[MorGen, MorType], t MorType, eq func(MorType, MorType) bool) iter.Seq[MorGen] {
	if idx, ok := m.(MorTypeIndex[MorGen, MorType]); ok {
		return idx.MorphismGeneratorsWithType(t)
	}
	return filter(m.MorphismGenerators(), func(f MorGen) bool { return eq(m.MorGenType(f), t) })
}

func filter[T any](seq iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := range seq {
			if keep(x) && !yield(x) {
				return
			}
		}
	}
}
