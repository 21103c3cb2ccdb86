package theory

// Category returns the theory of categories: one object type and no
// morphism types beyond identities.
func Category() *Discrete[string] {
	return NewDiscrete[string]().AddObType("Object")
}

// SignedCategory returns the theory of signed categories: a negative
// morphism type whose square is the identity.
func SignedCategory() *Discrete[string] {
	th := NewDiscrete[string]().
		AddObType("Object").
		AddMorType("Negative", "Object", "Object")
	if err := th.SetComposite("Negative", "Negative", Identity("Object")); err != nil {
		panic(err)
	}
	return th
}

// Schema returns the theory of database schemas: entities, attribute types
// and attributes from the former to the latter.
func Schema() *Discrete[string] {
	return NewDiscrete[string]().
		AddObType("Entity").
		AddObType("AttrType").
		AddMorType("Attr", "Entity", "AttrType")
}

// CategoryLinks returns the tabulator theory of categories with links: a
// link goes from an object to a morphism, viewed as an object of the
// tabulator of the hom type.
func CategoryLinks() *Tab[string] {
	ob := BasicObType("Object")
	return NewTab[string]().
		AddObType("Object").
		AddMorType("Link", ob, TabulatorOf(HomOf(ob)))
}
