package component

// CollisionLayer declares which scene query categories a collider belongs to.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// the physics system treats it as category 1.
	Category uint32
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
