package component

// EntityName is the unique name other entities and scripts use to find this
// one.
type EntityName struct {
	Name string
}

var EntityNameComponent = NewComponent[EntityName]()
