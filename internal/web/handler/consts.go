package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the path of a route group's own root.
	RouterRootPath = "/"

	// IDParam is the route parameter holding an entity id.
	IDParam = "id"

	// ErrNilDependencyMsg is used if app, cfg or the services bundle is nil.
	ErrNilDependencyMsg = "app, cfg or services is nil"
)
