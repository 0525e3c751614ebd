package aether

import "github.com/rotisserie/eris"

// Every violation is raised synchronously at the point it happens and is the
// caller's responsibility; the registry performs no retries and no internal
// recovery.
var (
	// ErrInvalidName is returned by CreateNamedEntity for an empty name.
	ErrInvalidName = eris.New("entity name must not be empty")

	// ErrDuplicateName is returned by CreateNamedEntity when the name is
	// already held by a live entity.
	ErrDuplicateName = eris.New("entity name already in use")

	// ErrEntityNotFound is returned by RemoveEntity for an unknown target.
	ErrEntityNotFound = eris.New("entity does not exist")

	// ErrDuplicateComponent is returned by AddComponent when the entity
	// already holds an instance of the component type.
	ErrDuplicateComponent = eris.New("entity already has component")

	// ErrComponentNotFound is returned by RemoveComponent when the entity
	// holds no instance of the component type.
	ErrComponentNotFound = eris.New("entity does not have component")

	// ErrDuplicateSystem is returned by AddSystem when the runlevel already
	// holds an instance of the system type.
	ErrDuplicateSystem = eris.New("system already present in runlevel")

	// ErrSystemNotFound is returned by RemoveSystem when the runlevel holds
	// no instance of the system type.
	ErrSystemNotFound = eris.New("system not present in runlevel")

	// ErrNotImplemented is returned by BaseSystem.Execute when a system type
	// never provided its own implementation.
	ErrNotImplemented = eris.New("system does not implement Execute")
)
