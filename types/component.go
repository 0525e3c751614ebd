package types

// Component is the capability contract every component instance satisfies.
// Setup runs after the instance has been attached to its entity and is handed
// the initialization arguments supplied by the caller; Teardown runs after the
// instance has been detached. Hooks must not fail: the registry performs no
// rollback of index mutations made before a hook runs.
type Component interface {
	Setup(args ...any)
	Teardown()
}

// BaseComponent provides no-op lifecycle hooks for components that do not
// need them.
type BaseComponent struct{}

func (BaseComponent) Setup(...any) {}
func (BaseComponent) Teardown()    {}

// ComponentType describes a kind of component: a display name plus a
// constructor for blank instances. The descriptor pointer is the type's
// identity; its numeric id is assigned lazily by the registry that first
// references it.
type ComponentType struct {
	name  string
	newFn func() Component
}

// NewComponentType declares a component type. newFn must return a fresh,
// uninitialized instance; initialization arguments are delivered through
// Setup, not the constructor.
func NewComponentType(name string, newFn func() Component) *ComponentType {
	return &ComponentType{name: name, newFn: newFn}
}

func (ct *ComponentType) Name() string { return ct.name }

// New constructs a blank instance of the component.
func (ct *ComponentType) New() Component { return ct.newFn() }
