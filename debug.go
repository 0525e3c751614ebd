package aether

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"github.com/aether-engine/aether/types"
)

type debugStateElement struct {
	ID         types.EntityID             `json:"id"`
	Name       string                     `json:"name,omitempty"`
	Components map[string]json.RawMessage `json:"components"`
}

// DebugState renders the entire world as JSON: every live entity in creation
// order with its component data keyed by component type name.
func (r *Registry) DebugState() ([]byte, error) {
	state := make([]debugStateElement, 0, len(r.entities))
	for _, e := range r.entities {
		elem := debugStateElement{
			ID:         e.id,
			Name:       e.name,
			Components: make(map[string]json.RawMessage, len(e.components)),
		}
		for cid, c := range e.components {
			data, err := json.Marshal(c)
			if err != nil {
				return nil, eris.Wrapf(err, "marshal component %q of entity %d",
					r.componentTypes[cid].Name(), e.id)
			}
			elem.Components[r.componentTypes[cid].Name()] = data
		}
		state = append(state, elem)
	}
	return json.Marshal(state)
}
