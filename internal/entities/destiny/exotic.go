package destiny

// Exotic is a caller-supplied armor piece evaluated alongside inventory
// items. It is always treated as already at max level, never counts toward
// a set, and at most one may join a combination.
type Exotic struct {
	Name       string                `json:"name"`
	Type       EquipmentType         `json:"type"`
	Tag        Tag                   `json:"tag,omitempty"`
	Attributes map[Attribute]float64 `json:"attributes"`
	Level      int                   `json:"level"`
}

// MaxLevelAttributes returns a dense copy of the exotic's attribute map.
// Exotics carry their final values directly; there is nothing to project.
func (x *Exotic) MaxLevelAttributes() map[Attribute]float64 {
	out := NewAttributeMap()
	for a, v := range x.Attributes {
		if IsValidAttribute(a) {
			out[a] = v
		}
	}
	return out
}
