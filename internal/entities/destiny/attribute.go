// Package destiny defines the guardian equipment domain model: the fixed
// attribute schema, class and slot catalogs, archetype tags, and the
// Equipment entity with its max-level projection.
package destiny

// Attribute is one of the six armor attribute dimensions
type Attribute string

// Attribute constants
const (
	AttributeHealth  Attribute = "health"
	AttributeMelee   Attribute = "melee"
	AttributeGrenade Attribute = "grenade"
	AttributeSuper   Attribute = "super"
	AttributeClass   Attribute = "class"
	AttributeWeapons Attribute = "weapons"
)

// attributeOrder is the canonical iteration order. Every deterministic
// tie-break in the calculator and optimizer relies on it.
var attributeOrder = []Attribute{
	AttributeHealth,
	AttributeMelee,
	AttributeGrenade,
	AttributeSuper,
	AttributeClass,
	AttributeWeapons,
}

// Attributes returns all attributes in canonical order. The returned slice
// is a copy and safe to modify.
func Attributes() []Attribute {
	out := make([]Attribute, len(attributeOrder))
	copy(out, attributeOrder)
	return out
}

// AttributeIndex returns the canonical position of an attribute, or -1 if
// the attribute is unknown.
func AttributeIndex(a Attribute) int {
	for i, attr := range attributeOrder {
		if attr == a {
			return i
		}
	}
	return -1
}

// IsValidAttribute reports whether a names one of the six attributes
func IsValidAttribute(a Attribute) bool {
	return AttributeIndex(a) >= 0
}

// AttributeNames returns the attribute names as strings, for enum validation
func AttributeNames() []string {
	out := make([]string, len(attributeOrder))
	for i, a := range attributeOrder {
		out[i] = string(a)
	}
	return out
}

// NewAttributeMap returns a map with every attribute present and zeroed
func NewAttributeMap() map[Attribute]float64 {
	m := make(map[Attribute]float64, len(attributeOrder))
	for _, a := range attributeOrder {
		m[a] = 0
	}
	return m
}
