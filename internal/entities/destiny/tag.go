package destiny

// Tag is an armor archetype that pins which attribute rolls as the main
// stat and which as the sub stat.
type Tag string

// Archetype tag constants
const (
	TagBrawler    Tag = "brawler"
	TagBulwark    Tag = "bulwark"
	TagGrenadier  Tag = "grenadier"
	TagParagon    Tag = "paragon"
	TagSpecialist Tag = "specialist"
	TagGunner     Tag = "gunner"
)

// TagDefinition pins the main and sub attribute of an archetype
type TagDefinition struct {
	Tag  Tag
	Main Attribute
	Sub  Attribute
}

// tagCatalog is the archetype catalog. Order matters: recommendation
// tie-breaks pick the first matching entry.
var tagCatalog = []TagDefinition{
	{Tag: TagBrawler, Main: AttributeMelee, Sub: AttributeHealth},
	{Tag: TagBulwark, Main: AttributeHealth, Sub: AttributeClass},
	{Tag: TagGrenadier, Main: AttributeGrenade, Sub: AttributeSuper},
	{Tag: TagParagon, Main: AttributeSuper, Sub: AttributeMelee},
	{Tag: TagSpecialist, Main: AttributeClass, Sub: AttributeWeapons},
	{Tag: TagGunner, Main: AttributeWeapons, Sub: AttributeGrenade},
}

// TagCatalog returns the archetype catalog in canonical order
func TagCatalog() []TagDefinition {
	out := make([]TagDefinition, len(tagCatalog))
	copy(out, tagCatalog)
	return out
}

// LookupTag returns the definition for a tag
func LookupTag(t Tag) (TagDefinition, bool) {
	for _, def := range tagCatalog {
		if def.Tag == t {
			return def, true
		}
	}
	return TagDefinition{}, false
}

// IsValidTag reports whether t names a catalog archetype
func IsValidTag(t Tag) bool {
	_, ok := LookupTag(t)
	return ok
}

// TagNames returns the tag names as strings, for enum validation
func TagNames() []string {
	out := make([]string, len(tagCatalog))
	for i, def := range tagCatalog {
		out[i] = string(def.Tag)
	}
	return out
}
