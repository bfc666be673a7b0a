package destiny

// StatSlot classifies the role an attribute plays on an item
type StatSlot string

// Stat slot constants
const (
	SlotMain       StatSlot = "main"
	SlotSub        StatSlot = "sub"
	SlotRandom     StatSlot = "random"
	SlotSupplement StatSlot = "supplement"
)

// StatSlots returns all stat slots in reporting order
func StatSlots() []StatSlot {
	return []StatSlot{SlotMain, SlotSub, SlotRandom, SlotSupplement}
}
