package depot

import "fmt"

// Entity is a value handle: a slot index plus the slot version it was issued for
type Entity struct {
	Index   uint32
	Version uint32
}

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d:%d)", e.Index, e.Version)
}

// entityRecord is the authoritative location of the entity occupying a slot
type entityRecord struct {
	version uint32
	alive   bool
	chunk   archetypeID
	row     int
}
