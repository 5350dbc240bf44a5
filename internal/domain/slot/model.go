package slot

import "fmt"

// Slot is a named roster category players are assigned to. Teams must
// pick between MinSelect and MaxSelect players from each slot, and
// slots flagged IsWomenSlot double the points of every player in them.
type Slot struct {
	ID          string
	Code        string
	Name        string
	MinSelect   int
	MaxSelect   int
	IsWomenSlot bool
}

func (s Slot) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("slot id is required")
	}
	if s.Code == "" {
		return fmt.Errorf("slot code is required")
	}
	if s.Name == "" {
		return fmt.Errorf("slot name is required")
	}
	if s.MinSelect < 0 {
		return fmt.Errorf("slot min select must not be negative")
	}
	if s.MaxSelect < s.MinSelect {
		return fmt.Errorf("slot max select must be >= min select")
	}

	return nil
}
