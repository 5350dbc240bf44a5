package player

import "fmt"

// Gender values accepted on player records.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var AllGenders = map[Gender]struct{}{
	GenderMale:   {},
	GenderFemale: {},
}

// Player is a selectable athlete in the contest pool. Points is the
// cumulative global score written only by the ingestion path; every
// read path treats it as immutable input.
type Player struct {
	ID          string
	Name        string
	Franchise   string
	SlotID      string
	Points      float64
	Gender      Gender
	IsAvailable bool
	ImageURL    string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Franchise == "" {
		return fmt.Errorf("player franchise is required")
	}
	if _, ok := AllGenders[p.Gender]; !ok {
		return fmt.Errorf("invalid player gender: %s", p.Gender)
	}

	return nil
}

// ListFilter narrows catalog listings. Zero values mean "no filter".
type ListFilter struct {
	SlotID     string
	Gender     Gender
	Franchises []string
	Skip       int
	Limit      int
}
