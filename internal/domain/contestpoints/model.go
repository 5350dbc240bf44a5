package contestpoints

import "fmt"

// Record is a player's cumulative score inside one contest. It accrues
// independently from the player's global points and there is at most
// one record per (contest, player) pair.
type Record struct {
	ContestID string
	PlayerID  string
	Points    float64
}

func (r Record) Validate() error {
	if r.ContestID == "" {
		return fmt.Errorf("contest points contest id is required")
	}
	if r.PlayerID == "" {
		return fmt.Errorf("contest points player id is required")
	}

	return nil
}
