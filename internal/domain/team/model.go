package team

import "fmt"

// Team is a user's fantasy roster. PlayerIDs keeps selection order.
// TotalPoints is a denormalized hint refreshed lazily by the points
// aggregator and is never authoritative on its own.
type Team struct {
	ID            string
	UserID        string
	Name          string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
	TotalPoints   float64
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("team user id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	seen := make(map[string]struct{}, len(t.PlayerIDs))
	for _, id := range t.PlayerIDs {
		if id == "" {
			return fmt.Errorf("team player id must not be empty")
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate player in team: %s", id)
		}
		seen[id] = struct{}{}
	}
	if t.CaptainID != "" && t.CaptainID == t.ViceCaptainID {
		return fmt.Errorf("captain and vice captain must differ")
	}
	if t.CaptainID != "" && !t.HasPlayer(t.CaptainID) {
		return fmt.Errorf("captain must be a team member")
	}
	if t.ViceCaptainID != "" && !t.HasPlayer(t.ViceCaptainID) {
		return fmt.Errorf("vice captain must be a team member")
	}

	return nil
}

func (t Team) HasPlayer(playerID string) bool {
	for _, id := range t.PlayerIDs {
		if id == playerID {
			return true
		}
	}

	return false
}
