package contestpoints

import "context"

// Repository stores per-contest point records. GetByContestAndPlayers
// returns only the records that exist; a missing pair means the player
// has no contest score yet and callers read it as 0.
type Repository interface {
	GetByContestAndPlayers(ctx context.Context, contestID string, playerIDs []string) (map[string]Record, error)
	Upsert(ctx context.Context, record Record) error
}
