package user

import "fmt"

// User is a registered account owning at most one fantasy team.
type User struct {
	ID       string
	Username string
	Email    string
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.Username == "" {
		return fmt.Errorf("user username is required")
	}

	return nil
}

// Principal is a resolved caller identity. Anonymous principals carry
// an empty UserID.
type Principal struct {
	UserID   string
	Username string
}

func (p Principal) IsAnonymous() bool {
	return p.UserID == ""
}
