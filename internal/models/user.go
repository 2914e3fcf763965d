package models

// User is the in-memory copy of the authenticated player. The remote script
// service is authoritative; GamesPlayed is only ever read from it.
type User struct {
	Name        string  `json:"name"`
	Points      float64 `json:"points"`
	GamesPlayed int64   `json:"gamesPlayed"`
	HasBegged   bool    `json:"hasBegged"`
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// CanBeg reports whether the one-shot pity bonus is still available.
func (u *User) CanBeg() bool {
	return u != nil && u.Points < BegThreshold && !u.HasBegged
}

type AuthRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}
