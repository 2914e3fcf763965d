package models

const (
	StartingPoints = 10000
	BonusPoints    = 3000
	BonusChance    = 0.1
	BegThreshold   = 5000
	BegMaxPoints   = 1000
)

// GameLogEntry records one completed spin or beg. It is sent to the remote
// service exactly once and never read back.
type GameLogEntry struct {
	Name        string   `json:"name"`
	Bet         int64    `json:"bet"`
	Risk        RiskTier `json:"risk"`
	Reward      int64    `json:"reward"`
	FinalPoints float64  `json:"finalPoints"`
}

type SpinResult struct {
	Bet         int64    `json:"bet"`
	Risk        RiskTier `json:"risk"`
	Multiplier  float64  `json:"multiplier"`
	Reward      int64    `json:"reward"`
	Delta       int64    `json:"delta"`
	Bonus       int64    `json:"bonus"`
	FinalPoints float64  `json:"finalPoints"`
}

func (r *SpinResult) Win() bool {
	return r.Delta >= 0
}

func (r *SpinResult) Effect() Effect {
	return EffectFor(r.Multiplier)
}

type BegResult struct {
	Granted     int64   `json:"granted"`
	FinalPoints float64 `json:"finalPoints"`
}

// Effect is the celebration level the front end plays after a spin.
type Effect string

const (
	EffectNone  Effect = "none"
	EffectSmall Effect = "small"
	EffectBig   Effect = "big"
)

func EffectFor(multiplier float64) Effect {
	switch {
	case multiplier > 1.5:
		return EffectBig
	case multiplier > 1:
		return EffectSmall
	default:
		return EffectNone
	}
}
