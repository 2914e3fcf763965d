package models

import "fmt"

type RiskTier string

const (
	RiskNone   RiskTier = ""
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"

	// RiskBeg only tags beg log entries; it can never be selected.
	RiskBeg RiskTier = "beg"
)

// MultiplierRange is the closed-open interval [Min, Max) a tier draws from.
type MultiplierRange struct {
	Min float64
	Max float64
}

var tierRanges = map[RiskTier]MultiplierRange{
	RiskLow:    {Min: 0.7, Max: 1.3},
	RiskMedium: {Min: 0.5, Max: 1.5},
	RiskHigh:   {Min: 0.0, Max: 2.0},
}

func ParseRiskTier(s string) (RiskTier, error) {
	tier := RiskTier(s)
	if _, ok := tierRanges[tier]; !ok {
		return RiskNone, fmt.Errorf("invalid risk tier: %q", s)
	}
	return tier, nil
}

func (t RiskTier) Range() (MultiplierRange, bool) {
	r, ok := tierRanges[t]
	return r, ok
}

func (t RiskTier) Selectable() bool {
	_, ok := tierRanges[t]
	return ok
}

func (r MultiplierRange) Contains(m float64) bool {
	return m >= r.Min && m < r.Max
}

type RiskRequest struct {
	Risk string `json:"risk"`
}

type SpinRequest struct {
	Bet int64 `json:"bet"`
}
