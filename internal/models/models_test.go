package models_test

import (
	"strings"
	"testing"

	"riskspin-backend/internal/models"
)

func TestRiskTiers(t *testing.T) {
	cases := []struct {
		tier     string
		min, max float64
	}{
		{"low", 0.7, 1.3},
		{"medium", 0.5, 1.5},
		{"high", 0.0, 2.0},
	}

	for _, tc := range cases {
		tier, err := models.ParseRiskTier(tc.tier)
		if err != nil {
			t.Fatalf("ParseRiskTier(%q) failed: %v", tc.tier, err)
		}
		r, ok := tier.Range()
		if !ok {
			t.Fatalf("Tier %s has no range", tier)
		}
		if r.Min != tc.min || r.Max != tc.max {
			t.Errorf("Tier %s: expected [%v, %v), got [%v, %v)", tier, tc.min, tc.max, r.Min, r.Max)
		}
		if !r.Contains(tc.min) {
			t.Errorf("Tier %s should contain its lower bound", tier)
		}
		if r.Contains(tc.max) {
			t.Errorf("Tier %s should exclude its upper bound", tier)
		}
	}

	for _, bad := range []string{"", "beg", "LOW", "extreme"} {
		if _, err := models.ParseRiskTier(bad); err == nil {
			t.Errorf("ParseRiskTier(%q) should fail", bad)
		}
	}
}

func TestFormatPoints(t *testing.T) {
	cases := map[float64]string{
		0:         "0",
		999:       "999",
		1000:      "1,000",
		10200.9:   "10,200",
		1234567.5: "1,234,567",
		-1500:     "-1,500",
	}
	for in, want := range cases {
		if got := models.FormatPoints(in); got != want {
			t.Errorf("FormatPoints(%v) = %q, want %q", in, got, want)
		}
	}

	if got := models.FormatDelta(200); got != "+200" {
		t.Errorf("FormatDelta(200) = %q", got)
	}
	if got := models.FormatDelta(-1000); got != "-1,000" {
		t.Errorf("FormatDelta(-1000) = %q", got)
	}
}

func TestLeaderboardKeepsServerOrder(t *testing.T) {
	rows := []models.RankingRow{
		{Name: "Cid", Points: 12000.8, GamesPlayed: 4},
		{Name: "Ann", Points: 10200, GamesPlayed: 1},
		{Name: "Ben", Points: 4500, GamesPlayed: 9},
		{Name: "Dee", Points: 100, GamesPlayed: 2},
	}

	board := models.Leaderboard(rows)
	if len(board) != len(rows) {
		t.Fatalf("Expected %d rows, got %d", len(rows), len(board))
	}
	for i, row := range board {
		if row.Rank != i+1 || row.Name != rows[i].Name {
			t.Errorf("Row %d: got rank %d name %s", i, row.Rank, row.Name)
		}
	}
	if board[0].PointsDisplay != "12,000p" || board[0].Points != 12000 {
		t.Errorf("Unexpected points display: %+v", board[0])
	}
	if !board[2].Podium || board[3].Podium {
		t.Error("Only the top three rows should be on the podium")
	}
}

func TestUserCanBeg(t *testing.T) {
	u := &models.User{Name: "Ben", Points: 4000}
	if !u.CanBeg() {
		t.Error("User under threshold who has not begged should be able to beg")
	}
	u.HasBegged = true
	if u.CanBeg() {
		t.Error("User who already begged should not be able to beg")
	}
	rich := &models.User{Name: "Cid", Points: 5000}
	if rich.CanBeg() {
		t.Error("User at the threshold should not be able to beg")
	}
	var nobody *models.User
	if nobody.CanBeg() {
		t.Error("Nil user should not be able to beg")
	}
}

func TestEffectsAndMessages(t *testing.T) {
	if models.EffectFor(1.6) != models.EffectBig {
		t.Error("Expected big effect above 1.5")
	}
	if models.EffectFor(1.2) != models.EffectSmall {
		t.Error("Expected small effect above 1")
	}
	if models.EffectFor(1.0) != models.EffectNone {
		t.Error("Expected no effect at 1")
	}

	if !strings.Contains(models.WelcomeMessage("Ann", true), "10,000p") {
		t.Error("New user message should mention the starting balance")
	}
	if !strings.Contains(models.WelcomeMessage("Ben", false), "'Ben'") {
		t.Error("Returning user message should quote the name")
	}
	if !strings.HasPrefix(models.GenerateSessionID(), "sess_") {
		t.Error("Session IDs should carry the sess_ prefix")
	}
}
