package services_test

import (
	"testing"

	"riskspin-backend/internal/models"
	"riskspin-backend/internal/services"
)

func TestRandRollerBounds(t *testing.T) {
	roller := services.NewSeededRoller(7)

	for _, tier := range []models.RiskTier{models.RiskLow, models.RiskMedium, models.RiskHigh} {
		r, _ := tier.Range()
		for i := 0; i < 10000; i++ {
			m := roller.Multiplier(tier)
			if !r.Contains(m) {
				t.Fatalf("Multiplier %v outside [%v, %v) for %s", m, r.Min, r.Max, tier)
			}
		}
	}

	if m := roller.Multiplier(models.RiskBeg); m != 0 {
		t.Errorf("Non-selectable tier should draw 0, got %v", m)
	}
}

func TestRandRollerBegAmount(t *testing.T) {
	roller := services.NewSeededRoller(11)
	for i := 0; i < 10000; i++ {
		n := roller.BegAmount()
		if n < 1 || n > models.BegMaxPoints {
			t.Fatalf("Beg amount %d outside [1, %d]", n, models.BegMaxPoints)
		}
	}
}

func TestRandRollerBonusRate(t *testing.T) {
	roller := services.NewSeededRoller(3)
	hits := 0
	const draws = 20000
	for i := 0; i < draws; i++ {
		if roller.BonusHit() {
			hits++
		}
	}

	rate := float64(hits) / draws
	if rate < 0.08 || rate > 0.12 {
		t.Errorf("Bonus rate %.3f too far from %.2f", rate, models.BonusChance)
	}
}
