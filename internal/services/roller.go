package services

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"riskspin-backend/internal/models"
)

// Roller supplies every random draw a session makes.
type Roller interface {
	// Multiplier draws uniformly from the tier's [min, max) range.
	Multiplier(tier models.RiskTier) float64
	BonusHit() bool
	// BegAmount returns an integer in [1, BegMaxPoints].
	BegAmount() int64
}

type RandRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandRoller() *RandRoller {
	return NewSeededRoller(time.Now().UnixNano())
}

func NewSeededRoller(seed int64) *RandRoller {
	return &RandRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandRoller) float() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *RandRoller) Multiplier(tier models.RiskTier) float64 {
	rng, ok := tier.Range()
	if !ok {
		return 0
	}
	m := r.float()*(rng.Max-rng.Min) + rng.Min
	// float rounding can land exactly on the open bound
	if m >= rng.Max {
		m = math.Nextafter(rng.Max, rng.Min)
	}
	return m
}

func (r *RandRoller) BonusHit() bool {
	return r.float() < models.BonusChance
}

func (r *RandRoller) BegAmount() int64 {
	n := int64(math.Ceil(r.float() * models.BegMaxPoints))
	if n < 1 {
		n = 1
	}
	return n
}
