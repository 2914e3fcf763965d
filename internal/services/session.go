package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"riskspin-backend/internal/gateway"
	"riskspin-backend/internal/models"
)

var (
	ErrInvalidName        = errors.New("name must be at least 2 characters")
	ErrInvalidPIN         = errors.New("pin must be exactly 4 digits")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidRisk        = errors.New("invalid risk tier")
	ErrNoRiskSelected     = errors.New("no risk tier selected")
	ErrInvalidBet         = errors.New("bet must be positive")
	ErrInsufficientPoints = errors.New("bet exceeds balance")
	ErrUpdatePending      = errors.New("previous game is still being saved")
	ErrBegUnavailable     = errors.New("beg is not available")
	ErrSaveFailed         = errors.New("failed to save game result, please reload the page")
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// Gateway is the part of the remote script client a session needs.
type Gateway interface {
	Authenticate(ctx context.Context, name, pin string) (*gateway.AuthResult, error)
	SubmitGameLog(ctx context.Context, user *models.User, entry *models.GameLogEntry) error
}

// SessionState is a point-in-time copy of a controller.
type SessionState struct {
	User         *models.User    `json:"user"`
	SelectedRisk models.RiskTier `json:"selectedRisk"`
	Pending      bool            `json:"pending"`
	CanBeg       bool            `json:"canBeg"`
}

// Controller owns one player's session. Local validation never touches the
// network; spins and begs mutate the balance optimistically and roll back if
// the remote log call fails.
type Controller struct {
	gateway   Gateway
	roller    Roller
	refresher Refresher

	mu           sync.Mutex
	user         *models.User
	selectedRisk models.RiskTier
	pending      bool
	lastActive   time.Time
}

func NewController(gw Gateway, roller Roller, refresher Refresher) *Controller {
	return &Controller{
		gateway:    gw,
		roller:     roller,
		refresher:  refresher,
		lastActive: time.Now(),
	}
}

// ValidateCredentials trims and checks name and pin before any remote call.
func ValidateCredentials(name, pin string) (string, string, error) {
	name = strings.TrimSpace(name)
	pin = strings.TrimSpace(pin)
	if utf8.RuneCountInString(name) < 2 {
		return "", "", ErrInvalidName
	}
	if !pinPattern.MatchString(pin) {
		return "", "", ErrInvalidPIN
	}
	return name, pin, nil
}

func (c *Controller) Authenticate(ctx context.Context, name, pin string) (*gateway.AuthResult, error) {
	name, pin, err := ValidateCredentials(name, pin)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return nil, ErrUpdatePending
	}
	c.touchLocked()
	c.mu.Unlock()

	res, err := c.gateway.Authenticate(ctx, name, pin)
	if err != nil {
		return nil, err
	}
	if res.User == nil {
		return nil, &gateway.RemoteError{Action: gateway.ActionAuth, Message: "empty user data"}
	}

	c.mu.Lock()
	c.user = res.User.Clone()
	c.selectedRisk = models.RiskNone
	c.mu.Unlock()

	c.refresh()
	return &gateway.AuthResult{User: res.User.Clone(), IsNewUser: res.IsNewUser}, nil
}

func (c *Controller) SelectRisk(tier models.RiskTier) error {
	if !tier.Selectable() {
		return ErrInvalidRisk
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return ErrNotAuthenticated
	}
	c.selectedRisk = tier
	c.touchLocked()
	return nil
}

// CanSpin is the spin-button predicate: 0 < bet <= balance and a tier is set.
func CanSpin(user *models.User, bet int64, tier models.RiskTier) bool {
	return checkSpin(user, bet, tier) == nil
}

func checkSpin(user *models.User, bet int64, tier models.RiskTier) error {
	if user == nil {
		return ErrNotAuthenticated
	}
	if !tier.Selectable() {
		return ErrNoRiskSelected
	}
	if bet <= 0 {
		return ErrInvalidBet
	}
	if float64(bet) > user.Points {
		return ErrInsufficientPoints
	}
	return nil
}

// ValidateSpin re-evaluates enablement against the current balance and tier.
func (c *Controller) ValidateSpin(bet int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateSpinLocked(bet)
}

func (c *Controller) validateSpinLocked(bet int64) error {
	if err := checkSpin(c.user, bet, c.selectedRisk); err != nil {
		return err
	}
	if c.pending {
		return ErrUpdatePending
	}
	return nil
}

// Reward computes ceil(bet * multiplier) in decimal so 1000 * 1.2 is 1200.
func Reward(bet int64, multiplier float64) int64 {
	return decimal.NewFromInt(bet).Mul(decimal.NewFromFloat(multiplier)).Ceil().IntPart()
}

func (c *Controller) Spin(ctx context.Context, bet int64) (*models.SpinResult, error) {
	c.mu.Lock()
	if err := c.validateSpinLocked(bet); err != nil {
		c.mu.Unlock()
		return nil, err
	}

	tier := c.selectedRisk
	multiplier := c.roller.Multiplier(tier)
	reward := Reward(bet, multiplier)
	delta := reward - bet

	c.user.Points += float64(delta)

	var bonus int64
	if c.roller.BonusHit() {
		bonus = models.BonusPoints
		c.user.Points += float64(bonus)
	}

	entry := &models.GameLogEntry{
		Name:        c.user.Name,
		Bet:         bet,
		Risk:        tier,
		Reward:      reward,
		FinalPoints: c.user.Points,
	}
	snapshot := c.user.Clone()
	c.pending = true
	c.touchLocked()
	c.mu.Unlock()

	err := c.gateway.SubmitGameLog(ctx, snapshot, entry)

	c.mu.Lock()
	c.pending = false
	if err != nil {
		// the bonus was never persisted either, so it goes too
		c.user.Points -= float64(delta + bonus)
		c.mu.Unlock()
		c.refresh()
		return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	c.mu.Unlock()

	c.refresh()
	return &models.SpinResult{
		Bet:         bet,
		Risk:        tier,
		Multiplier:  multiplier,
		Reward:      reward,
		Delta:       delta,
		Bonus:       bonus,
		FinalPoints: entry.FinalPoints,
	}, nil
}

func (c *Controller) CanBeg() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user.CanBeg()
}

// Beg grants the one-shot pity bonus. When unavailable it changes nothing and
// makes no remote call.
func (c *Controller) Beg(ctx context.Context) (*models.BegResult, error) {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	if !c.user.CanBeg() {
		c.mu.Unlock()
		return nil, ErrBegUnavailable
	}
	if c.pending {
		c.mu.Unlock()
		return nil, ErrUpdatePending
	}

	granted := c.roller.BegAmount()
	c.user.Points += float64(granted)
	c.user.HasBegged = true

	entry := &models.GameLogEntry{
		Name:        c.user.Name,
		Bet:         0,
		Risk:        models.RiskBeg,
		Reward:      granted,
		FinalPoints: c.user.Points,
	}
	snapshot := c.user.Clone()
	c.pending = true
	c.touchLocked()
	c.mu.Unlock()

	err := c.gateway.SubmitGameLog(ctx, snapshot, entry)

	c.mu.Lock()
	c.pending = false
	if err != nil {
		c.user.Points -= float64(granted)
		c.user.HasBegged = false
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	c.mu.Unlock()

	c.refresh()
	return &models.BegResult{Granted: granted, FinalPoints: entry.FinalPoints}, nil
}

func (c *Controller) Snapshot() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SessionState{
		User:         c.user.Clone(),
		SelectedRisk: c.selectedRisk,
		Pending:      c.pending,
		CanBeg:       c.user.CanBeg(),
	}
}

func (c *Controller) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user != nil
}

func (c *Controller) Idle(maxIdle time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.pending && time.Since(c.lastActive) > maxIdle
}

func (c *Controller) touchLocked() {
	c.lastActive = time.Now()
}

func (c *Controller) refresh() {
	if c.refresher != nil {
		c.refresher.Refresh()
	}
}
