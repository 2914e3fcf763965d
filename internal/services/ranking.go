package services

import (
	"context"
	"log"
	"sync"
	"time"

	"riskspin-backend/internal/models"
)

// Board holds the last leaderboard exactly as the remote service ordered it.
type Board struct {
	mu        sync.RWMutex
	rows      []models.RankingRow
	updatedAt time.Time
}

func NewBoard() *Board {
	return &Board{}
}

// Replace swaps in a new board wholesale; there is no merging.
func (b *Board) Replace(rows []models.RankingRow) {
	cp := make([]models.RankingRow, len(rows))
	copy(cp, rows)

	b.mu.Lock()
	b.rows = cp
	b.updatedAt = time.Now()
	b.mu.Unlock()
}

func (b *Board) Rows() []models.RankingRow {
	b.mu.RLock()
	defer b.mu.RUnlock()
	cp := make([]models.RankingRow, len(b.rows))
	copy(cp, b.rows)
	return cp
}

func (b *Board) UpdatedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updatedAt
}

type RankingFetcher interface {
	FetchRanking(ctx context.Context) ([]models.RankingRow, error)
}

type RankingCache interface {
	CacheRanking(ctx context.Context, rows []models.RankingRow) error
}

type PollerOption func(*RankingPoller)

func WithRankingCache(cache RankingCache) PollerOption {
	return func(p *RankingPoller) { p.cache = cache }
}

func WithRankingBroadcaster(b RankingBroadcaster) PollerOption {
	return func(p *RankingPoller) { p.broadcaster = b }
}

// RankingPoller refreshes the board on a fixed period plus on demand. Failed
// polls are logged and otherwise ignored; the next tick tries again.
type RankingPoller struct {
	fetcher     RankingFetcher
	board       *Board
	interval    time.Duration
	cache       RankingCache
	broadcaster RankingBroadcaster
	refreshCh   chan struct{}
}

func NewRankingPoller(fetcher RankingFetcher, board *Board, interval time.Duration, opts ...PollerOption) *RankingPoller {
	p := &RankingPoller{
		fetcher:   fetcher,
		board:     board,
		interval:  interval,
		refreshCh: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Refresh never blocks; requests made while one is queued are coalesced.
func (p *RankingPoller) Refresh() {
	select {
	case p.refreshCh <- struct{}{}:
	default:
	}
}

// Run polls immediately, then every interval, until ctx is cancelled.
func (p *RankingPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.pollQuietly(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pollQuietly(ctx)
		case <-p.refreshCh:
			p.pollQuietly(ctx)
		}
	}
}

func (p *RankingPoller) pollQuietly(ctx context.Context) {
	if err := p.Poll(ctx); err != nil && ctx.Err() == nil {
		log.Printf("ranking poll failed: %v", err)
	}
}

// Poll fetches once and, on success, replaces the board.
func (p *RankingPoller) Poll(ctx context.Context) error {
	rows, err := p.fetcher.FetchRanking(ctx)
	if err != nil {
		return err
	}

	p.board.Replace(rows)

	if p.cache != nil {
		if err := p.cache.CacheRanking(ctx, rows); err != nil {
			log.Printf("failed to cache ranking: %v", err)
		}
	}
	if p.broadcaster != nil {
		p.broadcaster.BroadcastRanking(models.Leaderboard(rows))
	}
	return nil
}
