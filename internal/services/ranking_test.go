package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"riskspin-backend/internal/models"
	"riskspin-backend/internal/services"
)

type fakeFetcher struct {
	mu    sync.Mutex
	rows  []models.RankingRow
	err   error
	calls int
	ch    chan struct{}
}

func (f *fakeFetcher) FetchRanking(ctx context.Context) ([]models.RankingRow, error) {
	f.mu.Lock()
	f.calls++
	rows, err := f.rows, f.err
	f.mu.Unlock()
	if f.ch != nil {
		select {
		case f.ch <- struct{}{}:
		default:
		}
	}
	return rows, err
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingCache struct {
	rows []models.RankingRow
}

func (c *recordingCache) CacheRanking(ctx context.Context, rows []models.RankingRow) error {
	c.rows = rows
	return nil
}

type recordingBroadcaster struct {
	mu   sync.Mutex
	last []models.LeaderboardRow
}

func (b *recordingBroadcaster) BroadcastRanking(rows []models.LeaderboardRow) {
	b.mu.Lock()
	b.last = rows
	b.mu.Unlock()
}

func TestPollReplacesBoardInServerOrder(t *testing.T) {
	rows := []models.RankingRow{
		{Name: "Cid", Points: 15000, GamesPlayed: 12},
		{Name: "Ann", Points: 10200, GamesPlayed: 1},
		{Name: "Ben", Points: 4500, GamesPlayed: 3},
	}
	fetcher := &fakeFetcher{rows: rows}
	cache := &recordingCache{}
	bc := &recordingBroadcaster{}
	board := services.NewBoard()
	board.Replace([]models.RankingRow{{Name: "Old", Points: 1}})

	poller := services.NewRankingPoller(fetcher, board, time.Hour,
		services.WithRankingCache(cache), services.WithRankingBroadcaster(bc))

	if err := poller.Poll(context.Background()); err != nil {
		t.Fatalf("Poll failed: %v", err)
	}

	got := board.Rows()
	if len(got) != 3 {
		t.Fatalf("Board should be replaced wholesale, got %d rows", len(got))
	}
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("Row %d: got %+v, want %+v", i, got[i], rows[i])
		}
	}
	if len(cache.rows) != 3 {
		t.Error("Snapshot should be cached")
	}
	if len(bc.last) != 3 || bc.last[0].Rank != 1 || bc.last[0].Name != "Cid" {
		t.Errorf("Unexpected broadcast: %+v", bc.last)
	}
	if board.UpdatedAt().IsZero() {
		t.Error("Board should record its update time")
	}
}

func TestPollFailureKeepsBoard(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("network down")}
	board := services.NewBoard()
	board.Replace([]models.RankingRow{{Name: "Ann", Points: 10}})

	poller := services.NewRankingPoller(fetcher, board, time.Hour)
	if err := poller.Poll(context.Background()); err == nil {
		t.Error("Expected poll error")
	}
	if rows := board.Rows(); len(rows) != 1 || rows[0].Name != "Ann" {
		t.Errorf("Failed poll must not touch the board: %+v", rows)
	}
}

func TestRunPollsImmediatelyAndOnRefresh(t *testing.T) {
	fetcher := &fakeFetcher{rows: []models.RankingRow{{Name: "Ann"}}, ch: make(chan struct{}, 4)}
	poller := services.NewRankingPoller(fetcher, services.NewBoard(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	waitFetch := func(what string) {
		select {
		case <-fetcher.ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("No fetch for %s", what)
		}
	}

	waitFetch("startup")
	poller.Refresh()
	waitFetch("refresh")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if fetcher.callCount() != 2 {
		t.Errorf("Expected 2 fetches, got %d", fetcher.callCount())
	}
}

func TestRunTicksAndSurvivesFailures(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("boom"), ch: make(chan struct{}, 8)}
	poller := services.NewRankingPoller(fetcher, services.NewBoard(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	for i := 0; i < 3; i++ {
		select {
		case <-fetcher.ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("Poller stopped after %d failed polls", i)
		}
	}
}

func TestRefreshDoesNotBlock(t *testing.T) {
	poller := services.NewRankingPoller(&fakeFetcher{}, services.NewBoard(), time.Hour)
	for i := 0; i < 10; i++ {
		poller.Refresh()
	}
}
