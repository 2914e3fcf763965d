package services

import "riskspin-backend/internal/models"

type RankingBroadcaster interface {
	BroadcastRanking(rows []models.LeaderboardRow)
}

type Broadcaster interface {
	RankingBroadcaster
	NotifyBonus(sessionID string, bonus int64)
	BroadcastBusy(busy bool)
}

// Refresher asks for an out-of-band ranking poll.
type Refresher interface {
	Refresh()
}
