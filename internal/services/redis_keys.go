package services

import "time"

const (
	KeyRankingSnapshot = "ranking:snapshot"
	KeySpinLock        = "lock:spin:%s"
	KeyRateLimit       = "ratelimit:%s:%s"

	TTLRankingSnapshot = 10 * time.Minute
	TTLSpinLock        = 30 * time.Second
)
