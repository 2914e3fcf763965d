package models

// RankingRow is one leaderboard line as the remote service returns it.
type RankingRow struct {
	Name        string  `json:"name"`
	Points      float64 `json:"points"`
	GamesPlayed int64   `json:"gamesPlayed"`
}

type LeaderboardRow struct {
	Rank          int    `json:"rank"`
	Name          string `json:"name"`
	Points        int64  `json:"points"`
	PointsDisplay string `json:"pointsDisplay"`
	GamesPlayed   int64  `json:"gamesPlayed"`
	Podium        bool   `json:"podium"`
}

// Leaderboard keeps the server order; rank is the 1-based position.
func Leaderboard(rows []RankingRow) []LeaderboardRow {
	out := make([]LeaderboardRow, 0, len(rows))
	for i, row := range rows {
		rank := i + 1
		out = append(out, LeaderboardRow{
			Rank:          rank,
			Name:          row.Name,
			Points:        TruncatePoints(row.Points),
			PointsDisplay: FormatPoints(row.Points) + "p",
			GamesPlayed:   row.GamesPlayed,
			Podium:        rank <= 3,
		})
	}
	return out
}
