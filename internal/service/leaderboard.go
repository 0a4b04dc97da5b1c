// internal/service/leaderboard.go
package service

import (
	"github.com/shopspring/decimal"

	"parentpoints/internal/domain"
)

// minChartPoints keeps the chart from collapsing when everyone is near zero.
const minChartPoints = 10

// LeaderboardEntry is one bar on the totals chart.
type LeaderboardEntry struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Points int             `json:"points"`
	Color  string          `json:"color"`
	Hex    string          `json:"hex"`
	Share  decimal.Decimal `json:"share"` // Percent of all points, one decimal place
}

// Leaderboard is the totals view. Entries keep collection order.
type Leaderboard struct {
	Entries     []LeaderboardEntry `json:"entries"`
	TotalPoints int                `json:"totalPoints"`
	ChartMax    int                `json:"chartMax"`
}

// BuildLeaderboard summarizes the collection for the totals chart.
func BuildLeaderboard(kids []domain.Kid) Leaderboard {
	total := 0
	maxPoints := minChartPoints
	for _, kid := range kids {
		total += kid.Points
		maxPoints = max(maxPoints, kid.Points)
	}

	hundred := decimal.NewFromInt(100)
	entries := make([]LeaderboardEntry, len(kids))
	for i, kid := range kids {
		share := decimal.Zero
		if total > 0 {
			share = decimal.NewFromInt(int64(kid.Points)).
				Mul(hundred).
				Div(decimal.NewFromInt(int64(total))).
				Round(1)
		}
		entries[i] = LeaderboardEntry{
			ID:     kid.ID,
			Name:   kid.Name,
			Points: kid.Points,
			Color:  kid.Color,
			Hex:    domain.ColorHex(kid.Color),
			Share:  share,
		}
	}

	return Leaderboard{
		Entries:     entries,
		TotalPoints: total,
		ChartMax:    maxPoints + 2,
	}
}
