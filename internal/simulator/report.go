package simulator

import (
	"github.com/lox/crazyeights/internal/fileutil"
	"github.com/lox/crazyeights/internal/statistics"
	"github.com/lox/crazyeights/internal/tournament"
)

// Report is the machine-readable summary written by WriteReport
type Report struct {
	Players            int          `json:"players"`
	Threshold          int          `json:"threshold"`
	Seed               int64        `json:"seed"`
	Tournaments        int          `json:"tournaments"`
	Games              int          `json:"games"`
	GamesPerTournament float64      `json:"games_per_tournament"`
	TurnsPerGame       float64      `json:"turns_per_game"`
	EmptyDrawPileRate  float64      `json:"empty_draw_pile_rate"`
	Ties               int          `json:"ties"`
	MeanScore          float64      `json:"mean_score"`
	MedianScore        float64      `json:"median_score"`
	StdDev             float64      `json:"std_dev"`
	CI95               [2]float64   `json:"ci95"`
	Seats              []SeatReport `json:"seats"`
}

// SeatReport summarises one seat
type SeatReport struct {
	Seat      int     `json:"seat"`
	WinRate   float64 `json:"win_rate"`
	MeanScore float64 `json:"mean_score"`
}

// NewReport summarises stats for a table of players
func NewReport(stats *statistics.Statistics, players int, seed int64) Report {
	low, high := stats.ConfidenceInterval95()
	r := Report{
		Players:            players,
		Threshold:          tournament.Threshold(players),
		Seed:               seed,
		Tournaments:        stats.Tournaments,
		Games:              stats.Games,
		GamesPerTournament: stats.GamesPerTournament(),
		TurnsPerGame:       stats.TurnsPerGame(),
		EmptyDrawPileRate:  stats.EmptyDrawPileRate(),
		Ties:               stats.Ties,
		MeanScore:          stats.Mean(),
		MedianScore:        stats.Median(),
		StdDev:             stats.StdDev(),
		CI95:               [2]float64{low, high},
	}
	for seat := 1; seat <= statistics.MaxSeats; seat++ {
		if stats.Seats[seat].Tournaments == 0 {
			continue
		}
		r.Seats = append(r.Seats, SeatReport{
			Seat:      seat,
			WinRate:   stats.WinRate(seat),
			MeanScore: stats.SeatMean(seat),
		})
	}
	return r
}

// WriteReport writes the JSON report to path atomically
func WriteReport(path string, report Report) error {
	return fileutil.WriteJSONAtomic(path, report, 0o644)
}
