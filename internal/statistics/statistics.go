package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// MaxSeats is the largest table a simulation can seat
const MaxSeats = 7

// TournamentResult represents the outcome of a single simulated tournament
type TournamentResult struct {
	Seed          int64         // RNG seed for this tournament (for replay)
	Scores        []int         // Final cumulative score per seat, seat 1 first
	Winners       []int         // Winning seats (1-based); more than one on a tie
	Games         int           // Games played
	Turns         int           // Turns across all games
	EmptyDrawPile int           // Games that ended because the draw pile ran out
	Duration      time.Duration // Time taken on the simulation clock
}

// SeatStats tracks statistics for one seat
type SeatStats struct {
	Tournaments int
	Wins        int
	SumScore    float64
}

// Statistics aggregates many simulated tournaments. The distribution
// statistics (Mean, Median and friends) are over every player's final score.
type Statistics struct {
	Tournaments int
	Scores      int
	SumScore    float64
	SumScore2   float64   // Sum of squares for variance calculation
	Values      []float64 // Store all values for median/percentile calculation

	Games         int
	SumGames2     float64
	Turns         int
	EmptyDrawPile int
	Ties          int // Tournaments with more than one winner
	Duration      time.Duration

	Seats [MaxSeats + 1]SeatStats // Index 0 unused
}

// Mean returns the arithmetic mean of all final scores
func (s *Statistics) Mean() float64 {
	if s.Scores == 0 {
		return 0
	}
	return s.SumScore / float64(s.Scores)
}

// Variance returns the sample variance of all final scores
func (s *Statistics) Variance() float64 {
	if s.Scores < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumScore2 - float64(s.Scores)*mean*mean) / float64(s.Scores-1)
}

// StdDev returns the sample standard deviation of all final scores
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Scores == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Scores))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a tournament result into the statistics
func (s *Statistics) Add(result TournamentResult) {
	s.Tournaments++
	s.Games += result.Games
	s.SumGames2 += float64(result.Games * result.Games)
	s.Turns += result.Turns
	s.EmptyDrawPile += result.EmptyDrawPile
	s.Duration += result.Duration
	if len(result.Winners) > 1 {
		s.Ties++
	}

	for i, score := range result.Scores {
		v := float64(score)
		s.Scores++
		s.SumScore += v
		s.SumScore2 += v * v
		s.Values = append(s.Values, v)

		if seat := i + 1; seat <= MaxSeats {
			s.Seats[seat].Tournaments++
			s.Seats[seat].SumScore += v
		}
	}
	for _, seat := range result.Winners {
		if seat >= 1 && seat <= MaxSeats {
			s.Seats[seat].Wins++
		}
	}
}

// Merge adds the totals of other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Tournaments += other.Tournaments
	s.Scores += other.Scores
	s.SumScore += other.SumScore
	s.SumScore2 += other.SumScore2
	s.Values = append(s.Values, other.Values...)
	s.Games += other.Games
	s.SumGames2 += other.SumGames2
	s.Turns += other.Turns
	s.EmptyDrawPile += other.EmptyDrawPile
	s.Ties += other.Ties
	s.Duration += other.Duration
	for i := range s.Seats {
		s.Seats[i].Tournaments += other.Seats[i].Tournaments
		s.Seats[i].Wins += other.Seats[i].Wins
		s.Seats[i].SumScore += other.Seats[i].SumScore
	}
}

// GamesPerTournament returns the mean number of games per tournament
func (s *Statistics) GamesPerTournament() float64 {
	if s.Tournaments == 0 {
		return 0
	}
	return float64(s.Games) / float64(s.Tournaments)
}

// GamesStdDev returns the sample standard deviation of games per tournament
func (s *Statistics) GamesStdDev() float64 {
	if s.Tournaments < 2 {
		return 0
	}
	mean := s.GamesPerTournament()
	return math.Sqrt((s.SumGames2 - float64(s.Tournaments)*mean*mean) / float64(s.Tournaments-1))
}

// TurnsPerGame returns the mean game length in turns
func (s *Statistics) TurnsPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Turns) / float64(s.Games)
}

// EmptyDrawPileRate returns the fraction of games that ended on an empty
// draw pile rather than an empty hand
func (s *Statistics) EmptyDrawPileRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.EmptyDrawPile) / float64(s.Games)
}

// WinRate returns the fraction of tournaments the seat won (1-based)
func (s *Statistics) WinRate(seat int) float64 {
	if seat < 1 || seat > MaxSeats {
		return 0
	}
	ss := s.Seats[seat]
	if ss.Tournaments == 0 {
		return 0
	}
	return float64(ss.Wins) / float64(ss.Tournaments)
}

// SeatMean returns the mean final score for a seat (1-based)
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 1 || seat > MaxSeats {
		return 0
	}
	ss := s.Seats[seat]
	if ss.Tournaments == 0 {
		return 0
	}
	return ss.SumScore / float64(ss.Tournaments)
}

// Median returns the median final score
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Validate checks that the aggregated counts agree with each other
func (s *Statistics) Validate() error {
	if s.Tournaments <= 0 {
		return fmt.Errorf("invalid tournament count: %d", s.Tournaments)
	}

	if len(s.Values) != s.Scores {
		return fmt.Errorf("values array length (%d) does not match score count (%d)",
			len(s.Values), s.Scores)
	}

	if s.Games < s.Tournaments {
		return fmt.Errorf("games (%d) fewer than tournaments (%d)", s.Games, s.Tournaments)
	}

	if s.EmptyDrawPile > s.Games {
		return fmt.Errorf("empty draw pile endings (%d) exceed games (%d)", s.EmptyDrawPile, s.Games)
	}

	seatScores, wins := 0, 0
	for seat := 1; seat <= MaxSeats; seat++ {
		seatScores += s.Seats[seat].Tournaments
		wins += s.Seats[seat].Wins
	}
	if seatScores != s.Scores {
		return fmt.Errorf("seat score total (%d) does not match score count (%d)", seatScores, s.Scores)
	}
	if wins < s.Tournaments {
		return fmt.Errorf("wins (%d) fewer than tournaments (%d)", wins, s.Tournaments)
	}

	return nil
}
