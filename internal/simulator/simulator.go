package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/crazyeights/internal/bot"
	"github.com/lox/crazyeights/internal/game"
	"github.com/lox/crazyeights/internal/randutil"
	"github.com/lox/crazyeights/internal/statistics"
	"github.com/lox/crazyeights/internal/tournament"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxGames stops a runaway tournament
const DefaultMaxGames = 1000

// Config holds configuration for running simulations
type Config struct {
	Tournaments int
	Players     int
	Seed        int64
	Workers     int         // Tournaments played in parallel; 0 uses GOMAXPROCS
	RandomSeats int         // The last RandomSeats seats play uniformly random legal cards
	MaxGames    int         // Per tournament; 0 uses DefaultMaxGames
	Bot         bot.Options // Options for every heuristic bot
	Clock       quartz.Clock
	Logger      *log.Logger
}

// Simulator runs bot-only tournaments and aggregates their results
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.MaxGames <= 0 {
		config.MaxGames = DefaultMaxGames
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{config: config}
}

// Run plays every tournament and returns the aggregate statistics. Each
// tournament gets its own seed drawn from Config.Seed up front, so results
// do not depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if !game.ValidPlayerCount(s.config.Players) {
		return nil, fmt.Errorf("%w: got %d", game.ErrPlayerCount, s.config.Players)
	}
	if s.config.Tournaments <= 0 {
		return nil, fmt.Errorf("tournaments must be positive, got %d", s.config.Tournaments)
	}
	if s.config.RandomSeats < 0 || s.config.RandomSeats > s.config.Players {
		return nil, fmt.Errorf("random seats must be between 0 and %d, got %d", s.config.Players, s.config.RandomSeats)
	}

	parent := randutil.New(s.config.Seed)
	seeds := make([]int64, s.config.Tournaments)
	for i := range seeds {
		seeds[i] = randutil.Child(parent)
	}

	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("Simulation starting",
		"tournaments", s.config.Tournaments,
		"players", s.config.Players,
		"workers", s.config.Workers,
		"seed", s.config.Seed)
	start := s.config.Clock.Now()

	results := make([]statistics.TournamentResult, len(seeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i, seed := range seeds {
		g.Go(func() error {
			result, err := s.playTournament(ctx, seed)
			if err != nil {
				return fmt.Errorf("tournament %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("Simulation finished",
		"games", stats.Games,
		"duration", s.config.Clock.Since(start))
	return stats, nil
}

// playTournament runs one tournament from its seed
func (s *Simulator) playTournament(ctx context.Context, seed int64) (statistics.TournamentResult, error) {
	rng := randutil.New(seed)

	seats := make([]tournament.Seat, s.config.Players)
	players, err := tournament.NewPlayers(seats, nil, rng, tournament.SetupConfig{
		Logger: s.config.Logger,
		Bot:    s.config.Bot,
	})
	if err != nil {
		return statistics.TournamentResult{}, err
	}
	if s.config.RandomSeats > 0 {
		randRng := randutil.New(randutil.Child(rng))
		for _, p := range players[len(players)-s.config.RandomSeats:] {
			p.Controller = bot.NewRandBot(randRng)
		}
	}

	bus := game.NewEventBus()
	collector := &collector{}
	bus.Subscribe(collector)

	t, err := tournament.New(players, nil, rng,
		tournament.WithLogger(s.config.Logger),
		tournament.WithClock(s.config.Clock),
		tournament.WithEventBus(bus),
		tournament.WithMaxGames(s.config.MaxGames))
	if err != nil {
		return statistics.TournamentResult{}, err
	}

	standings, err := t.Run(ctx)
	if err != nil {
		return statistics.TournamentResult{}, err
	}

	result := statistics.TournamentResult{
		Seed:          seed,
		Scores:        make([]int, len(players)),
		Games:         standings.Games,
		Turns:         collector.turns,
		EmptyDrawPile: collector.emptyDrawPile,
		Duration:      standings.Duration,
	}
	for i, p := range players {
		result.Scores[i] = standings.Scores[p.ID]
		for _, w := range standings.Winners {
			if w == p.ID {
				result.Winners = append(result.Winners, i+1)
			}
		}
	}
	return result, nil
}

// collector counts turns and game endings from a tournament's event bus
type collector struct {
	turns         int
	emptyDrawPile int
}

func (c *collector) OnEvent(event game.GameEvent) {
	end, ok := event.(game.GameEndEvent)
	if !ok || end.Result == nil {
		return
	}
	c.turns += end.Result.Turns
	if end.Result.Reason == game.EmptyDrawPile {
		c.emptyDrawPile++
	}
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, players int) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS (%d players, threshold %d) ===\n", players, tournament.Threshold(players))
	fmt.Fprintf(w, "Tournaments played: %d\n", stats.Tournaments)
	fmt.Fprintf(w, "Games played: %d (%.2f per tournament, std dev %.2f)\n",
		stats.Games, stats.GamesPerTournament(), stats.GamesStdDev())
	fmt.Fprintf(w, "Turns per game: %.1f\n", stats.TurnsPerGame())
	fmt.Fprintf(w, "Empty draw pile endings: %d (%.1f%%)\n", stats.EmptyDrawPile, stats.EmptyDrawPileRate()*100)
	fmt.Fprintf(w, "Tied tournaments: %d\n", stats.Ties)

	fmt.Fprintf(w, "\n=== FINAL SCORES ===\n")
	fmt.Fprintf(w, "Mean: %.2f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.2f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.2f\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.2f\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== SEAT ANALYSIS ===\n")
	for seat := 1; seat <= statistics.MaxSeats; seat++ {
		ss := stats.Seats[seat]
		if ss.Tournaments == 0 {
			continue
		}
		fmt.Fprintf(w, "Seat %d: %.1f%% wins, %.1f mean score\n",
			seat, stats.WinRate(seat)*100, stats.SeatMean(seat))
	}
}
