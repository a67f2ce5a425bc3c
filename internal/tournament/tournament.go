package tournament

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/crazyeights/internal/game"
	"github.com/lox/crazyeights/internal/gameid"
)

// ErrGameLimit is returned when a tournament hits its configured game limit
var ErrGameLimit = errors.New("game limit reached")

// UI is what a tournament reports to: every table report plus cheating
type UI interface {
	game.Reporter
	ReportCheating(playerName string)
}

// Quiet discards every report. Simulations run with it.
type Quiet struct {
	game.NopReporter
}

// ReportCheating does nothing
func (Quiet) ReportCheating(string) {}

// Threshold returns the score a player must exceed to end a tournament of n
// players: 100 for two, plus 50 for each additional player.
func Threshold(n int) int {
	return 100 + 50*(n-2)
}

// Standings is the outcome of a finished tournament
type Standings struct {
	TournamentID string
	Scores       map[game.PlayerID]int
	Winners      []game.PlayerID
	Games        int
	Duration     time.Duration
}

// Tournament plays games between a fixed set of players until one of them
// has scored more than the threshold. It owns the cumulative scores; the
// players' identities stay fixed across games.
type Tournament struct {
	id      string
	players []*game.Player
	scores  map[game.PlayerID]int
	games   int
	ui      UI
	rng     *rand.Rand
	cfg     *config
	logger  *log.Logger
}

// New creates a tournament between players. Player ids must be unique and
// non-zero; the count must be between game.MinPlayers and game.MaxPlayers.
func New(players []*game.Player, ui UI, rng *rand.Rand, opts ...Option) (*Tournament, error) {
	if rng == nil {
		panic("rng is required for tournament creation")
	}
	if !game.ValidPlayerCount(len(players)) {
		return nil, fmt.Errorf("%w: got %d", game.ErrPlayerCount, len(players))
	}
	if ui == nil {
		ui = Quiet{}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.ids == nil {
		cfg.ids = gameid.NewGenerator(cfg.clock, rng)
	}

	t := &Tournament{
		id:      cfg.ids.Tournament(),
		players: players,
		scores:  make(map[game.PlayerID]int, len(players)),
		ui:      ui,
		rng:     rng,
		cfg:     cfg,
	}
	t.logger = cfg.logger.WithPrefix("tournament").With("tournament", t.id)
	for _, p := range players {
		t.scores[p.ID] = 0
	}
	return t, nil
}

// ID returns the tournament identifier
func (t *Tournament) ID() string { return t.id }

// Players returns the seated players
func (t *Tournament) Players() []*game.Player { return t.players }

// Games returns the number of games played so far
func (t *Tournament) Games() int { return t.games }

// Score returns a player's cumulative score
func (t *Tournament) Score(id game.PlayerID) int { return t.scores[id] }

// Threshold returns the score that must be exceeded to end this tournament
func (t *Tournament) Threshold() int { return Threshold(len(t.players)) }

// IsOver reports whether the highest cumulative score exceeds the threshold
func (t *Tournament) IsOver() bool {
	best := 0
	for _, s := range t.scores {
		best = max(best, s)
	}
	return best > t.Threshold()
}

// Winners returns every player tied at the highest cumulative score
func (t *Tournament) Winners() []game.PlayerID {
	var ids []game.PlayerID
	for _, s := range game.Leaders(t.standings()) {
		ids = append(ids, s.ID)
	}
	return ids
}

// Run plays games until the tournament is over. The context is checked
// between games; a game in progress always runs to the end. A fatal error
// (cheating or an illegal play) stops the tournament immediately.
func (t *Tournament) Run(ctx context.Context) (*Standings, error) {
	start := t.cfg.clock.Now()
	t.logger.Info("Tournament starting", "players", len(t.players), "threshold", t.Threshold())

	for !t.IsOver() {
		if err := ctx.Err(); err != nil {
			t.logger.Warn("Tournament cancelled", "games", t.games, "error", err)
			return nil, err
		}
		if t.cfg.maxGames > 0 && t.games >= t.cfg.maxGames {
			return nil, fmt.Errorf("%w after %d games", ErrGameLimit, t.games)
		}
		if _, err := t.PlayGame(); err != nil {
			return nil, err
		}
	}

	t.ui.ReportScores(t.standings(), game.TournamentEnd)

	standings := &Standings{
		TournamentID: t.id,
		Scores:       make(map[game.PlayerID]int, len(t.scores)),
		Winners:      t.Winners(),
		Games:        t.games,
		Duration:     t.cfg.clock.Since(start),
	}
	for id, s := range t.scores {
		standings.Scores[id] = s
	}

	t.logger.Info("Tournament finished",
		"games", standings.Games,
		"winners", t.names(standings.Winners),
		"duration", standings.Duration)
	return standings, nil
}

// PlayGame plays one game, adds its scores to the running totals and
// reports the tournament standings
func (t *Tournament) PlayGame() (*game.Result, error) {
	t.games++
	gameID := t.cfg.ids.Game()
	start := t.cfg.clock.Now()

	g, err := game.New(t.players, t.rng,
		game.WithGameID(gameID),
		game.WithLogger(t.cfg.logger),
		game.WithEventBus(t.cfg.bus),
		game.WithClock(t.cfg.clock),
		game.WithReporter(t.ui))
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", t.games, err)
	}

	result, err := g.Play()
	if err != nil {
		var cheat *game.CheatingError
		if errors.As(err, &cheat) {
			t.ui.ReportCheating(cheat.Player)
		}
		t.logger.Error("Game aborted", "game", gameID, "error", err)
		return nil, fmt.Errorf("game %d: %w", t.games, err)
	}

	for id, s := range result.Scores {
		t.scores[id] += s
	}
	for _, p := range t.players {
		p.ResetHand()
	}

	t.logger.Info("Game finished",
		"game", gameID,
		"number", t.games,
		"turns", result.Turns,
		"reason", result.Reason,
		"duration", t.cfg.clock.Since(start))

	t.ui.ReportScores(t.standings(), game.TournamentRound)
	return result, nil
}

func (t *Tournament) standings() []game.Standing {
	out := make([]game.Standing, len(t.players))
	for i, p := range t.players {
		out[i] = game.Standing{ID: p.ID, Name: p.Name, Score: t.scores[p.ID]}
	}
	return out
}

func (t *Tournament) names(ids []game.PlayerID) []string {
	var names []string
	for _, id := range ids {
		for _, p := range t.players {
			if p.ID == id {
				names = append(names, p.Name)
			}
		}
	}
	return names
}
