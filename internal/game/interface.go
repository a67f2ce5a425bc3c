package game

import "github.com/lox/crazyeights/internal/deck"

// ScoreKind says which announcement a score report belongs to
type ScoreKind int

const (
	GameEnd ScoreKind = iota
	TournamentRound
	TournamentEnd
)

// String returns the string representation of the score kind
func (k ScoreKind) String() string {
	switch k {
	case GameEnd:
		return "game_end"
	case TournamentRound:
		return "tournament_round"
	case TournamentEnd:
		return "tournament_end"
	default:
		return "unknown"
	}
}

// Standing is one player's line in a score report
type Standing struct {
	ID    PlayerID
	Name  string
	Score int
}

// Leaders returns every standing tied at the highest score
func Leaders(standings []Standing) []Standing {
	var leaders []Standing
	for _, s := range standings {
		switch {
		case len(leaders) == 0 || s.Score > leaders[0].Score:
			leaders = []Standing{s}
		case s.Score == leaders[0].Score:
			leaders = append(leaders, s)
		}
	}
	return leaders
}

// SeatView is the public information about one player
type SeatView struct {
	ID       PlayerID
	Name     string
	HandSize int
}

// StateView is what the table looks like at the start of a turn
type StateView struct {
	GameID       string
	Current      *Player
	Seats        []SeatView
	DrawPileSize int
	TopCard      deck.Card
	Declared     deck.Suit
}

// Reporter is notified of everything that happens at the table
type Reporter interface {
	ReportState(view StateView)
	ReportTurn(player *Player, turn PlayerTurn)
	ReportScores(standings []Standing, kind ScoreKind)
}

// Presenter is the whole human-facing surface: reporting, prompting and
// tournament setup questions
type Presenter interface {
	Reporter
	Prompter
	RequestPlayerCount() (int, error)
	RequestPlayerName() (string, error)
	ReportCheating(playerName string)
}

// NopReporter discards every report
type NopReporter struct{}

func (NopReporter) ReportState(StateView) {}
func (NopReporter) ReportTurn(*Player, PlayerTurn) {}
func (NopReporter) ReportScores([]Standing, ScoreKind) {}
