package game

import (
	"fmt"

	"github.com/lox/crazyeights/internal/deck"
)

// Prompter collects structured input from a human. Implementations block
// until the human answers and are responsible for re-prompting on
// unparseable text.
type Prompter interface {
	Announce(text string)
	RequestDraw(state TurnState) (bool, error)
	RequestPlayedCard() (deck.Card, error)
	RequestDeclaredSuit() (deck.Suit, error)
}

// HumanController turns prompts into decisions
type HumanController struct {
	prompter Prompter
}

// NewHumanController creates a controller that asks prompter for every decision
func NewHumanController(prompter Prompter) *HumanController {
	return &HumanController{prompter: prompter}
}

// Begin does nothing: humans keep their own state
func (h *HumanController) Begin(PlayerID, []PlayerID, int) {}

// Observe does nothing: the presenter already reported every turn
func (h *HumanController) Observe(History) {}

// Decide asks whether to draw, then which card to play and, for a wild card,
// which suit to declare. A held card that cannot follow the top card is
// refused and asked for again. A card that is not held is passed through so
// the game can flag it.
func (h *HumanController) Decide(state TurnState) (Decision, error) {
	draw, err := h.prompter.RequestDraw(state)
	if err != nil {
		return Decision{}, fmt.Errorf("request draw: %w", err)
	}
	if draw {
		return DrawDecision("chose to draw"), nil
	}

	for {
		card, err := h.prompter.RequestPlayedCard()
		if err != nil {
			return Decision{}, fmt.Errorf("request card: %w", err)
		}

		held := false
		for _, c := range state.Hand {
			if c == card {
				held = true
				break
			}
		}
		if held && !IsLegal(card, state.TopCard, state.Declared) {
			h.prompter.Announce(fmt.Sprintf("%s cannot be played on %s.", card, describeTop(state)))
			continue
		}

		if !card.IsWild() {
			return PlayDecision(card, "chose a card"), nil
		}

		suit, err := h.prompter.RequestDeclaredSuit()
		if err != nil {
			return Decision{}, fmt.Errorf("request suit: %w", err)
		}
		return WildDecision(card, suit, "chose a wild card"), nil
	}
}

func describeTop(state TurnState) string {
	if state.Declared != deck.NoSuit {
		return fmt.Sprintf("%s (declared %s)", state.TopCard, state.Declared)
	}
	return state.TopCard.String()
}
