package game

import (
	"time"

	"github.com/lox/crazyeights/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeGameStart EventType = "game_start"
	EventTypeTurn      EventType = "turn"
	EventTypeGameEnd   EventType = "game_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published once the cards are dealt
type GameStartEvent struct {
	GameID      string
	Players     []PlayerID
	FirstPlayer PlayerID
	TopCard     deck.Card
	HandSize    int
	timestamp   time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// TurnEvent is published after every completed turn
type TurnEvent struct {
	GameID       string
	Player       *Player
	Turn         PlayerTurn
	Reasoning    string
	HandSize     int // Acting player's hand size after the turn
	DrawPileSize int
	timestamp    time.Time
}

func (e TurnEvent) EventType() EventType { return EventTypeTurn }
func (e TurnEvent) Timestamp() time.Time { return e.timestamp }

// GameEndEvent is published when the game has been scored
type GameEndEvent struct {
	GameID    string
	Result    *Result
	timestamp time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
