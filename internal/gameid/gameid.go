package gameid

import (
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32, as used by TypeID
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Prefixes for the kinds of identifiers we hand out
const (
	TournamentPrefix = "tourn"
	GamePrefix       = "game"
)

// RandSource is the subset of *rand.Rand the generator needs
type RandSource interface {
	IntN(n int) int
}

// Generator produces time-sortable identifiers such as
// "game_01j9z3k8m2c4v6b8n0q2r4t6w8". The random half comes from the injected
// source so a seeded tournament logs the same ids on every replay.
type Generator struct {
	clock quartz.Clock
	rng   RandSource
}

// NewGenerator creates a generator reading time from clock and entropy from rng
func NewGenerator(clock quartz.Clock, rng RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// Tournament returns a new tournament id
func (g *Generator) Tournament() string {
	return g.next(TournamentPrefix)
}

// Game returns a new game id
func (g *Generator) Game() string {
	return g.next(GamePrefix)
}

func (g *Generator) next(prefix string) string {
	var raw [16]byte

	// 48-bit millisecond timestamp, then 80 random bits
	now := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		raw[i] = byte(now >> (40 - 8*i))
	}
	for i := 6; i < 16; i++ {
		raw[i] = byte(g.rng.IntN(256))
	}

	// UUIDv7 version and variant bits
	raw[6] = (raw[6] & 0x0f) | 0x70
	raw[8] = (raw[8] & 0x3f) | 0x80

	return prefix + "_" + encode(raw)
}

// encode writes 128 bits as 26 base32 characters, most significant first,
// with two leading zero bits padding the value to 130 bits.
func encode(data [16]byte) string {
	var sb strings.Builder
	sb.Grow(26)

	var acc uint32
	bits := 2 // the implicit leading zero bits
	for _, b := range data {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(alphabet[(acc>>bits)&0x1f])
		}
	}
	return sb.String()
}

// Validate checks that id is a prefix followed by 26 base32 characters
func Validate(id string) error {
	prefix, suffix, ok := strings.Cut(id, "_")
	if !ok || prefix == "" {
		return fmt.Errorf("id %q has no prefix", id)
	}
	if len(suffix) != 26 {
		return fmt.Errorf("id %q: suffix must be 26 characters, got %d", id, len(suffix))
	}
	if suffix[0] > '7' {
		return fmt.Errorf("id %q: first character must be 0-7, got %c", id, suffix[0])
	}
	for i, c := range suffix {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("id %q: invalid character %c at position %d", id, c, i)
		}
	}
	return nil
}
