package bot

import (
	"fmt"
	rand "math/rand/v2"
)

var botNames = []string{
	"Liam", "Emma", "Noah", "Olivia", "William",
	"Ava", "James", "Isabella", "Oliver", "Sophia",
	"Benjamin", "Charlotte", "Elijah", "Mia", "Lucas",
	"Amelia", "Mason", "Harper", "Logan", "Evelyn",
}

// NamePool hands out bot names without repeating one within a tournament
type NamePool struct {
	rng  *rand.Rand
	used map[string]bool
}

// NewNamePool creates a pool drawing from rng
func NewNamePool(rng *rand.Rand) *NamePool {
	if rng == nil {
		panic("rng is required for bot names")
	}
	return &NamePool{rng: rng, used: make(map[string]bool)}
}

// Reserve marks a name as taken, typically a human player's
func (p *NamePool) Reserve(name string) {
	p.used[name] = true
}

// Next returns an unused name. Once the list is exhausted names get a
// numeric suffix.
func (p *NamePool) Next() string {
	var free []string
	for _, n := range botNames {
		if !p.used[n] {
			free = append(free, n)
		}
	}

	var name string
	if len(free) > 0 {
		name = free[p.rng.IntN(len(free))]
	} else {
		base := botNames[p.rng.IntN(len(botNames))]
		for i := 2; ; i++ {
			name = fmt.Sprintf("%s %d", base, i)
			if !p.used[name] {
				break
			}
		}
	}

	p.used[name] = true
	return name
}
