package server

import (
	"encoding/json"
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Makepad-fr/listbench/internal/model"
)

var (
	adjectives = []string{
		"Adaptive", "Balanced", "Centralized", "Cloned", "Cross-platform", "Customizable",
		"Decentralized", "Distributed", "Enhanced", "Ergonomic", "Expanded", "Focused",
		"Front-line", "Grass-roots", "Horizontal", "Innovative", "Integrated", "Managed",
		"Multi-layered", "Open-source", "Optimized", "Persistent", "Proactive", "Reactive",
		"Robust", "Seamless", "Streamlined", "Synergized", "Universal", "Visionary",
	}
	descriptors = []string{
		"24/7", "asymmetric", "bifurcated", "client-driven", "dedicated", "dynamic",
		"executive", "fresh-thinking", "global", "heuristic", "interactive", "local",
		"modular", "multimedia", "national", "neutral", "optimal", "real-time",
		"scalable", "static", "systematic", "tangible", "transitional", "zero-defect",
	}
	nouns = []string{
		"ability", "algorithm", "approach", "archive", "benchmark", "capability",
		"circuit", "concept", "database", "encoding", "firmware", "framework",
		"hierarchy", "info-mediaries", "interface", "matrix", "methodology", "model",
		"paradigm", "platform", "protocol", "service-desk", "strategy", "throughput",
	}
	words = []string{
		"drama", "comedy", "noir", "western", "thriller", "romance", "horror", "musical",
		"documentary", "heist", "space", "mystery", "war", "sports", "family", "crime",
		"the", "a", "lost", "city", "night", "river", "secret", "last", "light", "road",
		"storm", "winter", "garden", "machine", "shadow", "empire", "voyage", "dream",
	}
)

// Generator produces fake movie entries. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator seeds the generator; the same seed yields the same movies.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Movie returns one random entry.
func (g *Generator) Movie() model.Item {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		id = uuid.New()
	}
	return model.Item{
		ID:          id.String(),
		Title:       g.catchPhrase(),
		Year:        1930 + g.rng.Intn(2023-1930+1),
		Rating:      math.Round((1+g.rng.Float64()*9)*10) / 10,
		Genre:       g.pick(words),
		Description: g.sentence(15),
	}
}

// Movies accumulates entries until the next one would push the encoded
// payload past sizeMB megabytes.
func (g *Generator) Movies(sizeMB float64) []model.Item {
	out := []model.Item{}
	if math.IsNaN(sizeMB) || sizeMB <= 0 {
		return out
	}
	target := int(sizeMB * 1024 * 1024)
	current := 0
	for current < target {
		m := g.Movie()
		b, err := json.Marshal(m)
		if err != nil {
			break
		}
		if current+len(b) > target {
			break
		}
		out = append(out, m)
		current += len(b)
	}
	return out
}

func (g *Generator) pick(list []string) string {
	return list[g.rng.Intn(len(list))]
}

func (g *Generator) catchPhrase() string {
	return g.pick(adjectives) + " " + g.pick(descriptors) + " " + g.pick(nouns)
}

func (g *Generator) sentence(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = g.pick(words)
	}
	s := strings.Join(parts, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}
