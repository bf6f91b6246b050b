// Package fixture generates realistic profile payloads for the demo
// upstream and for tests.
package fixture

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"
)

// Module path segments used to build plausible project paths.
var (
	modulePaths = []string{
		"/bahrain/bh-module/go-reloaded",
		"/bahrain/bh-module/ascii-art",
		"/bahrain/bh-module/ascii-art-web",
		"/bahrain/bh-module/groupie-tracker",
		"/bahrain/bh-module/lem-in",
		"/bahrain/bh-module/forum",
		"/bahrain/bh-module/make-your-game",
		"/bahrain/bh-module/real-time-forum",
		"/bahrain/bh-module/graphql",
		"/bahrain/bh-module/social-network",
		"/bahrain/bh-module/mini-framework",
		"/bahrain/bh-module/bomberman-dom",
	}

	skillTypes = []string{
		"skill_go",
		"skill_js",
		"skill_html",
		"skill_css",
		"skill_sql",
		"skill_docker",
		"skill_back_end",
		"skill_front_end",
		"skill_algo",
	}
)

// Generator produces deterministic profile payloads from a seed.
type Generator struct {
	rng   *rand.Rand
	now   time.Time
	login string
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed fixes the random source, making output deterministic.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithNow anchors generated timestamps.
func WithNow(now time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithLogin sets the generated user's login.
func WithLogin(login string) Option {
	return func(g *Generator) {
		if login != "" {
			g.login = login
		}
	}
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:   rand.New(rand.NewSource(1)),
		now:   time.Now().UTC(),
		login: "demo",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type wireTransaction struct {
	Amount    float64 `json:"amount"`
	Path      string  `json:"path"`
	CreatedAt string  `json:"createdAt"`
	Type      string  `json:"type"`
}

// UserPayload builds a full {"data":{"user":[...]}} response body. The user
// record is list-wrapped, matching the upstream's usual shape.
func (g *Generator) UserPayload() []byte {
	transactions := g.transactions(25)
	top := g.topOf(transactions)
	skills := g.skills(14)

	var total float64
	for _, t := range transactions {
		total += t.Amount
	}

	user := map[string]any{
		"id":        g.rng.Intn(9000) + 1000,
		"login":     g.login,
		"email":     g.login + "@example.com",
		"firstName": "Demo",
		"lastName":  "User",
		"totalUp":   float64(g.rng.Intn(900_000) + 100_000),
		"totalDown": float64(g.rng.Intn(900_000) + 100_000),

		"transactions":    transactions,
		"topTransactions": top,
		"topSkills":       skills,
	}

	// Roughly one payload in five omits the aggregate so the fold fallback
	// stays exercised.
	if g.rng.Intn(5) != 0 {
		user["transactions_aggregate"] = map[string]any{
			"aggregate": map[string]any{
				"sum": map[string]any{"amount": total},
			},
		}
	}

	body, _ := json.Marshal(map[string]any{
		"data": map[string]any{"user": []any{user}},
	})
	return body
}

// EmptyPayload builds the empty-dataset sentinel body.
func (g *Generator) EmptyPayload() []byte {
	return []byte(`{"data":{}}`)
}

func (g *Generator) transactions(n int) []wireTransaction {
	out := make([]wireTransaction, n)
	for i := range out {
		daysAgo := g.rng.Intn(400)
		out[i] = wireTransaction{
			Amount:    float64(g.rng.Intn(150_000) + 2_500),
			Path:      modulePaths[g.rng.Intn(len(modulePaths))],
			CreatedAt: g.now.AddDate(0, 0, -daysAgo).Format(time.RFC3339),
			Type:      "xp",
		}
	}
	return out
}

// topOf returns the input re-ordered by amount descending, the way the
// upstream's ranked query would.
func (g *Generator) topOf(transactions []wireTransaction) []wireTransaction {
	top := make([]wireTransaction, len(transactions))
	copy(top, transactions)
	for i := range top {
		for j := i + 1; j < len(top); j++ {
			if top[j].Amount > top[i].Amount {
				top[i], top[j] = top[j], top[i]
			}
		}
	}
	if len(top) > 10 {
		top = top[:10]
	}
	return top
}

func (g *Generator) skills(n int) []wireTransaction {
	out := make([]wireTransaction, n)
	for i := range out {
		out[i] = wireTransaction{
			Amount:    float64(g.rng.Intn(80) + 5),
			Path:      fmt.Sprintf("/bahrain/bh-module/piscine-%d", g.rng.Intn(4)),
			CreatedAt: g.now.AddDate(0, 0, -g.rng.Intn(400)).Format(time.RFC3339),
			Type:      skillTypes[g.rng.Intn(len(skillTypes))],
		}
	}
	return out
}

// Token builds a fake bearer token for the demo sign-in endpoint.
func (g *Generator) Token() string {
	return fmt.Sprintf("demo.%d.%d", g.now.Unix(), g.rng.Intn(1_000_000))
}
