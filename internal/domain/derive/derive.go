// Package derive computes the aggregate metrics behind each view: total XP,
// audit ratio, capped transaction lists, and per-skill bests. Every deriver is
// a pure function over the normalized user record; a nil record degrades to
// the documented zero output, never an error.
package derive

import (
	"sort"
	"strings"

	"profilehub/internal/domain/format"
	"profilehub/internal/domain/model"
	"profilehub/internal/domain/payload"
)

// Default caps match the original dashboard lists.
const (
	defaultListLimit  = 10
	defaultSkillLimit = 6

	skillPrefix = "skill_"
)

// Deriver computes view metrics with configured caps.
type Deriver struct {
	listLimit  int
	skillLimit int
}

// New creates a Deriver with configuration options.
func New(opts ...Option) *Deriver {
	d := &Deriver{
		listLimit:  defaultListLimit,
		skillLimit: defaultSkillLimit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// TotalXP resolves the user's XP total: the server-precomputed aggregate sum
// wins when present; otherwise the recent transactions fold. Callers must use
// one resolved total per view so per-item percentages stay consistent.
func (d *Deriver) TotalXP(u *payload.User) float64 {
	if u == nil {
		return 0
	}
	if u.AggregateSum != nil {
		return *u.AggregateSum
	}
	var sum float64
	for _, t := range u.Transactions {
		sum += t.Amount
	}
	return sum
}

// AuditRatio returns done/received, or nil when the user has received no
// audits. Nil means "no data", which renders as a placeholder rather than 0.
func (d *Deriver) AuditRatio(u *payload.User) *float64 {
	if u == nil || u.TotalDown == 0 {
		return nil
	}
	ratio := u.TotalUp / u.TotalDown
	return &ratio
}

// TopByMagnitude returns the server-pre-ranked transaction set capped at the
// list limit. Source order is preserved; this deriver never re-sorts.
func (d *Deriver) TopByMagnitude(u *payload.User) []payload.Transaction {
	if u == nil {
		return nil
	}
	return capList(u.TopTransactions, d.listLimit)
}

// TopByRecency returns the recent transaction set sorted by timestamp
// descending and capped at the list limit. Absent or unparseable timestamps
// sort as the zero time, i.e. last.
func (d *Deriver) TopByRecency(u *payload.User) []payload.Transaction {
	if u == nil || len(u.Transactions) == 0 {
		return nil
	}
	sorted := make([]payload.Transaction, len(u.Transactions))
	copy(sorted, u.Transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedTime().After(sorted[j].CreatedTime())
	})
	return capList(sorted, d.listLimit)
}

// TopSkills reduces the skill-typed transactions to the best amount per skill
// key, ordered by amount descending and capped at the skill limit. The source
// list is the first non-empty of topSkills, topTransactions, transactions;
// that fallback chain mirrors the upstream schema's ambiguity.
func (d *Deriver) TopSkills(u *payload.User) []model.SkillEntry {
	if u == nil {
		return nil
	}
	source := u.TopSkills
	if len(source) == 0 {
		source = u.TopTransactions
	}
	if len(source) == 0 {
		source = u.Transactions
	}

	best := make(map[string]float64)
	order := make([]string, 0)
	for _, t := range source {
		if !strings.HasPrefix(t.Type, skillPrefix) {
			continue
		}
		key := skillKey(t.Type)
		prev, seen := best[key]
		if !seen {
			best[key] = t.Amount
			order = append(order, key)
			continue
		}
		// Strict greater-than: the first transaction reaching the maximum wins
		// on equality.
		if t.Amount > prev {
			best[key] = t.Amount
		}
	}
	if len(best) == 0 {
		return nil
	}

	entries := make([]model.SkillEntry, 0, len(best))
	for _, key := range order {
		entries = append(entries, model.SkillEntry{Key: key, Amount: best[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount > entries[j].Amount
	})
	if len(entries) > d.skillLimit {
		entries = entries[:d.skillLimit]
	}
	return entries
}

// Rows enriches a displayed transaction slice with formatted amounts, shares
// of the resolved total, and bar widths relative to the slice maximum. The
// maximum is floored at 1 so an all-zero slice yields zero-width bars instead
// of a division by zero.
func (d *Deriver) Rows(txs []payload.Transaction, total float64) []model.TransactionRow {
	if len(txs) == 0 {
		return nil
	}
	maxAmount := 1.0
	for _, t := range txs {
		if t.Amount > maxAmount {
			maxAmount = t.Amount
		}
	}
	rows := make([]model.TransactionRow, len(txs))
	for i, t := range txs {
		rows[i] = model.TransactionRow{
			DisplayName:        payload.DisplayName(t.Path),
			FormattedAmount:    format.Magnitude(t.Amount),
			PercentOfTotal:     format.PercentInt(t.Amount, total),
			BarWidthPercent:    format.PercentInt(t.Amount, maxAmount),
			FormattedTimestamp: format.Timestamp(t.CreatedAt),
			RawPath:            t.Path,
			Amount:             t.Amount,
		}
	}
	return rows
}

func capList(txs []payload.Transaction, limit int) []payload.Transaction {
	if len(txs) == 0 {
		return nil
	}
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	out := make([]payload.Transaction, len(txs))
	copy(out, txs)
	return out
}

func skillKey(typ string) string {
	idx := strings.Index(typ, "_")
	if idx < 0 {
		return typ
	}
	key := typ[idx+1:]
	if key == "" {
		return typ
	}
	return key
}
