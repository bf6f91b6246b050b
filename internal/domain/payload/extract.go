package payload

import (
	"bytes"
	"encoding/json"
	"strings"
)

// rawUser mirrors the optional wire fields before defaulting.
type rawUser struct {
	Login     *string    `json:"login"`
	ID        Identifier `json:"id"`
	Email     *string    `json:"email"`
	FirstName *string    `json:"firstName"`
	LastName  *string    `json:"lastName"`

	TotalUp   *Amount `json:"totalUp"`
	TotalDown *Amount `json:"totalDown"`

	Transactions    []rawTransaction `json:"transactions"`
	TopTransactions []rawTransaction `json:"topTransactions"`
	TopSkills       []rawTransaction `json:"topSkills"`

	TransactionsAggregate *rawAggregate `json:"transactions_aggregate"`
}

type rawTransaction struct {
	Amount    Amount  `json:"amount"`
	Path      *string `json:"path"`
	CreatedAt *string `json:"createdAt"`
	Type      *string `json:"type"`
}

type rawAggregate struct {
	Aggregate *struct {
		Sum *struct {
			Amount *Amount `json:"amount"`
		} `json:"sum"`
	} `json:"aggregate"`
}

// ExtractUser locates the single user record inside the payload. The server
// may wrap the record in a list or present it bare; a one-element list yields
// its first element. Any other shape, including the empty sentinel, yields nil,
// and all downstream derivation treats a nil record as "all fields absent".
func ExtractUser(raw Raw) *User {
	blob := bytes.TrimSpace(raw.Data.User)
	if len(blob) == 0 || bytes.Equal(blob, []byte("null")) {
		return nil
	}

	var ru rawUser
	switch blob[0] {
	case '[':
		var list []rawUser
		if err := json.Unmarshal(blob, &list); err != nil || len(list) == 0 {
			return nil
		}
		ru = list[0]
	case '{':
		if err := json.Unmarshal(blob, &ru); err != nil {
			return nil
		}
	default:
		return nil
	}

	u := &User{
		Login:           stringOr(ru.Login, ""),
		ID:              string(ru.ID),
		Email:           stringOr(ru.Email, ""),
		FirstName:       stringOr(ru.FirstName, ""),
		LastName:        stringOr(ru.LastName, ""),
		TotalUp:         amountOr(ru.TotalUp),
		TotalDown:       amountOr(ru.TotalDown),
		Transactions:    normalizeTransactions(ru.Transactions),
		TopTransactions: normalizeTransactions(ru.TopTransactions),
		TopSkills:       normalizeTransactions(ru.TopSkills),
	}

	// The aggregate chain is the one lookup deep enough to warrant the guarded
	// accessor; each link is independently optional.
	sum := Get(func() *Amount { return ru.TransactionsAggregate.Aggregate.Sum.Amount }, nil)
	if sum != nil {
		v := float64(*sum)
		u.AggregateSum = &v
	}
	return u
}

func normalizeTransactions(raw []rawTransaction) []Transaction {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Transaction, len(raw))
	for i, rt := range raw {
		out[i] = Transaction{
			Amount:    float64(rt.Amount),
			Path:      stringOr(rt.Path, ""),
			CreatedAt: stringOr(rt.CreatedAt, ""),
			Type:      stringOr(rt.Type, ""),
		}
	}
	return out
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func amountOr(a *Amount) float64 {
	if a == nil {
		return 0
	}
	return float64(*a)
}

// DisplayName returns the last non-empty slash-delimited segment of a
// transaction path, or "(unknown)" when the path is absent. A path with no
// non-empty segments is returned as-is.
func DisplayName(path string) string {
	if path == "" {
		return "(unknown)"
	}
	var last string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			last = part
		}
	}
	if last == "" {
		return path
	}
	return last
}
