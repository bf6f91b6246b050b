// Package model contains the view-model types passed between the domain
// layer and the HTTP adapters.
package model

// SeriesPoint is one labeled value in a chart series.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// SkillEntry is one aggregated skill with its best observed amount.
type SkillEntry struct {
	Key    string  `json:"skill_key"`
	Amount float64 `json:"amount"`
}

// TransactionRow is one enriched list row ready for display.
type TransactionRow struct {
	DisplayName        string  `json:"display_name"`
	FormattedAmount    string  `json:"formatted_amount"`
	PercentOfTotal     int     `json:"percent_of_total"`
	BarWidthPercent    int     `json:"bar_width_percent"`
	FormattedTimestamp string  `json:"formatted_timestamp"`
	RawPath            string  `json:"raw_path"`
	Amount             float64 `json:"amount"`
}

// WelcomeModel is the summary card body.
type WelcomeModel struct {
	Username         string  `json:"username"`
	ID               string  `json:"id"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	TotalXP          float64 `json:"total_xp"`
	TotalXPFormatted string  `json:"total_xp_formatted"`
}

// AuditModel is the audit-ratio pie body. Ratio is nil when the user has
// received no audits; rendering must show a placeholder, never zero.
type AuditModel struct {
	Done              float64       `json:"done"`
	Received          float64       `json:"received"`
	DoneFormatted     string        `json:"done_formatted"`
	ReceivedFormatted string        `json:"received_formatted"`
	Ratio             *float64      `json:"ratio"`
	RatioFormatted    string        `json:"ratio_formatted"`
	Series            []SeriesPoint `json:"series"`
	Empty             bool          `json:"empty"`
}

// ListModel is a transaction-list body shared by the projects and recent views.
type ListModel struct {
	TotalXP          float64          `json:"total_xp"`
	TotalXPFormatted string           `json:"total_xp_formatted"`
	Rows             []TransactionRow `json:"rows"`
	Empty            bool             `json:"empty"`
}

// SkillsModel is the radar-chart body.
type SkillsModel struct {
	Skills []SkillEntry `json:"skills"`
	Empty  bool         `json:"empty"`
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	SessionID string `json:"session_id"`
	Login     string `json:"login"`
	Degraded  bool   `json:"degraded"`
}

// ViewResult is the rendered output for one view selection. Exactly one of
// the body pointers is set, matching View.
type ViewResult struct {
	View    string        `json:"view"`
	Title   string        `json:"title"`
	Welcome *WelcomeModel `json:"welcome,omitempty"`
	Audit   *AuditModel   `json:"audit,omitempty"`
	List    *ListModel    `json:"list,omitempty"`
	Skills  *SkillsModel  `json:"skills,omitempty"`
}
