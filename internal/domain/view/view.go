// Package view owns the single-active-view state machine and the renderers
// that turn a normalized user record into plain view models.
package view

import (
	"fmt"
	"strings"
	"sync"

	"profilehub/internal/domain/derive"
	"profilehub/internal/domain/format"
	"profilehub/internal/domain/model"
	"profilehub/internal/domain/payload"
)

// ID identifies one of the mutually-exclusive display modes.
type ID string

// The fixed view set. Welcome doubles as the fallback for unknown input.
const (
	Welcome  ID = "welcome"
	Activity ID = "activity"
	XP       ID = "xp"
	Projects ID = "projects"
	Stats    ID = "stats"
)

// Placeholders for absent display fields.
const (
	placeholderUser = "User"
	placeholderNA   = "N/A"
)

// All returns the known identifiers in display order.
func All() []ID {
	return []ID{Welcome, Activity, XP, Projects, Stats}
}

// Normalize maps arbitrary input onto the fixed set; anything unknown
// becomes Welcome.
func Normalize(raw string) ID {
	switch ID(strings.TrimSpace(raw)) {
	case Welcome, Activity, XP, Projects, Stats:
		return ID(strings.TrimSpace(raw))
	default:
		return Welcome
	}
}

// Machine holds the currently selected view. Selecting one identifier
// implicitly deselects every other, so at most one view is ever active.
type Machine struct {
	mu       sync.Mutex
	selected ID
}

// NewMachine creates a machine with the initial selection; empty or unknown
// input starts at Welcome.
func NewMachine(initial string) *Machine {
	return &Machine{selected: Normalize(initial)}
}

// Select normalizes raw and makes it the active view, returning the result.
func (m *Machine) Select(raw string) ID {
	id := Normalize(raw)
	m.mu.Lock()
	m.selected = id
	m.mu.Unlock()
	return id
}

// Selected returns the active view.
func (m *Machine) Selected() ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// Registry maps view identifiers to render functions over one deriver
// configuration. Rendering is synchronous and total: a nil record renders the
// documented empty state for every view.
type Registry struct {
	deriver   *derive.Deriver
	renderers map[ID]func(*payload.User) model.ViewResult
}

// NewRegistry builds the renderer set for the five views.
func NewRegistry(d *derive.Deriver) *Registry {
	r := &Registry{deriver: d}
	r.renderers = map[ID]func(*payload.User) model.ViewResult{
		Welcome:  r.renderWelcome,
		Activity: r.renderActivity,
		XP:       r.renderXP,
		Projects: r.renderProjects,
		Stats:    r.renderStats,
	}
	return r
}

// Render runs the renderer for id against the record. Unknown identifiers
// fall back to the welcome renderer.
func (r *Registry) Render(id ID, u *payload.User) model.ViewResult {
	render, ok := r.renderers[id]
	if !ok {
		render = r.renderWelcome
	}
	return render(u)
}

func (r *Registry) renderWelcome(u *payload.User) model.ViewResult {
	total := r.deriver.TotalXP(u)
	welcome := &model.WelcomeModel{
		Username:         placeholderUser,
		ID:               placeholderNA,
		FullName:         placeholderNA,
		Email:            placeholderNA,
		TotalXP:          total,
		TotalXPFormatted: format.Magnitude(total),
	}
	if u != nil {
		if u.Login != "" {
			welcome.Username = u.Login
		}
		if u.ID != "" {
			welcome.ID = u.ID
		}
		if u.Email != "" {
			welcome.Email = u.Email
		}
		if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
			welcome.FullName = name
		}
	}
	return model.ViewResult{View: string(Welcome), Title: "Hello There!", Welcome: welcome}
}

func (r *Registry) renderActivity(u *payload.User) model.ViewResult {
	audit := &model.AuditModel{RatioFormatted: placeholderNA}
	if u != nil {
		audit.Done = u.TotalUp
		audit.Received = u.TotalDown
	}
	audit.DoneFormatted = format.Thousands(audit.Done)
	audit.ReceivedFormatted = format.Thousands(audit.Received)
	audit.Empty = audit.Done+audit.Received == 0
	if ratio := r.deriver.AuditRatio(u); ratio != nil {
		audit.Ratio = ratio
		audit.RatioFormatted = fmt.Sprintf("%.1f", *ratio)
	}
	if !audit.Empty {
		audit.Series = []model.SeriesPoint{
			{Label: "Audits Done", Value: audit.Done},
			{Label: "Audits Received", Value: audit.Received},
		}
	}
	return model.ViewResult{View: string(Activity), Title: "Audit Ratio", Audit: audit}
}

func (r *Registry) renderXP(u *payload.User) model.ViewResult {
	total := r.deriver.TotalXP(u)
	txs := r.deriver.TopByMagnitude(u)
	list := &model.ListModel{
		TotalXP:          total,
		TotalXPFormatted: format.Magnitude(total),
		Rows:             r.deriver.Rows(txs, total),
		Empty:            len(txs) == 0,
	}
	return model.ViewResult{View: string(XP), Title: "Top 10 Projects", List: list}
}

func (r *Registry) renderProjects(u *payload.User) model.ViewResult {
	skills := r.deriver.TopSkills(u)
	return model.ViewResult{
		View:   string(Projects),
		Title:  "Top Skills",
		Skills: &model.SkillsModel{Skills: skills, Empty: len(skills) == 0},
	}
}

func (r *Registry) renderStats(u *payload.User) model.ViewResult {
	total := r.deriver.TotalXP(u)
	txs := r.deriver.TopByRecency(u)
	list := &model.ListModel{
		TotalXP:          total,
		TotalXPFormatted: format.Magnitude(total),
		Rows:             r.deriver.Rows(txs, total),
		Empty:            len(txs) == 0,
	}
	return model.ViewResult{View: string(Stats), Title: "Last 10 Transactions", List: list}
}
