package derive

// Option applies a configuration option to the Deriver.
type Option func(*Deriver)

// WithListLimit caps the project and recent-transaction lists.
func WithListLimit(limit int) Option {
	return func(d *Deriver) {
		if limit > 0 {
			d.listLimit = limit
		}
	}
}

// WithSkillLimit caps the top-skills series.
func WithSkillLimit(limit int) Option {
	return func(d *Deriver) {
		if limit > 0 {
			d.skillLimit = limit
		}
	}
}
