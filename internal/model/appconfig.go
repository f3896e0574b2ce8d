package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new jobs
	DefaultWidth  int    `toml:"default_width" json:"default_width"`
	DefaultOrder  string `toml:"default_order" json:"default_order"`
	DefaultEngine string `toml:"default_engine" json:"default_engine"`

	// Export preferences
	LabelsWithQR bool `toml:"labels_with_qr" json:"labels_with_qr"` // Print QR codes on box labels

	RecentJobs []string `toml:"recent_jobs" json:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig populated with values
// matching DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultWidth:  defaults.Width,
		DefaultOrder:  string(defaults.Order),
		DefaultEngine: string(defaults.Engine),
		LabelsWithQR:  true,
		RecentJobs:    []string{},
	}
}

// ApplyToSettings copies the config defaults into s. Values that do not
// parse leave the corresponding setting untouched.
func (c AppConfig) ApplyToSettings(s *Settings) {
	if c.DefaultWidth > 0 {
		s.Width = c.DefaultWidth
	}
	if o, err := ParseOrder(c.DefaultOrder); err == nil {
		s.Order = o
	}
	if e, err := ParseEngine(c.DefaultEngine); err == nil {
		s.Engine = e
	}
}

// AddRecentJob puts path at the front of the recent list, dropping
// duplicates and keeping at most max entries.
func (c *AppConfig) AddRecentJob(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentJobs = recent
}
