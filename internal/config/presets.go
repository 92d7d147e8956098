package config

// Presets are named starting configurations for common scenarios.
var Presets = map[string]func() *Config{
	"reference": DefaultConfig,

	// Small grid and short run for quick checks.
	"coarse": func() *Config {
		c := DefaultConfig()
		c.Grid = GridConfig{Nx: 50, Nz: 50, Dx: 10, Dz: 10}
		c.Intrusion.XMin, c.Intrusion.XMax = 100, 400
		c.Intrusion.ZMin, c.Intrusion.ZMax = 200, 400
		c.Intrusion.Width = 120
		c.Intrusion.TracersPerDike = 25
		c.Run.MaxKyr = 2
		return c
	},

	// Frequent lens-shaped intrusions; drives the section to a
	// sustained partial-melt zone.
	"hot": func() *Config {
		c := DefaultConfig()
		c.Intrusion.IntervalYears = 100
		c.Intrusion.Shape = "lens"
		c.Intrusion.Thickness = 20
		return c
	},

	// Rare intrusions into a cold section; individual sills solidify
	// fully between events.
	"sparse": func() *Config {
		c := DefaultConfig()
		c.Intrusion.IntervalYears = 2000
		c.Run.MaxKyr = 50
		return c
	},
}

// GetPreset returns a fresh config for name, or nil when unknown.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}
