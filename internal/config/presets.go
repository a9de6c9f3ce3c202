package config

const (
	hour = 3600.0
	day  = 24 * hour
	year = 8766 * hour
)

var Presets = map[string]*Config{
	"default": {
		Bodies: DefaultBodies, Dt: DefaultDt, TotalTime: DefaultTotalTime,
		Mode: "directed",
	},
	"year": {
		Bodies: DefaultBodies, Dt: hour, TotalTime: year,
		Mode: "directed",
	},
	"decade": {
		Bodies: DefaultBodies, Dt: hour, TotalTime: 315360000,
		Mode: "directed",
	},
	"planets": {
		Bodies: 0, Dt: hour, TotalTime: 30 * day,
		Mode: "directed",
	},
	"swarm": {
		Bodies: 200, Dt: hour, TotalTime: 30 * day,
		Mode: "symmetric",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

// Apply overlays the preset's run shape onto cfg, leaving output and
// other I/O settings alone.
func (c *Config) Apply(p *Config) {
	c.Bodies = p.Bodies
	c.Dt = p.Dt
	c.TotalTime = p.TotalTime
	if p.Mode != "" {
		c.Mode = p.Mode
	}
}
