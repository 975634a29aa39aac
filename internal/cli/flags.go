package cli

import "tmap/internal/config"

// Flags holds command-line flags
type Flags struct {
	DryRun   bool
	Root     string
	Runner   string
	JSON     bool
	Output   string
	FromFile string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		DryRun:   f.DryRun,
		Root:     f.Root,
		Runner:   f.Runner,
		JSON:     f.JSON,
		Output:   f.Output,
		FromFile: f.FromFile,
	}
}
