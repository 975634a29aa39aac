package ui

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"tmap/internal/config"
	"tmap/internal/domain"
)

// Formatter formats and displays resolution output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintScripts prints the resolved test scripts, one per line.
func (f *Formatter) PrintScripts(scripts []string) {
	for _, script := range scripts {
		fmt.Println(script)
	}
}

// PrintRunHeader announces the resolved set before handing off to the runner.
func (f *Formatter) PrintRunHeader(scripts []string) {
	color.Cyan("Running %d test script(s):", len(scripts))
	for _, script := range scripts {
		fmt.Printf("  %s\n", script)
	}
	fmt.Println()
}

// PrintPackageTable prints every package -> test-scripts mapping.
func (f *Formatter) PrintPackageTable(snapshot *domain.IndexSnapshot) {
	if len(snapshot.Packages) == 0 {
		color.Yellow("No package mappings found")
		return
	}

	packages := make([]string, 0, len(snapshot.Packages))
	for pkg := range snapshot.Packages {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, pkg := range packages {
		fmt.Fprintf(w, "%s\t%s\n", color.CyanString(pkg), strings.Join(snapshot.Packages[pkg], " "))
	}
	w.Flush()
}
