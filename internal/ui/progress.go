package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ScanProgress renders a progress bar while test scripts are scanned
type ScanProgress struct {
	bar *progressbar.ProgressBar
}

// NewScanProgress creates an idle progress sink; the bar appears on Start.
func NewScanProgress() *ScanProgress {
	return &ScanProgress{}
}

// Start initializes the bar for the given number of files.
func (p *ScanProgress) Start(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.CyanString("Scanning test scripts")),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Add advances the bar by n scanned files.
func (p *ScanProgress) Add(n int) {
	if p.bar != nil {
		p.bar.Add(n)
	}
}

// Finish completes the bar.
func (p *ScanProgress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
