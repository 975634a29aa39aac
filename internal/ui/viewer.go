package ui

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"tmap/internal/config"
	"tmap/internal/domain"
)

// Viewer displays package-to-test-script mappings in an interactive TUI
type Viewer struct {
	config *config.Config
}

// NewViewer creates a new Viewer
func NewViewer(cfg *config.Config) *Viewer {
	return &Viewer{config: cfg}
}

// View shows the snapshot's packages on the left and the test scripts
// covering the selected package on the right.
func (v *Viewer) View(snapshot *domain.IndexSnapshot) error {
	if len(snapshot.Packages) == 0 {
		color.Yellow("No package mappings found")
		return nil
	}

	packages := make([]string, 0, len(snapshot.Packages))
	for pkg := range snapshot.Packages {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)

	app := tview.NewApplication()

	// Package list (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for _, pkg := range packages {
		list.AddItem(fmt.Sprintf("[yellow]%s[white]", pkg), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	// Script details (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsContainer, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)
	headerView.SetText(fmt.Sprintf(
		" Package Mappings (%d packages, root %s) | Use ↑↓ to navigate, → to view scripts, ← to go back, Ctrl+C to exit ",
		len(packages), snapshot.Meta.ProjectRoot,
	))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(packages) {
			pkg := packages[index]
			detailsView.SetText(v.formatScripts(pkg, snapshot.Packages[pkg]))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})
	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})
	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// formatScripts formats the scripts covering a package using tview color tags
func (v *Viewer) formatScripts(pkg string, scripts []string) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[cyan]Package: %s[white]\n\n", pkg)
	fmt.Fprintf(w, "[yellow]Covered by %d test script(s):[white]\n", len(scripts))
	for _, script := range scripts {
		fmt.Fprintf(w, "  %s\n", script)
	}

	w.Flush()
	return builder.String()
}
