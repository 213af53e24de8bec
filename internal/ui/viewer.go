package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"gotestx/internal/config"
	"gotestx/internal/domain"
	"gotestx/internal/storage"
)

// Viewer displays a run report in an interactive TUI
type Viewer interface {
	View(report *domain.RunReport) error
}

// DiagViewer displays expansion diagnostics in an interactive TUI
type DiagViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewDiagViewer creates a new DiagViewer
func NewDiagViewer(cfg *config.Config, st storage.Storage) *DiagViewer {
	return &DiagViewer{
		config:  cfg,
		storage: st,
	}
}

// View displays expansion diagnostics in an interactive TUI
func (dv *DiagViewer) View(report *domain.RunReport) error {
	if len(report.Details) == 0 {
		color.Green("✓ No expansion diagnostics found!")
		return nil
	}

	// Track resolved diagnostics (by index) - loaded from the report
	resolved := make(map[int]bool)
	for i, d := range report.Details {
		if d.Resolved {
			resolved[i] = true
		}
	}

	saveResolvedStatus := func() error {
		for i := range report.Details {
			report.Details[i].Resolved = resolved[i]
		}
		return dv.storage.SaveReport(report)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	getListItemText := func(index int) string {
		d := report.Details[index]
		label := d.Function
		if label == "" {
			label = fmt.Sprintf("Diagnostic %d", index+1)
		}
		if resolved[index] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s (%s)[white]", index+1, label, d.Kind)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s ([red]%s[white])", index+1, label, d.Kind)
	}

	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		list.SetItemText(index, getListItemText(index), "")
	}

	for i := range report.Details {
		list.AddItem(getListItemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	countUnresolved := func() int {
		count := 0
		for i := range report.Details {
			if !resolved[i] {
				count++
			}
		}
		return count
	}

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Expansion Diagnostics (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ",
			len(report.Details), countUnresolved()))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(report.Details) {
			d := report.Details[index]
			statsView.SetText(dv.formatDiagStats(d, index+1))
			detailsView.SetText(dv.formatDiagDetails(d))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(report.Details) {
					resolved[index] = !resolved[index]
					updateListItem(index)
					updateHeader()
					updateDetails()
					// Persisting the resolved state is best-effort.
					_ = saveResolvedStatus()
				}
				return nil
			}
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
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// formatDiagDetails formats a diagnostic for display using tview color tags
func (dv *DiagViewer) formatDiagDetails(d domain.Diagnostic) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ %s: %s[white]\n\n", d.Kind, d.Function)
	fmt.Fprintf(w, "[cyan]File: %s[white]\n", d.File)
	fmt.Fprintf(w, "[yellow]Location: %s[white]\n", d.Position())
	if d.SetupFile != "" {
		fmt.Fprintf(w, "[yellow]Setup declared at: %s:%d[white]\n", d.SetupFile, d.SetupLine)
	}
	fmt.Fprintf(w, "\n")

	if d.Message != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n", d.Message)
	}

	w.Flush()
	return builder.String()
}

// formatDiagStats formats the stats header for a diagnostic
func (dv *DiagViewer) formatDiagStats(d domain.Diagnostic, number int) string {
	path := d.File
	if path == "" {
		path = "Unknown file"
	}
	fn := d.Function
	if fn == "" {
		fn = fmt.Sprintf("Diagnostic %d", number)
	}
	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]::[yellow]%s[white]\n", path, fn)
}
