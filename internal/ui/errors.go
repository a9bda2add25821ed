package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"dtp/internal/config"
	"dtp/internal/domain"
	"dtp/internal/storage"
)

// ErrorViewer displays documentation failures in an interactive TUI
type ErrorViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(cfg *config.Config, st storage.Storage) *ErrorViewer {
	return &ErrorViewer{
		config:  cfg,
		storage: st,
	}
}

// View displays documentation failures in an interactive TUI
func (ev *ErrorViewer) View(results *domain.RunOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No documentation failures found!")
		return nil
	}

	// Track resolved failures (by index) - load from JSON
	resolved := make(map[int]bool)
	for i, failure := range results.Details {
		if failure.Resolved {
			resolved[i] = true
		}
	}

	// Function to save resolved status back to the results file
	saveResolvedStatus := func() error {
		for i := range results.Details {
			results.Details[i].Resolved = resolved[i]
		}
		return ev.storage.SaveOutput(results)
	}

	// Create the application
	app := tview.NewApplication()

	// Create list for failed regions (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetSelectedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
			// When Enter is pressed, we'll show details (handled by key handler)
		})

	// Function to get formatted text for a list item
	getListItemText := func(index int) string {
		failure := results.Details[index]
		label := tview.Escape(failure.Location() + " " + failure.Kind)

		// Check if resolved
		isResolved := resolved[index]
		if isResolved {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, label)
		} else {
			return fmt.Sprintf("[yellow]%d.[white] %s", index+1, label)
		}
	}

	// Function to update list item display with resolved status
	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		mainText := getListItemText(index)
		list.SetItemText(index, mainText, "")
	}

	// Add failures to the list with numbers and colors
	for i := range results.Details {
		mainText := getListItemText(i)
		list.AddItem(mainText, "", 0, nil)
	}

	// Set list colors for better visibility
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	// Create stats header view (shows path and region info)
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	// Create text view for failure details (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	// Create a container with right padding for the details view
	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	// Create right side layout: stats on top, details below
	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// Create simple flex layout: list on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	// Count unresolved failures
	countUnresolved := func() int {
		count := 0
		for i := range results.Details {
			if !resolved[i] {
				count++
			}
		}
		return count
	}

	// Create header text view (so we can update it)
	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	// Function to update header
	updateHeader := func() {
		unresolved := countUnresolved()
		headerText := fmt.Sprintf(" Documentation Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ", len(results.Details), unresolved)
		headerView.SetText(headerText)
	}

	// Set initial header
	updateHeader()

	// Update details when selection changes
	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Details) {
			failure := results.Details[index]

			// Update stats header
			statsText := ev.formatFailureStats(failure, index+1)
			statsView.SetText(statsText)

			// Update failure details
			detailsView.SetText(ev.formatFailureDetails(failure))
		}
	}

	// Set up keyboard handlers for list
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
				if index >= 0 && index < len(results.Details) {
					resolved[index] = !resolved[index]
					updateListItem(index)
					updateHeader()
					updateDetails()
					if err := saveResolvedStatus(); err != nil {
						_ = err
					}
				}
				return nil
			}
		}
		return event
	})

	// Set up keyboard handlers for details view
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

	// Update details when list selection changes
	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	// Set initial details
	updateDetails()

	// Create main layout with title
	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(
			tview.NewBox().SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
				return x, y, width, height
			}),
			1, 0, false,
		).
		AddItem(flex, 0, 1, true)

	// Run the application
	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// formatFailureDetails formats a failure for display using tview color tags ([red], [cyan], etc.)
// Doc snippets are full of brackets, so every raw snippet goes through tview.Escape.
func (ev *ErrorViewer) formatFailureDetails(failure domain.Failure) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	// Region kind and location
	fmt.Fprintf(w, "[red]✗ %s region[white]\n\n", failure.Kind)
	fmt.Fprintf(w, "[cyan]File: %s[white]\n", tview.Escape(failure.FilePath))
	if failure.Line > 0 {
		fmt.Fprintf(w, "[yellow]Location: %s[white]\n", tview.Escape(failure.Location()))
	}
	fmt.Fprintf(w, "\n")

	// Failure message
	if failure.Message != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n\n", tview.Escape(failure.Message))
	}

	// Evaluated source
	if failure.Source != "" {
		fmt.Fprintf(w, "[yellow]Source:[white]\n%s\n\n", tview.Escape(failure.Source))
	}

	// Expected vs got
	if failure.Expected != "" || failure.Got != "" {
		fmt.Fprintf(w, "[yellow]Expected:[white]\n%s\n\n", tview.Escape(failure.Expected))
		fmt.Fprintf(w, "[yellow]Got:[white]\n%s\n\n", tview.Escape(failure.Got))
	}

	// Diff, with removed lines in red and added lines in green
	if failure.Diff != "" {
		fmt.Fprintf(w, "[yellow]Diff:[white]\n")
		for _, line := range strings.Split(failure.Diff, "\n") {
			switch {
			case strings.HasPrefix(line, "- "):
				fmt.Fprintf(w, "[red]%s[white]\n", tview.Escape(line))
			case strings.HasPrefix(line, "+ "):
				fmt.Fprintf(w, "[green]%s[white]\n", tview.Escape(line))
			default:
				fmt.Fprintf(w, "%s\n", tview.Escape(line))
			}
		}
	}

	w.Flush()
	return builder.String()
}

// formatFailureStats formats the stats header for a failure
func (ev *ErrorViewer) formatFailureStats(failure domain.Failure, number int) string {
	var builder strings.Builder

	path := failure.FilePath
	if path == "" {
		path = "Unknown path"
	}

	statsLine := fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]::[yellow]%s #%d[white]", tview.Escape(path), failure.Kind, number)
	builder.WriteString(statsLine)
	builder.WriteString("\n")

	return builder.String()
}
