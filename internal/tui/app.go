// Package tui provides the interactive Bubble Tea dashboard for iexpense.
package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/iexpense/internal/expenses"
	"github.com/theirongolddev/iexpense/internal/export"
	"github.com/theirongolddev/iexpense/internal/model"
	"github.com/theirongolddev/iexpense/internal/pipeline"
	"github.com/theirongolddev/iexpense/internal/tui/components"
	"github.com/theirongolddev/iexpense/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Options configures the dashboard.
type Options struct {
	Currency   string
	Categories []string
	TypeFilter string
	ExportDir  string
	Logger     *slog.Logger
}

// ExportDoneMsg is sent when a background export finishes.
type ExportDoneMsg struct {
	Format export.Format
	Path   string
	Err    error
}

type formKind int

const (
	formNone formKind = iota
	formAdd
	formBudget
)

const (
	tabExpenses = iota
	tabChart
	tabBudget
)

// App is the root Bubble Tea model.
type App struct {
	store  *expenses.Store
	opts   Options
	logger *slog.Logger

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Expense list state
	list listState

	// Modal huh form for adding an expense or setting the budget
	form       *huh.Form
	formKind   formKind
	addVals    ExpenseValues
	budgetVals BudgetValues

	// Export state
	spinner    spinner.Model
	exporting  bool
	exported   bool
	exportPath string

	// Last user-facing message, cleared by the next key press
	flash    string
	flashBad bool
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// NewApp creates a new TUI app model over an already loaded store.
func NewApp(store *expenses.Store, opts Options) App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Currency == "" {
		opts.Currency = "$"
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		store:   store,
		opts:    opts,
		logger:  opts.Logger,
		spinner: sp,
		list: listState{
			typeFilter: opts.TypeFilter,
			selected:   make(map[uuid.UUID]bool),
		},
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth()).WithHeight(msg.Height)
		}
		return a, nil

	case ExportDoneMsg:
		a.exporting = false
		if msg.Err != nil {
			a.logger.Error("export failed", "format", msg.Format, "path", msg.Path, "error", msg.Err)
			a.setFlash(fmt.Sprintf("Export failed: %v", msg.Err), true)
			return a, nil
		}
		a.exported = true
		a.exportPath = msg.Path
		a.setFlash("Exported "+msg.Path, false)
		return a, nil

	case spinner.TickMsg:
		if a.exporting {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		return a.updateKey(msg)
	}

	// Forward unhandled messages to the open form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	a.flash = ""

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.activeTab == tabExpenses {
		if m, cmd, handled := a.updateExpensesKey(key); handled {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "a":
		return a.openAddForm()
	case "s":
		return a.openBudgetForm()
	case "f":
		a.cycleFilter()
		return a, nil
	case "x":
		return a.startExport(export.FormatCSV)
	case "w":
		return a.startExport(export.FormatXLSX)
	case "p":
		return a.startExport(export.FormatPDF)
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if r := []rune(key); len(r) == 1 {
		if idx := components.TabIdxByKey(r[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabExpenses {
			a.moveCursor(-1)
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabExpenses {
			a.moveCursor(1)
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// ─── Forms ──────────────────────────────────────────────────────

func (a App) openAddForm() (tea.Model, tea.Cmd) {
	typ := a.list.typeFilter
	if typ == "" && len(a.opts.Categories) > 0 {
		typ = a.opts.Categories[0]
	}
	a.addVals = ExpenseValues{Type: typ}
	a.formKind = formAdd
	a.form = NewExpenseForm(a.opts.Categories, &a.addVals)
	return a, a.initForm()
}

func (a App) openBudgetForm() (tea.Model, tea.Cmd) {
	a.budgetVals = BudgetValues{}
	if b := a.store.Budget(); !b.IsZero() {
		a.budgetVals.Amount = b.String()
	}
	a.formKind = formBudget
	a.form = NewBudgetForm(&a.budgetVals)
	return a, a.initForm()
}

func (a *App) initForm() tea.Cmd {
	if a.width > 0 {
		a.form = a.form.WithWidth(a.formWidth()).WithHeight(a.height)
	}
	return a.form.Init()
}

func (a App) formWidth() int {
	return min(a.width-4, 60)
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.submitForm()
		a.form = nil
		a.formKind = formNone
		return a, nil
	case huh.StateAborted:
		a.form = nil
		a.formKind = formNone
		return a, nil
	}
	return a, cmd
}

func (a *App) submitForm() {
	switch a.formKind {
	case formAdd:
		e, err := a.addVals.Expense()
		if err != nil {
			a.setFlash(err.Error(), true)
			return
		}
		a.store.Add(e)
		a.afterMutation()
		a.setFlash(fmt.Sprintf("Added %s", e.Name), false)
	case formBudget:
		d, err := a.budgetVals.Budget()
		if err != nil {
			a.setFlash(err.Error(), true)
			return
		}
		a.store.SetBudget(d)
		a.afterMutation()
		a.setFlash("Budget updated", false)
	}
}

// afterMutation resets state derived from the record list.
func (a *App) afterMutation() {
	a.exported = false
	a.list.clamp(len(a.visible()))
}

func (a *App) setFlash(text string, bad bool) {
	a.flash = text
	a.flashBad = bad
}

// ─── Export ─────────────────────────────────────────────────────

func (a App) startExport(f export.Format) (tea.Model, tea.Cmd) {
	if a.exporting {
		return a, nil
	}
	state := a.store.State()
	state.Records = a.visible()
	path := filepath.Join(a.opts.ExportDir, export.DefaultFilename(f))

	a.exporting = true
	return a, tea.Batch(
		a.spinner.Tick,
		exportCmd(f, path, state, export.Options{CurrencySymbol: a.opts.Currency}),
	)
}

func exportCmd(f export.Format, path string, state model.BudgetState, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		return ExportDoneMsg{Format: f, Path: path, Err: export.Write(f, path, state, opts)}
	}
}

// ─── Filter ─────────────────────────────────────────────────────

// filterChoices lists the type filters offered by cycling: all types first,
// then the configured categories, then any other types found in the data.
func (a App) filterChoices() []string {
	choices := []string{""}
	seen := map[string]bool{"": true}
	add := func(types []string) {
		for _, t := range types {
			if !seen[t] {
				seen[t] = true
				choices = append(choices, t)
			}
		}
	}
	add(a.opts.Categories)
	add(pipeline.Types(a.store.Items()))
	return choices
}

func (a *App) cycleFilter() {
	choices := a.filterChoices()
	next := 0
	for i, c := range choices {
		if c == a.list.typeFilter {
			next = (i + 1) % len(choices)
			break
		}
	}
	a.list.typeFilter = choices[next]
	a.list.cursor = 0
	a.list.offset = 0
	clear(a.list.selected)
}

// visible returns the records shown under the current type filter.
func (a App) visible() []model.Expense {
	return a.store.Filtered(a.list.typeFilter)
}

// ─── View ───────────────────────────────────────────────────────

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  iexpense needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(a.form.View())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"e c b", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move in the expense list"},
			{"g G", "First / Last expense"},
		}},
		{"Expenses", []struct{ key, desc string }{
			{"a", "Add expense"},
			{"space", "Select / Unselect"},
			{"d", "Delete selected (or current)"},
			{"esc", "Clear selection"},
			{"f", "Cycle type filter"},
			{"s", "Set budget"},
		}},
		{"Export", []struct{ key, desc string }{
			{"x", "CSV"},
			{"w", "Excel workbook"},
			{"p", "PDF report"},
		}},
		{"", []struct{ key, desc string }{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		if sec.title != "" {
			b.WriteString(sectionStyle.Render(sec.title))
			b.WriteString("\n")
		}
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar and filter pill
	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderFilterRow(w)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.status())

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabExpenses:
		content = a.renderExpensesTab(cw, contentH)
	case tabChart:
		content = a.renderChartTab(cw)
	case tabBudget:
		content = a.renderBudgetTab(cw)
	}

	// 5. Exactly contentH lines, each filled with background
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderFilterRow(w int) string {
	t := theme.Active
	pill := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	filter := a.list.typeFilter
	if filter == "" {
		filter = "All types"
	}
	s := pill.Render(" ") + accent.Render(filter) +
		pill.Render(fmt.Sprintf(" │ %d expenses", len(a.visible())))
	if n := len(a.list.selected); n > 0 {
		s += pill.Render(" │ ") + accent.Render(fmt.Sprintf("%d selected", n))
	}
	if a.exported {
		s += pill.Render(" │ ") + lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render("Exported")
	}
	return lipgloss.NewStyle().Background(t.Surface).Width(w).Render(s + pill.Render(" "))
}

func (a App) statusHints() string {
	if a.activeTab == tabExpenses {
		return "[a]dd  [d]elete  [f]ilter  [x]port  [?]help  [q]uit"
	}
	return "[a]dd  [s]et budget  [x]port  [?]help  [q]uit"
}

// status picks the right-hand status bar message. A failed save outranks
// everything else since the data on disk no longer matches the screen.
func (a App) status() components.Status {
	if err := a.store.PersistErr(); err != nil {
		return components.Status{Text: "Not saved: " + err.Error(), Bad: true}
	}
	if a.exporting {
		return components.Status{Text: a.spinner.View() + " Exporting..."}
	}
	if a.flash != "" {
		return components.Status{Text: a.flash, Bad: a.flashBad, Good: !a.flashBad}
	}
	return components.Status{}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
