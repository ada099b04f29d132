package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/novel-matrix/internal/config"
	"github.com/gravitrone/novel-matrix/internal/export"
	"github.com/gravitrone/novel-matrix/internal/matrix"
	"github.com/gravitrone/novel-matrix/internal/novel"
	"github.com/gravitrone/novel-matrix/internal/session"
	"github.com/gravitrone/novel-matrix/internal/ui/components"
)

// --- Modes ---

type appMode int

const (
	modeGrid appMode = iota
	modeApplyConfirm
	modeExport
	modeQuitConfirm
	modeHelp
)

const (
	cellWidth     = 9
	maxLabelWidth = 32
	// banner, tabs, grid header and rule, info line, status bar
	chromeHeight = 20
)

// --- Messages ---

type clearToastMsg struct{}

type applyDoneMsg struct {
	pending *session.Pending
	err     error
}

type exportDoneMsg struct {
	path string
	err  error
}

type reloadDoneMsg struct {
	project *novel.Novel
	err     error
}

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model: one tab per category over the session's grid.
type App struct {
	session *session.Session
	config  *config.Config
	keys    keyMap
	help    help.Model

	width  int
	height int

	tab  int
	rows components.Window
	cols [4]components.Window

	mode           appMode
	busy           bool
	quitAfterApply bool

	exportInput textinput.Model
	exportErr   string

	err   string
	toast *appToast
}

// NewApp creates the root application model.
func NewApp(s *session.Session, cfg *config.Config) App {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	applyTheme(cfg.Theme)

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 512

	a := App{
		session:     s,
		config:      cfg,
		keys:        newKeyMap(cfg.VimKeys),
		help:        newHelp(),
		tab:         int(matrix.Arc),
		rows:        components.NewWindow(10),
		exportInput: input,
	}
	for i := range a.cols {
		a.cols[i] = components.NewWindow(4)
	}
	a.syncWindows()
	return a
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.syncWindows()
		return a, nil

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case applyDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.err = msg.err.Error()
			a.quitAfterApply = false
			return a, nil
		}
		a.session.Accept(msg.pending)
		a.syncWindows()
		if a.quitAfterApply {
			return a, tea.Quit
		}
		return a, a.setToast("success", "Changes applied.")

	case exportDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.err = msg.err.Error()
			return a, nil
		}
		return a, a.setToast("success", "Exported to "+msg.path)

	case reloadDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.err = msg.err.Error()
			return a, nil
		}
		a.session.Replace(msg.project)
		a.syncWindows()
		return a, a.setToast("info", "Project reloaded.")

	case tea.KeyMsg:
		switch a.mode {
		case modeApplyConfirm:
			return a.handleApplyConfirmKeys(msg)
		case modeExport:
			return a.handleExportKeys(msg)
		case modeQuitConfirm:
			return a.handleQuitKeys(msg)
		case modeHelp:
			if isBack(msg) || key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Quit) {
				a.mode = modeGrid
			}
			return a, nil
		}
		if a.err != "" {
			a.err = ""
		}
		return a.handleGridKeys(msg)
	}

	if a.mode == modeExport {
		var cmd tea.Cmd
		a.exportInput, cmd = a.exportInput.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	switch {
	case key.Matches(msg, k.Quit):
		if a.busy {
			return a, a.setToast("info", "Still working, try again in a moment.")
		}
		if a.session.Dirty() {
			a.mode = modeQuitConfirm
			return a, nil
		}
		return a, tea.Quit
	case key.Matches(msg, k.Help):
		a.mode = modeHelp
		return a, nil
	}

	if a.busy {
		return a, nil
	}

	col := &a.cols[a.tab]
	switch {
	case key.Matches(msg, k.Up):
		a.rows.Up()
	case key.Matches(msg, k.Down):
		a.rows.Down()
	case key.Matches(msg, k.Left):
		col.Up()
	case key.Matches(msg, k.Right):
		col.Down()
	case key.Matches(msg, k.PageUp):
		a.rows.PageUp()
	case key.Matches(msg, k.PageDown):
		a.rows.PageDown()
	case key.Matches(msg, k.Home):
		a.rows.Home()
	case key.Matches(msg, k.End):
		a.rows.End()
	case key.Matches(msg, k.NextTab):
		a.tab = (a.tab + 1) % len(matrix.Categories)
	case key.Matches(msg, k.PrevTab):
		a.tab = (a.tab - 1 + len(matrix.Categories)) % len(matrix.Categories)
	case key.Matches(msg, k.Tabs[0], k.Tabs[1], k.Tabs[2], k.Tabs[3]):
		for i, b := range k.Tabs {
			if key.Matches(msg, b) {
				a.tab = i
			}
		}
	case key.Matches(msg, k.Toggle):
		a.toggleCurrent()
	case key.Matches(msg, k.Apply):
		if !a.session.Dirty() {
			return a, a.setToast("info", "No pending changes.")
		}
		a.mode = modeApplyConfirm
	case key.Matches(msg, k.Export):
		a.openExport()
		return a, textinput.Blink
	case key.Matches(msg, k.Reload):
		if a.session.Dirty() {
			return a, a.setToast("warning", "Apply or discard changes before reloading.")
		}
		a.busy = true
		return a, a.reloadCmd()
	}
	return a, nil
}

func (a *App) toggleCurrent() {
	row, c, col, ok := a.cursorCell()
	if !ok {
		return
	}
	a.session.Toggle(row, c, col)
}

// cursorCell returns the row key, category and column key under the cursor.
func (a App) cursorCell() (string, matrix.Category, string, bool) {
	labels := a.session.Labels()
	c := a.category()
	cols := labels.Columns(c)
	if len(labels.Rows) == 0 || len(cols) == 0 {
		return "", c, "", false
	}
	return labels.Rows[a.rows.Cursor].Key, c, cols[a.cols[a.tab].Cursor].Key, true
}

func (a App) category() matrix.Category {
	return matrix.Categories[a.tab]
}

// syncWindows resizes the scrolling windows to the terminal and clamps them
// to the current labels.
func (a *App) syncWindows() {
	if a.session == nil {
		return
	}
	labels := a.session.Labels()
	a.rows.SetSize(a.visibleRows())
	a.rows.SetLen(len(labels.Rows))
	lw := a.labelWidth()
	for i, c := range matrix.Categories {
		a.cols[i].SetSize(components.GridColumnsThatFit(a.gridWidth(), lw, cellWidth))
		a.cols[i].SetLen(len(labels.Columns(c)))
	}
}

func (a App) visibleRows() int {
	if a.height <= 0 {
		return 10
	}
	n := a.height - chromeHeight
	if n < 3 {
		return 3
	}
	return n
}

func (a App) gridWidth() int {
	if a.width <= 0 {
		return 80
	}
	return a.width
}

func (a App) labelWidth() int {
	rows := a.session.Labels().Rows
	w := len(fmt.Sprint(len(rows))) + 1
	longest := 0
	for _, r := range rows {
		if rw := lipgloss.Width(components.SanitizeOneLine(r.Title)); rw > longest {
			longest = rw
		}
	}
	w += longest
	if w > maxLabelWidth {
		w = maxLabelWidth
	}
	if w < 8 {
		w = 8
	}
	return w
}

// --- Commands ---

// startApply stages the commit on the UI goroutine and persists it in a
// command. The session takes the result in the applyDoneMsg handler.
func (a *App) startApply() tea.Cmd {
	pending, err := a.session.Stage()
	if err != nil {
		a.err = err.Error()
		a.quitAfterApply = false
		return nil
	}
	a.busy = true
	s := a.session
	return func() tea.Msg {
		return applyDoneMsg{pending: pending, err: s.Persist(pending)}
	}
}

func (a App) exportCmd(path string) tea.Cmd {
	s := a.session
	opts := a.config.ExportOptions()
	return func() tea.Msg {
		return exportDoneMsg{path: path, err: s.Export(path, opts)}
	}
}

func (a App) reloadCmd() tea.Cmd {
	s := a.session
	return func() tea.Msg {
		n, err := s.Fetch()
		return reloadDoneMsg{project: n, err: err}
	}
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

// --- Apply ---

func (a App) handleApplyConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		a.mode = modeGrid
		return a, a.startApply()
	case key.Matches(msg, a.keys.Deny), isBack(msg):
		a.mode = modeGrid
	}
	return a, nil
}

const maxPreviewRows = 8

func (a App) renderApplyConfirm() string {
	changes := a.session.Changes()
	scenes := map[string]bool{}
	cells := 0
	for _, ch := range changes {
		scenes[ch.SceneID] = true
		cells += len(ch.Added) + len(ch.Removed)
	}
	summary := []components.TableRow{
		{Label: "Project", Value: a.session.Name()},
		{Label: "Scenes", Value: fmt.Sprint(len(scenes))},
		{Label: "Cells", Value: fmt.Sprint(cells)},
	}

	diffs := make([]components.DiffRow, 0, maxPreviewRows+1)
	for i, ch := range changes {
		if i == maxPreviewRows {
			diffs = append(diffs, components.DiffRow{
				Label: fmt.Sprintf("...and %d more", len(changes)-maxPreviewRows),
			})
			break
		}
		diffs = append(diffs, components.DiffRow{
			Label:   ch.SceneTitle + " / " + ch.Category.String(),
			Removed: ch.Removed,
			Added:   ch.Added,
		})
	}
	return components.ConfirmPreviewDialog("Apply Changes", summary, diffs, a.width)
}

// --- Export ---

func (a *App) openExport() {
	a.mode = modeExport
	a.exportErr = ""
	a.exportInput.SetValue(a.session.DefaultExportPath(a.config.CSVSuffix))
	a.exportInput.CursorEnd()
	a.exportInput.Focus()
}

func (a App) handleExportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isBack(msg):
		a.mode = modeGrid
		a.exportInput.Blur()
		return a, nil
	case key.Matches(msg, a.keys.Submit):
		path := strings.TrimSpace(a.exportInput.Value())
		if path == "" {
			return a, nil
		}
		if err := export.ValidateFileName(path, a.config.CSVSuffix); err != nil {
			a.exportErr = err.Error()
			return a, nil
		}
		a.mode = modeGrid
		a.exportInput.Blur()
		a.busy = true
		return a, a.exportCmd(path)
	}
	var cmd tea.Cmd
	a.exportInput, cmd = a.exportInput.Update(msg)
	a.exportErr = ""
	return a, cmd
}

// --- Quit ---

func (a App) handleQuitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		a.mode = modeGrid
		a.quitAfterApply = true
		return a, a.startApply()
	case key.Matches(msg, a.keys.Deny):
		return a, tea.Quit
	case isBack(msg):
		a.mode = modeGrid
	}
	return a, nil
}

func (a App) renderQuitConfirm() string {
	return components.ConfirmDialog(
		"Apply changes before quitting?",
		"The matrix has changes that were not applied to the project.",
		"y: apply and quit | n: quit without applying | esc: stay",
	)
}

// --- View ---

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)

	var content string
	switch a.mode {
	case modeApplyConfirm:
		content = a.renderApplyConfirm()
	case modeExport:
		content = components.InputDialog("Export CSV", a.exportInput.View(), a.exportErr)
	case modeQuitConfirm:
		content = a.renderQuitConfirm()
	case modeHelp:
		content = a.renderHelp()
	default:
		content = a.renderGrid()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.err != "" {
		feedback = "\n\n" + centerBlockUniform(components.ErrorBox("Error", a.err, a.width), a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s%s", banner, tabs, content, hints, feedback)
}

func (a App) renderTabs() string {
	labels := a.session.Labels()
	segments := make([]string, 0, len(matrix.Categories)+1)
	for i, c := range matrix.Categories {
		label := fmt.Sprintf("%d %s (%d)", i+1, c.String(), len(labels.Columns(c)))
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	if a.session.Dirty() {
		segments = append(segments, " ", DirtyBadgeStyle.Render("unsaved"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) renderGrid() string {
	labels := a.session.Labels()
	c := a.category()
	cols := labels.Columns(c)
	title := a.session.Name()

	if len(labels.Rows) == 0 {
		return components.TitledBox(title, MutedStyle.Render("No scenes in normal chapters."), a.width)
	}
	if len(cols) == 0 {
		return components.TitledBox(title, MutedStyle.Render(fmt.Sprintf("No %s in this project.", strings.ToLower(c.String()))), a.width)
	}

	colWin := a.cols[a.tab]
	cStart, cEnd := colWin.Range()
	rStart, rEnd := a.rows.Range()

	titles := make([]string, 0, cEnd-cStart)
	for _, col := range cols[cStart:cEnd] {
		titles = append(titles, col.Title)
	}
	rows := make([]components.GridRow, 0, rEnd-rStart)
	for i := rStart; i < rEnd; i++ {
		row := labels.Rows[i]
		cells := make([]bool, 0, len(titles))
		for _, col := range cols[cStart:cEnd] {
			cells = append(cells, a.session.Grid().Get(row.Key, c, col.Key))
		}
		rows = append(rows, components.GridRow{Number: i + 1, Title: row.Title, Cells: cells})
	}

	grid := components.MatrixGrid(components.GridSpec{
		Columns:    titles,
		Rows:       rows,
		ActiveRow:  a.rows.Rel(),
		ActiveCol:  colWin.Rel(),
		LabelWidth: a.labelWidth(),
		CellWidth:  cellWidth,
		On:         a.onMarker(c),
		Off:        "·",
	})

	return grid + "\n\n" + a.renderCursorInfo(rStart, rEnd, cStart, cEnd, len(cols))
}

func (a App) renderCursorInfo(rStart, rEnd, cStart, cEnd, nCols int) string {
	labels := a.session.Labels()
	c := a.category()
	row := labels.Rows[a.rows.Cursor]
	col := labels.Columns(c)[a.cols[a.tab].Cursor]

	state := MutedStyle.Render("off")
	if a.session.Grid().Get(row.Key, c, col.Key) {
		state = SuccessStyle.Render("on")
	}
	cell := NormalStyle.Render(components.SanitizeOneLine(row.Title)) +
		MutedStyle.Render(" × ") +
		AccentStyle.Render(components.SanitizeOneLine(col.Title)) +
		MutedStyle.Render(": ") + state

	pos := MutedStyle.Render(fmt.Sprintf(
		"scenes %d-%d of %d · %s %d-%d of %d · %d marked",
		rStart+1, rEnd, len(labels.Rows),
		strings.ToLower(c.String()), cStart+1, cEnd, nCols,
		a.session.Grid().Count(c),
	))
	subplot := ""
	if c == matrix.Arc && labels.Subplot {
		subplot = "\n" + WarningStyle.Render("No arcs defined: showing the Subplot flag.")
	}
	return "  " + cell + "\n  " + pos + subplot
}

func (a App) onMarker(c matrix.Category) string {
	var m string
	switch c {
	case matrix.Arc:
		m = a.config.CSVArcTrue
	case matrix.Character:
		m = a.config.CSVChrTrue
	case matrix.Location:
		m = a.config.CSVLocTrue
	case matrix.Item:
		m = a.config.CSVItmTrue
	}
	if strings.TrimSpace(m) == "" {
		return "●"
	}
	return m
}

func (a App) renderHelp() string {
	body := MutedStyle.Render("esc to close") + "\n\n" + a.help.FullHelpView(a.keys.FullHelp())
	return components.TitledBox("Help", body, a.width)
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func (a App) statusHints() []string {
	switch a.mode {
	case modeApplyConfirm:
		return []string{
			components.BindingHint(a.keys.Confirm),
			components.BindingHint(a.keys.Deny),
		}
	case modeQuitConfirm:
		return []string{
			components.Hint("y", "Apply & Quit"),
			components.Hint("n", "Discard"),
			components.BindingHint(a.keys.Back),
		}
	case modeExport:
		return []string{
			components.BindingHint(a.keys.Submit),
			components.BindingHint(a.keys.Back),
		}
	case modeHelp:
		return []string{components.BindingHint(a.keys.Back)}
	}
	hints := make([]string, 0, 8)
	for _, b := range a.keys.ShortHelp() {
		hints = append(hints, components.BindingHint(b))
	}
	if a.busy {
		hints = append(hints, MutedStyle.Render("working..."))
	}
	return hints
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
