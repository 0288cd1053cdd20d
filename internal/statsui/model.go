// Package statsui provides the Bubble Tea screening dashboard.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/cognicare/internal/model"
	"github.com/verte-zerg/cognicare/internal/monitor"
	"github.com/verte-zerg/cognicare/internal/risk"
	"github.com/verte-zerg/cognicare/internal/stats"
)

const (
	tabOverview = iota
	tabTrends
	tabAlerts
	tabAssessments
)

const (
	plotHeight    = 10
	defaultWindow = 3
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3AA6A0"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#3F4B52"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7A8A90"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3F4B52"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8FA3A8"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B5C2C6"))

	severityStyles = map[model.Severity]lipgloss.Style{
		model.SeverityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true),
		model.SeverityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("#3AA6A0")).Bold(true),
		model.SeverityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8FA3A8")),
	}
)

// Model implements the Bubble Tea dashboard.
type Model struct {
	src     stats.Source
	monitor *monitor.Monitor
	cfg     model.DashboardConfig
	window  int

	report stats.Report
	errMsg string

	tabs        []string
	activeTab   int
	viewports   []viewport.Model
	table       table.Model
	tableLayout tableLayout

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs a dashboard for cfg.UserID. A nil monitor uses the wall clock.
func NewModel(src stats.Source, mon *monitor.Monitor, cfg model.DashboardConfig) *Model {
	if mon == nil {
		mon = monitor.New()
	}
	m := &Model{
		src:     src,
		monitor: mon,
		cfg:     cfg,
		window:  defaultWindow,
		tabs:    []string{"Overview", "Trends", "Alerts", "Assessments"},
	}
	m.initInputs()
	m.table = newAssessmentTable()
	m.initViewports()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (!m.filterMode && msg.String() == "q") {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.window++
			m.renderTabContents()
			return m, nil
		case "-":
			m.window = max(1, m.window-1)
			m.renderTabContents()
			return m, nil
		case "r":
			m.refreshReport()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabAssessments {
				m.table.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabAssessments {
				m.table.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.activeTab == tabAssessments {
				m.table, cmd = m.table.Update(msg)
				return m, cmd
			}
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("User: "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
	}
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[0].SetValue(m.cfg.UserID)
	since := ""
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	m.filterInputs[1].SetValue(since)
	last := ""
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	m.filterInputs[2].SetValue(last)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.setTableSize(m.width, bodyHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = max(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabAssessments {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		style := inactiveNavStyle
		if i == m.activeTab {
			style = activeNavStyle
		}
		label := tab
		if i == tabAlerts && len(m.report.Alerts) > 0 {
			label = fmt.Sprintf("%s (%d)", tab, len(m.report.Alerts))
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return padLines(m.renderTabs(), m.width) + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	name := m.cfg.UserID
	if m.report.Profile != nil && m.report.Profile.Name != "" {
		name = fmt.Sprintf("%s (%s)", m.report.Profile.Name, m.cfg.UserID)
	}
	summary := fmt.Sprintf("User: %s  since=%s  last=%s  window=%d", name, since, last, m.window)
	return headerStyle.Render(stats.Truncate(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Reload: r  Settings: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabAssessments {
		if len(m.report.Assessments) == 0 {
			return fitLines("No assessments found.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.table.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.src, m.monitor, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load screening data.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	m.applyTable()
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, m.window, width))
	m.viewports[tabTrends].SetContent(renderTrends(m.report.Trends, width))
	m.viewports[tabAlerts].SetContent(renderAlerts(m.report.Alerts, width))
}

func renderOverview(report stats.Report, window, width int) string {
	latest := report.Latest()
	if latest == nil {
		if len(report.Assessments) == 0 {
			return "No assessments found."
		}
		return "No risk score yet. Run `cognicare risk` to compute one."
	}
	cards := renderRiskCards(*latest, width)
	var buf bytes.Buffer
	if err := stats.RenderRiskHistoryWithSize(&buf, report.RiskScores, window, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render risk history: %v", err)
	}
	parts := []string{cards, strings.TrimRight(buf.String(), "\n")}
	if len(latest.Recommendations) > 0 {
		recs := []string{cardTitleStyle.Render("Recommendations")}
		for _, rec := range latest.Recommendations {
			recs = append(recs, stats.Truncate("- "+rec, width))
		}
		parts = append(parts, strings.Join(recs, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func renderRiskCards(score model.RiskScore, width int) string {
	level := risk.Level(score.Score)
	cards := []string{
		metricCard("Risk", fmt.Sprintf("%d", score.Score)),
		metricCard("Level", level.Label),
		metricCard("Confidence", fmt.Sprintf("%d%%", score.Confidence)),
		metricCard("Cognitive", fmt.Sprintf("%d", score.Factors.Cognitive)),
		metricCard("Speech", fmt.Sprintf("%d", score.Factors.Speech)),
		metricCard("Behavioral", fmt.Sprintf("%d", score.Factors.Behavioral)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2, headerStyle.Render(level.Description))
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderTrends(trends []model.TrendAnalysis, width int) string {
	if len(trends) == 0 {
		return "Not enough assessments for trend analysis."
	}
	var buf bytes.Buffer
	if err := stats.RenderTrendTable(&buf, trends); err != nil {
		return fmt.Sprintf("Failed to render trends: %v", err)
	}
	if err := stats.RenderTrendPlotsWithSize(&buf, trends, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render trend plots: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderAlerts(alerts []model.RiskAlert, width int) string {
	if len(alerts) == 0 {
		return "No alerts."
	}
	blocks := make([]string, 0, len(alerts))
	for _, a := range alerts {
		style, ok := severityStyles[a.Severity]
		if !ok {
			style = headerStyle
		}
		lines := []string{
			style.Render(strings.ToUpper(string(a.Severity))) + " " + cardValueStyle.Render(string(a.Type)),
			stats.Truncate(a.Message, width),
		}
		for _, rec := range a.Recommendations {
			lines = append(lines, headerStyle.Render(stats.Truncate("  - "+rec, width)))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func newAssessmentTable() table.Model {
	cols, rows := assessmentTableData(nil)
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(1),
	)
	t.SetStyles(assessmentTableStyles())
	return t
}

// assessmentTableData lists the newest assessment first.
func assessmentTableData(assessments []model.AssessmentResult) ([]table.Column, []table.Row) {
	headers, cells := stats.AssessmentRows(assessments)
	widths := []int{16, 12, 11, 8, 9}
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: widths[i]}
	}
	rows := make([]table.Row, 0, len(cells))
	for i := len(cells) - 1; i >= 0; i-- {
		rows = append(rows, table.Row(cells[i]))
	}
	return columns, rows
}

func (m *Model) applyTable() {
	cols, rows := assessmentTableData(m.report.Assessments)
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.tableLayout.rowCount = len(rows)
	m.tableLayout.width = 0
	if m.width > 0 {
		_, bodyHeight, _ := m.layoutHeights()
		m.setTableSize(m.width, bodyHeight)
	}
}

func (m *Model) setTableSize(width, height int) {
	viewportHeight := max(1, height-1)
	if m.tableLayout.width == width && m.tableLayout.height == viewportHeight {
		return
	}
	m.tableLayout.width = width
	m.tableLayout.height = viewportHeight
	m.table.SetWidth(width)
	m.table.SetHeight(viewportHeight)
	if diff := height - lipgloss.Height(m.table.View()); diff != 0 {
		m.table.SetHeight(max(1, viewportHeight+diff))
	}
}

func assessmentTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#3F4B52")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	user := strings.TrimSpace(m.filterInputs[0].Value())
	if user == "" {
		return fmt.Errorf("user is required")
	}

	var since *time.Time
	if input := strings.TrimSpace(m.filterInputs[1].Value()); input != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input, time.Local)
		if err != nil {
			return fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		since = &parsed
	}

	last := 0
	if input := strings.TrimSpace(m.filterInputs[2].Value()); input != "" {
		parsed, err := strconv.Atoi(input)
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		last = parsed
	}

	m.cfg = model.DashboardConfig{UserID: user, Since: since, Last: last}
	return nil
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
