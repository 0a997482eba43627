package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-strategy/pkg/analysis"
	"github.com/dd0wney/cluso-strategy/pkg/knowledge"
	"github.com/dd0wney/cluso-strategy/pkg/scoring"
	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	mapBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FFFF00")).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	dashboardView view = iota
	mapView
	componentsView
	scoreView
	insightsView
)

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "score"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Quit},
	}
}

type model struct {
	kb          *knowledge.KnowledgeBase
	scorer      *scoring.Scorer
	analyzer    *analysis.Analyzer
	components  []wardley.Component
	deps        []wardley.Dependency
	currentView view
	scoreInput  textinput.Model
	compTable   table.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
	message     string
	messageErr  bool
	startTime   time.Time
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func initialModel(kb *knowledge.KnowledgeBase, components []wardley.Component, deps []wardley.Dependency) model {
	ti := textinput.New()
	ti.Placeholder = "Payment Gateway"
	ti.CharLimit = 200
	ti.Width = 60

	columns := []table.Column{
		{Title: "Name", Width: 26},
		{Title: "Stage", Width: 10},
		{Title: "Evolution", Width: 10},
		{Title: "Visibility", Width: 10},
		{Title: "Confidence", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	m := model{
		kb:          kb,
		scorer:      scoring.NewScorer(kb),
		analyzer:    analysis.NewAnalyzer(),
		components:  components,
		deps:        deps,
		currentView: dashboardView,
		scoreInput:  ti,
		compTable:   t,
		help:        help.New(),
		keys:        keys,
		startTime:   time.Now(),
	}
	m.refreshTable()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		return m, tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			// "q" belongs to the component name while the input has focus
			if m.scoreInput.Focused() && msg.String() == "q" {
				break
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.setView((m.currentView + 1) % 5)

		case key.Matches(msg, m.keys.ShiftTab):
			if m.currentView == 0 {
				m.setView(4)
			} else {
				m.setView(m.currentView - 1)
			}

		case key.Matches(msg, m.keys.Enter):
			if m.currentView == scoreView && m.scoreInput.Focused() {
				m.scoreComponent()
			}

		default:
			if !m.scoreInput.Focused() {
				switch msg.String() {
				case "1":
					m.setView(dashboardView)
				case "2":
					m.setView(mapView)
				case "3":
					m.setView(componentsView)
				case "4":
					m.setView(scoreView)
				case "5":
					m.setView(insightsView)
				}
			}
		}
	}

	// Update focused component
	switch m.currentView {
	case scoreView:
		m.scoreInput, cmd = m.scoreInput.Update(msg)
		cmds = append(cmds, cmd)
	case componentsView:
		m.compTable, cmd = m.compTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) setView(v view) {
	m.currentView = v
	if v == scoreView {
		m.scoreInput.Focus()
	} else {
		m.scoreInput.Blur()
	}
}

func (m *model) scoreComponent() {
	name := strings.TrimSpace(m.scoreInput.Value())
	if name == "" {
		m.message = "Component name cannot be empty"
		m.messageErr = true
		return
	}

	start := time.Now()
	c := m.scorer.ScoreComponent(name, scoring.Context{})
	elapsed := time.Since(start)

	replaced := false
	for i := range m.components {
		if m.components[i].Key() == c.Key() {
			m.components[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		m.components = append(m.components, c)
	}

	m.message = fmt.Sprintf("Scored %s: %s (evolution %.2f, confidence %.2f) in %s",
		c.Name, c.Stage(), c.Evolution, c.Confidence, elapsed)
	m.messageErr = false
	m.scoreInput.SetValue("")
	m.refreshTable()
}

func (m *model) refreshTable() {
	sorted := make([]wardley.Component, len(m.components))
	copy(sorted, m.components)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Evolution < sorted[j].Evolution })

	rows := make([]table.Row, 0, len(sorted))
	for _, c := range sorted {
		rows = append(rows, table.Row{
			c.Name,
			c.Stage().String(),
			fmt.Sprintf("%.2f", c.Evolution),
			fmt.Sprintf("%.2f", c.Visibility),
			fmt.Sprintf("%.2f", c.Confidence),
		})
	}
	m.compTable.SetRows(rows)
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("🗺️  Cluso Strategy - Interactive TUI"))
	s.WriteString("\n\n")

	// Tabs
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	// Content based on current view
	switch m.currentView {
	case dashboardView:
		s.WriteString(m.renderDashboard())
	case mapView:
		s.WriteString(m.renderMap())
	case componentsView:
		s.WriteString(m.renderComponents())
	case scoreView:
		s.WriteString(m.renderScore())
	case insightsView:
		s.WriteString(m.renderInsights())
	}

	// Message
	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	// Help
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Dashboard", "Map", "Components", "Score", "Insights"}
	var renderedTabs []string

	for i, tab := range tabs {
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func (m model) renderDashboard() string {
	uptime := time.Since(m.startTime).Round(time.Second)

	statsContent := fmt.Sprintf(`📊 Working Map
━━━━━━━━━━━━━━━
Components:   %d
Dependencies: %d
Uptime:       %s

📚 Knowledge Base
━━━━━━━━━━━━━━━
Patterns:  %d
Rules:     %d`,
		len(m.components),
		len(m.deps),
		uptime,
		m.kb.PatternCount(),
		m.kb.RuleCount(),
	)

	quickActions := `⚡ Quick Actions
━━━━━━━━━━━━━━━
[Tab]       Navigate views
[1-5]       Jump to view
[q]         Quit

🎯 Features
━━━━━━━━━━━━━━━
• Heuristic Scoring
• Evolution Mapping
• Strategic Insights
• Live Map View`

	statsBox := statsBoxStyle.Render(statsContent)
	actionsBox := statsBoxStyle.Render(quickActions)

	return contentStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Top, statsBox, actionsBox),
	)
}

func (m model) renderMap() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Wardley Map"))
	s.WriteString("\n\n")

	s.WriteString(mapBoxStyle.Render(m.generateMapGrid()))

	return contentStyle.Render(s.String())
}

// generateMapGrid plots the working map on a character grid. Evolution runs
// left to right, visibility top to bottom, so customer-facing components
// sit at the top the way a drawn map has them.
func (m model) generateMapGrid() string {
	if len(m.components) == 0 {
		return "No components to map\n\nScore some components using the Score view!"
	}

	const gridW, gridH = 56, 14
	grid := make([][]rune, gridH)
	for i := range grid {
		grid[i] = make([]rune, gridW)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	markers := "123456789abcdefghijklmnopqrstuvwxyz"
	shown := m.components
	if len(shown) > len(markers) {
		shown = shown[:len(markers)]
	}

	for i, c := range shown {
		x := int(c.Evolution * float64(gridW-1))
		y := int((1 - c.Visibility) * float64(gridH-1))
		grid[y][x] = rune(markers[i])
	}

	var s strings.Builder
	s.WriteString(fmt.Sprintf("Map with %d components and %d dependencies\n\n", len(m.components), len(m.deps)))
	s.WriteString(" Visible\n")
	for _, row := range grid {
		s.WriteString("│")
		s.WriteString(string(row))
		s.WriteString("\n")
	}
	s.WriteString("└" + strings.Repeat("─", gridW) + "\n")
	s.WriteString("  Genesis       Custom          Product      Commodity\n\n")

	for i, c := range shown {
		s.WriteString(fmt.Sprintf(" %c  %-26s %s\n", markers[i], c.Name, c.Stage()))
	}
	if len(m.components) > len(shown) {
		s.WriteString(fmt.Sprintf("\n... and %d more components\n", len(m.components)-len(shown)))
	}

	return s.String()
}

func (m model) renderComponents() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Component Browser"))
	s.WriteString("\n\n")

	s.WriteString(m.compTable.View())

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Navigate with ↑/↓ • Components sort by evolution"))

	return contentStyle.Render(s.String())
}

func (m model) renderScore() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Score Console"))
	s.WriteString("\n\n")

	s.WriteString("Enter a component name to score and add to the map:\n\n")
	s.WriteString(m.scoreInput.View())

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Examples:\n"))
	s.WriteString(helpStyle.Render("  PostgreSQL\n"))
	s.WriteString(helpStyle.Render("  Checkout Experience\n"))
	s.WriteString(helpStyle.Render("  Custom ML Model\n"))

	return contentStyle.Render(s.String())
}

func (m model) renderInsights() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Strategic Insights"))
	s.WriteString("\n\n")

	if len(m.components) == 0 {
		s.WriteString(helpStyle.Render("No data available for analysis\n\nScore some components to see insights!"))
		return contentStyle.Render(s.String())
	}

	start := time.Now()
	result, err := m.analyzer.Analyze(m.components, m.deps)
	if err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Analysis error: %v", err)))
		return contentStyle.Render(s.String())
	}
	elapsed := time.Since(start)

	summary := fmt.Sprintf(`📈 Strategic Analysis
━━━━━━━━━━━━━━━━━━━
Components:   %d
Dependencies: %d
Insights:     %d
Time:         %s

Advantages:      %d
Vulnerabilities: %d
Opportunities:   %d
Threats:         %d`,
		result.TotalComponents,
		result.TotalDependencies,
		len(result.Insights),
		elapsed,
		len(result.CompetitiveAdvantages),
		len(result.Vulnerabilities),
		len(result.Opportunities),
		len(result.Threats),
	)

	s.WriteString(statsBoxStyle.Render(summary))
	s.WriteString("\n\n")

	top := topInsights(result.Insights, 5)
	if len(top) > 0 {
		s.WriteString("Top Insights by Impact:\n")
		for i, insight := range top {
			bar := strings.Repeat("█", int(insight.Confidence*20))
			s.WriteString(fmt.Sprintf("  %d. %s %-30s %.2f %s\n",
				i+1, impactMark(insight.Impact), insight.Title, insight.Confidence, bar))
		}
	}

	if len(result.StrategicRecommendations) > 0 {
		s.WriteString("\nRecommendations:\n")
		recs := result.StrategicRecommendations
		if len(recs) > 3 {
			recs = recs[:3]
		}
		for i, rec := range recs {
			s.WriteString(fmt.Sprintf("  %d. %s\n", i+1, rec))
		}
	}

	if len(result.CriticalPath) > 0 {
		s.WriteString("\nCritical Path: " + strings.Join(result.CriticalPath, " → ") + "\n")
	}

	return contentStyle.Render(s.String())
}

func impactMark(impact wardley.Impact) string {
	switch impact {
	case wardley.ImpactHigh:
		return "🔴"
	case wardley.ImpactMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

func impactRank(impact wardley.Impact) int {
	switch impact {
	case wardley.ImpactHigh:
		return 0
	case wardley.ImpactMedium:
		return 1
	default:
		return 2
	}
}

func topInsights(insights []wardley.StrategicInsight, limit int) []wardley.StrategicInsight {
	sorted := make([]wardley.StrategicInsight, len(insights))
	copy(sorted, insights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return impactRank(sorted[i].Impact) < impactRank(sorted[j].Impact)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// mapDocument is the YAML shape accepted on the command line.
type mapDocument struct {
	Components []struct {
		Name        string          `yaml:"name"`
		Evolution   *float64        `yaml:"evolution"`
		Visibility  *float64        `yaml:"visibility"`
		Category    string          `yaml:"category"`
		Description string          `yaml:"description"`
		Context     map[string]bool `yaml:"context"`
	} `yaml:"components"`
	Dependencies []struct {
		Source string `yaml:"source"`
		Target string `yaml:"target"`
		Type   string `yaml:"type"`
	} `yaml:"dependencies"`
}

func loadMapFile(path string, scorer *scoring.Scorer) ([]wardley.Component, []wardley.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var doc mapDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}

	var components []wardley.Component
	for _, in := range doc.Components {
		if strings.TrimSpace(in.Name) == "" {
			continue
		}
		c := scorer.ScoreComponent(in.Name, scoring.NewContext(in.Context, in.Description))
		if in.Evolution != nil {
			c.Evolution = wardley.Clamp01(*in.Evolution)
		}
		if in.Visibility != nil {
			c.Visibility = wardley.Clamp01(*in.Visibility)
		}
		if in.Evolution != nil && in.Visibility != nil {
			c.Confidence = 1.0
		}
		if in.Category != "" {
			c.Category = in.Category
		}
		components = append(components, c)
	}

	var deps []wardley.Dependency
	for _, in := range doc.Dependencies {
		if in.Source == "" || in.Target == "" {
			continue
		}
		deps = append(deps, wardley.Dependency{
			Source: in.Source,
			Target: in.Target,
			Type:   wardley.ParseDependencyType(in.Type),
		})
	}

	return components, deps, nil
}

func main() {
	kb := knowledge.Default()

	var components []wardley.Component
	var deps []wardley.Dependency
	if len(os.Args) > 1 {
		var err error
		components, deps, err = loadMapFile(os.Args[1], scoring.NewScorer(kb))
		if err != nil {
			log.Fatalf("Failed to load map file: %v", err)
		}
	}

	p := tea.NewProgram(initialModel(kb, components, deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
