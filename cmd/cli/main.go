package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-strategy/pkg/analysis"
	"github.com/dd0wney/cluso-strategy/pkg/auth"
	"github.com/dd0wney/cluso-strategy/pkg/knowledge"
	"github.com/dd0wney/cluso-strategy/pkg/layout"
	"github.com/dd0wney/cluso-strategy/pkg/scoring"
	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

type CLI struct {
	kb       *knowledge.KnowledgeBase
	scorer   *scoring.Scorer
	analyzer *analysis.Analyzer
	scanner  *bufio.Scanner

	// The working map built up across commands
	components []wardley.Component
	deps       []wardley.Dependency
}

// mapDocument is the YAML shape accepted by the load command.
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

func main() {
	printBanner()

	kb := knowledge.Default()
	cli := &CLI{
		kb:       kb,
		scorer:   scoring.NewScorer(kb),
		analyzer: analysis.NewAnalyzer(),
		scanner:  bufio.NewScanner(os.Stdin),
	}

	fmt.Printf("✅ Knowledge base loaded\n")
	fmt.Printf("   Patterns: %d\n", kb.PatternCount())
	fmt.Printf("   Rules:    %d\n\n", kb.RuleCount())

	fmt.Println("Type 'help' for available commands, 'exit' to quit")
	fmt.Println()

	cli.run()
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                                                           ║
║   ██████╗██╗     ██╗   ██╗███████╗ ██████╗               ║
║  ██╔════╝██║     ██║   ██║██╔════╝██╔═══██╗              ║
║  ██║     ██║     ██║   ██║███████╗██║   ██║              ║
║  ██║     ██║     ██║   ██║╚════██║██║   ██║              ║
║  ╚██████╗███████╗╚██████╔╝███████║╚██████╔╝              ║
║   ╚═════╝╚══════╝ ╚═════╝ ╚══════╝ ╚═════╝               ║
║                                                           ║
║            Strategy Engine Interactive CLI v1.0           ║
║                                                           ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}

func (cli *CLI) run() {
	for {
		fmt.Print("cluso> ")

		if !cli.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(cli.scanner.Text())
		if input == "" {
			continue
		}

		if input == "exit" || input == "quit" {
			fmt.Println("👋 Goodbye!")
			break
		}

		cli.executeCommand(input)
		fmt.Println()
	}
}

func (cli *CLI) executeCommand(input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	command := strings.ToLower(parts[0])
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch command {
	case "help":
		cli.showHelp()

	case "score", "s":
		if rest == "" {
			fmt.Println("Usage: score <component-name>")
			return
		}
		cli.scoreComponent(rest)

	case "add":
		if rest == "" {
			fmt.Println("Usage: add <component-name> [evolution visibility]")
			return
		}
		cli.addComponent(rest)

	case "dep":
		if !strings.Contains(rest, "->") {
			fmt.Println("Usage: dep <source> -> <target> [strong|weak|constraint]")
			return
		}
		cli.addDependency(rest)

	case "list", "ls":
		cli.listComponents()

	case "remove", "rm":
		if rest == "" {
			fmt.Println("Usage: remove <component-name>")
			return
		}
		cli.removeComponent(rest)

	case "analyze", "a":
		cli.runAnalysis()

	case "report":
		cli.printReport()

	case "map":
		cli.printMap()

	case "export":
		if rest == "" {
			fmt.Println("Usage: export <file.json>")
			return
		}
		cli.exportMap(rest)

	case "load":
		if rest == "" {
			fmt.Println("Usage: load <map.yaml>")
			return
		}
		cli.loadMap(rest)

	case "catalog":
		if rest == "" {
			fmt.Println("Usage: catalog <catalog.yaml>")
			return
		}
		cli.loadCatalog(rest)

	case "kb", "knowledge":
		if rest != "" {
			cli.exportKnowledge(rest)
			return
		}
		cli.showKnowledge()

	case "stages":
		cli.showStages()

	case "keygen":
		env := "test"
		if rest != "" {
			env = strings.ToLower(rest)
		}
		cli.generateKey(env)

	case "demo":
		cli.runDemo()

	case "reset":
		cli.components = nil
		cli.deps = nil
		fmt.Println("🗑️  Working map cleared")

	case "clear":
		fmt.Print("\033[H\033[2J")

	default:
		fmt.Printf("❌ Unknown command: %s (type 'help' for available commands)\n", command)
	}
}

func (cli *CLI) showHelp() {
	help := `
📖 Available Commands:

🔍 Scoring:
  score <name>           Score a single component
  s <name>               Shorthand for score
  stages                 Show the evolution stage reference
  kb [file.json]         Show knowledge base statistics, or export the catalog
  catalog <file.yaml>    Merge a catalog extension file

🗺️  Map Building:
  add <name> [e v]       Add a component (optional evolution/visibility 0-1)
  dep <a> -> <b> [type]  Add a dependency edge (strong, weak, constraint)
  list                   List the working map
  remove <name>          Remove a component
  load <map.yaml>        Load components and dependencies from YAML
  reset                  Clear the working map

📊 Analysis:
  analyze                Run strategic analysis on the working map
  a                      Shorthand for analyze
  report                 Print the full markdown report
  map                    Print positioned map coordinates
  export <file.json>     Write the visualization document

🔑 Server Administration:
  keygen [live|test]     Generate an API key and its config hash

🎮 Other:
  demo                   Load the demo map
  clear                  Clear screen
  help                   Show this help
  exit/quit              Exit the CLI

💡 Examples:
  score PostgreSQL
  add Checkout Experience 0.4 0.8
  dep Checkout Experience -> PostgreSQL strong
  analyze
`
	fmt.Println(help)
}

func (cli *CLI) scoreComponent(name string) {
	start := time.Now()
	res := cli.scorer.Score(name, scoring.Context{})
	rationale := cli.scorer.Rationale(name, res)

	fmt.Printf("🎯 %s\n", name)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("  Stage:      %s\n", res.Stage)
	fmt.Printf("  Evolution:  %.2f\n", res.Evolution)
	fmt.Printf("  Visibility: %.2f (%s)\n", res.Visibility, wardley.VisibilityLevel(res.Visibility))
	fmt.Printf("  Confidence: %.2f\n", res.Confidence)
	fmt.Printf("  Method:     %s\n", res.Method)
	fmt.Printf("  Time:       %v\n\n", time.Since(start))
	fmt.Printf("  %s\n", rationale.Evolution)
	fmt.Printf("  %s\n", rationale.Visibility)
}

// addComponent parses "name [evolution visibility]" and adds or replaces
// the component in the working map.
func (cli *CLI) addComponent(args string) {
	fields := strings.Fields(args)

	var evo, vis *float64
	name := args
	if len(fields) >= 3 {
		// A trailing pair of numbers means explicit coordinates.
		e, errE := strconv.ParseFloat(fields[len(fields)-2], 64)
		v, errV := strconv.ParseFloat(fields[len(fields)-1], 64)
		if errE == nil && errV == nil {
			evo, vis = &e, &v
			name = strings.Join(fields[:len(fields)-2], " ")
		}
	}

	c := cli.scorer.ScoreComponent(name, scoring.Context{})
	if evo != nil {
		c.Evolution = wardley.Clamp01(*evo)
		c.Visibility = wardley.Clamp01(*vis)
		c.Confidence = 1.0
	}

	replaced := false
	for i := range cli.components {
		if cli.components[i].Key() == c.Key() {
			cli.components[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		cli.components = append(cli.components, c)
	}

	verb := "Added"
	if replaced {
		verb = "Updated"
	}
	fmt.Printf("✅ %s %s (%s, evolution %.2f, visibility %.2f)\n",
		verb, c.Name, c.Stage(), c.Evolution, c.Visibility)
}

func (cli *CLI) addDependency(args string) {
	halves := strings.SplitN(args, "->", 2)
	source := strings.TrimSpace(halves[0])
	target := strings.TrimSpace(halves[1])

	depType := ""
	if fields := strings.Fields(target); len(fields) > 1 {
		switch last := strings.ToLower(fields[len(fields)-1]); last {
		case "strong", "weak", "constraint":
			depType = last
			target = strings.Join(fields[:len(fields)-1], " ")
		}
	}

	if source == "" || target == "" {
		fmt.Println("❌ Both source and target are required")
		return
	}

	cli.deps = append(cli.deps, wardley.Dependency{
		Source: source,
		Target: target,
		Type:   wardley.ParseDependencyType(depType),
	})
	fmt.Printf("✅ %s → %s\n", source, target)
}

func (cli *CLI) listComponents() {
	if len(cli.components) == 0 {
		fmt.Println("Working map is empty. Use 'add' or 'load' to build one.")
		return
	}

	fmt.Printf("🗺️  Working Map (%d components, %d dependencies)\n",
		len(cli.components), len(cli.deps))
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	sorted := make([]wardley.Component, len(cli.components))
	copy(sorted, cli.components)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Evolution < sorted[j].Evolution })

	for _, c := range sorted {
		fmt.Printf("  %-30s %-10s evo=%.2f vis=%.2f\n",
			c.Name, c.Stage(), c.Evolution, c.Visibility)
	}

	if len(cli.deps) > 0 {
		fmt.Println("\nDependencies:")
		for _, d := range cli.deps {
			fmt.Printf("  %s -[%s]-> %s\n", d.Source, d.Type, d.Target)
		}
	}
}

func (cli *CLI) removeComponent(name string) {
	key := wardley.Key(name)
	for i := range cli.components {
		if cli.components[i].Key() == key {
			cli.components = append(cli.components[:i], cli.components[i+1:]...)
			fmt.Printf("🗑️  Removed %s\n", name)
			return
		}
	}
	fmt.Printf("❌ Component %q not in the working map\n", name)
}

func (cli *CLI) runAnalysis() {
	if len(cli.components) == 0 {
		fmt.Println("❌ Working map is empty. Use 'add' or 'load' first.")
		return
	}

	start := time.Now()
	result, err := cli.analyzer.Analyze(cli.components, cli.deps)
	if err != nil {
		fmt.Printf("❌ Analysis error: %v\n", err)
		return
	}

	fmt.Println("📊 Strategic Analysis")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("Components: %d\n", result.TotalComponents)
	fmt.Printf("Dependencies: %d\n", result.TotalDependencies)
	fmt.Printf("Insights: %d\n", len(result.Insights))
	fmt.Printf("Time: %v\n", time.Since(start))

	printNameList := func(title string, names []string) {
		if len(names) == 0 {
			return
		}
		fmt.Printf("\n%s:\n", title)
		for _, n := range names {
			fmt.Printf("  • %s\n", n)
		}
	}

	printNameList("💪 Competitive Advantages", result.CompetitiveAdvantages)
	printNameList("⚠️  Vulnerabilities", result.Vulnerabilities)
	printNameList("🌱 Opportunities", result.Opportunities)
	printNameList("🔥 Threats", result.Threats)

	if len(result.CriticalPath) > 0 {
		fmt.Print("\n🛤️  Critical Path: ")
		fmt.Println(strings.Join(result.CriticalPath, " → "))
	}

	if len(result.StrategicRecommendations) > 0 {
		fmt.Println("\n💡 Recommendations:")
		for i, rec := range result.StrategicRecommendations {
			fmt.Printf("  %d. %s\n", i+1, rec)
		}
	}
}

func (cli *CLI) printReport() {
	if len(cli.components) == 0 {
		fmt.Println("❌ Working map is empty. Use 'add' or 'load' first.")
		return
	}

	result, err := cli.analyzer.Analyze(cli.components, cli.deps)
	if err != nil {
		fmt.Printf("❌ Analysis error: %v\n", err)
		return
	}
	fmt.Println(analysis.Report(result))
}

func (cli *CLI) printMap() {
	if len(cli.components) == 0 {
		fmt.Println("❌ Working map is empty. Use 'add' or 'load' first.")
		return
	}

	positions := layout.ComputeLayout(cli.components, layout.DefaultLayoutConfig())

	fmt.Println("🗺️  Positioned Map (800x600 canvas)")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	for _, c := range cli.components {
		pos := positions[c.Name]
		fmt.Printf("  %-30s x=%6.1f  y=%6.1f  (%s)\n", c.Name, pos.X, pos.Y, c.Stage())
	}
}

func (cli *CLI) exportMap(path string) {
	if len(cli.components) == 0 {
		fmt.Println("❌ Working map is empty. Use 'add' or 'load' first.")
		return
	}

	viz := layout.Visualization{
		Components:   cli.components,
		Dependencies: cli.deps,
		Positions:    layout.ComputeLayout(cli.components, layout.DefaultLayoutConfig()),
	}
	data, err := viz.ExportJSON()
	if err != nil {
		fmt.Printf("❌ Export error: %v\n", err)
		return
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Printf("❌ Write error: %v\n", err)
		return
	}
	fmt.Printf("✅ Exported %d components to %s\n", len(cli.components), path)
}

func (cli *CLI) loadMap(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ Read error: %v\n", err)
		return
	}

	var doc mapDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		fmt.Printf("❌ Parse error: %v\n", err)
		return
	}

	added := 0
	for _, in := range doc.Components {
		if strings.TrimSpace(in.Name) == "" {
			continue
		}
		c := cli.scorer.ScoreComponent(in.Name, scoring.NewContext(in.Context, in.Description))
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
		cli.components = append(cli.components, c)
		added++
	}

	for _, in := range doc.Dependencies {
		if in.Source == "" || in.Target == "" {
			continue
		}
		cli.deps = append(cli.deps, wardley.Dependency{
			Source: in.Source,
			Target: in.Target,
			Type:   wardley.ParseDependencyType(in.Type),
		})
	}

	fmt.Printf("✅ Loaded %d components and %d dependencies from %s\n",
		added, len(doc.Dependencies), path)
}

func (cli *CLI) loadCatalog(path string) {
	if err := cli.kb.LoadCatalog(path); err != nil {
		fmt.Printf("❌ Catalog error: %v\n", err)
		return
	}
	fmt.Printf("✅ Catalog merged: %d patterns, %d rules\n",
		cli.kb.PatternCount(), cli.kb.RuleCount())
}

func (cli *CLI) showKnowledge() {
	fmt.Println("📚 Knowledge Base")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("  Patterns: %d\n", cli.kb.PatternCount())
	fmt.Printf("  Rules:    %d\n", cli.kb.RuleCount())
}

func (cli *CLI) exportKnowledge(path string) {
	data, err := cli.kb.ExportJSON()
	if err != nil {
		fmt.Printf("❌ Export error: %v\n", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Printf("❌ Write error: %v\n", err)
		return
	}
	fmt.Printf("✅ Exported %d patterns and %d rules to %s\n",
		cli.kb.PatternCount(), cli.kb.RuleCount(), path)
}

func (cli *CLI) showStages() {
	stages := []struct {
		stage    wardley.EvolutionStage
		interval string
	}{
		{wardley.StageGenesis, "[0.00, 0.25)"},
		{wardley.StageCustom, "[0.25, 0.55)"},
		{wardley.StageProduct, "[0.55, 0.80)"},
		{wardley.StageCommodity, "[0.80, 1.00]"},
	}

	fmt.Println("📈 Evolution Stages")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	for _, entry := range stages {
		ch := entry.stage.Characteristics()
		fmt.Printf("  %-10s %s  score=%.2f\n", entry.stage, entry.interval, entry.stage.Score())
		fmt.Printf("             ubiquity: %s, market: %s, competition: %s\n",
			ch.Ubiquity, ch.Market, ch.Competition)
	}
}

func (cli *CLI) generateKey(env string) {
	key, hash, err := auth.GenerateAPIKey(env)
	if err != nil {
		fmt.Printf("❌ Keygen error: %v\n", err)
		return
	}

	fmt.Println("🔑 API Key Generated")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("  Key:  %s\n", key)
	fmt.Printf("  Hash: %s\n", hash)
	fmt.Println("\nStore the hash under auth.api_keys in the server config.")
	fmt.Println("The key itself is shown once; save it now.")
}

func (cli *CLI) runDemo() {
	fmt.Println("🎮 Loading Demo Map...")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	fmt.Println("Step 1: Adding components...")
	demo := []struct {
		name     string
		evo, vis float64
	}{
		{"Online Store", 0.45, 0.95},
		{"Recommendation Engine", 0.2, 0.6},
		{"Payment Processing", 0.75, 0.7},
		{"PostgreSQL", 0.9, 0.15},
		{"AWS", 0.95, 0.05},
	}
	cli.components = nil
	cli.deps = nil
	for _, d := range demo {
		cli.components = append(cli.components, wardley.Component{
			Name:       d.name,
			Evolution:  d.evo,
			Visibility: d.vis,
			Confidence: 1.0,
		})
		fmt.Printf("  Added: %s\n", d.name)
	}

	fmt.Println("\nStep 2: Wiring dependencies...")
	edges := [][2]string{
		{"Online Store", "Recommendation Engine"},
		{"Online Store", "Payment Processing"},
		{"Recommendation Engine", "PostgreSQL"},
		{"Payment Processing", "PostgreSQL"},
		{"PostgreSQL", "AWS"},
	}
	for _, e := range edges {
		cli.deps = append(cli.deps, wardley.Dependency{
			Source: e[0], Target: e[1], Type: wardley.DependencyStrong,
		})
		fmt.Printf("  %s -> %s\n", e[0], e[1])
	}

	fmt.Println("\n✅ Demo map loaded!")
	fmt.Println("\n💡 Try these commands:")
	fmt.Println("  list")
	fmt.Println("  analyze")
	fmt.Println("  report")
	fmt.Println("  export demo-map.json")
}
