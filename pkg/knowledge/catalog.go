package knowledge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-strategy/pkg/validation"
	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// LoadCatalog reads a YAML catalog extension from disk and merges its
// patterns and rules into the knowledge base.
func (kb *KnowledgeBase) LoadCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", path, err)
	}
	if err := kb.ParseCatalog(data); err != nil {
		return fmt.Errorf("catalog %s: %w", path, err)
	}
	return nil
}

// ParseCatalog parses a YAML catalog document and merges its entries. The
// whole document is validated before any entry is applied, so a malformed
// catalog never partially extends the base.
func (kb *KnowledgeBase) ParseCatalog(data []byte) error {
	var doc validation.CatalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}
	if err := validation.ValidateCatalog(&doc); err != nil {
		return err
	}

	for _, p := range doc.Patterns {
		stage, _ := wardley.ParseStage(p.Stage)
		kb.AddPattern(ComponentPattern{
			Name:       p.Name,
			Category:   p.Category,
			Stage:      stage,
			Visibility: p.Visibility,
			Aliases:    append([]string(nil), p.Aliases...),
		})
	}
	for _, r := range doc.Rules {
		stage, _ := wardley.ParseStage(r.Stage)
		kb.AddRule(HeuristicRule{
			Condition:  r.Condition,
			Stage:      stage,
			Confidence: r.Confidence,
			Domain:     r.Domain,
			Priority:   validation.DefaultOrInt(r.Priority, 1),
		})
	}
	return nil
}
