package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxComponents       = 500
	MaxDependencies     = 2000
	MaxNameLength       = 200
	MaxDescriptionChars = 2000
	MaxContextFlags     = 50
	MaxBatchSize        = 100
	MinBatchSize        = 1
	MaxAliases          = 10
	MaxCatalogPatterns  = 200
	MaxCatalogRules     = 200

	// Condition keys are flattened lowercase flags
	conditionPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

func init() {
	validate = validator.New()
}

// ScoreRequest asks the scorer to position a single named component.
type ScoreRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	Context     map[string]bool `json:"context" validate:"omitempty,max=50"`
}

// BatchScoreRequest scores several components in one call.
type BatchScoreRequest struct {
	Components []ScoreRequest `json:"components" validate:"required,min=1,max=100,dive"`
}

// ComponentInput is one component supplied to analysis or map building.
// Evolution and Visibility are optional; components without them are scored
// before use.
type ComponentInput struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Evolution   *float64        `json:"evolution" validate:"omitempty,min=0,max=1"`
	Visibility  *float64        `json:"visibility" validate:"omitempty,min=0,max=1"`
	Category    string          `json:"category" validate:"omitempty,max=100"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	Context     map[string]bool `json:"context" validate:"omitempty,max=50"`
}

// DependencyInput is one directed source-requires-target edge.
type DependencyInput struct {
	Source string `json:"source" validate:"required,min=1,max=200"`
	Target string `json:"target" validate:"required,min=1,max=200"`
	Type   string `json:"dependency_type" validate:"omitempty,oneof=strong weak constraint"`
}

// AnalyzeRequest carries a component snapshot plus its dependency edges.
type AnalyzeRequest struct {
	Components   []ComponentInput  `json:"components" validate:"required,min=1,max=500,dive"`
	Dependencies []DependencyInput `json:"dependencies" validate:"omitempty,max=2000,dive"`
}

// MapRequest builds a complete map: score, analyze, and lay out.
type MapRequest struct {
	Components   []ComponentInput  `json:"components" validate:"required,min=1,max=500,dive"`
	Dependencies []DependencyInput `json:"dependencies" validate:"omitempty,max=2000,dive"`
	Width        float64           `json:"width" validate:"omitempty,min=0"`
	Height       float64           `json:"height" validate:"omitempty,min=0"`
}

// CatalogPattern is one pattern entry in a YAML catalog extension.
type CatalogPattern struct {
	Name       string   `json:"name" yaml:"name" validate:"required,min=1,max=200"`
	Category   string   `json:"category" yaml:"category" validate:"required,min=1,max=100"`
	Stage      string   `json:"stage" yaml:"stage" validate:"required"`
	Visibility float64  `json:"visibility" yaml:"visibility" validate:"min=0,max=1"`
	Aliases    []string `json:"aliases" yaml:"aliases" validate:"omitempty,max=10,dive,min=1,max=200"`
}

// CatalogRule is one heuristic rule entry in a YAML catalog extension.
type CatalogRule struct {
	Condition  string  `json:"condition" yaml:"condition" validate:"required,min=1,max=100"`
	Stage      string  `json:"stage" yaml:"stage" validate:"required"`
	Confidence float64 `json:"confidence" yaml:"confidence" validate:"required,gt=0,max=1"`
	Domain     string  `json:"domain" yaml:"domain" validate:"required,min=1,max=50"`
	Priority   int     `json:"priority" yaml:"priority" validate:"omitempty,min=1"`
}

// CatalogDocument is the root of a YAML catalog extension file.
type CatalogDocument struct {
	Patterns []CatalogPattern `json:"patterns" yaml:"patterns" validate:"omitempty,max=200,dive"`
	Rules    []CatalogRule    `json:"rules" yaml:"rules" validate:"omitempty,max=200,dive"`
}

// ValidateScoreRequest validates a single-component scoring request.
func ValidateScoreRequest(req *ScoreRequest) error {
	if req == nil {
		return errors.New("score request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateBatchScoreRequest validates a batch scoring request.
func ValidateBatchScoreRequest(req *BatchScoreRequest) error {
	if req == nil {
		return errors.New("batch score request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return ValidateBatchSize(len(req.Components))
}

// ValidateAnalyzeRequest validates an analysis request.
func ValidateAnalyzeRequest(req *AnalyzeRequest) error {
	if req == nil {
		return errors.New("analyze request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if len(req.Components) > MaxComponents {
		return fmt.Errorf("Components: maximum %d components allowed, got %d", MaxComponents, len(req.Components))
	}
	if len(req.Dependencies) > MaxDependencies {
		return fmt.Errorf("Dependencies: maximum %d dependencies allowed, got %d", MaxDependencies, len(req.Dependencies))
	}
	return nil
}

// ValidateMapRequest validates a map-building request.
func ValidateMapRequest(req *MapRequest) error {
	if req == nil {
		return errors.New("map request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateBatchSize validates the size of a batch request
func ValidateBatchSize(size int) error {
	if size < MinBatchSize {
		return fmt.Errorf("batch size must be at least %d, got %d", MinBatchSize, size)
	}
	if size > MaxBatchSize {
		return fmt.Errorf("batch size must not exceed %d, got %d", MaxBatchSize, size)
	}
	return nil
}

// ValidateCatalog validates a parsed YAML catalog extension before its
// entries are merged into a knowledge base.
func ValidateCatalog(doc *CatalogDocument) error {
	if doc == nil {
		return errors.New("catalog document cannot be nil")
	}
	if err := validate.Struct(doc); err != nil {
		return formatValidationError(err)
	}

	for i, p := range doc.Patterns {
		if _, ok := wardley.ParseStage(p.Stage); !ok {
			return fmt.Errorf("Patterns: pattern %q (index %d) has unknown stage %q", p.Name, i, p.Stage)
		}
	}
	for i, r := range doc.Rules {
		if _, ok := wardley.ParseStage(r.Stage); !ok {
			return fmt.Errorf("Rules: rule %q (index %d) has unknown stage %q", r.Condition, i, r.Stage)
		}
		if !conditionPattern.MatchString(r.Condition) {
			return fmt.Errorf("Rules: condition %q is invalid (lowercase letters, digits and underscores, starting with a letter)", r.Condition)
		}
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "dive":
			// For array elements
			return fmt.Errorf("%s: invalid element in array", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
