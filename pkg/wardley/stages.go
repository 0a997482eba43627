package wardley

import "encoding/json"

// EvolutionStage is one of the four ordered maturity stages of the
// evolution axis.
type EvolutionStage int

const (
	StageGenesis EvolutionStage = iota
	StageCustom
	StageProduct
	StageCommodity
)

// Stage score bands. Boundary values belong to the higher band.
const (
	customBandStart    = 0.25
	productBandStart   = 0.55
	commodityBandStart = 0.8
)

// String returns the display name of the stage.
func (s EvolutionStage) String() string {
	switch s {
	case StageGenesis:
		return "Genesis"
	case StageCustom:
		return "Custom"
	case StageProduct:
		return "Product"
	case StageCommodity:
		return "Commodity"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the stage as its display name.
func (s EvolutionStage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Score returns the representative evolution score for the stage, used when
// a pattern or rule names a stage rather than a numeric position.
func (s EvolutionStage) Score() float64 {
	switch s {
	case StageGenesis:
		return 0.15
	case StageCustom:
		return 0.4
	case StageProduct:
		return 0.7
	case StageCommodity:
		return 0.9
	default:
		return 0.5
	}
}

// Next returns the stage a component at this stage evolves toward, and
// whether such a transition exists. Genesis components jump directly to
// Product: the modeled trajectory treats Custom as a differentiation
// posture rather than an evolution target.
func (s EvolutionStage) Next() (EvolutionStage, bool) {
	switch s {
	case StageGenesis, StageCustom:
		return StageProduct, true
	case StageProduct:
		return StageCommodity, true
	default:
		return StageCommodity, false
	}
}

// StageForScore maps an evolution score onto its stage band. The bands
// partition [0,1] totally: Genesis [0,0.25), Custom [0.25,0.55),
// Product [0.55,0.8), Commodity [0.8,1.0]. Out-of-range scores clamp.
func StageForScore(score float64) EvolutionStage {
	score = Clamp01(score)
	switch {
	case score < customBandStart:
		return StageGenesis
	case score < productBandStart:
		return StageCustom
	case score < commodityBandStart:
		return StageProduct
	default:
		return StageCommodity
	}
}

// ParseStage maps a stage name (any casing) onto its EvolutionStage.
func ParseStage(s string) (EvolutionStage, bool) {
	switch Key(s) {
	case "genesis":
		return StageGenesis, true
	case "custom":
		return StageCustom, true
	case "product":
		return StageProduct, true
	case "commodity":
		return StageCommodity, true
	default:
		return StageGenesis, false
	}
}

// StageCharacteristics carries the narrative descriptors of a stage.
// They feed rationale and report text only, never scoring logic.
type StageCharacteristics struct {
	Ubiquity    string `json:"ubiquity"`
	Certainty   string `json:"certainty"`
	Market      string `json:"market"`
	Failures    string `json:"failures"`
	Competition string `json:"competition"`
}

// Characteristics returns the narrative descriptors for the stage.
func (s EvolutionStage) Characteristics() StageCharacteristics {
	switch s {
	case StageGenesis:
		return StageCharacteristics{
			Ubiquity:    "Rare",
			Certainty:   "Poorly understood",
			Market:      "Undefined",
			Failures:    "High and unpredictable",
			Competition: "N/A",
		}
	case StageCustom:
		return StageCharacteristics{
			Ubiquity:    "Slowly increasing",
			Certainty:   "Rapid learning",
			Market:      "Forming",
			Failures:    "High but reducing",
			Competition: "Emerging",
		}
	case StageProduct:
		return StageCharacteristics{
			Ubiquity:    "Rapidly increasing",
			Certainty:   "Rapid learning",
			Market:      "Growing",
			Failures:    "Low",
			Competition: "High",
		}
	default:
		return StageCharacteristics{
			Ubiquity:    "Widespread",
			Certainty:   "Known",
			Market:      "Mature",
			Failures:    "Very low",
			Competition: "Utility-focused",
		}
	}
}

// VisibilityLevel buckets a visibility score into its display label.
func VisibilityLevel(score float64) string {
	switch {
	case score < 0.35:
		return "Low (Infrastructure/Internal)"
	case score < 0.65:
		return "Medium (Integration/APIs)"
	default:
		return "High (Customer-facing)"
	}
}

// Clamp01 clamps v into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
