package knowledge

import "github.com/dd0wney/cluso-strategy/pkg/wardley"

// defaultPatterns returns the built-in known-technology catalog. Stages and
// visibilities encode where these technologies sit on virtually every map;
// aliases cover the spellings that show up in architecture descriptions.
func defaultPatterns() []ComponentPattern {
	return []ComponentPattern{
		// Databases. Relational engines are commodity, document stores
		// still differentiate.
		{
			Name:       "PostgreSQL",
			Category:   "Database",
			Stage:      wardley.StageCommodity,
			Visibility: 0.15,
			Aliases:    []string{"Relational DB", "RDBMS", "SQL Database"},
		},
		{
			Name:       "MySQL",
			Category:   "Database",
			Stage:      wardley.StageCommodity,
			Visibility: 0.15,
			Aliases:    []string{"MySQL", "MariaDB"},
		},
		{
			Name:       "MongoDB",
			Category:   "Database",
			Stage:      wardley.StageProduct,
			Visibility: 0.15,
			Aliases:    []string{"NoSQL DB", "Document Database"},
		},

		// Frontend frameworks, product stage.
		{
			Name:       "React",
			Category:   "Frontend Framework",
			Stage:      wardley.StageProduct,
			Visibility: 0.8,
			Aliases:    []string{"React.js", "ReactJS", "React Frontend"},
		},
		{
			Name:       "Vue",
			Category:   "Frontend Framework",
			Stage:      wardley.StageProduct,
			Visibility: 0.8,
			Aliases:    []string{"Vue.js", "VueJS"},
		},

		// Cloud infrastructure, commodity.
		{
			Name:       "AWS",
			Category:   "Cloud Infrastructure",
			Stage:      wardley.StageCommodity,
			Visibility: 0.1,
			Aliases:    []string{"Amazon Web Services", "EC2", "S3"},
		},
		{
			Name:       "Kubernetes",
			Category:   "Container Orchestration",
			Stage:      wardley.StageCommodity,
			Visibility: 0.05,
			Aliases:    []string{"K8s", "K8S", "Kubernetes"},
		},

		// ML frameworks, product stage.
		{
			Name:       "TensorFlow",
			Category:   "ML Framework",
			Stage:      wardley.StageProduct,
			Visibility: 0.3,
			Aliases:    []string{"TensorFlow", "TF"},
		},
		{
			Name:       "PyTorch",
			Category:   "ML Framework",
			Stage:      wardley.StageProduct,
			Visibility: 0.3,
			Aliases:    []string{"PyTorch", "Torch"},
		},

		// Custom ML models stay in the custom band.
		{
			Name:       "Custom ML Model",
			Category:   "ML Model",
			Stage:      wardley.StageCustom,
			Visibility: 0.4,
			Aliases:    []string{"Machine Learning", "Custom Model", "Proprietary Algorithm", "ML Model"},
		},

		// APIs and auth, commodity.
		{
			Name:       "REST API",
			Category:   "API",
			Stage:      wardley.StageCommodity,
			Visibility: 0.5,
			Aliases:    []string{"API", "REST", "HTTP API"},
		},
		{
			Name:       "OAuth2",
			Category:   "Authentication",
			Stage:      wardley.StageCommodity,
			Visibility: 0.2,
			Aliases:    []string{"OAuth", "OAuth2", "OpenID"},
		},
	}
}
