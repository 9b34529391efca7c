package services

import "github.com/agrisight/agrisight-backend/internal/types"

// Fixed fallback content used to top narratives up to the ten-entry minimum.
// Order matters: steps drain before precautions, and each list drains front
// to back, so fallback output is deterministic per role.

var defaultStepsByRole = map[types.UserRole][]string{
	types.RoleFarmer: {
		"Inspect leaves daily",
		"Isolate infected plants",
		"Remove severely affected leaves",
		"Apply recommended fungicide",
		"Adjust irrigation to avoid wet foliage",
		"Improve airflow between rows",
		"Sanitize tools after use",
		"Rotate crops next season",
		"Mulch to reduce splash",
		"Monitor results and reapply as needed",
	},
	types.RoleAgriIndustry: {
		"Calibrate sensors",
		"Log readings to system",
		"Adjust NPK program",
		"Schedule field scouting",
		"Update irrigation schedule",
		"Apply integrated pest management",
		"Review soil tests",
		"Train staff on safety",
		"Document interventions",
		"Evaluate yield impact",
	},
	types.RolePharmaIndustry: {
		"Verify specimen identity",
		"Record collection site",
		"Assess quality parameters",
		"Screen for contaminants",
		"Apply validated processing",
		"Store under GMP conditions",
		"Track batch metadata",
		"Run toxicity checks",
		"Document pharmacopoeia compliance",
		"Review stability over time",
	},
}

var defaultPrecautions = []string{
	"Use appropriate PPE",
	"Follow label directions",
	"Avoid runoff and drift",
	"Keep detailed records",
}

// normalizeNarrative enforces the content quota: species name defaults to the
// classified species, nil slices become empty, and role defaults top the
// combined step/precaution count up to ten (or until both lists run dry).
func normalizeNarrative(content *types.NarrativeContent, role types.UserRole, species string) {
	if content.SpeciesName == "" {
		content.SpeciesName = species
	}
	if content.Steps == nil {
		content.Steps = []string{}
	}
	if content.Precautions == nil {
		content.Precautions = []string{}
	}

	roleDefaults, ok := defaultStepsByRole[role]
	if !ok {
		roleDefaults = defaultStepsByRole[types.RoleFarmer]
	}

	count := len(content.Steps) + len(content.Precautions)
	for i := 0; count < 10 && i < len(roleDefaults); i++ {
		content.Steps = append(content.Steps, roleDefaults[i])
		count++
	}
	for j := 0; count < 10 && j < len(defaultPrecautions); j++ {
		content.Precautions = append(content.Precautions, defaultPrecautions[j])
		count++
	}
}
