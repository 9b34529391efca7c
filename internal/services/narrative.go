package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/types"
)

const narrativeTimeout = 20 * time.Second

// NarrativeInput carries the prediction context plus optional catalog hints
// that tailor the prompt for a given role.
type NarrativeInput struct {
	Species         string
	Disease         string
	Severity        string
	QualityIndex    float64
	MedicinalValue  string
	NutritionalInfo string
	ToxicityRisk    string
}

// TextGenerator is the outbound LLM boundary. A nil generator means narrative
// generation is disabled and only fallback content is produced.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type NarrativeService interface {
	// Describe never fails: whatever happens upstream, the returned content
	// satisfies len(Steps)+len(Precautions) >= 10 after normalization.
	Describe(ctx context.Context, role types.UserRole, input NarrativeInput) *types.NarrativeContent
}

type narrativeService struct {
	log *logger.Logger
	gen TextGenerator
}

func NewNarrativeService(log *logger.Logger, gen TextGenerator) NarrativeService {
	return &narrativeService{
		log: log.With("service", "NarrativeService"),
		gen: gen,
	}
}

func (ns *narrativeService) Describe(ctx context.Context, role types.UserRole, input NarrativeInput) *types.NarrativeContent {
	content := ns.callGenerator(ctx, buildNarrativePrompt(role, input))
	if content == nil {
		content = &types.NarrativeContent{SpeciesName: input.Species}
	}
	normalizeNarrative(content, role, input.Species)
	return content
}

func (ns *narrativeService) callGenerator(ctx context.Context, prompt string) *types.NarrativeContent {
	if ns.gen == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, narrativeTimeout)
	defer cancel()

	text, err := ns.gen.Generate(callCtx, prompt)
	if err != nil {
		ns.log.Warn("Narrative generation failed, falling back to defaults", "error", err)
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var parsed types.NarrativeContent
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err == nil {
		return &parsed
	}

	// Unstructured output: treat it as prose and salvage the first ten
	// sentences as treatment steps.
	sentences := splitSentences(text)
	return &types.NarrativeContent{
		About:       strings.Join(sentences, ". "),
		Steps:       firstN(sentences, 10),
		Precautions: []string{},
	}
}

func splitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\r' || r == '\n' || r == '.'
	})
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	cp := make([]string, len(items))
	copy(cp, items)
	return cp
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}

func buildNarrativePrompt(role types.UserRole, input NarrativeInput) string {
	var sb strings.Builder
	sb.WriteString("You are an expert agronomist and plant pathologist specializing in plant disease treatment.\n\n")
	sb.WriteString("Given the following plant disease information:\n")
	fmt.Fprintf(&sb, "- Species: %s\n", input.Species)
	fmt.Fprintf(&sb, "- Disease: %s\n", input.Disease)
	fmt.Fprintf(&sb, "- Severity: %s\n", input.Severity)
	fmt.Fprintf(&sb, "- Quality Index: %g%%\n", input.QualityIndex)
	fmt.Fprintf(&sb, "- Requester role: %s\n", role)
	if input.MedicinalValue != "" {
		fmt.Fprintf(&sb, "- Medicinal value: %s\n", input.MedicinalValue)
	}
	if input.NutritionalInfo != "" {
		fmt.Fprintf(&sb, "- Nutritional info: %s\n", input.NutritionalInfo)
	}
	if input.ToxicityRisk != "" {
		fmt.Fprintf(&sb, "- Toxicity risk: %s\n", input.ToxicityRisk)
	}
	sb.WriteString(`
Provide a detailed treatment plan in JSON format with the following structure:
{
  "speciesName": "Full scientific/common name of the plant",
  "about": "Brief 2-3 sentence description of the disease",
  "cause": "What causes this disease (pathogens, environmental factors, etc.)",
  "curability": "Is this disease curable? What is the prognosis?",
  "steps": [
    "Step 1: Detailed first treatment step",
    "Step 2: Detailed second treatment step",
    "Step 3: Detailed third treatment step",
    "Step 4: Detailed fourth treatment step",
    "Step 5: Detailed fifth treatment step",
    "Step 6: Detailed sixth treatment step",
    "Step 7: Detailed seventh treatment step",
    "Step 8: Detailed eighth treatment step",
    "Step 9: Detailed ninth treatment step",
    "Step 10: Detailed tenth treatment step"
  ],
  "precautions": [
    "Important safety precaution 1",
    "Important safety precaution 2",
    "Important safety precaution 3"
  ]
}

IMPORTANT:
- You MUST provide exactly 10 steps in the "steps" array
- Each step should be specific, actionable, and detailed
- Steps should be in chronological order of treatment
- Include organic and chemical treatment options where applicable
- Respond ONLY with valid JSON, no additional text`)
	return sb.String()
}
