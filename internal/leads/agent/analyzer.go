// Package agent provides AI-assisted lead analysis on top of the Gemini API.
// The model classifies a lead's quality, explains the verdict in one sentence,
// and suggests the next workflow status.
package agent

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/platform/ai/gemini"
	"leadboard_backend/platform/apperr"
	"leadboard_backend/platform/logger"
)

// fallbackAnalysis is returned when the model reply carries no reasoning.
const fallbackAnalysis = "Could not analyze lead."

// Analysis is the model's verdict on a single lead.
type Analysis struct {
	Quality         domain.Quality `json:"quality"`
	Analysis        string         `json:"analysis"`
	SuggestedStatus domain.Status  `json:"suggestedStatus"`
}

// rawAnalysis is the loosely-typed wire form of the model reply.
type rawAnalysis struct {
	Quality         string `json:"quality"`
	Analysis        string `json:"analysis"`
	SuggestedStatus string `json:"suggestedStatus"`
}

// analysisSchema constrains the model to the dashboard's vocabulary.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"quality": {
			Type: genai.TypeString,
			Enum: []string{
				string(domain.QualityHot),
				string(domain.QualityWarm),
				string(domain.QualityCold),
				string(domain.QualityFake),
			},
		},
		"analysis": {Type: genai.TypeString},
		"suggestedStatus": {
			Type: genai.TypeString,
			Enum: []string{
				string(domain.StatusNew),
				string(domain.StatusContacted),
				string(domain.StatusQualified),
				string(domain.StatusSpam),
			},
		},
	},
	Required: []string{"quality", "analysis", "suggestedStatus"},
}

// LeadAnalyzer classifies leads via the Gemini API.
type LeadAnalyzer struct {
	client *gemini.Client
	log    *logger.Logger
}

func NewLeadAnalyzer(ctx context.Context, cfg gemini.Config, log *logger.Logger) (*LeadAnalyzer, error) {
	client, err := gemini.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &LeadAnalyzer{client: client, log: log}, nil
}

// Analyze asks the model for a verdict on one lead.
func (a *LeadAnalyzer) Analyze(ctx context.Context, lead domain.Lead) (Analysis, error) {
	var raw rawAnalysis
	if err := a.client.GenerateJSON(ctx, buildPrompt(lead), analysisSchema, &raw); err != nil {
		a.log.AnalysisError(lead.UID, err)
		return Analysis{}, apperr.Wrap(apperr.KindUnavailable, "lead analysis failed", err)
	}
	return normalizeAnalysis(raw), nil
}

// buildPrompt renders the lead record for the model. Blank fields are omitted
// so the model does not reason about empty strings.
func buildPrompt(lead domain.Lead) string {
	var b strings.Builder
	b.WriteString("Analyze the following lead from a sales dashboard.\n\n")

	writeField(&b, "Name", lead.Name)
	writeField(&b, "Place", lead.Place)
	writeField(&b, "Country", lead.Country)
	writeField(&b, "Business industry", lead.BusinessIndustry)
	writeField(&b, "Notes", lead.SpecialNotes)
	writeField(&b, "Current status", string(lead.CurrentStatus))

	b.WriteString("\nTask:\n")
	b.WriteString("1. Categorize the lead as HOT, WARM, COLD, or FAKE.\n")
	b.WriteString("2. Provide a brief 1-sentence analysis reasoning.\n")
	b.WriteString("3. Suggest the appropriate status (NEW, CONTACTED, QUALIFIED, SPAM).\n")

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

// normalizeAnalysis folds the reply into the dashboard vocabulary. A missing
// quality stays UNCATEGORIZED and a missing status falls back to NEW, same as
// any other loosely-typed record entering the system.
func normalizeAnalysis(raw rawAnalysis) Analysis {
	analysis := strings.TrimSpace(raw.Analysis)
	if analysis == "" {
		analysis = fallbackAnalysis
	}
	return Analysis{
		Quality:         domain.ParseQuality(raw.Quality),
		Analysis:        analysis,
		SuggestedStatus: domain.ParseStatus(raw.SuggestedStatus),
	}
}
