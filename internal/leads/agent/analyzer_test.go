package agent

import (
	"strings"
	"testing"

	"leadboard_backend/internal/leads/domain"
)

func TestBuildPrompt(t *testing.T) {
	lead := domain.Lead{
		Name:          "Asha",
		Place:         "Kochi",
		SpecialNotes:  "asked for a quote",
		CurrentStatus: domain.StatusNew,
	}
	prompt := buildPrompt(lead)

	for _, want := range []string{"Asha", "Kochi", "asked for a quote", "NEW"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "Country:") {
		t.Error("blank fields must be omitted from the prompt")
	}
}

func TestNormalizeAnalysis(t *testing.T) {
	got := normalizeAnalysis(rawAnalysis{
		Quality:         "HOT",
		Analysis:        "Clear buying intent in the notes.",
		SuggestedStatus: "QUALIFIED",
	})
	if got.Quality != domain.QualityHot || got.SuggestedStatus != domain.StatusQualified {
		t.Errorf("got %+v", got)
	}

	// An empty reply degrades to defaults instead of erroring.
	got = normalizeAnalysis(rawAnalysis{})
	if got.Quality != domain.QualityUncategorized || got.SuggestedStatus != domain.StatusNew {
		t.Errorf("got %+v", got)
	}
	if got.Analysis != fallbackAnalysis {
		t.Errorf("analysis = %q", got.Analysis)
	}
}
