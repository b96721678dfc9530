package usecase

import (
	"context"
	"strings"
	"testing"

	"guest-response-agent/internal/inquiry"
	"guest-response-agent/internal/model"
)

func TestFormatTemplates(t *testing.T) {
	matches := []inquiry.TemplateMatch{
		{TemplateID: "a", Category: "check-in", Text: "Check-in at {check_in_time}.", Score: 0.91},
		{TemplateID: "b", Category: "parking", Text: "Parking info.", Score: 0.85},
		{TemplateID: "c", Category: "general", Text: "General info.", Score: 0.8},
		{TemplateID: "d", Category: "general", Text: "Should be cut.", Score: 0.75},
	}

	got := formatTemplates(matches)

	if !strings.Contains(got, "Template 1 (similarity: 0.910):") {
		t.Errorf("missing first header:\n%s", got)
	}
	if !strings.Contains(got, "Category: parking") {
		t.Errorf("missing category:\n%s", got)
	}
	if strings.Contains(got, "Should be cut") {
		t.Error("more than 3 templates rendered")
	}
}

func TestMarshalInfo(t *testing.T) {
	if got := marshalInfo((*model.Property)(nil)); got != "Not available" {
		t.Errorf("nil property = %q", got)
	}
	if got := marshalInfo((*model.Reservation)(nil)); got != "Not available" {
		t.Errorf("nil reservation = %q", got)
	}

	got := marshalInfo(&model.Property{Name: "Sea View Loft"})
	if !strings.Contains(got, `"Name": "Sea View Loft"`) {
		t.Errorf("property JSON = %s", got)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose around", `Sure, here you go: {"a": 1}. Anything else?`, `{"a": 1}`},
		{"no object", "no json here", "no json here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.in); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDraftPicksStrategy(t *testing.T) {
	ctx := context.Background()

	t.Run("template path above threshold", func(t *testing.T) {
		f := newFixture()
		uc := f.usecase()
		dr := uc.draft(ctx, "check-in?", []inquiry.TemplateMatch{{TemplateID: "a", Text: "t", Score: 0.71}}, nil, nil)
		if dr.tier != inquiry.TierTemplate {
			t.Errorf("tier = %s", dr.tier)
		}
	})

	t.Run("custom path below threshold", func(t *testing.T) {
		f := newFixture()
		uc := f.usecase()
		dr := uc.draft(ctx, "check-in?", []inquiry.TemplateMatch{{TemplateID: "a", Text: "t", Score: 0.5}}, nil, nil)
		if dr.tier != inquiry.TierCustom {
			t.Errorf("tier = %s", dr.tier)
		}
	})

	t.Run("custom path without matches", func(t *testing.T) {
		f := newFixture()
		uc := f.usecase()
		dr := uc.draft(ctx, "anything", nil, nil, nil)
		if dr.tier != inquiry.TierCustom {
			t.Errorf("tier = %s", dr.tier)
		}
	})
}

func TestDraftFromTemplatesDefaultConfidence(t *testing.T) {
	f := newFixture()
	f.llm.text = `{"response_text": "All set."}`
	uc := f.usecase()

	dr := uc.draftFromTemplates(context.Background(), "q", []inquiry.TemplateMatch{{TemplateID: "a", Text: "t", Score: 0.8}}, nil, nil)
	if dr.confidence != defaultTemplateConfidence {
		t.Errorf("confidence = %v, want default %v when score omitted", dr.confidence, defaultTemplateConfidence)
	}
}
