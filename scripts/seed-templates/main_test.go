package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"guest-response-agent/internal/model"
)

type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{float32(i), 1.0}
	}
	return vectors, nil
}

func writeTemplates(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTemplates(t *testing.T) {
	path := writeTemplates(t, `[
		{
			"template_id": "tpl-checkin",
			"category": "check-in",
			"text": "Check-in starts at {check_in_time}.",
			"trigger_phrases": ["what time is check-in", "when can I arrive"]
		}
	]`)

	templates, err := loadTemplates(path)
	if err != nil {
		t.Fatalf("loadTemplates: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("got %d templates, want 1", len(templates))
	}

	tpl := templates[0]
	if tpl.ID != "tpl-checkin" || tpl.Category != model.CategoryCheckIn {
		t.Errorf("unexpected template: %+v", tpl)
	}
	if len(tpl.TriggerPhrases) != 2 {
		t.Errorf("trigger phrases = %v", tpl.TriggerPhrases)
	}
}

func TestLoadTemplatesRejectsIncomplete(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing id", `[{"category": "general", "text": "Hi.", "trigger_phrases": ["hi"]}]`},
		{"missing text", `[{"template_id": "tpl-1", "category": "general", "trigger_phrases": ["hi"]}]`},
		{"no triggers", `[{"template_id": "tpl-1", "category": "general", "text": "Hi."}]`},
		{"not json", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadTemplates(writeTemplates(t, tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestBuildPoints(t *testing.T) {
	tpl := model.Template{
		ID:             "tpl-parking",
		Category:       model.CategoryParking,
		Text:           "Parking details: {parking_details}",
		TriggerPhrases: []string{"where do I park", "is there parking"},
	}

	embed := &fakeEmbedder{}
	points, err := buildPoints(context.Background(), embed, tpl)
	if err != nil {
		t.Fatalf("buildPoints: %v", err)
	}

	if embed.calls != 1 {
		t.Errorf("embed calls = %d, want 1 batched call", embed.calls)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}

	for i, p := range points {
		if p.Payload["template_id"] != tpl.ID || p.Payload["category"] != string(tpl.Category) {
			t.Errorf("point %d payload = %v", i, p.Payload)
		}
		if p.Payload["trigger"] != tpl.TriggerPhrases[i] {
			t.Errorf("point %d trigger = %v", i, p.Payload["trigger"])
		}
	}

	// Same template and phrase must produce the same ID on reruns.
	again, err := buildPoints(context.Background(), embed, tpl)
	if err != nil {
		t.Fatalf("buildPoints rerun: %v", err)
	}
	if points[0].ID != again[0].ID || points[1].ID != again[1].ID {
		t.Error("point IDs not deterministic across runs")
	}
	if points[0].ID == points[1].ID {
		t.Error("distinct phrases produced the same point ID")
	}
}
