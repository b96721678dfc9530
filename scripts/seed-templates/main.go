package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"guest-response-agent/config"
	"guest-response-agent/internal/model"
	"guest-response-agent/pkg/embedding"
	"guest-response-agent/pkg/log"
	pkgQdrant "guest-response-agent/pkg/qdrant"
)

// embedder turns trigger phrases into vectors.
type embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run scripts/seed-templates/main.go <path/to/config.yaml> <path/to/templates.json>")
		fmt.Println("Example: go run scripts/seed-templates/main.go config/config.yaml config/templates.json")
		os.Exit(1)
	}
	configPath := os.Args[1]
	templatesPath := os.Args[2]

	// Load config
	os.Setenv("CONFIG_PATH", configPath)
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize Logger
	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	templates, err := loadTemplates(templatesPath)
	if err != nil {
		logger.Fatalf(ctx, "Failed to load templates: %v", err)
	}
	logger.Infof(ctx, "Loaded %d templates from %s", len(templates), templatesPath)

	// Initialize clients
	qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL)
	embedClient, err := embedding.New(embedding.Config{
		APIKey:  cfg.Embedding.APIKey,
		Model:   cfg.Embedding.Model,
		BaseURL: cfg.Embedding.BaseURL,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize embedding client: %v", err)
	}

	// Ensure the collection exists
	exists, err := qdrantClient.CollectionExists(ctx, cfg.Qdrant.CollectionName)
	if err != nil {
		logger.Fatalf(ctx, "Failed to check collection: %v", err)
	}
	if !exists {
		err = qdrantClient.CreateCollection(ctx, pkgQdrant.CreateCollectionRequest{
			Name: cfg.Qdrant.CollectionName,
			Vectors: pkgQdrant.VectorConfig{
				Size:     cfg.Qdrant.VectorSize,
				Distance: "Cosine",
			},
		})
		if err != nil {
			logger.Fatalf(ctx, "Failed to create collection: %v", err)
		}
		logger.Infof(ctx, "Created collection %q (size %d)", cfg.Qdrant.CollectionName, cfg.Qdrant.VectorSize)
	}

	logger.Info(ctx, "Starting seed process...")

	successCount := 0
	totalCount := 0
	for i, tpl := range templates {
		points, err := buildPoints(ctx, embedClient, tpl)
		if err != nil {
			logger.Errorf(ctx, "Failed to embed template %s: %v", tpl.ID, err)
			totalCount += len(tpl.TriggerPhrases)
			continue
		}

		err = qdrantClient.UpsertPoints(ctx, cfg.Qdrant.CollectionName, pkgQdrant.UpsertPointsRequest{
			Points: points,
		})
		if err != nil {
			logger.Errorf(ctx, "Failed to upsert template %s: %v", tpl.ID, err)
			totalCount += len(points)
			continue
		}

		logger.Infof(ctx, "Seeded template %d/%d: %s (%d phrases)", i+1, len(templates), tpl.ID, len(points))
		successCount += len(points)
		totalCount += len(points)
	}

	logger.Infof(ctx, "Seed complete! %d/%d points successfully upserted.", successCount, totalCount)
}

func loadTemplates(path string) ([]model.Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var templates []model.Template
	if err := json.Unmarshal(raw, &templates); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for _, tpl := range templates {
		if tpl.ID == "" || tpl.Text == "" || len(tpl.TriggerPhrases) == 0 {
			return nil, fmt.Errorf("template %+v: template_id, text and trigger_phrases are required", tpl)
		}
	}

	return templates, nil
}

// buildPoints embeds every trigger phrase of a template in one API call.
func buildPoints(ctx context.Context, embed embedder, tpl model.Template) ([]pkgQdrant.Point, error) {
	vectors, err := embed.Embed(ctx, tpl.TriggerPhrases)
	if err != nil {
		return nil, err
	}

	points := make([]pkgQdrant.Point, 0, len(tpl.TriggerPhrases))
	for i, phrase := range tpl.TriggerPhrases {
		// Deterministic IDs keep reruns idempotent.
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(tpl.ID+"|"+phrase))
		points = append(points, pkgQdrant.Point{
			ID:     id.String(),
			Vector: vectors[i],
			Payload: map[string]interface{}{
				"template_id": tpl.ID,
				"category":    string(tpl.Category),
				"text":        tpl.Text,
				"trigger":     phrase,
			},
		})
	}

	return points, nil
}
