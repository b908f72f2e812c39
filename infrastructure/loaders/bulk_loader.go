package loaders

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"

	"strainbrain/application/ports"
	"strainbrain/domain/core/entities"
	"strainbrain/domain/core/valueobjects"
)

// EntityRecord is the JSON shape of one bulk-loaded entity.
type EntityRecord struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	EntityType       string  `json:"entity_type"`
	Description      string  `json:"description"`
	StrainAmplitude  float64 `json:"strain_amplitude"`
	StrainResistance float64 `json:"strain_resistance"`
	StrainFrequency  int     `json:"strain_frequency"`
	AccessCount      int     `json:"access_count"`
}

// ThoughtRecord is the JSON shape of one bulk-loaded thought.
type ThoughtRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Verified    bool     `json:"verified"`
	Confidence  float64  `json:"confidence"`
	Connections []string `json:"connections"`
}

// BulkLoader ingests entity and thought collections at startup. Missing
// or malformed input degrades to an empty graph, never a startup failure.
type BulkLoader struct {
	graph    ports.EntityGraph
	thoughts ports.ThoughtStore
	logger   *zap.Logger
}

// NewBulkLoader creates the loader.
func NewBulkLoader(graph ports.EntityGraph, thoughts ports.ThoughtStore, logger *zap.Logger) *BulkLoader {
	return &BulkLoader{graph: graph, thoughts: thoughts, logger: logger}
}

// LoadFiles reads the two JSON collections from disk. Empty paths are
// skipped quietly.
func (l *BulkLoader) LoadFiles(ctx context.Context, entitiesPath, thoughtsPath string) {
	if entitiesPath != "" {
		l.loadEntityFile(ctx, entitiesPath)
	}
	if thoughtsPath != "" {
		l.loadThoughtFile(ctx, thoughtsPath)
	}
}

func (l *BulkLoader) loadEntityFile(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("entity file unreadable, starting empty", zap.String("path", path), zap.Error(err))
		return
	}

	var records []EntityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		l.logger.Warn("entity file malformed, starting empty", zap.String("path", path), zap.Error(err))
		return
	}
	loaded := l.LoadEntities(ctx, records)
	l.logger.Info("entities loaded", zap.String("path", path), zap.Int("count", loaded))
}

func (l *BulkLoader) loadThoughtFile(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("thought file unreadable, starting empty", zap.String("path", path), zap.Error(err))
		return
	}

	var records []ThoughtRecord
	if err := json.Unmarshal(data, &records); err != nil {
		l.logger.Warn("thought file malformed, starting empty", zap.String("path", path), zap.Error(err))
		return
	}
	loaded := l.LoadThoughts(ctx, records)
	l.logger.Info("thoughts loaded", zap.String("path", path), zap.Int("count", loaded))
}

// LoadEntities ingests entity records, skipping any that fail to parse.
// Returns how many landed in the graph.
func (l *BulkLoader) LoadEntities(ctx context.Context, records []EntityRecord) int {
	loaded := 0
	now := time.Now()

	for _, record := range records {
		id, err := valueobjects.ParseEntityID(record.ID)
		if err != nil {
			l.logger.Warn("skipping entity record", zap.String("id", record.ID), zap.Error(err))
			continue
		}

		strain := valueobjects.ReconstructStrainVector(
			record.StrainAmplitude,
			record.StrainResistance,
			record.StrainFrequency,
			record.AccessCount,
		)
		entity, err := entities.ReconstructEntity(id, record.Name, entities.EntityType(record.EntityType), record.Description, strain, now, now)
		if err != nil {
			l.logger.Warn("skipping entity record", zap.String("id", record.ID), zap.Error(err))
			continue
		}
		if err := l.graph.PutEntity(ctx, entity); err != nil {
			l.logger.Warn("skipping entity record", zap.String("id", record.ID), zap.Error(err))
			continue
		}
		loaded++
	}
	return loaded
}

// LoadThoughts ingests thought records. Connections that do not resolve
// to loaded entities invalidate the record, not the load.
func (l *BulkLoader) LoadThoughts(ctx context.Context, records []ThoughtRecord) int {
	loaded := 0

	for _, record := range records {
		id, err := valueobjects.ParseThoughtID(record.ID)
		if err != nil {
			l.logger.Warn("skipping thought record", zap.String("id", record.ID), zap.Error(err))
			continue
		}

		connections := make([]valueobjects.EntityID, 0, len(record.Connections))
		resolved := true
		for _, raw := range record.Connections {
			entityID, err := valueobjects.ParseEntityID(raw)
			if err != nil {
				resolved = false
				break
			}
			if _, ok := l.graph.GetEntity(ctx, entityID); !ok {
				resolved = false
				break
			}
			connections = append(connections, entityID)
		}
		if !resolved {
			l.logger.Warn("skipping thought record with unresolved connections", zap.String("id", record.ID))
			continue
		}

		thought, err := entities.NewThought(id, record.Name, record.Description, connections, record.Verified, "bulk_load", record.Confidence)
		if err != nil {
			l.logger.Warn("skipping thought record", zap.String("id", record.ID), zap.Error(err))
			continue
		}
		if err := l.thoughts.PutThought(ctx, thought); err != nil {
			l.logger.Warn("skipping thought record", zap.String("id", record.ID), zap.Error(err))
			continue
		}
		loaded++
	}
	return loaded
}
