// Package loader fetches and validates the plant dataset and feeds it to the
// catalog store.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/appengine-ltd/virtual-herbarium/internal/catalog"
	"github.com/appengine-ltd/virtual-herbarium/internal/metrics"
)

// Load outcomes as reported to metrics.
const (
	OutcomeReady       = "ready"
	OutcomeEmpty       = "empty"
	OutcomeFetchError  = "fetch_error"
	OutcomeFormatError = "format_error"
	OutcomeStale       = "stale"
)

type Loader struct {
	source  Source
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(source Source, logger *slog.Logger, m *metrics.Metrics) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{source: source, logger: logger, metrics: m}
}

func (l *Loader) Source() Source {
	return l.source
}

// Load fetches and decodes the dataset. A document without a plants field
// yields an empty list and no error.
func (l *Loader) Load(ctx context.Context) ([]catalog.PlantRecord, error) {
	start := time.Now()
	records, err := l.load(ctx)
	outcome := Outcome(records, err)
	l.metrics.ObserveLoad(outcome, time.Since(start))
	if err != nil {
		l.logger.Warn("dataset load failed", "source", l.source.String(), "outcome", outcome, "error", err)
		return nil, err
	}
	l.logger.Info("dataset loaded", "source", l.source.String(), "plants", len(records), "took", time.Since(start))
	return records, nil
}

func (l *Loader) load(ctx context.Context) ([]catalog.PlantRecord, error) {
	payload, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	records, err := Decode(payload.Body)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Source = l.source.String()
		}
		return nil, err
	}
	return records, nil
}

// Outcome classifies a load result.
func Outcome(records []catalog.PlantRecord, err error) string {
	var formatErr *FormatError
	switch {
	case errors.As(err, &formatErr):
		return OutcomeFormatError
	case err != nil:
		return OutcomeFetchError
	case len(records) == 0:
		return OutcomeEmpty
	default:
		return OutcomeReady
	}
}

type datasetPlant struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ScientificName  string   `json:"scientificName"`
	Description     string   `json:"description"`
	Characteristics []string `json:"characteristics"`
	ModelURL        string   `json:"modelUrl"`
}

// Decode parses a dataset document `{"plants": [...]}`. Every plant needs a
// non-empty id and ids must be unique.
func Decode(body []byte) ([]catalog.PlantRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &FormatError{Reason: "document is not a JSON object"}
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, &FormatError{Reason: "invalid JSON", Err: err}
	}
	raw, ok := doc["plants"]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return []catalog.PlantRecord{}, nil
	}
	var plants []datasetPlant
	if err := json.Unmarshal(raw, &plants); err != nil {
		return nil, &FormatError{Reason: "plants must be an array of plant objects", Err: err}
	}

	out := make([]catalog.PlantRecord, 0, len(plants))
	seen := make(map[string]int, len(plants))
	for i, p := range plants {
		if strings.TrimSpace(p.ID) == "" {
			return nil, &FormatError{Reason: fmt.Sprintf("plant %d has no id", i)}
		}
		if prev, dup := seen[p.ID]; dup {
			return nil, &FormatError{Reason: fmt.Sprintf("duplicate plant id %q at %d and %d", p.ID, prev, i)}
		}
		seen[p.ID] = i
		characteristics := p.Characteristics
		if characteristics == nil {
			characteristics = []string{}
		}
		out = append(out, catalog.PlantRecord{
			ID:              p.ID,
			Name:            p.Name,
			ScientificName:  p.ScientificName,
			Description:     p.Description,
			Characteristics: characteristics,
			ModelURL:        p.ModelURL,
		})
	}
	return out, nil
}
