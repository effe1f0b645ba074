// internal/catalog/loader.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"admission-workers/internal/common/config"
	"admission-workers/internal/common/database"
	"admission-workers/internal/common/logger"
)

// Load builds the catalog from the configured source.
func Load(ctx context.Context, cfg config.CatalogConfig, pg *database.PostgresClient, es *database.ElasticsearchClient, log logger.Logger) (*Catalog, error) {
	switch cfg.Source {
	case "static":
		c := NewStatic()
		log.Info("Loaded static school catalog", map[string]interface{}{"schools": c.Len()})
		return c, nil
	case "postgres":
		return LoadFromPostgres(ctx, pg, log)
	case "elasticsearch":
		return LoadFromElasticsearch(ctx, es, cfg.Index, log)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// LoadFromPostgres reads the catalog from the schools table, ordered by id so
// catalog order is deterministic across restarts.
func LoadFromPostgres(ctx context.Context, pg *database.PostgresClient, log logger.Logger) (*Catalog, error) {
	query := `
		SELECT id, name, board, distance_km, annual_fee, is_popular, rating, total_seats, seats_available
		FROM schools
		ORDER BY id`

	rows, err := pg.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query schools: %w", err)
	}
	defer rows.Close()

	var records []SchoolRecord
	for rows.Next() {
		var r SchoolRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Board, &r.DistanceKm, &r.AnnualFee, &r.IsPopular, &r.Rating, &r.TotalSeats, &r.SeatsAvailable); err != nil {
			return nil, fmt.Errorf("failed to scan school row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate school rows: %w", err)
	}

	c, err := New(records)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded school catalog from postgres", map[string]interface{}{"schools": c.Len()})
	return c, nil
}

// LoadFromElasticsearch reads the catalog from the schools index, sorted by
// id keyword for a stable order.
func LoadFromElasticsearch(ctx context.Context, es *database.ElasticsearchClient, index string, log logger.Logger) (*Catalog, error) {
	body := map[string]interface{}{
		"size": 10000,
		"sort": []map[string]interface{}{
			{"id": map[string]interface{}{"order": "asc"}},
		},
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode catalog query: %w", err)
	}

	res, err := es.Client.Search(
		es.Client.Search.WithContext(ctx),
		es.Client.Search.WithIndex(index),
		es.Client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("catalog search error: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source SchoolRecord `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	records := make([]SchoolRecord, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		records = append(records, h.Source)
	}

	c, err := New(records)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded school catalog from elasticsearch", map[string]interface{}{"schools": c.Len(), "index": index})
	return c, nil
}
