// internal/workers/data-access/query-school-catalog/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// SchoolQuery defines the structure of a catalog query request
type SchoolQuery struct {
	Index      string
	QueryType  string
	Filters    map[string]interface{}
	SchoolID   string
	Pagination struct {
		From int
		Size int
	}
}

// BuildQuery builds an Elasticsearch search request based on query type and filters
func BuildQuery(esClient *elasticsearch.Client, sq SchoolQuery) (*esapi.SearchRequest, error) {
	if sq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch sq.QueryType {
	case "school_search":
		queryBody = buildSchoolSearchQuery(sq)
	case "school_by_id":
		queryBody = buildSchoolByIDQuery(sq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, sq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index:  []string{sq.Index},
		Body:   strings.NewReader(string(body)),
		From:   &sq.Pagination.From,
		Size:   &sq.Pagination.Size,
		Pretty: true,
	}

	return &req, nil
}

// buildSchoolSearchQuery builds the main catalog search query dynamically
func buildSchoolSearchQuery(sq SchoolQuery) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if keywords, ok := sq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"name^3", "board^2", "description"},
				"type":   "best_fields",
			},
		})
	}

	if board, ok := sq.Filters["board"].(string); ok && board != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"board": board},
		})
	}

	if maxDistance := toFloat(sq.Filters["maxDistanceKm"]); maxDistance > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"distance_km": map[string]interface{}{"lte": maxDistance},
			},
		})
	}

	if feeRange, ok := sq.Filters["feeRange"].(map[string]interface{}); ok {
		rangeClause := map[string]interface{}{}
		if min := toFloat(feeRange["min"]); min > 0 {
			rangeClause["gte"] = min
		}
		if max := toFloat(feeRange["max"]); max > 0 {
			rangeClause["lte"] = max
		}
		if len(rangeClause) > 0 {
			filterClauses = append(filterClauses, map[string]interface{}{
				"range": map[string]interface{}{"annual_fee": rangeClause},
			})
		}
	}

	if minRating := toFloat(sq.Filters["minRating"]); minRating > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"rating": map[string]interface{}{"gte": minRating},
			},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	} else {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"rating": map[string]interface{}{"order": "desc"}},
		},
	}
}

// buildSchoolByIDQuery fetches a single school document by id
func buildSchoolByIDQuery(sq SchoolQuery) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{"id": sq.SchoolID},
		},
	}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
