// internal/providers/candidates/provider.go
package candidates

import (
	"context"
	"encoding/json"
	"fmt"

	commonerrors "riskrec-engine/internal/common/errors"
	"riskrec-engine/internal/common/logger"
	"riskrec-engine/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const defaultPoolSize = 100

// PoolQuery narrows the candidate pool before the matcher sees it.
// Deltas are relative to the user's current salary, matching the
// currentSalaryDelta field indexed on each candidate document.
type PoolQuery struct {
	MinDelta        float64
	MaxDelta        float64
	RemotePreferred bool
	Size            int
}

// Searcher runs an index-scoped search. Satisfied by
// *database.ElasticsearchClient.
type Searcher interface {
	SearchIndex(ctx context.Context, index string, query interface{}, size int) (*esapi.Response, error)
}

// Provider fetches job candidate documents from Elasticsearch.
type Provider struct {
	es     Searcher
	index  string
	logger logger.Logger
}

func New(es Searcher, index string, log logger.Logger) *Provider {
	return &Provider{
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "candidate-provider"}),
	}
}

// FetchPool runs the pool query and decodes hits into JobCandidate values.
// A query that matches nothing returns an empty slice, not an error; the
// orchestrator decides whether an empty pool is fatal for the request.
func (p *Provider) FetchPool(ctx context.Context, q PoolQuery) ([]models.JobCandidate, error) {
	size := q.Size
	if size <= 0 {
		size = defaultPoolSize
	}

	res, err := p.es.SearchIndex(ctx, p.index, buildPoolQuery(q), size)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, commonerrors.NewCandidateQueryTimeoutError(err)
		}
		return nil, commonerrors.NewCandidateQueryError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, commonerrors.NewCandidateQueryError(fmt.Errorf("search failed: %s", res.Status()))
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source models.JobCandidate `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, commonerrors.NewCandidateQueryError(err)
	}

	pool := make([]models.JobCandidate, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		pool = append(pool, hit.Source)
	}

	p.logger.Debug("candidate pool fetched", map[string]interface{}{
		"index": p.index,
		"hits":  len(pool),
	})

	return pool, nil
}

// buildPoolQuery assembles the bool query for the pool fetch. Delta
// bounds become a range filter; remote preference is a soft boost so
// on-site candidates still surface when the remote pool runs thin.
func buildPoolQuery(q PoolQuery) map[string]interface{} {
	filterClauses := []interface{}{
		map[string]interface{}{
			"range": map[string]interface{}{
				"currentSalaryDelta": map[string]interface{}{
					"gte": q.MinDelta,
					"lte": q.MaxDelta,
				},
			},
		},
	}

	boolQuery := map[string]interface{}{
		"filter": filterClauses,
	}

	if q.RemotePreferred {
		boolQuery["should"] = []interface{}{
			map[string]interface{}{
				"term": map[string]interface{}{"remoteFlag": true},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]interface{}{"order": "desc"}},
			map[string]interface{}{"id": map[string]interface{}{"order": "asc"}},
		},
	}
}
