package api

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/protovet/protovet/pkg/lint"
	"github.com/protovet/protovet/pkg/observability"
)

// resultCache memoizes validation and format results keyed by the
// SHA-256 of the request content. Both operations are pure functions of
// the source text, so cached entries never go stale.
type resultCache struct {
	reports *lru.Cache[string, *lint.Report]
	formats *lru.Cache[string, string]
	metrics *observability.Metrics
}

func newResultCache(size int, metrics *observability.Metrics) (*resultCache, error) {
	reports, err := lru.New[string, *lint.Report](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}
	formats, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create format cache: %w", err)
	}
	return &resultCache{
		reports: reports,
		formats: formats,
		metrics: metrics,
	}, nil
}

func cacheKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func (c *resultCache) getReport(key string) (*lint.Report, bool) {
	report, ok := c.reports.Get(key)
	c.observe("validate", ok)
	return report, ok
}

func (c *resultCache) putReport(key string, report *lint.Report) {
	c.reports.Add(key, report)
}

func (c *resultCache) getFormat(key string) (string, bool) {
	formatted, ok := c.formats.Get(key)
	c.observe("format", ok)
	return formatted, ok
}

func (c *resultCache) putFormat(key, formatted string) {
	c.formats.Add(key, formatted)
}

func (c *resultCache) observe(name string, hit bool) {
	if c.metrics == nil {
		return
	}
	if hit {
		c.metrics.CacheHitsTotal.WithLabelValues(name).Inc()
	} else {
		c.metrics.CacheMissesTotal.WithLabelValues(name).Inc()
	}
}
