package score

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ppiankov/newstrust/internal/cache"
	"github.com/ppiankov/newstrust/internal/logging"
	"github.com/ppiankov/newstrust/internal/model"
)

const cacheKeyPrefix = "score:v1:"

// CachedScorer memoizes score reports by the exact ordered URL list.
// The cache is advisory: any cache error falls through to a fresh score.
type CachedScorer struct {
	scorer *Scorer
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// NewCachedScorer wraps scorer with c. A nil cache disables memoization.
func NewCachedScorer(scorer *Scorer, c cache.Cache, ttl time.Duration, logger *log.Logger) *CachedScorer {
	if scorer == nil {
		scorer = NewScorer(nil)
	}
	return &CachedScorer{
		scorer: scorer,
		cache:  c,
		ttl:    ttl,
		logger: logging.OrDefault(logger),
	}
}

// Score returns the report for urls
func (c *CachedScorer) Score(urls []string) model.ScoreReport {
	report, _ := c.ScoreWithHit(urls)
	return report
}

// ScoreWithHit returns the report and whether it was served from the cache
func (c *CachedScorer) ScoreWithHit(urls []string) (model.ScoreReport, bool) {
	if c.cache == nil {
		return c.scorer.Score(urls), false
	}

	key := cache.URLListKey(cacheKeyPrefix, urls)
	if data, found := c.cache.Get(key); found {
		var report model.ScoreReport
		err := json.Unmarshal(data, &report)
		if err == nil {
			c.logger.Debug("score cache hit", "key", key)
			return report, true
		}
		c.logger.Warn("discarding unreadable score cache entry", "key", key, "err", err)
		_ = c.cache.Delete(key)
	}

	report := c.scorer.Score(urls)

	data, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("encode score report", "err", err)
		return report, false
	}
	if err := c.cache.Set(key, data, c.ttl); err != nil {
		c.logger.Warn("score cache write failed", "key", key, "err", err)
	}
	return report, false
}
