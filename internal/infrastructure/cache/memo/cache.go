package memo

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kirillkom/product-advisor/internal/core/domain"
	"github.com/kirillkom/product-advisor/internal/observability/metrics"
)

const defaultSize = 256

// Cache implements ports.DigestCache on a bounded LRU. Entries never
// expire by age; eviction happens only under capacity pressure or an
// explicit Reset.
type Cache struct {
	lru     *lru.Cache[string, domain.ReviewDigest]
	metrics *metrics.PipelineMetrics
	service string
}

func New(size int, m *metrics.PipelineMetrics, service string) (*Cache, error) {
	if size <= 0 {
		size = defaultSize
	}
	inner, err := lru.New[string, domain.ReviewDigest](size)
	if err != nil {
		return nil, fmt.Errorf("create digest cache: %w", err)
	}
	return &Cache{lru: inner, metrics: m, service: service}, nil
}

func (c *Cache) Get(productID string) (domain.ReviewDigest, bool) {
	digest, ok := c.lru.Get(productID)
	c.metrics.RecordDigestLookup(c.service, ok)
	return digest, ok
}

func (c *Cache) Store(productID string, digest domain.ReviewDigest) {
	c.lru.Add(productID, digest)
}

func (c *Cache) Keys() []string {
	return c.lru.Keys()
}

func (c *Cache) Len() int {
	return c.lru.Len()
}

func (c *Cache) Reset() {
	c.lru.Purge()
}
