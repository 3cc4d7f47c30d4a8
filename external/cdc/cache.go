package cdc

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

// Cache - lazily fetched data sets, one per source. A data set is fetched at
// most once until Reset, failures are not cached.
type Cache struct {
	sync.Mutex
	sources  map[SourceKey]Source
	datasets map[SourceKey]*Dataset
	scope    tally.Scope
}

// Dataset - return the cached data set of a source, fetching it on first use
func (c *Cache) Dataset(key SourceKey) (*Dataset, error) {
	c.Lock()
	defer c.Unlock()

	tagged := c.scope.Tagged(map[string]string{"source": string(key)})

	if d, ok := c.datasets[key]; ok {
		tagged.Counter("cache_hit").Inc(1)
		return d, nil
	}

	source, ok := c.sources[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, key)
	}

	sw := tagged.Timer("fetch_latency").Start()
	d, err := source.Fetch()
	sw.Stop()
	tagged.Counter("fetch").Inc(1)
	if err != nil {
		tagged.Counter("fetch_error").Inc(1)
		log.WithFields(log.Fields{"prefix": logPrefix, "source": key, "error": err}).Error("fetch data set")
		return nil, err
	}

	c.datasets[key] = d
	return d, nil
}

// Reset - drop every cached data set
func (c *Cache) Reset() {
	c.Lock()
	defer c.Unlock()
	c.datasets = make(map[SourceKey]*Dataset)
}

// NewCache - new cache over the given sources, a nil scope disables metrics
func NewCache(scope tally.Scope, sources ...Source) *Cache {
	if scope == nil {
		scope = tally.NoopScope
	}
	m := make(map[SourceKey]Source, len(sources))
	for _, s := range sources {
		m[s.Key()] = s
	}
	return &Cache{
		sources:  m,
		datasets: make(map[SourceKey]*Dataset),
		scope:    scope,
	}
}
