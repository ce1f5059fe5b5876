package migration

import (
	"sort"
	"sync"

	"golang.org/x/exp/maps"
)

// ImageRecord is one rehosted asset: where it came from (normalised), and
// where it lives on the destination now.
type ImageRecord struct {
	SourceKey           string
	DestinationURL      string
	DestinationFilename string
}

// CacheStats is a diagnostic snapshot of the cache contents.
type CacheStats struct {
	Size    int      `yaml:"size"`
	Entries []string `yaml:"entries"`
}

// ImageCache maps normalised source keys (and normalised bare filenames, for
// same-name dedup) to rehosted asset records.  One instance lives for one
// import run; post pipelines share it across goroutines, hence the mutex.
type ImageCache struct {
	mu      sync.Mutex
	records map[string]ImageRecord
}

func NewImageCache() *ImageCache {
	return &ImageCache{records: make(map[string]ImageRecord)}
}

func (c *ImageCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.records[key]
	return ok
}

func (c *ImageCache) Get(key string) (ImageRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[key]
	return rec, ok
}

// Set stores a record under key, silently overwriting any previous entry.
func (c *ImageCache) Set(key string, rec ImageRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[key] = rec
}

func (c *ImageCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := maps.Keys(c.records)
	sort.Strings(entries)

	return CacheStats{
		Size:    len(c.records),
		Entries: entries,
	}
}
