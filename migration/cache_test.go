package migration

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageCacheSetGet(t *testing.T) {
	c := NewImageCache()

	_, ok := c.Get("https://x.com/pic.jpg")
	assert.False(t, ok)
	assert.False(t, c.Has("https://x.com/pic.jpg"))

	rec := ImageRecord{
		SourceKey:           "https://x.com/pic.jpg",
		DestinationURL:      "http://dest/uploads/pic_abc.jpg",
		DestinationFilename: "pic_abc.jpg",
	}
	c.Set("https://x.com/pic.jpg", rec)

	got, ok := c.Get("https://x.com/pic.jpg")
	require.True(t, ok)
	assert.Equal(t, rec, got)
	assert.True(t, c.Has("https://x.com/pic.jpg"))
}

func TestImageCacheOverwrite(t *testing.T) {
	c := NewImageCache()

	c.Set("k", ImageRecord{DestinationURL: "first"})
	c.Set("k", ImageRecord{DestinationURL: "second"})

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "second", got.DestinationURL)
	assert.Equal(t, 1, c.Stats().Size)
}

func TestImageCacheStatsSortsEntries(t *testing.T) {
	c := NewImageCache()
	c.Set("b", ImageRecord{})
	c.Set("a", ImageRecord{})
	c.Set("c", ImageRecord{})

	stats := c.Stats()
	assert.Equal(t, 3, stats.Size)
	assert.Equal(t, []string{"a", "b", "c"}, stats.Entries)
}

func TestImageCacheConcurrentAccess(t *testing.T) {
	c := NewImageCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("shared", ImageRecord{DestinationURL: "u"})
				c.Get("shared")
				c.Has("shared")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, c.Stats().Size)
}
