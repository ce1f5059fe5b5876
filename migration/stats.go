package migration

import "sync/atomic"

// RunStats counts what happened to images and posts during one import run.
// Counters are atomic because post pipelines run on separate goroutines.
type RunStats struct {
	imagesProcessed atomic.Int64
	imagesCached    atomic.Int64
	imagesUploaded  atomic.Int64
	imagesFailed    atomic.Int64

	postsSucceeded atomic.Int64
	postsFailed    atomic.Int64
}

// RunSummary is the user-visible snapshot reported at the end of a run.
type RunSummary struct {
	ImagesProcessed int64 `yaml:"images-processed"`
	ImagesCached    int64 `yaml:"images-cached"`
	ImagesUploaded  int64 `yaml:"images-uploaded"`
	ImagesFailed    int64 `yaml:"images-failed"`

	PostsSucceeded int64 `yaml:"posts-succeeded"`
	PostsFailed    int64 `yaml:"posts-failed"`
}

func (s *RunStats) Summary() RunSummary {
	return RunSummary{
		ImagesProcessed: s.imagesProcessed.Load(),
		ImagesCached:    s.imagesCached.Load(),
		ImagesUploaded:  s.imagesUploaded.Load(),
		ImagesFailed:    s.imagesFailed.Load(),
		PostsSucceeded:  s.postsSucceeded.Load(),
		PostsFailed:     s.postsFailed.Load(),
	}
}
