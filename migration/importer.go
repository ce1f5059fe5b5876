package migration

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/sync/errgroup"

	"github.com/PaulBratslavsky/wm-migration-example-script/markdown"
	"github.com/PaulBratslavsky/wm-migration-example-script/strapi"
	"github.com/PaulBratslavsky/wm-migration-example-script/wordpress"
)

// Importer drives the per-post pipeline: render HTML to Markdown, rehost
// images, parse the block tree, submit to the destination.  One Importer
// serves one run; its cache and stats live exactly that long.
type Importer struct {
	Source *wordpress.API
	Dest   *strapi.API

	Workers int
	DryRun  bool

	// bounded timeout applied to every download, upload, and submission
	timeout time.Duration

	logger *log.Logger

	renderer *markdown.Renderer
	parser   *markdown.Parser

	cache       *ImageCache
	stats       *RunStats
	assetClient *http.Client
}

// Outcome is the per-post result of a batch import: fulfilled (Err == nil,
// Record holds what was submitted) or rejected (Err holds the reason).
type Outcome struct {
	PostID int
	Slug   string
	Record *strapi.PostPayload
	Err    error
}

func (o Outcome) Rejected() bool { return o.Err != nil }

func NewImporter(cfg Config, source *wordpress.API, dest *strapi.API, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = defaultWorkers
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Importer{
		Source:  source,
		Dest:    dest,
		Workers: workers,
		DryRun:  cfg.DryRun,
		timeout: timeout,

		logger:   logger,
		renderer: markdown.NewRenderer(),
		parser:   markdown.NewParser(logger),

		cache:       NewImageCache(),
		stats:       &RunStats{},
		assetClient: &http.Client{},
	}
}

// Stats exposes the run counters for the end-of-run summary.
func (imp *Importer) Stats() *RunStats { return imp.stats }

// Cache exposes the image cache for diagnostics.
func (imp *Importer) Cache() *ImageCache { return imp.cache }

// ImportAll runs every post's pipeline, fanned out over Workers goroutines.
// Each post succeeds or fails in isolation: a post's error becomes a rejected
// Outcome at its index, and its siblings carry on.  Outcomes keep the order
// of the input slice.
func (imp *Importer) ImportAll(ctx context.Context, posts []wordpress.Post) ([]Outcome, error) {
	if posts == nil {
		return nil, &InvalidInputError{Reason: "posts must be a slice, got nil"}
	}
	if len(posts) == 0 {
		return []Outcome{}, nil
	}

	outcomes := make([]Outcome, len(posts))

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(int64(len(posts)),
		mpb.PrependDecorators(
			decor.Name("posts:", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d) "),
			decor.NewPercentage("%d"),
		),
	)

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(imp.Workers)

	for i := range posts {
		i := i
		grp.Go(func() error {
			outcome := imp.importOne(gctx, posts[i])
			outcomes[i] = outcome

			if outcome.Err != nil {
				imp.stats.postsFailed.Add(1)
				imp.logger.Printf("migration: post %d (%s) failed: %v", outcome.PostID, outcome.Slug, outcome.Err)
			} else {
				imp.stats.postsSucceeded.Add(1)
			}
			bar.Increment()

			// post failures are recorded, never returned: returning an error
			// here would cancel the sibling pipelines
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return outcomes, fmt.Errorf("migration: import run aborted: %w", err)
	}
	p.Wait()

	return outcomes, nil
}

// importOne runs the full pipeline for a single post.
func (imp *Importer) importOne(ctx context.Context, post wordpress.Post) Outcome {
	outcome := Outcome{PostID: post.ID, Slug: post.Slug}

	rendered, err := imp.renderer.Render(post.Content.Rendered)
	if err != nil {
		outcome.Err = fmt.Errorf("migration: post %d: render failed: %w", post.ID, err)
		return outcome
	}

	rewritten, err := imp.ProcessImages(ctx, rendered)
	if err != nil {
		outcome.Err = fmt.Errorf("migration: post %d: image pipeline failed: %w", post.ID, err)
		return outcome
	}

	blocks, err := imp.parser.Parse(rewritten)
	if err != nil {
		outcome.Err = fmt.Errorf("migration: post %d: block parse failed: %w", post.ID, err)
		return outcome
	}

	payload := strapi.PostPayload{
		Title:         post.Title.Rendered,
		Slug:          post.Slug,
		Content:       rewritten,
		BlocksContent: blocks,
	}
	outcome.Record = &payload

	if imp.DryRun {
		return outcome
	}

	submitCtx, cancel := context.WithTimeout(ctx, imp.timeout)
	defer cancel()

	if err := imp.Dest.CreatePost(submitCtx, payload); err != nil {
		outcome.Err = fmt.Errorf("migration: post %d: submission failed: %w", post.ID, err)
	}

	return outcome
}
