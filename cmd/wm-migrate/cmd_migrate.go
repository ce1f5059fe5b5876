package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
	yaml "gopkg.in/yaml.v3"

	"github.com/PaulBratslavsky/wm-migration-example-script/markdown"
	"github.com/PaulBratslavsky/wm-migration-example-script/migration"
	"github.com/PaulBratslavsky/wm-migration-example-script/strapi"
	"github.com/PaulBratslavsky/wm-migration-example-script/wordpress"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Fetch source posts, convert them, and import into the destination",
	Long: `
Runs the full pipeline: list every post on the source, convert each HTML body
to Markdown and a block tree, rehost images, and submit each post to the
destination CMS.  Posts fail independently; a summary is printed at the end.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debugLog("  DryRun: %v\n", DryRun)
		return runMigrate(cmd.Context())
	},
}

var (
	DryRun      bool
	WithVCR     bool
	SummaryYAML bool
	PerPage     int
)

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().BoolVarP(&DryRun, "dry-run", "n", false, "convert posts but skip uploads and submissions")
	migrateCmd.Flags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to cache responses")
	migrateCmd.Flags().BoolVar(&SummaryYAML, "summary-yaml", false, "emit the run summary as YAML")
	migrateCmd.Flags().IntVar(&PerPage, "per-page", 100, "source listing page size")
}

func runMigrate(ctx context.Context) error {
	cfg := migration.Config{
		SourceBaseURL:      SourceBase,
		DestinationBaseURL: DestBase,
		UploadPath:         UploadPath,
		PostsPath:          PostsPath,
		Workers:            Workers,
		Timeout:            10 * time.Second,
		DryRun:             DryRun,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	token := ""
	if len(DestTokenCmd) > 0 {
		tokenCmdOutput, err := exec.Command(DestTokenCmd[0], DestTokenCmd[1:]...).Output()
		if err != nil {
			return fmt.Errorf("cmd: Couldn't execute dest-token-cmd '%v': %w", DestTokenCmd, err)
		}
		token = strings.Split(string(tokenCmdOutput), "\n")[0]
	}

	source, err := wordpress.NewAPI(SourceBase, SourcePostsPath)
	if err != nil {
		return fmt.Errorf("cmd: source API creation failed: %w", err)
	}

	dest, err := strapi.NewAPI(DestBase, UploadPath, PostsPath, token)
	if err != nil {
		return fmt.Errorf("cmd: destination API creation failed: %w", err)
	}

	if WithVCR {
		// set up VCR recordings.
		opts := &recorder.Options{
			CassetteName:       "fixtures/wm-migrate-stuff",
			Mode:               recorder.ModeReplayWithNewEpisodes,
			SkipRequestLatency: true,
			RealTransport:      http.DefaultTransport,
		}
		r, err := recorder.NewWithOptions(opts)
		if err != nil {
			return fmt.Errorf("cmd: Couldn't set up go-vcr recording: %w", err)
		}

		defer r.Stop() // Make sure recorder is stopped once done with it

		// Add a hook which removes Authorization headers from all requests
		hook := func(i *cassette.Interaction) error {
			delete(i.Request.Headers, "Authorization")
			return nil
		}
		r.AddHook(hook, recorder.AfterCaptureHook)
		r.SetReplayableInteractions(true)

		vcrClient := r.GetDefaultClient()
		source.Client = vcrClient
		dest.Client = vcrClient
	}

	fmt.Printf("Listing posts on %s...\n", SourceBase)
	posts, err := source.GetAllPosts(ctx, wordpress.GetPostsQuery{PerPage: PerPage})
	if err != nil {
		return fmt.Errorf("cmd: Couldn't list source posts: %w", err)
	}
	fmt.Printf("...found %d posts.\n", len(posts))

	logger := log.New(os.Stderr, "", log.LstdFlags)
	importer := migration.NewImporter(cfg, source, dest, logger)

	outcomes, err := importer.ImportAll(ctx, posts)
	if err != nil {
		return fmt.Errorf("cmd: import run failed: %w", err)
	}

	return reportRun(importer, outcomes)
}

func reportRun(importer *migration.Importer, outcomes []migration.Outcome) error {
	summary := importer.Stats().Summary()

	if SummaryYAML {
		report := struct {
			Summary migration.RunSummary `yaml:"summary"`
			Cache   migration.CacheStats `yaml:"image-cache"`
		}{summary, importer.Cache().Stats()}

		encoded, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("cmd: Couldn't marshal summary YAML: %w", err)
		}
		fmt.Print(string(encoded))
	} else {
		fmt.Printf("Posts:  %d succeeded, %d failed.\n", summary.PostsSucceeded, summary.PostsFailed)
		fmt.Printf("Images: %d processed, %d cached, %d uploaded, %d failed.\n",
			summary.ImagesProcessed, summary.ImagesCached, summary.ImagesUploaded, summary.ImagesFailed)
	}

	failures := 0
	for _, outcome := range outcomes {
		if outcome.Rejected() {
			failures++
			fmt.Printf("  - post %d (%s): %v\n", outcome.PostID, outcome.Slug, outcome.Err)
			continue
		}
		if DryRun && outcome.Record != nil {
			debugLog("post %s converts to:\n%s", outcome.Slug, markdown.BlockTreeToMarkdown(outcome.Record.BlocksContent))
		}
	}

	if failures > 0 && failures == len(outcomes) {
		return fmt.Errorf("cmd: all %d posts failed to import", failures)
	}

	return nil
}
