package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaulBratslavsky/wm-migration-example-script/wordpress"
)

// newPostsServer records every post submission and fails the slugs it is told
// to reject.
func newPostsServer(t *testing.T, rejectSlugs ...string) (*httptest.Server, func() []string) {
	t.Helper()

	rejected := map[string]bool{}
	for _, slug := range rejectSlugs {
		rejected[slug] = true
	}

	var mu sync.Mutex
	accepted := []string{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var envelope struct {
			Data struct {
				Slug string `json:"slug"`
			} `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if rejected[envelope.Data.Slug] {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":{"message":"boom"}}`)
			return
		}

		mu.Lock()
		accepted = append(accepted, envelope.Data.Slug)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{"id":1}}`)
	}))
	t.Cleanup(server.Close)

	return server, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string{}, accepted...)
	}
}

func testPost(id int, slug, html string) wordpress.Post {
	return wordpress.Post{
		ID:      id,
		Slug:    slug,
		Title:   wordpress.Rendered{Rendered: "Post " + slug},
		Content: wordpress.Rendered{Rendered: html},
	}
}

func TestImportAllIsolatesFailures(t *testing.T) {
	server, accepted := newPostsServer(t, "two")
	imp := newTestImporter(t, server.URL)

	posts := []wordpress.Post{
		testPost(1, "one", "<h1>One</h1><p>Some <strong>bold</strong> text</p>"),
		testPost(2, "two", "<p>doomed</p>"),
		testPost(3, "three", "<p>fine too</p>"),
	}

	outcomes, err := imp.ImportAll(context.Background(), posts)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	// outcomes keep input order, and post two's failure never touches its
	// siblings
	assert.False(t, outcomes[0].Rejected())
	assert.True(t, outcomes[1].Rejected())
	assert.False(t, outcomes[2].Rejected())

	assert.Equal(t, 2, outcomes[1].PostID)
	assert.Equal(t, "two", outcomes[1].Slug)

	assert.ElementsMatch(t, []string{"one", "three"}, accepted())

	summary := imp.Stats().Summary()
	assert.EqualValues(t, 2, summary.PostsSucceeded)
	assert.EqualValues(t, 1, summary.PostsFailed)
}

func TestImportAllBuildsBlockTree(t *testing.T) {
	server, _ := newPostsServer(t)
	imp := newTestImporter(t, server.URL)

	outcomes, err := imp.ImportAll(context.Background(), []wordpress.Post{
		testPost(7, "styled", "<h2>Title</h2><p>Some <strong>bold</strong> text</p>"),
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.False(t, outcomes[0].Rejected())

	record := outcomes[0].Record
	require.NotNil(t, record)
	assert.Equal(t, "Post styled", record.Title)
	assert.Equal(t, "styled", record.Slug)
	assert.Contains(t, record.Content, "**bold**")
	assert.Len(t, record.BlocksContent, 2)
}

func TestImportAllDryRunSkipsSubmission(t *testing.T) {
	server, accepted := newPostsServer(t)
	imp := newTestImporter(t, server.URL)
	imp.DryRun = true

	outcomes, err := imp.ImportAll(context.Background(), []wordpress.Post{
		testPost(1, "one", "<p>hello</p>"),
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.False(t, outcomes[0].Rejected())
	assert.NotNil(t, outcomes[0].Record)
	assert.Empty(t, accepted())
	assert.EqualValues(t, 1, imp.Stats().Summary().PostsSucceeded)
}

func TestImportAllRejectsNilSlice(t *testing.T) {
	server, _ := newPostsServer(t)
	imp := newTestImporter(t, server.URL)

	_, err := imp.ImportAll(context.Background(), nil)

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestImportAllEmptySlice(t *testing.T) {
	server, _ := newPostsServer(t)
	imp := newTestImporter(t, server.URL)

	outcomes, err := imp.ImportAll(context.Background(), []wordpress.Post{})
	require.NoError(t, err)
	assert.Empty(t, outcomes)
	assert.NotNil(t, outcomes)
}

func TestImportAllEmptyPostBodyIsRejected(t *testing.T) {
	server, accepted := newPostsServer(t)
	imp := newTestImporter(t, server.URL)

	outcomes, err := imp.ImportAll(context.Background(), []wordpress.Post{
		testPost(1, "blank", "   "),
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.True(t, outcomes[0].Rejected())
	assert.Empty(t, accepted())
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		SourceBaseURL:      "https://source.example.com/wp-json/wp/v2",
		DestinationBaseURL: "http://localhost:1337",
		UploadPath:         "api/upload",
		PostsPath:          "api/posts",
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing source", func(c *Config) { c.SourceBaseURL = "" }, "source-base"},
		{"malformed source", func(c *Config) { c.SourceBaseURL = "not a url" }, "source-base"},
		{"missing dest", func(c *Config) { c.DestinationBaseURL = "" }, "dest-base"},
		{"missing upload path", func(c *Config) { c.UploadPath = "" }, "upload-path"},
		{"missing posts path", func(c *Config) { c.PostsPath = "" }, "posts-path"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)

			err := cfg.Validate()
			var confErr *ConfigError
			require.ErrorAs(t, err, &confErr)
			assert.Equal(t, tc.field, confErr.Field)
		})
	}
}
