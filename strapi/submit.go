package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/PaulBratslavsky/wm-migration-example-script/markdown"
)

// PostPayload is one migrated post, ready for the destination's content
// endpoint.  Content carries the rewritten Markdown; BlocksContent the typed
// block tree for structured consumers.
type PostPayload struct {
	Title         string           `json:"title"`
	Slug          string           `json:"slug"`
	Content       string           `json:"content"`
	BlocksContent []markdown.Block `json:"blocksContent"`
}

// CreatePost submits one post.  Strapi expects the payload wrapped in a
// top-level "data" key.
func (api *API) CreatePost(ctx context.Context, post PostPayload) error {
	if post.BlocksContent == nil {
		post.BlocksContent = []markdown.Block{}
	}

	body, err := json.Marshal(struct {
		Data PostPayload `json:"data"`
	}{Data: post})
	if err != nil {
		return fmt.Errorf("strapi: couldn't marshal post payload: %w", err)
	}

	ep, err := api.resolveEndpoint(api.PostsPath)
	if err != nil {
		return fmt.Errorf("strapi: couldn't resolve posts endpoint: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", ep.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("strapi: couldn't instantiate http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if _, err := api.do(req); err != nil {
		return err
	}

	return nil
}
