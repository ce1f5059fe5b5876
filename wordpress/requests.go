package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// GetPosts fetches a single page of posts.
func (api *API) GetPosts(ctx context.Context, opts GetPostsQuery) ([]Post, error) {
	ep, err := api.getPostsEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("wordpress: couldn't get posts endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("wordpress: couldn't perform request: %w", err)
	}

	var posts []Post

	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("wordpress: couldn't parse json response: %w", err)
	}

	return posts, nil
}

// GetAllPosts walks the paginated posts listing until the API runs out of
// pages.  WordPress answers 400 once you ask for a page past the end, so
// that status on page > 1 means "done" rather than "broken".
func (api *API) GetAllPosts(ctx context.Context, opts GetPostsQuery) ([]Post, error) {
	if opts.PerPage < 1 {
		opts.PerPage = 100
	}

	results := []Post{}
	for page := 1; ; page++ {
		opts.Page = page

		batch, err := api.GetPosts(ctx, opts)
		if err != nil {
			var netErr *NetworkError
			if page > 1 && errors.As(err, &netErr) && netErr.StatusCode == http.StatusBadRequest {
				break
			}
			return nil, fmt.Errorf("wordpress: couldn't list posts page %d: %w", page, err)
		}

		results = append(results, batch...)
		if len(batch) < opts.PerPage {
			break
		}
	}

	return results, nil
}

// Request implements the basic Request function
func (api *API) request(ctx context.Context, url *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("wordpress: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json, */*")

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url.String(), Err: err}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("wordpress: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("wordpress: couldn't close response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return body, nil
	}

	return nil, &NetworkError{URL: url.String(), StatusCode: response.StatusCode}
}
