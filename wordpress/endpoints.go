package wordpress

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// getPostsEndpoint returns the REST endpoint to list posts:
// https://developer.wordpress.org/rest-api/reference/posts/#list-posts
func (a *API) getPostsEndpoint(opts GetPostsQuery) (*url.URL, error) {
	ep, err := a.resolveEndpoint(a.PostsPath)
	if err != nil {
		return nil, fmt.Errorf("wordpress: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("wordpress: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("wordpress: failed to parse endpoint ref: %w", err)
	}

	// ResolveReference swallows the last segment of the base path unless it
	// ends in a slash, and WordPress bases usually don't.
	base := *a.BaseURI
	if base.Path == "" || base.Path[len(base.Path)-1] != '/' {
		base.Path += "/"
	}

	return base.ResolveReference(ref), nil
}
