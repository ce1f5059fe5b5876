package wordpress

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

func NewAPI(baseURL string, postsPath string) (*API, error) {
	if baseURL == "" {
		return &API{}, fmt.Errorf("wordpress: configure your source base URL with --source-base")
	}
	if postsPath == "" {
		return &API{}, fmt.Errorf("wordpress: posts path is empty, please check --posts-path")
	}

	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("wordpress: couldn't parse source base URL: %w", err)
	}

	a := &API{
		BaseURI:   u,
		PostsPath: strings.TrimPrefix(postsPath, "/"),
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// The base of the source content API, e.g. https://example.com/wp-json/wp/v2
	BaseURI *url.URL

	// Path below the base where posts live, e.g. "posts".
	PostsPath string

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client
}
