package strapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

func NewAPI(baseURL string, uploadPath string, postsPath string, token string) (*API, error) {
	if baseURL == "" {
		return &API{}, fmt.Errorf("strapi: configure your destination base URL with --dest-base")
	}
	if uploadPath == "" {
		return &API{}, fmt.Errorf("strapi: upload path is empty, please check --upload-path")
	}
	if postsPath == "" {
		return &API{}, fmt.Errorf("strapi: posts path is empty, please check --posts-path")
	}

	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("strapi: couldn't parse destination base URL: %w", err)
	}

	a := &API{
		BaseURI:    u,
		UploadPath: strings.TrimPrefix(uploadPath, "/"),
		PostsPath:  strings.TrimPrefix(postsPath, "/"),
		token:      token,
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// The base of the destination CMS, e.g. http://localhost:1337
	BaseURI *url.URL

	// Paths below the base for media uploads and post creation.
	UploadPath string
	PostsPath  string

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	// Bearer token for the destination API.  Empty means no auth header.
	token string
}

// AbsoluteURL joins a (usually relative) URL returned by the upload endpoint
// with the destination base.  Already-absolute URLs pass through untouched.
func (api *API) AbsoluteURL(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return api.BaseURI.ResolveReference(u).String()
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (api *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("strapi: failed to parse endpoint ref: %w", err)
	}

	base := *api.BaseURI
	if base.Path == "" || base.Path[len(base.Path)-1] != '/' {
		base.Path += "/"
	}

	return base.ResolveReference(ref), nil
}
