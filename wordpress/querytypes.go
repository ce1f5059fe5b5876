package wordpress

// GetPostsQuery defines the query parameters for:
// https://developer.wordpress.org/rest-api/reference/posts/#list-posts
type GetPostsQuery struct {
	// 'Page' is used for pagination; WordPress pages are 1-based and the API
	// answers a 400 once you step past the last one.
	Page    int `url:"page,omitempty"`
	PerPage int `url:"per_page,omitempty"` // page size; default 10, range 1-100

	Search  string   `url:"search,omitempty"`         // limit to posts matching a search string
	Status  []string `url:"status,omitempty,comma"`   // their status: publish, draft, pending, private
	OrderBy string   `url:"orderby,omitempty"`        // sort field: date, id, title, slug
	Order   string   `url:"order,omitempty"`          // asc or desc
	Slug    []string `url:"slug,omitempty,comma"`     // limit to particular slugs
	Include []int    `url:"include,omitempty,comma"`  // limit to particular IDs
}
