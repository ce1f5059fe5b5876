package wordpress

// Rendered is how the WordPress REST API wraps every piece of rendered
// content.  The raw (source) representation is only exposed to authenticated
// editors, so we never see it here.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// See https://developer.wordpress.org/rest-api/reference/posts/#schema.  Only
// the fields the migration actually consumes are mapped; everything else in
// the response is ignored.
type Post struct {
	ID     int    `json:"id"`
	Slug   string `json:"slug"`
	Status string `json:"status,omitempty"` // publish, draft, pending, private
	Link   string `json:"link,omitempty"`
	Date   string `json:"date,omitempty"`

	Title   Rendered `json:"title"`
	Content Rendered `json:"content"`
	Excerpt Rendered `json:"excerpt,omitempty"`
}
