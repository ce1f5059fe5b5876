package migration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PaulBratslavsky/wm-migration-example-script/wordpress"
)

// imageReference matches ![alt](src) with an optional quoted title, the shape
// the renderer guarantees for every image.
var imageReference = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)(?:\s+"([^"]*)")?\)`)

// ProcessImages scans markdown for image references left to right, rehosts
// each one on the destination, and returns the rewritten text.  A reference
// whose download or upload fails is logged, counted, and left byte-identical;
// one image never sinks the batch.  The input itself is not modified.
func (imp *Importer) ProcessImages(ctx context.Context, markdown string) (string, error) {
	matches := imageReference.FindAllStringSubmatchIndex(markdown, -1)
	if len(matches) == 0 {
		return markdown, nil
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(markdown[last:m[0]])

		original := markdown[m[0]:m[1]]
		alt := markdown[m[2]:m[3]]
		src := markdown[m[4]:m[5]]
		title := ""
		if m[6] >= 0 {
			title = markdown[m[6]:m[7]]
		}

		sb.WriteString(imp.rehostImage(ctx, original, alt, src, title))
		last = m[1]
	}
	sb.WriteString(markdown[last:])

	return sb.String(), nil
}

// rehostImage resolves one image reference to a destination URL: cache hit by
// normalised key, then same-name dedup by normalised filename, then a real
// download + upload.  On failure the original reference is returned.
func (imp *Importer) rehostImage(ctx context.Context, original, alt, src, title string) string {
	imp.stats.imagesProcessed.Add(1)

	key := NormalizeImageURL(src)

	if rec, ok := imp.cache.Get(key); ok {
		imp.stats.imagesCached.Add(1)
		return imageReferenceMarkup(alt, rec.DestinationURL, title)
	}

	filenameKey := NormalizeFilename(key)
	if filenameKey != "" {
		if rec, ok := imp.cache.Get(filenameKey); ok {
			// an already-processed file shares this name; assume it's the
			// same asset and remember the new key for next time
			imp.stats.imagesCached.Add(1)
			imp.cache.Set(key, rec)
			return imageReferenceMarkup(alt, rec.DestinationURL, title)
		}
	}

	if imp.DryRun {
		return original
	}

	payload, err := imp.downloadAsset(ctx, key)
	if err != nil {
		imp.logger.Printf("migration: couldn't download image %s: %v", key, err)
		imp.stats.imagesFailed.Add(1)
		return original
	}

	uploadCtx, cancel := context.WithTimeout(ctx, imp.timeout)
	uploaded, err := imp.Dest.UploadFile(uploadCtx, assetFilename(key), payload)
	cancel()
	if err != nil {
		imp.logger.Printf("migration: couldn't upload image %s: %v", key, err)
		imp.stats.imagesFailed.Add(1)
		return original
	}

	destURL := imp.Dest.AbsoluteURL(uploaded.URL)
	rec := ImageRecord{
		SourceKey:           key,
		DestinationURL:      destURL,
		DestinationFilename: uploaded.Name,
	}

	imp.cache.Set(key, rec)
	if filenameKey != "" {
		imp.cache.Set(filenameKey, rec)
	}
	imp.stats.imagesUploaded.Add(1)

	return imageReferenceMarkup(alt, destURL, title)
}

func (imp *Importer) downloadAsset(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, imp.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("migration: couldn't instantiate download request: %w", err)
	}

	response, err := imp.assetClient.Do(req)
	if err != nil {
		return nil, &wordpress.NetworkError{URL: rawURL, Err: err}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &wordpress.NetworkError{URL: rawURL, StatusCode: response.StatusCode}
	}

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("migration: couldn't read asset body: %w", err)
	}

	return payload, nil
}

// assetFilename extracts the bare filename of a (normalised) asset URL for
// the multipart upload.
func assetFilename(key string) string {
	p := key
	if u, err := url.Parse(key); err == nil && u.Path != "" {
		p = u.Path
	}

	base := path.Base(p)
	if base == "." || base == "/" {
		return "asset"
	}

	return base
}

func imageReferenceMarkup(alt, url, title string) string {
	if title != "" {
		return fmt.Sprintf("![%s](%s %q)", alt, url, title)
	}
	return fmt.Sprintf("![%s](%s)", alt, url)
}
