package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadedFile is one element of the array the upload endpoint answers with.
type UploadedFile struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
	URL  string `json:"url"` // relative to the destination base
	Hash string `json:"hash,omitempty"`
	Mime string `json:"mime,omitempty"`
}

// UploadFile POSTs one file to the destination's media endpoint as a
// multipart form with the field name "files", and returns the first element
// of the response array.
func (api *API) UploadFile(ctx context.Context, filename string, payload []byte) (*UploadedFile, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("files", filename)
	if err != nil {
		return nil, fmt.Errorf("strapi: couldn't create multipart field: %w", err)
	}
	if _, err := part.Write(payload); err != nil {
		return nil, fmt.Errorf("strapi: couldn't write multipart payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("strapi: couldn't finalise multipart body: %w", err)
	}

	ep, err := api.resolveEndpoint(api.UploadPath)
	if err != nil {
		return nil, fmt.Errorf("strapi: couldn't resolve upload endpoint: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", ep.String(), &buf)
	if err != nil {
		return nil, fmt.Errorf("strapi: couldn't instantiate http request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	body, err := api.do(req)
	if err != nil {
		return nil, err
	}

	var files []UploadedFile
	if err := json.Unmarshal(body, &files); err != nil {
		return nil, &FormatError{Op: "upload", Reason: fmt.Sprintf("couldn't parse response: %v", err)}
	}
	if len(files) == 0 {
		return nil, &FormatError{Op: "upload", Reason: "response array is empty"}
	}

	return &files[0], nil
}

// do performs a prepared request, attaching auth and classifying non-2xx
// responses as NetworkError with the (JSON, if it is JSON) body attached.
func (api *API) do(req *http.Request) ([]byte, error) {
	req.Header.Add("Accept", "application/json, */*")
	if api.token != "" {
		req.Header.Set("Authorization", "Bearer "+api.token)
	}

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: req.URL.String(), Err: err}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("strapi: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("strapi: couldn't close response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return body, nil
	}

	netErr := &NetworkError{URL: req.URL.String(), StatusCode: response.StatusCode}
	if json.Valid(body) {
		netErr.Body = json.RawMessage(body)
	}
	return nil, netErr
}
