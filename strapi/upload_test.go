package strapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedUpload struct {
	authorization string
	fieldName     string
	filename      string
	payload       []byte
}

func uploadServer(t *testing.T, status int, responseBody string) (*httptest.Server, *recordedUpload) {
	t.Helper()

	recorded := &recordedUpload{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.authorization = r.Header.Get("Authorization")

		if err := r.ParseMultipartForm(1 << 20); err == nil {
			for field, headers := range r.MultipartForm.File {
				recorded.fieldName = field
				if len(headers) > 0 {
					recorded.filename = headers[0].Filename
					f, err := headers[0].Open()
					if err == nil {
						recorded.payload, _ = io.ReadAll(f)
						f.Close()
					}
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, responseBody)
	}))
	t.Cleanup(server.Close)

	return server, recorded
}

func TestUploadFile(t *testing.T) {
	server, recorded := uploadServer(t, http.StatusCreated,
		`[{"id":7,"name":"pic_abc.jpg","url":"/uploads/pic_abc.jpg","hash":"abc","mime":"image/jpeg"}]`)

	api, err := NewAPI(server.URL, "api/upload", "api/posts", "secret-token")
	require.NoError(t, err)

	uploaded, err := api.UploadFile(context.Background(), "pic.jpg", []byte("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, 7, uploaded.ID)
	assert.Equal(t, "pic_abc.jpg", uploaded.Name)
	assert.Equal(t, "/uploads/pic_abc.jpg", uploaded.URL)

	// the media endpoint expects exactly one multipart field named "files"
	assert.Equal(t, "files", recorded.fieldName)
	assert.Equal(t, "pic.jpg", recorded.filename)
	assert.Equal(t, []byte("jpeg-bytes"), recorded.payload)
	assert.Equal(t, "Bearer secret-token", recorded.authorization)
}

func TestUploadFileEmptyResponseArray(t *testing.T) {
	server, _ := uploadServer(t, http.StatusOK, `[]`)

	api, err := NewAPI(server.URL, "api/upload", "api/posts", "")
	require.NoError(t, err)

	_, err = api.UploadFile(context.Background(), "pic.jpg", []byte("x"))

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "upload", formatErr.Op)
}

func TestUploadFileUnparseableResponse(t *testing.T) {
	server, _ := uploadServer(t, http.StatusOK, `not json`)

	api, err := NewAPI(server.URL, "api/upload", "api/posts", "")
	require.NoError(t, err)

	_, err = api.UploadFile(context.Background(), "pic.jpg", []byte("x"))

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestUploadFileServerErrorAttachesBody(t *testing.T) {
	server, _ := uploadServer(t, http.StatusForbidden, `{"error":{"message":"Forbidden"}}`)

	api, err := NewAPI(server.URL, "api/upload", "api/posts", "")
	require.NoError(t, err)

	_, err = api.UploadFile(context.Background(), "pic.jpg", []byte("x"))

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusForbidden, netErr.StatusCode)
	assert.JSONEq(t, `{"error":{"message":"Forbidden"}}`, string(netErr.Body))
}

func TestUploadFileNoTokenMeansNoAuthHeader(t *testing.T) {
	server, recorded := uploadServer(t, http.StatusCreated, `[{"name":"a","url":"/a"}]`)

	api, err := NewAPI(server.URL, "api/upload", "api/posts", "")
	require.NoError(t, err)

	_, err = api.UploadFile(context.Background(), "a", []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, recorded.authorization)
}

func TestAbsoluteURL(t *testing.T) {
	api, err := NewAPI("http://localhost:1337", "api/upload", "api/posts", "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:1337/uploads/pic.jpg", api.AbsoluteURL("/uploads/pic.jpg"))
	assert.Equal(t, "https://cdn.example.com/pic.jpg", api.AbsoluteURL("https://cdn.example.com/pic.jpg"))
}
