package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruitapp/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newUploadRouter(t *testing.T) (*gin.Engine, *storage.DiskStore) {
	t.Helper()
	store, err := storage.NewDiskStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	h := &Handlers{Media: store}
	r := gin.New()
	r.POST("/api/upload/media", h.UploadMedia)
	r.DELETE("/api/upload/media/:field/:filename", h.DeleteMedia)
	return r, store
}

type testFile struct {
	field    string
	name     string
	mimeType string
	content  []byte
}

func multipartBody(t *testing.T, files []testFile) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		header.Set("Content-Type", f.mimeType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func postUpload(r *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/upload/media", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadMediaHappyPath(t *testing.T) {
	r, _ := newUploadRouter(t)

	body, ct := multipartBody(t, []testFile{
		{"images", "apple.png", "image/png", []byte("png-1")},
		{"images", "pear.jpg", "image/jpeg", []byte("jpg-2")},
		{"videos", "tour.mp4", "video/mp4", []byte("mp4-1")},
	})
	w := postUpload(r, body, ct)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Files   struct {
			Images []storage.MediaAsset `json:"images"`
			Videos []storage.MediaAsset `json:"videos"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Files.Images, 2)
	require.Len(t, resp.Files.Videos, 1)
	assert.Equal(t, "apple.png", resp.Files.Images[0].OriginalName)
	assert.Contains(t, resp.Files.Images[0].URL, "/uploads/images/")
	assert.Contains(t, resp.Files.Videos[0].URL, "/uploads/videos/")
}

func TestUploadMediaInvalidField(t *testing.T) {
	r, _ := newUploadRouter(t)

	body, ct := multipartBody(t, []testFile{
		{"documents", "cv.pdf", "application/pdf", []byte("pdf")},
	})
	w := postUpload(r, body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid field name")
}

func TestUploadMediaWrongMimeType(t *testing.T) {
	r, _ := newUploadRouter(t)

	body, ct := multipartBody(t, []testFile{
		{"images", "clip.mp4", "video/mp4", []byte("mp4")},
	})
	w := postUpload(r, body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "image files")
}

func TestUploadMediaTooManyImages(t *testing.T) {
	r, _ := newUploadRouter(t)

	files := make([]testFile, 0, maxImageCount+1)
	for i := 0; i <= maxImageCount; i++ {
		files = append(files, testFile{"images", fmt.Sprintf("f%d.png", i), "image/png", []byte("x")})
	}
	body, ct := multipartBody(t, files)
	w := postUpload(r, body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Too many files")
}

func TestUploadMediaNotMultipart(t *testing.T) {
	r, _ := newUploadRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload/media", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMedia(t *testing.T) {
	r, store := newUploadRouter(t)

	asset, err := store.Save("images", "apple.png", "image/png", bytes.NewReader([]byte("png")))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/upload/media/images/"+asset.Filename, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Second delete: the blob is gone.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMediaBadField(t *testing.T) {
	r, _ := newUploadRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/upload/media/documents/x.pdf", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
