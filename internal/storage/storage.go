package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// MediaAsset describes one stored upload. The URL is the only identifier
// the rest of the system keeps; products embed it as a plain string.
type MediaAsset struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	URL          string `json:"url"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimetype"`
}

// DiskStore persists media blobs on the local filesystem under
// <root>/<field>/ and serves them back under <baseURL>/uploads/<field>/.
type DiskStore struct {
	Root    string
	BaseURL string
}

func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	for _, sub := range []string{"images", "videos"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, err
		}
	}
	return &DiskStore{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// NewKey generates a collision-resistant storage key: field prefix, a
// millisecond timestamp, a uuid, and a slugified form of the original
// base name so the blob stays recognizable in the store.
func NewKey(field, originalName string) string {
	ext := filepath.Ext(originalName)
	base := slug.Make(strings.TrimSuffix(filepath.Base(originalName), ext))
	if base == "" {
		return fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixMilli(), uuid.New().String(), ext)
	}
	return fmt.Sprintf("%s-%d-%s-%s%s", field, time.Now().UnixMilli(), uuid.New().String(), base, ext)
}

// Save writes one blob and returns its asset record. Field must be
// "images" or "videos"; the caller has already validated it.
func (s *DiskStore) Save(field, originalName, mimeType string, src io.Reader) (MediaAsset, error) {
	key := NewKey(field, originalName)

	dst, err := os.Create(filepath.Join(s.Root, field, key))
	if err != nil {
		return MediaAsset{}, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return MediaAsset{}, err
	}

	return MediaAsset{
		Filename:     key,
		OriginalName: originalName,
		URL:          fmt.Sprintf("%s/uploads/%s/%s", s.BaseURL, field, key),
		Size:         size,
		MimeType:     mimeType,
	}, nil
}

// Delete removes a stored blob. Returns os.ErrNotExist when the blob is
// not in the store.
func (s *DiskStore) Delete(field, filename string) error {
	// filepath.Base strips any traversal the caller smuggled in.
	path := filepath.Join(s.Root, field, filepath.Base(filename))
	return os.Remove(path)
}
