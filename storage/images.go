package storage

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// MaxDimension is the maximum width for stored images; larger uploads
// are downscaled before saving.
const MaxDimension = 1024

// ImageStore holds item photos. Put returns a URL the item record can
// carry; Delete reports whether the asset was actually removed.
type ImageStore interface {
	Put(data []byte) (string, error)
	Delete(url string) bool
}

// DiskStore keeps images as JPEG files under a local directory and
// serves them from BaseURL.
type DiskStore struct {
	Dir     string
	BaseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: baseURL}, nil
}

func (s *DiskStore) Put(data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	if img.Bounds().Dx() > MaxDimension {
		img = imaging.Resize(img, MaxDimension, 0, imaging.Lanczos)
	}

	name := uuid.NewString() + ".jpg"
	if err := imaging.Save(img, filepath.Join(s.Dir, name), imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}

	return s.BaseURL + "/" + name, nil
}

func (s *DiskStore) Delete(url string) bool {
	name := path.Base(url)
	if name == "" || name == "." || name == "/" {
		return false
	}
	return os.Remove(filepath.Join(s.Dir, name)) == nil
}
