// Package image reads photos for the vision estimator. Images are never decoded
// to pixels: only the header is inspected to confirm the format and dimensions.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/undertone/internal/security"
	httputil "github.com/jmylchreest/undertone/internal/util/http"
)

// MaxImageBytes is the largest image accepted for inline upload to a vision model.
const MaxImageBytes = 20 << 20

var (
	// ErrEmptyImage is returned when the image source holds no data.
	ErrEmptyImage = errors.New("image is empty")

	// ErrUnsupportedImage is returned when the data is not a JPEG, PNG, GIF or WebP image.
	ErrUnsupportedImage = errors.New("unsupported or invalid image format")

	// ErrImageTooLarge is returned when the image exceeds MaxImageBytes.
	ErrImageTooLarge = errors.New("image too large")
)

// mimeTypes maps image.DecodeConfig format names to MIME types.
var mimeTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// Image is an encoded photo ready to be sent to a vision model.
type Image struct {
	Source   string
	Data     []byte
	Format   string
	MIMEType string
	Width    int
	Height   int
}

// Loader handles loading images from various sources.
type Loader interface {
	// Load reads the image at path.
	Load(ctx context.Context, path string) (*Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads an image file and inspects its header.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(_ context.Context, path string) (*Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if info.Size() > MaxImageBytes {
		return nil, fmt.Errorf("%w: %d bytes (maximum: %d)", ErrImageTooLarge, info.Size(), MaxImageBytes)
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	return Inspect(path, data)
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	fetch      func(ctx context.Context, url string, opts httputil.FetchOptions) ([]byte, error)
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		fetch:      httputil.Fetch,
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (*Image, error) {
	if IsURL(path) {
		if err := security.ValidateImageURL(path); err != nil {
			return nil, err
		}
		data, err := l.fetch(ctx, path, httputil.FetchOptions{
			MaxBytes:    MaxImageBytes,
			ValidateURL: security.ValidateImageURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
		}
		return Inspect(path, data)
	}
	return l.fileLoader.Load(ctx, path)
}

// Inspect checks that data is a supported image and reads its dimensions.
func Inspect(source string, data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: %d bytes (maximum: %d)", ErrImageTooLarge, len(data), MaxImageBytes)
	}

	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	mimeType, ok := mimeTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}

	return &Image{
		Source:   source,
		Data:     data,
		Format:   format,
		MIMEType: mimeType,
		Width:    config.Width,
		Height:   config.Height,
	}, nil
}

// ValidateImagePath checks that path is a safe HTTP(S) URL or an existing file.
// URLs are not fetched here to avoid double-fetching.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if IsURL(path) {
		return security.ValidateImageURL(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	return nil
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
