package vision

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jmylchreest/undertone/internal/tone"
)

// FileEstimator returns an estimate previously produced by a model and saved
// as JSON, ignoring the image. Path "-" reads from Stdin.
type FileEstimator struct {
	Path  string
	Stdin io.Reader
}

// NewFileEstimator creates a FileEstimator reading from path.
func NewFileEstimator(path string) *FileEstimator {
	return &FileEstimator{Path: path, Stdin: os.Stdin}
}

// Estimate reads and tolerantly decodes the saved answer. Only I/O failures
// are errors; malformed content yields an empty estimate.
func (f *FileEstimator) Estimate(ctx context.Context, _ Request) (tone.Estimate, error) {
	if err := ctx.Err(); err != nil {
		return tone.Estimate{}, err
	}

	var (
		data []byte
		err  error
	)
	if f.Path == "-" {
		if f.Stdin == nil {
			return tone.Estimate{}, fmt.Errorf("no stdin available")
		}
		data, err = io.ReadAll(f.Stdin)
	} else {
		data, err = os.ReadFile(f.Path) // #nosec G304 - User-specified estimate path, intended to be read
	}
	if err != nil {
		return tone.Estimate{}, fmt.Errorf("failed to read estimate: %w", err)
	}

	return tone.ParseEstimate(string(data)), nil
}
