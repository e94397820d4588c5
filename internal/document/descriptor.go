package document

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Status is the load state of a document.
type Status string

const (
	StatusRequested Status = "requested"
	StatusLoaded    Status = "loaded"
	StatusFailed    Status = "failed"
)

// DefaultOutputName is the file name suggested when deriving an output from
// a selected document.
const DefaultOutputName = "out.pdf"

// Descriptor describes one PDF file picked by the user. A descriptor is
// created by the Loader and owned by whichever selection list holds it.
type Descriptor struct {
	ID      string
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	// Version is the header version, e.g. "1.7". Empty until loaded.
	Version string
	Status  Status
	Err     string

	invalid atomic.Bool
}

// NewDescriptor returns a requested descriptor for path.
func NewDescriptor(path string) *Descriptor {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &Descriptor{
		ID:     uuid.NewString(),
		Path:   path,
		Name:   filepath.Base(path),
		Status: StatusRequested,
	}
}

// Invalidate marks the descriptor as released. Safe to call more than once.
func (d *Descriptor) Invalidate() { d.invalid.Store(true) }

// Invalid reports whether Invalidate has been called.
func (d *Descriptor) Invalid() bool { return d.invalid.Load() }

// Loaded reports whether the file was inspected successfully.
func (d *Descriptor) Loaded() bool { return d.Status == StatusLoaded }

// OutputPath suggests an output file next to the document.
func (d *Descriptor) OutputPath() string {
	return filepath.Join(filepath.Dir(d.Path), DefaultOutputName)
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.Status)
}

// FileType matches file names by extension.
type FileType string

const PDF FileType = ".pdf"

// Matches reports whether name carries the type's extension, ignoring case.
func (t FileType) Matches(name string) bool {
	return strings.EqualFold(filepath.Ext(name), string(t))
}

// FilterPDF keeps the PDF paths of paths, in order.
func FilterPDF(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if PDF.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
