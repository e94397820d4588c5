package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 4
	headerWindow       = 1024
)

var pdfMagic = []byte("%PDF-")

// ErrNotPDF is reported for files without a PDF header.
var ErrNotPDF = errors.New("missing %PDF- header")

// Loader turns file paths into descriptors, inspecting files concurrently.
type Loader struct {
	concurrency int
	logger      *zap.Logger
}

// NewLoader returns a loader inspecting at most concurrency files at a time.
func NewLoader(concurrency int, logger *zap.Logger) *Loader {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{concurrency: concurrency, logger: logger}
}

// Load returns one descriptor per distinct PDF path, in input order. Paths
// that are not PDFs by extension are skipped. A file that cannot be inspected
// yields a failed descriptor; only context cancellation aborts the batch.
func (l *Loader) Load(ctx context.Context, paths []string) ([]*Descriptor, error) {
	return l.load(ctx, paths, true)
}

// LoadAll is Load without collapsing repeated paths: each PDF path yields its
// own descriptor, so the result lines up with FilterPDF(paths).
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([]*Descriptor, error) {
	return l.load(ctx, paths, false)
}

func (l *Loader) load(ctx context.Context, paths []string, dedupe bool) ([]*Descriptor, error) {
	seen := make(map[string]struct{}, len(paths))
	pdfs := FilterPDF(paths)
	var out []*Descriptor
	for _, p := range pdfs {
		d := NewDescriptor(p)
		if _, dup := seen[d.Path]; dup && dedupe {
			continue
		}
		seen[d.Path] = struct{}{}
		out = append(out, d)
	}
	if skipped := len(paths) - len(pdfs); skipped > 0 {
		l.logger.Debug("non pdf paths skipped", zap.Int("skipped", skipped))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for _, d := range out {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := inspect(d); err != nil {
				d.Status = StatusFailed
				d.Err = err.Error()
				l.logger.Warn("document inspection failed", zap.String("path", d.Path), zap.Error(err))
				return nil
			}
			d.Status = StatusLoaded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	l.logger.Info("documents loaded", zap.Int("count", len(out)))
	return out, nil
}

func inspect(d *Descriptor) error {
	f, err := os.Open(d.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: not a regular file", d.Name)
	}
	d.Size = info.Size()
	d.ModTime = info.ModTime()

	head := make([]byte, headerWindow)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	version, ok := headerVersion(head[:n])
	if !ok {
		return ErrNotPDF
	}
	d.Version = version
	return nil
}

// headerVersion extracts "x.y" from a %PDF-x.y marker near the start of head.
func headerVersion(head []byte) (string, bool) {
	idx := bytes.Index(head, pdfMagic)
	if idx < 0 {
		return "", false
	}
	rest := head[idx+len(pdfMagic):]
	end := 0
	for end < len(rest) && (rest[end] == '.' || (rest[end] >= '0' && rest[end] <= '9')) {
		end++
	}
	return string(rest[:end]), true
}
