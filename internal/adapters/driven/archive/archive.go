// Package archive keeps a copy of every rich report artifact in a
// long-term directory, separate from the working reports directory.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prowl-osint/prowl-cli/internal/core/ports/driven"
	"github.com/prowl-osint/prowl-cli/internal/logger"
)

// Ensure Sink implements the interface.
var _ driven.ArchiveSink = (*Sink)(nil)

// Sink copies report files into an archive directory.
type Sink struct {
	dir string
}

// NewSink creates a Sink writing into dir. The directory is created on
// first use.
func NewSink(dir string) *Sink {
	return &Sink{dir: dir}
}

// ArchiveReport copies the artifact at path into the archive directory
// under its original filename.
func (s *Sink) ArchiveReport(path, username, requesterID string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}

	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer src.Close()

	dstPath := filepath.Join(s.dir, filepath.Base(path))
	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create archive copy: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy report: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close archive copy: %w", err)
	}

	logger.Info("archived report for %q (requested by %s): %s", username, requesterID, dstPath)
	return nil
}
