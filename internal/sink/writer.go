// Package sink serializes per-frame body positions to plain text files
// for downstream visualization.
package sink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/johnxnguyen/newton/internal/physics"
)

// Writer dumps one file per frame into a directory. Each line is the
// whitespace-separated x and y of one body, in body insertion order; there
// is no header and no id column, so the line order conveys identity.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Init creates the output directory if it does not exist.
func (w *Writer) Init() error {
	return os.MkdirAll(w.dir, 0755)
}

// FrameName returns the zero-padded file name for a frame index.
func FrameName(frame int) string {
	return fmt.Sprintf("%05d.txt", frame)
}

// WriteFrame dumps the bodies' current positions for the given frame.
func (w *Writer) WriteFrame(frame int, bodies []*physics.Body) error {
	file, err := os.Create(filepath.Join(w.dir, FrameName(frame)))
	if err != nil {
		return err
	}
	defer file.Close()

	buf := bufio.NewWriter(file)
	for _, b := range bodies {
		if _, err := fmt.Fprintf(buf, "%g %g\n", b.Position.X, b.Position.Y); err != nil {
			return err
		}
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	return file.Close()
}
