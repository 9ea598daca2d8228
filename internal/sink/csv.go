// Package sink writes SimulationRow streams to their destinations.
package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"viewsim/internal/simulation"
)

// TimestampLayout is the second-precision local format used in the output.
const TimestampLayout = "2006-01-02 15:04:05"

var csvHeader = []string{"No", "post_id", "views_inc", "cum_views", "datetime"}

// CSVWriter streams rows to a CSV file. The file is opened once per run and
// released on Close regardless of how the run ends.
type CSVWriter struct {
	f *os.File
	w *csv.Writer
}

// NewCSV creates path (and its directory) and writes the header row.
func NewCSV(path string) (*CSVWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	return &CSVWriter{f: f, w: w}, nil
}

// WriteRows appends rows in order.
func (c *CSVWriter) WriteRows(rows []simulation.Row) error {
	for _, r := range rows {
		if err := c.w.Write(csvRecord(r)); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes buffered rows and releases the file handle.
func (c *CSVWriter) Close() error {
	c.w.Flush()
	flushErr := c.w.Error()
	closeErr := c.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// EncodeCSV writes the full header-plus-rows table to w. Used where the
// destination is not a file on disk.
func EncodeCSV(w io.Writer, rows []simulation.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(csvRecord(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(r simulation.Row) []string {
	return []string{
		strconv.Itoa(r.SequenceNo),
		r.PostID,
		strconv.Itoa(r.Increment),
		strconv.Itoa(r.CumulativeViews),
		r.Timestamp.Format(TimestampLayout),
	}
}
