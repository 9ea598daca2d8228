// Package dataset loads the post list that drives a simulation run.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"viewsim/internal/simulation"
)

// Accepted start_datetime layouts, tried in order. Naive timestamps are
// interpreted in the engine's configured zone, not UTC.
var startLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// LoadPosts reads the posts CSV. Expected header columns: post_id, stage,
// start_datetime and optionally seed_offset (missing or empty means 0).
func LoadPosts(path string, loc *time.Location) ([]simulation.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading posts: %v", simulation.ErrInput, err)
	}
	defer f.Close()
	return ReadPosts(f, loc)
}

// ReadPosts parses post rows from r. Exported separately so callers can
// feed post lists from sources other than a file on disk.
func ReadPosts(r io.Reader, loc *time.Location) ([]simulation.Post, error) {
	if loc == nil {
		loc = time.UTC
	}
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: posts file has no header row", simulation.ErrInput)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"post_id", "stage", "start_datetime"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: posts file is missing column %q", simulation.ErrInput, required)
		}
	}

	var posts []simulation.Post
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: posts line %d: %v", simulation.ErrInput, line, err)
		}

		post, err := parsePost(record, col, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: posts line %d: %v", simulation.ErrInput, line, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func parsePost(record []string, col map[string]int, loc *time.Location) (simulation.Post, error) {
	var p simulation.Post

	p.ID = strings.TrimSpace(record[col["post_id"]])

	stage, err := strconv.Atoi(strings.TrimSpace(record[col["stage"]]))
	if err != nil {
		return p, fmt.Errorf("stage %q is not an integer", record[col["stage"]])
	}
	p.Stage = stage

	p.StartTime, err = parseStart(strings.TrimSpace(record[col["start_datetime"]]), loc)
	if err != nil {
		return p, err
	}

	if idx, ok := col["seed_offset"]; ok && idx < len(record) {
		raw := strings.TrimSpace(record[idx])
		if raw != "" {
			offset, err := strconv.Atoi(raw)
			if err != nil {
				return p, fmt.Errorf("seed_offset %q is not an integer", raw)
			}
			p.SeedOffset = offset
		}
	}
	return p, nil
}

func parseStart(s string, loc *time.Location) (time.Time, error) {
	// An explicit offset wins; otherwise the timestamp is assumed to
	// already be in the engine zone.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("start_datetime %q is not a recognized timestamp", s)
}
