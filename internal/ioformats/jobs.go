package ioformats

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Job is one product to analyze. Limit 0 means the service default.
type Job struct {
	URL   string `json:"url"`
	Limit int    `json:"limit,omitempty"`
}

// ReadJobs reads jobs from a CSV (header with "url", optional "limit") or
// NDJSON file. If ext cannot be determined, tries CSV first then NDJSON.
func ReadJobs(path string) ([]Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(f)
	case ".ndjson", ".jsonl":
		return readNDJSON(f)
	default:
		if jobs, err := readCSV(f); err == nil && len(jobs) > 0 {
			return jobs, nil
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return readNDJSON(f)
	}
}

func readCSV(r io.Reader) ([]Job, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty csv")
	}
	urlCol, limitCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "url":
			urlCol = i
		case "limit":
			limitCol = i
		}
	}
	if urlCol == -1 {
		return nil, errors.New("csv must contain a 'url' header column")
	}
	var out []Job
	for n, row := range rows[1:] {
		if urlCol >= len(row) || strings.TrimSpace(row[urlCol]) == "" {
			continue
		}
		job := Job{URL: strings.TrimSpace(row[urlCol])}
		if limitCol >= 0 && limitCol < len(row) && strings.TrimSpace(row[limitCol]) != "" {
			l, err := strconv.Atoi(strings.TrimSpace(row[limitCol]))
			if err != nil {
				return nil, fmt.Errorf("csv row %d: invalid limit %q", n+2, row[limitCol])
			}
			job.Limit = l
		}
		out = append(out, job)
	}
	return out, nil
}

func readNDJSON(r io.Reader) ([]Job, error) {
	var out []Job
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		// allow raw url or {"url": "...", "limit": n}
		if strings.HasPrefix(line, "{") {
			var job Job
			if err := json.Unmarshal([]byte(line), &job); err == nil && job.URL != "" {
				out = append(out, job)
				continue
			}
		}
		out = append(out, Job{URL: line})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("no urls found in ndjson")
	}
	return out, nil
}

// WriteNDJSON writes any JSON-marshalable items as NDJSON to w.
func WriteNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}
