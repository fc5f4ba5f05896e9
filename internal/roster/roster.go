// Package roster reads the ordered list of clusters to inspect.
//
// A roster is a CSV document without a header row, one record per line. The
// first field of each record is the cluster id, the second its display name;
// any further fields are ignored. Malformed records, including lines that are
// not valid CSV, are skipped and reported, never fatal.
package roster

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/guimove/ocpfleet/internal/model"
)

// ErrEmptyRoster is returned when no usable cluster record was found.
var ErrEmptyRoster = errors.New("roster contains no clusters")

// FormatError describes a roster record that was skipped.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("roster line %d: %s", e.Line, e.Reason)
}

// Roster is the ordered list of clusters of one run.
type Roster []model.ClusterRef

// IDs returns the cluster ids in roster order.
func (r Roster) IDs() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.ID
	}
	return out
}

// Parse reads roster records from r. Each line is parsed as one CSV record,
// so a syntax error only affects its own line. Skipped records are returned
// as *FormatError warnings alongside the usable clusters. The error result
// is only set when r cannot be read.
func Parse(r io.Reader) (Roster, []error, error) {
	var (
		out      Roster
		warnings []error
		seen     = make(map[string]int)
		line     int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++

		record, err := parseRecord(sc.Text())
		if errors.Is(err, io.EOF) {
			continue // blank or comment line
		}
		if err != nil {
			var parseErr *csv.ParseError
			reason := err.Error()
			if errors.As(err, &parseErr) {
				reason = parseErr.Err.Error()
			}
			warnings = append(warnings, &FormatError{Line: line, Reason: reason})
			continue
		}

		if len(record) < 2 {
			warnings = append(warnings, &FormatError{
				Line:   line,
				Reason: fmt.Sprintf("expected at least 2 fields, got %d", len(record)),
			})
			continue
		}

		ref := model.ClusterRef{
			ID:   strings.TrimSpace(record[0]),
			Name: strings.TrimSpace(record[1]),
		}
		if ref.ID == "" {
			warnings = append(warnings, &FormatError{Line: line, Reason: "empty cluster id"})
			continue
		}
		if prev, dup := seen[ref.ID]; dup {
			warnings = append(warnings, &FormatError{
				Line:   line,
				Reason: fmt.Sprintf("duplicate cluster id %q (first seen on line %d)", ref.ID, prev),
			})
		} else {
			seen[ref.ID] = line
		}

		out = append(out, ref)
	}
	if err := sc.Err(); err != nil {
		return nil, warnings, fmt.Errorf("reading roster: %w", err)
	}

	return out, warnings, nil
}

// parseRecord parses a single roster line. Blank and comment lines yield
// io.EOF.
func parseRecord(text string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	return cr.Read()
}

// ReadFile parses the roster file at path. It fails with ErrEmptyRoster when
// no usable record remains.
func ReadFile(path string) (Roster, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()

	r, warnings, err := Parse(f)
	if err != nil {
		return nil, warnings, err
	}
	if len(r) == 0 {
		return nil, warnings, fmt.Errorf("%s: %w", path, ErrEmptyRoster)
	}
	return r, warnings, nil
}
