// SPDX-License-Identifier: MPL-2.0

package container

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// DefaultListColumns mirrors the columns `docker ps` shows by default. Each
// name is also the Go-template field used to request it from the engine.
var DefaultListColumns = []string{"ID", "Image", "Command", "CreatedAt", "Status", "Ports", "Names"}

var columnNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

type (
	// Record is one row of a container listing, keyed by column name. All
	// records produced by one listing share exactly the same key set.
	Record map[string]string

	// SplitFunc splits one listing line into fields.
	SplitFunc func(line string) []string
)

// Get returns the value of column, or "" when the column is absent.
func (r Record) Get(column string) string { return r[column] }

// Columns returns the record's column names in sorted order.
func (r Record) Columns() []string { return slices.Sorted(maps.Keys(r)) }

// SplitWhitespace splits on runs of whitespace. It is only correct for
// listings whose values never contain spaces; prefer SplitTabs with a
// tab-delimited --format template.
func SplitWhitespace(line string) []string { return strings.Fields(line) }

// SplitTabs splits on every tab, keeping empty fields (e.g. a container
// without published ports).
func SplitTabs(line string) []string { return strings.Split(line, "\t") }

// ValidateColumns checks that columns can key records and be requested as
// Go-template fields.
func ValidateColumns(columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("%w: no columns", ErrMalformedListing)
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if !columnNamePattern.MatchString(c) {
			return fmt.Errorf("%w: invalid column name %q", ErrMalformedListing, c)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrMalformedListing, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// ListFormat returns the tab-delimited Go template that asks the engine for
// exactly columns, in order.
func ListFormat(columns []string) string {
	fields := make([]string, 0, len(columns))
	for _, c := range columns {
		fields = append(fields, "{{."+c+"}}")
	}
	// The engine expands the two-character sequence \t into a tab.
	return strings.Join(fields, `\t`)
}

// ParseTable parses listing output whose first non-empty line is the header.
func ParseTable(output string, split SplitFunc) ([]Record, error) {
	lines := splitLines(output)
	for n, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		header := split(line)
		if err := uniqueHeader(header); err != nil {
			return nil, err
		}
		return parseRows(header, lines[n+1:], n+1, split)
	}
	return []Record{}, nil
}

// ParseRecords parses header-less listing output against columns.
func ParseRecords(columns []string, output string, split SplitFunc) ([]Record, error) {
	if err := uniqueHeader(columns); err != nil {
		return nil, err
	}
	return parseRows(columns, splitLines(output), 0, split)
}

// parseRows zips each non-blank line against columns. offset is the number of
// lines consumed before rows, used to report 1-based line numbers.
func parseRows(columns []string, rows []string, offset int, split SplitFunc) ([]Record, error) {
	records := make([]Record, 0, len(rows))
	for n, line := range rows {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := split(line)
		if len(fields) != len(columns) {
			return nil, &MalformedRowError{Line: offset + n + 1, Want: len(columns), Got: len(fields), Raw: line}
		}
		rec := make(Record, len(columns))
		for i, c := range columns {
			rec[c] = fields[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

func uniqueHeader(columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("%w: empty header", ErrMalformedListing)
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrMalformedListing, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

func splitLines(output string) []string {
	lines := strings.Split(output, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
