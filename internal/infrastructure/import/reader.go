// Package csvimport parses CSV uploads into stock item records. Files must
// be UTF-8; a leading BOM is tolerated and stripped. Row errors do not stop
// the parse, they are collected and reported together.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// reader wraps encoding/csv with BOM stripping, UTF-8 validation and
// header-name field access.
type reader struct {
	csv     *csv.Reader
	headers map[string]int
	line    int
}

func newReader(r io.Reader) (*reader, error) {
	buffered := bufio.NewReader(r)

	head, err := buffered.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyFile
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buffered.Discard(3)
		if len(head) == 3 {
			return nil, ErrEmptyFile
		}
		head = head[3:]
	}
	if !utf8.Valid(head) && !incompleteTrailingRune(head) {
		return nil, ErrInvalidEncoding
	}

	cr := csv.NewReader(buffered)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	record, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	headers := make(map[string]int, len(record))
	for idx, name := range record {
		headers[strings.ToLower(strings.TrimSpace(name))] = idx
	}

	return &reader{csv: cr, headers: headers, line: 1}, nil
}

// incompleteTrailingRune reports whether the only invalid bytes are a rune
// cut off by the peek window boundary.
func incompleteTrailingRune(head []byte) bool {
	for trim := 1; trim <= 3 && trim < len(head); trim++ {
		if utf8.Valid(head[:len(head)-trim]) {
			return true
		}
	}
	return false
}

// missingHeaders returns the required header names absent from the file
func (r *reader) missingHeaders(required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := r.headers[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// row is one data row keyed by lowercased header name
type row struct {
	line   int
	fields []string
	r      *reader
}

func (w row) get(header string) string {
	idx, ok := w.r.headers[header]
	if !ok || idx >= len(w.fields) {
		return ""
	}
	return strings.TrimSpace(w.fields[idx])
}

func (w row) empty() bool {
	for _, f := range w.fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// next reads the next non-empty data row. It returns io.EOF at the end of
// the file and a RowError for a malformed row.
func (r *reader) next() (row, error) {
	for {
		record, err := r.csv.Read()
		if err == io.EOF {
			return row{}, io.EOF
		}
		r.line++
		if err != nil {
			return row{}, NewRowError(r.line, "", ErrCodeMalformedRow, err.Error())
		}
		w := row{line: r.line, fields: record, r: r}
		if w.empty() {
			continue
		}
		return w, nil
	}
}
