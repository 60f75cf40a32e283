package question

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// csvColumns maps each record field to the header names accepted for it.
// Both the quiz-export layout (round, qtype, option_1, option_2, correct)
// and the plain layout (category, option_a, option_b, correct_option) work.
var csvColumns = map[string][]string{
	"id":       {"id"},
	"category": {"category", "round"},
	"prompt":   {"prompt", "question"},
	"kind":     {"qtype", "type", "kind"},
	"option1":  {"option_1", "option_a", "option1"},
	"option2":  {"option_2", "option_b", "option2"},
	"correct":  {"correct", "correct_option", "answer"},
}

var requiredCSVColumns = []string{"id", "prompt", "option1", "option2", "correct"}

// CSVLoader reads questions from a comma-separated file with a header row.
type CSVLoader struct {
	Path string
}

var _ Loader = CSVLoader{}

// Load opens Path and parses it.
func (l CSVLoader) Load(ctx context.Context) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()
	return ParseCSV(l.Path, f)
}

// ParseCSV parses CSV question data. source names the input in errors.
func ParseCSV(source string, r io.Reader) ([]Question, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", source, ErrEmptyBank)
		}
		return nil, fmt.Errorf("%s: read header: %w", source, err)
	}

	index, err := mapCSVHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	var recs []record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		if isBlankRow(row) {
			continue
		}
		get := func(field string) string {
			i, ok := index[field]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		recs = append(recs, record{
			ID:       get("id"),
			Category: get("category"),
			Prompt:   get("prompt"),
			Kind:     get("kind"),
			Option1:  get("option1"),
			Option2:  get("option2"),
			Correct:  get("correct"),
		})
	}

	return build(source, recs)
}

// mapCSVHeader resolves header names to column indexes.
func mapCSVHeader(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
		for field, aliases := range csvColumns {
			if _, done := index[field]; done {
				continue
			}
			for _, a := range aliases {
				if name == a {
					index[field] = i
					break
				}
			}
		}
	}

	var missing []string
	for _, f := range requiredCSVColumns {
		if _, ok := index[f]; !ok {
			missing = append(missing, csvColumns[f][0])
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
