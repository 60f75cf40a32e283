package question

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyBank is returned when a source yields no questions at all.
var ErrEmptyBank = errors.New("question bank is empty")

// ValidationError describes one invalid row in a question bank.
type ValidationError struct {
	Source string
	Row    int // 1-based data row (header excluded); 0 if unknown
	ID     string
	Err    error
}

func (e *ValidationError) Error() string {
	loc := e.Source
	if e.Row > 0 {
		loc = fmt.Sprintf("%s row %d", loc, e.Row)
	}
	if e.ID != "" {
		loc = fmt.Sprintf("%s (id %s)", loc, e.ID)
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// record is the format-neutral shape every loader decodes into before
// validation.
type record struct {
	ID       string
	Category string
	Prompt   string
	Kind     string
	Option1  string
	Option2  string
	Correct  string
}

// toQuestion validates a single record.
func (r record) toQuestion() (Question, error) {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		return Question{}, errors.New("missing id")
	}
	prompt := strings.TrimSpace(r.Prompt)
	if prompt == "" {
		return Question{}, errors.New("missing prompt")
	}

	opts := [2]string{strings.TrimSpace(r.Option1), strings.TrimSpace(r.Option2)}
	kind := normalizeKind(r.Kind, opts)
	if kind == KindTrueFalse {
		if opts[0] == "" {
			opts[0] = "True"
		}
		if opts[1] == "" {
			opts[1] = "False"
		}
	}
	if opts[0] == "" || opts[1] == "" {
		return Question{}, errors.New("both options are required")
	}
	if opts[0] == opts[1] {
		return Question{}, fmt.Errorf("options must differ, both are %q", opts[0])
	}

	correct, err := parseCorrect(r.Correct, opts)
	if err != nil {
		return Question{}, err
	}

	return Question{
		ID:       id,
		Category: strings.TrimSpace(r.Category),
		Prompt:   prompt,
		Kind:     kind,
		Options:  opts,
		Correct:  correct,
	}, nil
}

// parseCorrect accepts 1/2, a/b, option_1/option_a style labels, or the
// literal text of one of the options.
func parseCorrect(raw string, opts [2]string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, errors.New("missing correct option")
	}
	switch strings.ToLower(v) {
	case "a", "option_a", "option_1", "option1":
		return 0, nil
	case "b", "option_b", "option_2", "option2":
		return 1, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		if n == 1 || n == 2 {
			return n - 1, nil
		}
		return 0, fmt.Errorf("correct option %d out of range, want 1 or 2", n)
	}
	for i, o := range opts {
		if strings.EqualFold(v, o) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("correct option %q matches neither option", v)
}

// build validates all records and returns the questions in source order.
// All row problems are reported together.
func build(source string, recs []record) ([]Question, error) {
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyBank)
	}

	var errs []error
	seen := make(map[string]int, len(recs))
	out := make([]Question, 0, len(recs))

	for i, r := range recs {
		row := i + 1
		q, err := r.toQuestion()
		if err != nil {
			errs = append(errs, &ValidationError{Source: source, Row: row, ID: strings.TrimSpace(r.ID), Err: err})
			continue
		}
		if prev, dup := seen[q.ID]; dup {
			errs = append(errs, &ValidationError{
				Source: source, Row: row, ID: q.ID,
				Err: fmt.Errorf("duplicate id, first seen on row %d", prev),
			})
			continue
		}
		seen[q.ID] = row
		out = append(out, q)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
