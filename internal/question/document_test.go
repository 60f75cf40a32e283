package question

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const bankJSON = `{
  "questions": [
    {"id": 1, "round": "Animals", "prompt": "Octopuses have three hearts.", "qtype": "tf",
     "option_1": "True", "option_2": "False", "correct": 1},
    {"id": "geo-1", "category": "Geography", "prompt": "Which is further north?",
     "option_1": "Oslo", "option_2": "Helsinki", "correct": "Helsinki"}
  ]
}`

const bankYAML = `questions:
  - id: 1
    round: Animals
    prompt: Octopuses have three hearts.
    qtype: tf
    option_1: "True"
    option_2: "False"
    correct: 1
  - id: geo-1
    category: Geography
    prompt: Which is further north?
    option_1: Oslo
    option_2: Helsinki
    correct: Helsinki
`

func wantDocumentQuestions() []Question {
	return []Question{
		{ID: "1", Category: "Animals", Prompt: "Octopuses have three hearts.",
			Kind: KindTrueFalse, Options: [2]string{"True", "False"}, Correct: 0},
		{ID: "geo-1", Category: "Geography", Prompt: "Which is further north?",
			Kind: KindEither, Options: [2]string{"Oslo", "Helsinki"}, Correct: 1},
	}
}

func TestParseJSON(t *testing.T) {
	qs, err := ParseJSON("bank.json", []byte(bankJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if diff := cmp.Diff(wantDocumentQuestions(), qs); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAML(t *testing.T) {
	qs, err := ParseYAML("bank.yaml", []byte(bankYAML))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if diff := cmp.Diff(wantDocumentQuestions(), qs); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSON_SchemaViolations(t *testing.T) {
	tests := map[string]string{
		"not json":        `{"questions": [`,
		"no questions":    `{}`,
		"empty list":      `{"questions": []}`,
		"missing prompt":  `{"questions": [{"id": 1, "option_1": "a", "option_2": "b", "correct": 1}]}`,
		"correct too big": `{"questions": [{"id": 1, "prompt": "p", "option_1": "a", "option_2": "b", "correct": 3}]}`,
		"bad qtype":       `{"questions": [{"id": 1, "prompt": "p", "qtype": "multi", "option_1": "a", "option_2": "b", "correct": 1}]}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseJSON("bad.json", []byte(data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseYAML_Errors(t *testing.T) {
	if _, err := ParseYAML("bad.yaml", []byte("questions: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
	if _, err := ParseYAML("empty.yaml", []byte("questions: []\n")); !errors.Is(err, ErrEmptyBank) {
		t.Errorf("err = %v, want ErrEmptyBank", err)
	}
	_, err := ParseYAML("nested.yaml", []byte("questions:\n  - id: [1, 2]\n"))
	if err == nil || !strings.Contains(err.Error(), "scalar") {
		t.Errorf("err = %v, want scalar error for list id", err)
	}
}

func TestNewLoader(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"bank.csv":  quizCSV,
		"bank.json": bankJSON,
		"bank.yaml": bankYAML,
		"bank.YML":  bankYAML,
	}
	for name, data := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
				t.Fatal(err)
			}
			l, err := NewLoader(path)
			if err != nil {
				t.Fatalf("NewLoader: %v", err)
			}
			qs, err := l.Load(context.Background())
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(qs) != 2 {
				t.Errorf("got %d questions, want 2", len(qs))
			}
		})
	}

	if _, err := NewLoader("bank.txt"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
