package question

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// bankDocument is the structured (JSON/YAML) question bank layout:
//
//	questions:
//	  - id: 1
//	    category: Animals
//	    prompt: The blue whale is the largest animal species on Earth.
//	    qtype: tf
//	    option_1: "True"
//	    option_2: "False"
//	    correct: 1
type bankDocument struct {
	Questions []bankEntry `json:"questions" yaml:"questions"`
}

type bankEntry struct {
	ID       flexString `json:"id" yaml:"id"`
	Category string     `json:"category" yaml:"category"`
	Round    string     `json:"round" yaml:"round"`
	Prompt   string     `json:"prompt" yaml:"prompt"`
	QType    string     `json:"qtype" yaml:"qtype"`
	Option1  string     `json:"option_1" yaml:"option_1"`
	Option2  string     `json:"option_2" yaml:"option_2"`
	Correct  flexString `json:"correct" yaml:"correct"`
}

func (e bankEntry) record() record {
	cat := e.Category
	if cat == "" {
		cat = e.Round
	}
	return record{
		ID:       string(e.ID),
		Category: cat,
		Prompt:   e.Prompt,
		Kind:     e.QType,
		Option1:  e.Option1,
		Option2:  e.Option2,
		Correct:  string(e.Correct),
	}
}

// flexString accepts either a string or a number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (f *flexString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*f = flexString(node.Value)
	return nil
}

// bankSchema guards JSON banks before they are decoded.
var bankSchema = map[string]any{
	"type":     "object",
	"required": []any{"questions"},
	"properties": map[string]any{
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "prompt", "option_1", "option_2", "correct"},
				"properties": map[string]any{
					"id":       map[string]any{"type": []any{"string", "integer"}},
					"category": map[string]any{"type": "string"},
					"round":    map[string]any{"type": "string"},
					"prompt":   map[string]any{"type": "string", "minLength": 1},
					"qtype":    map[string]any{"type": "string", "enum": []any{"tf", "either"}},
					"option_1": map[string]any{"type": "string"},
					"option_2": map[string]any{"type": "string"},
					"correct": map[string]any{
						"oneOf": []any{
							map[string]any{"type": "integer", "enum": []any{1, 2}},
							map[string]any{"type": "string", "minLength": 1},
						},
					},
				},
			},
		},
	},
}

var (
	compiledBankSchema *jsonschema.Schema
	bankSchemaErr      error
	bankSchemaOnce     sync.Once
)

func getBankSchema() (*jsonschema.Schema, error) {
	bankSchemaOnce.Do(func() {
		// The compiler wants plain decoded JSON values, not Go ints.
		raw, err := json.Marshal(bankSchema)
		if err != nil {
			bankSchemaErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			bankSchemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://question-bank.json"
		if err := c.AddResource(url, def); err != nil {
			bankSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledBankSchema, bankSchemaErr = c.Compile(url)
	})
	return compiledBankSchema, bankSchemaErr
}

// JSONLoader reads a JSON question bank, validated against a JSON Schema.
type JSONLoader struct {
	Path string
}

var _ Loader = JSONLoader{}

func (l JSONLoader) Load(ctx context.Context) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return ParseJSON(l.Path, data)
}

// ParseJSON validates and decodes JSON question data.
func ParseJSON(source string, data []byte) ([]Question, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%s: invalid JSON: %w", source, err)
	}

	schema, err := getBankSchema()
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%s: schema validation failed: %w", source, err)
	}

	var doc bankDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", source, err)
	}
	return buildDocument(source, doc)
}

// YAMLLoader reads a YAML question bank.
type YAMLLoader struct {
	Path string
}

var _ Loader = YAMLLoader{}

func (l YAMLLoader) Load(ctx context.Context) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return ParseYAML(l.Path, data)
}

// ParseYAML decodes YAML question data.
func ParseYAML(source string, data []byte) ([]Question, error) {
	var doc bankDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: invalid YAML: %w", source, err)
	}
	return buildDocument(source, doc)
}

func buildDocument(source string, doc bankDocument) ([]Question, error) {
	recs := make([]record, 0, len(doc.Questions))
	for _, e := range doc.Questions {
		recs = append(recs, e.record())
	}
	return build(source, recs)
}

// NewLoader picks a Loader for path based on its extension.
func NewLoader(path string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSVLoader{Path: path}, nil
	case ".json":
		return JSONLoader{Path: path}, nil
	case ".yaml", ".yml":
		return YAMLLoader{Path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported question bank format %q (want .csv, .json, .yaml)", filepath.Ext(path))
	}
}
