package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// EntryValidator validates knowledge entry payloads before any mutation is
// sent. A validation failure aborts the action client-side.
type EntryValidator interface {
	Validate(input KnowledgeEntryInput) error
}

var knowledgeEntrySchema = map[string]any{
	"type":     "object",
	"required": []string{"category", "title", "content"},
	"properties": map[string]any{
		"category": map[string]any{"type": "string", "minLength": 1},
		"title":    map[string]any{"type": "string", "minLength": 1},
		"content":  map[string]any{"type": "string", "minLength": 1},
		"language": map[string]any{"type": "string", "minLength": 2, "maxLength": 5},
		"tags":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"source":   map[string]any{"type": "string"},
	},
}

// JSONSchemaValidator validates knowledge entries against their JSON schema.
type JSONSchemaValidator struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{}
}

// Validate ensures the entry satisfies the knowledge schema.
func (v *JSONSchemaValidator) Validate(input KnowledgeEntryInput) error {
	schema, err := v.compiled()
	if err != nil {
		return err
	}
	payload := map[string]any{
		"category": input.Category,
		"title":    input.Title,
		"content":  input.Content,
		"is_active": input.Active,
	}
	if input.Language != "" {
		payload["language"] = input.Language
	}
	if input.Source != "" {
		payload["source"] = input.Source
	}
	if len(input.Tags) > 0 {
		tags := make([]any, len(input.Tags))
		for i, tag := range input.Tags {
			tags[i] = tag
		}
		payload["tags"] = tags
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("console: knowledge entry failed validation: %w", err)
	}
	return nil
}

func (v *JSONSchemaValidator) compiled() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		data, err := json.Marshal(knowledgeEntrySchema)
		if err != nil {
			v.err = fmt.Errorf("console: marshal knowledge schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		const name = "knowledge_entry.json"
		if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
			v.err = fmt.Errorf("console: load knowledge schema: %w", err)
			return
		}
		v.schema, v.err = compiler.Compile(name)
	})
	return v.schema, v.err
}

type noopEntryValidator struct{}

func (noopEntryValidator) Validate(KnowledgeEntryInput) error { return nil }
