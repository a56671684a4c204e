package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorAcceptsCompleteEntry(t *testing.T) {
	v := NewJSONSchemaValidator()
	err := v.Validate(KnowledgeEntryInput{
		Category: "nutrition",
		Title:    "Vitamin A",
		Content:  "Found in leafy greens and liver.",
		Language: "en",
		Tags:     []string{"vitamins", "diet"},
		Active:   true,
	})
	assert.NoError(t, err)
}

func TestValidatorRejectsMissingFields(t *testing.T) {
	v := NewJSONSchemaValidator()

	err := v.Validate(KnowledgeEntryInput{Category: "nutrition", Content: "body"})
	require.Error(t, err, "missing title must fail")

	err = v.Validate(KnowledgeEntryInput{Title: "t", Content: "c"})
	require.Error(t, err, "missing category must fail")

	err = v.Validate(KnowledgeEntryInput{Category: "c", Title: "t", Content: ""})
	require.Error(t, err, "empty content must fail")
}

func TestValidatorRejectsBadLanguageCode(t *testing.T) {
	v := NewJSONSchemaValidator()
	err := v.Validate(KnowledgeEntryInput{
		Category: "nutrition",
		Title:    "t",
		Content:  "c",
		Language: "x",
	})
	require.Error(t, err)
}
