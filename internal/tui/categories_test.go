package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCategoryByID(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{id: "output", expected: "Channel Tree"},
		{id: "index", expected: "Indexer"},
		{id: "state", expected: "Ledger"},
		{id: "logging", expected: "Logging"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			cat := GetCategoryByID(tt.id)
			assert.NotNil(t, cat)
			assert.Equal(t, tt.expected, cat.Name)
		})
	}

	t.Run("invalid_id", func(t *testing.T) {
		assert.Nil(t, GetCategoryByID("nonexistent"))
	})
}

func TestGetCategoryNames(t *testing.T) {
	names := GetCategoryNames()

	assert.Equal(t, []string{"Channel Tree", "Indexer", "Ledger", "Logging"}, names)
}

func TestCategories_HaveForms(t *testing.T) {
	values := FromConfig(nil)
	for _, cat := range Categories {
		assert.NotEmpty(t, cat.Description, cat.ID)
		assert.NotNil(t, GetFormForCategory(cat.ID, values), cat.ID)
	}
	assert.Nil(t, GetFormForCategory("unknown", values))
}
