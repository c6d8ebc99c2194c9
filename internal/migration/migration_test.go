package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunner_Steps(t *testing.T) {
	r := NewRunner()

	assert.Equal(t, "1.0.0", r.Version())
	assert.Equal(t, []string{
		"create datasets table",
		"add datasets source column",
		"create datasets indexes",
	}, r.Steps())
}

func TestRunner_StatementsAreIdempotent(t *testing.T) {
	assert.Contains(t, createDatasetsTable, "IF NOT EXISTS")
	assert.Contains(t, addDatasetsSourceColumn, "IF NOT EXISTS")
	assert.Contains(t, createDatasetsIndexes, "IF NOT EXISTS")
}
