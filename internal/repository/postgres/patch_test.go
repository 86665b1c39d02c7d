package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUpdate(t *testing.T) {
	query, args := buildUpdate("surfboards", []assignment{
		{"title", "Fish"},
		{"for_rent", true},
	}, int32(7), "id")

	assert.Equal(t, "UPDATE surfboards SET title = $1, for_rent = $2, updated_at = NOW() WHERE id = $3 RETURNING id", query)
	assert.Equal(t, []any{"Fish", true, int32(7)}, args)
}

func TestBuildUpdateNoAssignments(t *testing.T) {
	query, args := buildUpdate("storage_partners", nil, int32(1), "")
	assert.Equal(t, "UPDATE storage_partners SET updated_at = NOW() WHERE id = $1", query)
	assert.Equal(t, []any{int32(1)}, args)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%Malibu%", containsPattern("Malibu"))
	assert.Equal(t, `%50\% off\_now%`, containsPattern("50% off_now"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}
