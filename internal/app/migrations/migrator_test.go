package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialSchemaIndexes(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	schema := string(raw)

	indexes := []string{
		"CREATE INDEX idx_student_profiles_effective_expiry ON student_profiles (effective_expiry_date)",
		"CREATE INDEX idx_student_profiles_session ON student_profiles (academic_session)",
		"CREATE UNIQUE INDEX one_pending_request_per_student",
		"CREATE UNIQUE INDEX one_pending_clearance_per_student",
	}
	for _, idx := range indexes {
		assert.Contains(t, schema, idx)
	}
}
