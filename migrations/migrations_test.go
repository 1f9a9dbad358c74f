package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersions_Sorted(t *testing.T) {
	versions, err := Versions()
	require.NoError(t, err)
	require.NotEmpty(t, versions)

	assert.Equal(t, "001_init.up.sql", versions[0])
	for i := 1; i < len(versions); i++ {
		assert.Less(t, versions[i-1], versions[i])
	}
}

func TestInitSchema_Constraints(t *testing.T) {
	body, err := files.ReadFile("001_init.up.sql")
	require.NoError(t, err)

	schema := string(body)
	assert.True(t, strings.Contains(schema, "CONSTRAINT no_overlap EXCLUDE USING gist"))
	assert.True(t, strings.Contains(schema, "'[)'"))
	assert.True(t, strings.Contains(schema, "CONSTRAINT bookings_time_order CHECK (end_time > start_time)"))
}
