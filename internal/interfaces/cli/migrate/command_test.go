package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpStrategySelection(t *testing.T) {
	tests := []struct {
		runner   string
		wantName string
	}{
		{"sql", "golang_migrate"},
		{"goose", "goose"},
	}

	for _, tt := range tests {
		t.Run(tt.runner, func(t *testing.T) {
			runner = tt.runner
			defer func() { runner = "sql" }()

			strategy, err := upStrategy("/tmp/scripts", "sqlite")
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, strategy.GetName())
		})
	}
}

func TestUpStrategyRejectsUnknownRunner(t *testing.T) {
	runner = "flyway"
	defer func() { runner = "sql" }()

	_, err := upStrategy("/tmp/scripts", "sqlite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration runner")
}

func TestDownAndStatusRequireSQLRunner(t *testing.T) {
	runner = "goose"
	defer func() { runner = "sql" }()

	err := runDown(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sql runner")

	err = runStatus(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sql runner")
}
