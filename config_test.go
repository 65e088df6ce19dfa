package filtereval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero_value", Config{}, false},
		{"continue", Config{Policy: "continue", Workers: 8, Metrics: []string{"rmse", "lsd"}}, false},
		{"unknown_policy", Config{Policy: "retry"}, true},
		{"negative_workers", Config{Workers: -1}, true},
		{"too_many_workers", Config{Workers: maxWorkers + 1}, true},
		{"unknown_metric", Config{Metrics: []string{"pesq"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewEngineFromConfig(t *testing.T) {
	e, err := NewEngineFromConfig(&Config{Policy: "continue", Workers: 2, Metrics: []string{"lsd"}}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ContinueOnError, e.policy)
	assert.Equal(t, 2, e.workers)
	require.Len(t, e.metrics, 1)
	assert.Equal(t, "lsd", e.metrics[0].Name)

	e, err = NewEngineFromConfig(&Config{}, nil)
	require.NoError(t, err)
	assert.Len(t, e.metrics, len(DefaultMetrics()))
	assert.Equal(t, FailFast, e.policy)

	_, err = NewEngineFromConfig(&Config{Policy: "nope"}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestErrorPolicy_RoundTrip(t *testing.T) {
	for _, p := range []ErrorPolicy{FailFast, ContinueOnError} {
		got, ok := ParseErrorPolicy(p.String())
		require.True(t, ok)
		assert.Equal(t, p, got)
	}
	_, ok := ParseErrorPolicy("sometimes")
	assert.False(t, ok)
}

func TestOptions_Defaults(t *testing.T) {
	o := newOptions([]Option{WithLogger(nil), WithWorkers(-3)})
	assert.NotNil(t, o.logger)
	assert.Equal(t, 1, o.workers)
	assert.Equal(t, FailFast, o.policy)
	assert.Empty(t, o.metrics)
}
