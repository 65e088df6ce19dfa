package filtereval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_PreservesOrder(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"median", "lowpass", "gaussian"} {
		require.NoError(t, reg.Register(name, identityFilter(), nil))
	}
	assert.Equal(t, []string{"median", "lowpass", "gaussian"}, reg.Names())
	assert.Equal(t, 3, reg.Len())
}

func TestRegistry_DuplicateName(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("lowpass", identityFilter(), Params{"cutoff": 1000}))

	err := reg.Register("lowpass", scaleFilter(2), Params{"cutoff": 2000})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateFilter)

	var de *DuplicateFilterError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "lowpass", de.Name)

	spec, err := reg.Get("lowpass")
	require.NoError(t, err)
	assert.Equal(t, Params{"cutoff": 1000}, spec.Params(), "first registration must survive")
}

func TestRegistry_OverwriteKeepsSlot(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("a", identityFilter(), nil)
	reg.MustRegister("b", identityFilter(), nil)

	require.NoError(t, reg.Overwrite("a", identityFilter(), Params{"v": 2}))
	require.NoError(t, reg.Overwrite("c", identityFilter(), nil))

	assert.Equal(t, []string{"a", "b", "c"}, reg.Names())
	spec, err := reg.Get("a")
	require.NoError(t, err)
	assert.Equal(t, Params{"v": 2}, spec.Params())
}

func TestRegistry_InvalidSpecs(t *testing.T) {
	reg := NewRegistry()
	assert.ErrorIs(t, reg.Register("", identityFilter(), nil), ErrInvalidFilterSpec)
	assert.ErrorIs(t, reg.Register("x", nil, nil), ErrInvalidFilterSpec)
	assert.Panics(t, func() { reg.MustRegister("", identityFilter(), nil) })
	assert.Zero(t, reg.Len())
}

func TestRegistry_GetUnknown(t *testing.T) {
	_, err := NewRegistry().Get("wiener")
	assert.ErrorIs(t, err, ErrFilterNotFound)
}

func TestRegistry_ParamsAreCopied(t *testing.T) {
	reg := NewRegistry()
	params := Params{"size": 5}
	reg.MustRegister("median", identityFilter(), params)
	params["size"] = 7

	spec, err := reg.Get("median")
	require.NoError(t, err)
	got := spec.Params()
	assert.Equal(t, 5, got["size"])
	got["size"] = 9
	assert.Equal(t, 5, spec.Params()["size"])
}
