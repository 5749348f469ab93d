package forecaster

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	_, err := r.Lookup("garch")
	var missing *MissingDependencyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "garch", missing.Name)
	assert.ErrorIs(t, err, ErrMissingDependency)
	assert.Contains(t, err.Error(), `"garch"`)

	r.Register("const", func(Params) (Model, error) { return &constModel{}, nil })

	f, err := r.Lookup("const")
	require.NoError(t, err)
	m1, err := f(nil)
	require.NoError(t, err)
	m2, err := f(nil)
	require.NoError(t, err)
	assert.NotSame(t, m1, m2)

	assert.Equal(t, []string{"const"}, r.Names())
}

func TestRegistryNewPassesParams(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("bad order")

	var got Params
	r.Register("echo", func(p Params) (Model, error) {
		got = p
		if v, _ := p.Int("p", 0); v < 0 {
			return nil, boom
		}
		return &constModel{}, nil
	})

	in := Params{"p": 2}
	_, err := r.New("echo", in)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	got["p"] = 99
	assert.Equal(t, 2, in["p"], "factories receive a copy")

	_, err = r.New("echo", Params{"p": -1})
	assert.Same(t, boom, err)

	_, err = r.New("nope", nil)
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestRegistryRegisterPanics(t *testing.T) {
	r := NewRegistry()
	r.Register("a", func(Params) (Model, error) { return nil, nil })

	assert.Panics(t, func() { r.Register("a", func(Params) (Model, error) { return nil, nil }) })
	assert.Panics(t, func() { r.Register("b", nil) })
}

func TestParams(t *testing.T) {
	p := Params{"p": 2, "q": float64(3), "approximation": true, "bad": 1.5, "name": "x"}

	v, err := p.Int("p", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = p.Int("q", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = p.Int("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = p.Int("bad", 1)
	assert.ErrorIs(t, err, ErrParam)

	for _, huge := range []any{1e30, -1e30, math.Ldexp(1, 63), uint64(math.MaxUint64), uint(math.MaxUint)} {
		_, err = Params{"p": huge}.Int("p", 1)
		assert.ErrorIs(t, err, ErrParam, "%v (%T)", huge, huge)
	}
	v, err = Params{"p": uint64(4)}.Int("p", 1)
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	v, err = Params{"p": float64(-2)}.Int("p", 1)
	require.NoError(t, err)
	assert.Equal(t, -2, v)

	b, err := p.Bool("approximation", false)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = p.Bool("name", false)
	assert.ErrorIs(t, err, ErrParam)

	assert.Equal(t, []string{"approximation", "bad", "name", "p", "q"}, p.Keys())
	assert.NoError(t, Params{"p": 1}.CheckKeys("p", "q"))
	assert.ErrorIs(t, Params{"r": 1}.CheckKeys("p", "q"), ErrParam)

	c := p.Clone()
	c["p"] = 5
	assert.Equal(t, 2, p["p"])
	assert.NotNil(t, Params(nil).Clone())
}
