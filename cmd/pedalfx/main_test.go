package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectAndSetFlagsBuildStages(t *testing.T) {
	var c chain
	ef := effectFlag{&c}
	sf := setFlag{&c}

	require.NoError(t, ef.Set("Delay"))
	require.NoError(t, sf.Set("0=0.25"))
	require.NoError(t, sf.Set("2=0.5"))
	require.NoError(t, ef.Set("Reverb"))

	require.Len(t, c.stages, 2)
	assert.Equal(t, "Delay", c.stages[0].name)
	assert.Len(t, c.stages[0].params, 2)
	assert.Equal(t, paramAssignment{index: 2, value: 0.5}, c.stages[0].params[1])
	assert.Empty(t, c.stages[1].params)
}

func TestSetFlagValidation(t *testing.T) {
	var c chain
	sf := setFlag{&c}

	assert.Error(t, sf.Set("0=0.5"), "set before any effect")

	require.NoError(t, effectFlag{&c}.Set("Gain"))
	assert.Error(t, sf.Set("0.5"))
	assert.Error(t, sf.Set("x=0.5"))
	assert.Error(t, sf.Set("-1=0.5"))
	assert.Error(t, sf.Set("0=loud"))
	assert.Error(t, effectFlag{&c}.Set("  "))
}

func TestBuildChain(t *testing.T) {
	var c chain
	require.NoError(t, effectFlag{&c}.Set("Gain"))
	require.NoError(t, setFlag{&c}.Set("0=0.5"))

	procs, err := buildChain(&c)
	require.NoError(t, err)
	require.Len(t, procs, 1)
	assert.Equal(t, "Gain", procs[0].Name())
	assert.Equal(t, float32(0.5), procs[0].Parameter(0))
}

func TestBuildChainUnknownEffect(t *testing.T) {
	var c chain
	require.NoError(t, effectFlag{&c}.Set("NotARealEffect"))

	_, err := buildChain(&c)
	assert.Error(t, err)
}

func TestBuildChainParameterIndexOutOfRange(t *testing.T) {
	var c chain
	require.NoError(t, effectFlag{&c}.Set("Gain"))
	require.NoError(t, setFlag{&c}.Set("5=0.5"))

	_, err := buildChain(&c)
	assert.Error(t, err)
}
