package dto_test

import (
	"testing"

	"github.com/aretw0/arbor/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_NodeAttributes(t *testing.T) {
	var attrs dto.NodeAttributes
	err := dto.Decode(map[string]any{
		"grammar":  "tree.lsys",
		"stepSize": 2,
		"angle":    "30",
	}, &attrs)
	require.NoError(t, err)

	assert.Equal(t, "tree.lsys", attrs.Grammar)
	require.NotNil(t, attrs.StepSize)
	assert.Equal(t, 2.0, *attrs.StepSize)
	require.NotNil(t, attrs.Angle)
	assert.Equal(t, 30.0, *attrs.Angle)
	assert.Nil(t, attrs.Time)
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	var attrs dto.NodeAttributes
	err := dto.Decode(map[string]any{"grammar": "a", "stepLength": 1}, &attrs)
	assert.ErrorContains(t, err, "stepLength")
}

func TestDecode_RejectsBadNumbers(t *testing.T) {
	var args dto.ToolArguments
	err := dto.Decode(map[string]any{"iterations": "many"}, &args)
	assert.Error(t, err)
}
