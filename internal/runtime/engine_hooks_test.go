package runtime_test

import (
	"testing"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	var loads []*domain.LoadEvent
	var expands []*domain.ExpandEvent
	var interprets []*domain.InterpretEvent

	hooks := domain.LifecycleHooks{
		OnLoad:      func(e *domain.LoadEvent) { loads = append(loads, e) },
		OnExpand:    func(e *domain.ExpandEvent) { expands = append(expands, e) },
		OnInterpret: func(e *domain.InterpretEvent) { interprets = append(interprets, e) },
	}

	engine := runtime.NewEngine(runtime.WithLifecycleHooks(hooks))
	require.NoError(t, engine.LoadProgram(plantGrammar))
	assert.Error(t, engine.LoadProgram("nonsense"))

	var out []domain.Branch
	require.NoError(t, engine.Process(2, &out))

	require.Len(t, loads, 1, "failed loads must not fire OnLoad")
	assert.Equal(t, domain.EventLoad, loads[0].Type)
	assert.Equal(t, uint64(1), loads[0].Generation)
	assert.Equal(t, 1, loads[0].Rules)
	assert.False(t, loads[0].IsStochastic)

	require.Len(t, expands, 1)
	assert.Equal(t, uint(2), expands[0].Iterations)
	assert.Equal(t, 21, expands[0].Symbols)

	require.Len(t, interprets, 1)
	assert.Equal(t, 9, interprets[0].Branches)
	assert.Equal(t, 45.0, interprets[0].Angle)
	assert.False(t, interprets[0].IsError)
}

func TestEngine_InterpretHookReportsErrors(t *testing.T) {
	var failed bool
	engine := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnInterpret: func(e *domain.InterpretEvent) { failed = e.IsError },
	}))
	require.NoError(t, engine.LoadProgram("axiom: ]"))

	var out []domain.Branch
	assert.Error(t, engine.Process(0, &out))
	assert.True(t, failed)
}
