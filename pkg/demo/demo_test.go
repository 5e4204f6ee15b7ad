package demo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/opd-ai/go-steering/pkg/physics"
	"github.com/opd-ai/go-steering/pkg/steering"
)

func TestStates_Order(t *testing.T) {
	want := []string{
		"startup", "wander", "seek", "flee", "pursue", "arrive",
		"evade", "align", "match", "broadside", "orthogonal",
	}

	var got []string
	for _, s := range States() {
		got = append(got, s.Name)
	}
	assert.Equal(t, want, got)
}

func TestStates_ScenariosAreValid(t *testing.T) {
	for _, s := range States() {
		t.Run(s.Name, func(t *testing.T) {
			sc := s.Scenario()
			require.NoError(t, sc.Validate())
			assert.Equal(t, s.Name, sc.Name)
			assert.NotEmpty(t, s.Description)

			found := s.Behavior == steering.BehaviorNone
			for _, a := range sc.Agents {
				if a.Behavior == s.Behavior {
					found = true
				}
			}
			assert.True(t, found, "no agent demonstrates %s", s.Behavior)
		})
	}
}

func TestState_ScenarioIsFresh(t *testing.T) {
	s, err := Find("seek")
	require.NoError(t, err)

	first := s.Scenario()
	first.Agents[0].TargetPoint.X = 999
	assert.NotEqual(t, 999.0, s.Scenario().Agents[0].TargetPoint.X)
}

func TestFind(t *testing.T) {
	s, err := Find(" Broadside ")
	require.NoError(t, err)
	assert.Equal(t, steering.BehaviorBroadside, s.Behavior)

	_, err = Find("ram")
	assert.Error(t, err)
}

func TestSequencer(t *testing.T) {
	q := NewSequencer()
	n := len(States())

	assert.Equal(t, "startup", q.Current().Name)
	assert.Equal(t, "wander", q.Next().Name)
	assert.Equal(t, "startup", q.Prev().Name)
	assert.Equal(t, "orthogonal", q.Prev().Name, "prev wraps to the last state")
	assert.Equal(t, n-1, q.Index())
	assert.Equal(t, "startup", q.Next().Name, "next wraps to the first state")

	s, err := q.Goto("evade")
	require.NoError(t, err)
	assert.Equal(t, "evade", s.Name)
	assert.Equal(t, "align", q.Next().Name)

	_, err = q.Goto("nope")
	assert.Error(t, err)
	assert.Equal(t, "align", q.Current().Name)

	assert.Equal(t, "startup", q.Reset().Name)
	for i := 0; i < n; i++ {
		q.Next()
	}
	assert.Equal(t, "startup", q.Current().Name)
}

func TestRun_Seek(t *testing.T) {
	s, err := Find("seek")
	require.NoError(t, err)

	summary, err := Run(context.Background(), s, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), summary.Ticks)
	assert.Equal(t, 1, summary.Arrivals)
	require.Len(t, summary.Final, 1)

	point := physics.Vector2D{X: 25, Y: 10}
	assert.Less(t, summary.Final[0].Position.Distance(point), 1.0)
}

func TestRun_Arrive(t *testing.T) {
	s, err := Find("arrive")
	require.NoError(t, err)

	summary, err := Run(context.Background(), s, 1500, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Arrivals)
	assert.Less(t, summary.Final[0].Speed, 0.5)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, States()[0], 10, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	summaries, err := RunAll(context.Background(), 50, nil)
	require.NoError(t, err)
	require.Len(t, summaries, len(States()))

	for i, s := range States() {
		assert.Equal(t, s.Name, summaries[i].State)
		assert.Equal(t, uint64(50), summaries[i].Ticks)
		assert.NotEmpty(t, summaries[i].RunID)
		assert.NotEmpty(t, summaries[i].Final)
	}
}

func TestRunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunAll(ctx, 50, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
