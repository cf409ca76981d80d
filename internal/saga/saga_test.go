package saga_test

import (
	"context"
	"errors"
	"testing"

	"andhara-backend/internal/saga"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func step(name string, runErr error, trace *[]string) saga.Step {
	return saga.Step{
		Name: name,
		Run: func(ctx context.Context) error {
			if runErr != nil {
				return runErr
			}
			*trace = append(*trace, "run:"+name)
			return nil
		},
		Compensate: func(ctx context.Context) error {
			*trace = append(*trace, "undo:"+name)
			return nil
		},
	}
}

func TestRunnerAllStepsSucceed(t *testing.T) {
	t.Parallel()

	var trace []string
	run := saga.New("sale")
	require.NoError(t, run.Execute(context.Background(), step("a", nil, &trace)))
	require.NoError(t, run.Execute(context.Background(), step("b", nil, &trace)))

	assert.Equal(t, []string{"run:a", "run:b"}, trace)
}

func TestRunnerRollsBackInReverseOrder(t *testing.T) {
	t.Parallel()

	var trace []string
	boom := errors.New("insert failed")

	run := saga.New("sale")
	require.NoError(t, run.Execute(context.Background(), step("a", nil, &trace)))
	require.NoError(t, run.Execute(context.Background(), step("b", nil, &trace)))

	err := run.Execute(context.Background(), step("c", boom, &trace))
	require.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"run:a", "run:b", "undo:b", "undo:a"}, trace)
}

func TestRunnerCompensationFailureDoesNotStopRollback(t *testing.T) {
	t.Parallel()

	var trace []string
	run := saga.New("sale")

	require.NoError(t, run.Execute(context.Background(), saga.Step{
		Name: "a",
		Run:  func(ctx context.Context) error { trace = append(trace, "run:a"); return nil },
		Compensate: func(ctx context.Context) error {
			trace = append(trace, "undo:a")
			return nil
		},
	}))
	require.NoError(t, run.Execute(context.Background(), saga.Step{
		Name: "b",
		Run:  func(ctx context.Context) error { trace = append(trace, "run:b"); return nil },
		Compensate: func(ctx context.Context) error {
			trace = append(trace, "undo:b")
			return errors.New("undo failed")
		},
	}))

	err := run.Execute(context.Background(), saga.Step{
		Name: "c",
		Run:  func(ctx context.Context) error { return errors.New("boom") },
	})
	require.Error(t, err)

	// The failing compensation for b must not prevent a's compensation.
	assert.Equal(t, []string{"run:a", "run:b", "undo:b", "undo:a"}, trace)
}

func TestRunnerAbort(t *testing.T) {
	t.Parallel()

	var trace []string
	cause := errors.New("validation failed mid-flight")

	run := saga.New("sale")
	require.NoError(t, run.Execute(context.Background(), step("a", nil, &trace)))

	err := run.Abort(context.Background(), cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{"run:a", "undo:a"}, trace)
}

func TestRunnerNilCompensationSkipped(t *testing.T) {
	t.Parallel()

	var trace []string
	run := saga.New("sale")
	require.NoError(t, run.Execute(context.Background(), saga.Step{
		Name: "no-undo",
		Run:  func(ctx context.Context) error { trace = append(trace, "run:no-undo"); return nil },
	}))

	err := run.Execute(context.Background(), saga.Step{
		Name: "fail",
		Run:  func(ctx context.Context) error { return errors.New("boom") },
	})
	require.Error(t, err)
	assert.Equal(t, []string{"run:no-undo"}, trace)
}
