package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sweeperFunc func() int

func (f sweeperFunc) Sweep() int { return f() }

func TestCleanup_RunOnce(t *testing.T) {
	calls := 0
	job := NewCleanup("@hourly", zerolog.Nop()).
		Expire("tokens", ExpirerFunc(func(ctx context.Context) (int64, error) {
			calls++
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return 3, nil
		})).
		Expire("otps", ExpirerFunc(func(context.Context) (int64, error) {
			calls++
			return 0, errors.New("connection reset")
		})).
		Sweep("visitors", sweeperFunc(func() int { return 2 }))

	removed := job.RunOnce(context.Background())

	assert.Equal(t, 2, calls)
	assert.Equal(t, map[string]int64{"tokens": 3, "visitors": 2}, removed)
}

func TestCleanup_StartRejectsBadSpec(t *testing.T) {
	err := NewCleanup("every tuesday", zerolog.Nop()).Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every tuesday")
}

func TestCleanup_StartStop(t *testing.T) {
	job := NewCleanup("@every 1h", zerolog.Nop())
	require.NoError(t, job.Start())
	job.Stop(context.Background())
}
