package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/csvvault/pkg/scheduler"
)

// 每年执行一次，测试中只靠 RunNow 触发
const yearly = "0 0 1 1 *"

func newScheduler(t *testing.T) *scheduler.Scheduler {
	t.Helper()

	s, err := scheduler.NewScheduler(zerolog.Nop())
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Shutdown() })

	return s
}

func TestAddCronAndRunNow(t *testing.T) {
	s := newScheduler(t)

	var calls atomic.Int32

	require.NoError(t, s.AddCron(context.Background(), "count", yearly, func(context.Context) error {
		calls.Add(1)
		return nil
	}))
	require.Error(t, s.AddCron(context.Background(), "count", yearly, func(context.Context) error { return nil }))

	s.Start()
	require.NoError(t, s.RunNow("count"))

	assert.Eventually(t, func() bool {
		info, err := s.GetJobInfoByName("count")
		return err == nil && info.Runs == 1 && !info.LastSuccess.IsZero()
	}, 2*time.Second, 10*time.Millisecond)

	assert.EqualValues(t, 1, calls.Load())

	infos := s.GetJobInfos()
	require.Len(t, infos, 1)
	assert.Equal(t, scheduler.StatusScheduled, infos[0].Status)
	assert.Equal(t, yearly, infos[0].CronExpr)
	assert.True(t, infos[0].NextRun.After(time.Now()))
}

func TestJobErrorAndPanic(t *testing.T) {
	s := newScheduler(t)

	require.NoError(t, s.AddCron(context.Background(), "fail", yearly, func(context.Context) error {
		return errors.New("disk gone")
	}))
	require.NoError(t, s.AddCron(context.Background(), "panic", yearly, func(context.Context) error {
		panic("boom")
	}))

	s.Start()
	require.NoError(t, s.RunNow("fail"))
	require.NoError(t, s.RunNow("panic"))

	for name, want := range map[string]string{"fail": "disk gone", "panic": "panic in job: boom"} {
		assert.Eventually(t, func() bool {
			info, err := s.GetJobInfoByName(name)
			return err == nil && info.Status == scheduler.StatusError && info.Error == want
		}, 2*time.Second, 10*time.Millisecond, name)
	}
}

func TestRemoveJob(t *testing.T) {
	s := newScheduler(t)

	require.NoError(t, s.AddCron(context.Background(), "tmp", yearly, func(context.Context) error { return nil }))
	require.NoError(t, s.RemoveJobByName("tmp"))
	require.Error(t, s.RemoveJobByName("tmp"))
	require.Error(t, s.RunNow("tmp"))

	_, err := s.GetJobInfoByName("tmp")
	require.Error(t, err)
	assert.Empty(t, s.GetJobInfos())
}

func TestInvalidCron(t *testing.T) {
	s := newScheduler(t)
	require.Error(t, s.AddCron(context.Background(), "bad", "not a cron", func(context.Context) error { return nil }))
	assert.Empty(t, s.GetJobInfos())
}
