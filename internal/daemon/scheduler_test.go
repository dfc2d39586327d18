package daemon

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/aoc2020/internal/build"
	"git.home.luguber.info/inful/aoc2020/internal/build/queue"
)

type mockEnqueuer struct {
	mu   sync.Mutex
	jobs []*queue.BuildJob
	err  error
}

func (m *mockEnqueuer) Enqueue(job *queue.BuildJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.jobs = append(m.jobs, job)
	return nil
}

func (m *mockEnqueuer) snapshot() []*queue.BuildJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*queue.BuildJob(nil), m.jobs...)
}

func TestScheduler_ScheduleRebuild(t *testing.T) {
	t.Run("returns job id for valid interval", func(t *testing.T) {
		s, err := NewScheduler()
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Stop(context.Background()) })

		id, err := s.ScheduleRebuild(10 * time.Second)
		require.NoError(t, err)
		require.NotEmpty(t, id)
	})
}

func TestScheduler_ExecuteRebuild(t *testing.T) {
	t.Run("enqueues a full rebuild", func(t *testing.T) {
		s, err := NewScheduler()
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Stop(context.Background()) })

		enqueuer := &mockEnqueuer{}
		s.SetEnqueuer(enqueuer)
		s.executeRebuild()

		jobs := enqueuer.snapshot()
		require.Len(t, jobs, 1)
		require.Equal(t, build.TargetAll, jobs[0].Target)
		require.Equal(t, build.TriggerSchedule, jobs[0].Trigger)
	})

	t.Run("tolerates missing enqueuer", func(t *testing.T) {
		s, err := NewScheduler()
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Stop(context.Background()) })

		s.executeRebuild()
	})
}
