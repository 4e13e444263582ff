package job

import (
	"sync/atomic"
	"testing"
	"time"
)

type fakeJob struct {
	ticks   int32
	results []Result
	killed  atomic.Bool
}

func (j *fakeJob) Tick() Result {
	i := atomic.AddInt32(&j.ticks, 1) - 1
	if int(i) < len(j.results) {
		return j.results[i]
	}
	return Finished
}

func (j *fakeJob) Kill() { j.killed.Store(true) }

func TestRunSynchronousPassDropsFinishedJobs(t *testing.T) {
	s := NewScheduler(1)
	defer s.Stop()

	a := &fakeJob{results: []Result{Finished}}
	b := &fakeJob{results: []Result{MadeProgress, Finished}}
	s.EnqueueSync(a)
	s.EnqueueSync(b)

	s.RunSynchronousPass()
	if s.SyncJobCount() != 1 {
		t.Fatalf("SyncJobCount = %d, want 1 (only b should remain)", s.SyncJobCount())
	}

	s.RunSynchronousPass()
	if s.SyncJobCount() != 0 {
		t.Fatalf("SyncJobCount = %d, want 0", s.SyncJobCount())
	}
	if atomic.LoadInt32(&a.ticks) != 1 || atomic.LoadInt32(&b.ticks) != 2 {
		t.Fatalf("tick counts = %d, %d, want 1, 2", a.ticks, b.ticks)
	}
}

func TestAsyncJobRunsUntilFinished(t *testing.T) {
	s := NewScheduler(2)
	defer s.Stop()

	done := make(chan struct{})
	j := &fakeJob{results: []Result{Stalled, MadeProgress, MadeProgress}}
	wrapped := &countingFinishJob{fakeJob: j, done: done}
	s.EnqueueAsync(wrapped)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async job never finished")
	}
	if atomic.LoadInt32(&j.ticks) != 4 {
		t.Fatalf("ticks = %d, want 4 (3 results + the terminal Finished)", j.ticks)
	}
}

// countingFinishJob signals done the first time the wrapped job reports
// Finished, without otherwise altering Tick's return value.
type countingFinishJob struct {
	*fakeJob
	done     chan struct{}
	signaled atomic.Bool
}

func (j *countingFinishJob) Tick() Result {
	r := j.fakeJob.Tick()
	if r == Finished && j.signaled.CompareAndSwap(false, true) {
		close(j.done)
	}
	return r
}

func TestStopKillsPendingSyncJobs(t *testing.T) {
	s := NewScheduler(1)
	j := &fakeJob{results: []Result{MadeProgress}}
	s.EnqueueSync(j)

	s.Stop()
	if !j.killed.Load() {
		t.Fatal("expected Stop to kill pending synchronous jobs")
	}
}

func TestEnqueueAsyncAfterStopKillsImmediately(t *testing.T) {
	s := NewScheduler(1)
	s.Stop()

	j := &fakeJob{}
	s.EnqueueAsync(j)
	if !j.killed.Load() {
		t.Fatal("expected EnqueueAsync after Stop to kill the job immediately")
	}
}
