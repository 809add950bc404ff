package client

import (
	"sync"
	"sync/atomic"
)

// jobCounter issues the monotonically increasing correlation ids
// stamped onto outbound calls that expect a reply. Each client owns its
// own counter; ids start at 1 and are never reused.
type jobCounter struct {
	last atomic.Uint64
}

func (j *jobCounter) next() uint64 {
	return j.last.Add(1)
}

// DeferredJobKind tags an entry in the deferred import queue.
type DeferredJobKind int

const (
	// ImportGameStats fetches stats then playtime for one game.
	ImportGameStats DeferredJobKind = iota + 1
	// ImportCollections fetches the cloud config collections namespace.
	ImportCollections
)

// DeferredJob is one multi step import task interleaved with socket
// reads by the client loop. These are unrelated to wire protocol jobs.
type DeferredJob struct {
	Kind   DeferredJobKind
	GameID uint64
}

// deferredQueue is an unbounded FIFO of pending imports. External
// callers may push at any time; the loop pops at most a full drain per
// iteration. Popping the front rather than iterating a snapshot keeps
// concurrent pushes from racing the drain.
type deferredQueue struct {
	mu   sync.Mutex
	jobs []DeferredJob
}

func (q *deferredQueue) push(job DeferredJob) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
}

func (q *deferredQueue) pop() (DeferredJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) == 0 {
		return DeferredJob{}, false
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, true
}

func (q *deferredQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
