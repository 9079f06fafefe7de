// Package queue holds the ordered list of pending upload records.
package queue

import (
	"sync"

	"upload-collector/internal/record"
)

// Queue is append-only: each Append lands as one contiguous block, in order.
type Queue struct {
	mu      sync.RWMutex
	records []record.UploadFileRecord
}

func New() *Queue {
	return &Queue{
		records: make([]record.UploadFileRecord, 0),
	}
}

// Append adds records in order. Two concurrent calls never interleave.
func (q *Queue) Append(records []record.UploadFileRecord) {
	if len(records) == 0 {
		return
	}

	q.mu.Lock()
	q.records = append(q.records, records...)
	q.mu.Unlock()
}

// Snapshot returns a copy of the current records.
func (q *Queue) Snapshot() []record.UploadFileRecord {
	q.mu.RLock()
	defer q.mu.RUnlock()

	result := make([]record.UploadFileRecord, len(q.records))
	copy(result, q.records)
	return result
}

func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.records)
}

// Reset empties the queue at the end of an upload session.
func (q *Queue) Reset() {
	q.mu.Lock()
	q.records = make([]record.UploadFileRecord, 0)
	q.mu.Unlock()
}
