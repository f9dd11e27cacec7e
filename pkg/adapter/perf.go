package adapter

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	logger "github.com/shuliangfu/logger"
)

// idSuffixRange bounds the random suffix appended to performance ids so
// concurrent starts of the same operation in the same nanosecond still get
// distinct ids.
const idSuffixRange = 1_000_000

// perfRecord is a single in-flight performance measurement.
type perfRecord struct {
	operation string
	start     time.Time
	data      map[string]any
}

// perfTracker holds in-flight performance records in insertion order with a
// hard capacity. When the capacity is reached the oldest record is evicted
// to make room, so an application that starts measurements and never ends
// them cannot grow the tracker without bound.
type perfTracker struct {
	mu       sync.Mutex
	capacity int
	records  map[string]*perfRecord
	order    []string
}

func newPerfTracker(capacity int) *perfTracker {
	if capacity <= 0 {
		capacity = logger.DefaultPerformanceCapacity
	}

	return &perfTracker{
		capacity: capacity,
		records:  make(map[string]*perfRecord),
	}
}

func (t *perfTracker) start(operation string, data map[string]any) string {
	id := fmt.Sprintf("%s-%d-%d", operation, time.Now().UnixNano(), rand.IntN(idSuffixRange))

	t.mu.Lock()
	defer t.mu.Unlock()

	for len(t.records) >= t.capacity {
		if !t.evictOldest() {
			break
		}
	}

	t.records[id] = &perfRecord{
		operation: operation,
		start:     time.Now(),
		data:      data,
	}
	t.order = append(t.order, id)

	return id
}

// end removes and returns the record for id.
func (t *perfTracker) end(id string) (*perfRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, ok := t.records[id]
	if ok {
		delete(t.records, id)
	}

	return record, ok
}

// evictOldest drops the oldest live record. The order slice may hold ids
// already removed by end; those are skipped.
func (t *perfTracker) evictOldest() bool {
	for len(t.order) > 0 {
		head := t.order[0]
		t.order = t.order[1:]

		if _, live := t.records[head]; live {
			delete(t.records, head)

			return true
		}
	}

	return false
}

// size returns the number of in-flight records.
func (t *perfTracker) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.records)
}
