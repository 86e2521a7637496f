package store

import (
	"sync"

	"github.com/efreitasn/goodsexchange/internal/domain"
)

// DefaultDealLogCapacity bounds the deal history kept in memory.
const DefaultDealLogCapacity = 5000

// DealLog is a thread-safe append-only deal history with ring-buffer
// retention: once full, each append evicts the oldest deal.
type DealLog struct {
	mu    sync.RWMutex
	buf   []*domain.Deal
	start int // index of the oldest deal
	size  int
}

// NewDealLog creates a DealLog holding at most capacity deals. A
// non-positive capacity selects DefaultDealLogCapacity.
func NewDealLog(capacity int) *DealLog {
	if capacity <= 0 {
		capacity = DefaultDealLogCapacity
	}
	return &DealLog{
		buf: make([]*domain.Deal, capacity),
	}
}

// Append adds a deal as the newest entry.
func (l *DealLog) Append(d *domain.Deal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.size < len(l.buf) {
		l.buf[(l.start+l.size)%len(l.buf)] = d
		l.size++
		return
	}
	l.buf[l.start] = d
	l.start = (l.start + 1) % len(l.buf)
}

// All returns the retained deals in chronological order. Returns an
// empty slice if no deals have been recorded.
func (l *DealLog) All() []*domain.Deal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*domain.Deal, l.size)
	for i := 0; i < l.size; i++ {
		result[i] = l.buf[(l.start+i)%len(l.buf)]
	}
	return result
}

// Len returns the number of retained deals.
func (l *DealLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

// Cap returns the retention bound.
func (l *DealLog) Cap() int {
	return len(l.buf)
}
