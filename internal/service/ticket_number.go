package service

import (
	"fmt"
	"sync"
	"time"
)

// ticketNumberAllocator serializes identifier allocation per (prefix, day)
// so the count-then-insert sequence cannot race with itself in-process.
// The identifier shape is unchanged from the count-based scheme:
// {prefix}_{YYYYMMDD}_{serial} with a zero-padded 3-digit serial.
type ticketNumberAllocator struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newTicketNumberAllocator() *ticketNumberAllocator {
	return &ticketNumberAllocator{locks: make(map[string]*sync.Mutex)}
}

// lockFor returns the mutex guarding one (prefix, day) sequence. Stale
// day entries are few (one per prefix per day) and left to process exit.
func (a *ticketNumberAllocator) lockFor(prefix string, day time.Time) *sync.Mutex {
	key := prefix + "|" + day.Format("20060102")
	a.mu.Lock()
	defer a.mu.Unlock()
	lock, ok := a.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		a.locks[key] = lock
	}
	return lock
}

// numberPrefix renders the leading segments shared by all of a prefix's
// tickets for one day, including the trailing separator.
func numberPrefix(prefix string, day time.Time) string {
	return fmt.Sprintf("%s_%s_", prefix, day.Format("20060102"))
}

func formatTicketNumber(prefix string, day time.Time, serial int) string {
	return fmt.Sprintf("%s%03d", numberPrefix(prefix, day), serial)
}
