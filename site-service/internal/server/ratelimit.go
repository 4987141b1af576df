package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = 3 * time.Minute
	limiterSweepInterval = time.Minute
)

type ipEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// ipLimiters keeps one token bucket per client ip. Buckets idle past
// the TTL are dropped on the next sweep, so unauthenticated traffic
// from rotating addresses cannot grow the map without bound.
type ipLimiters struct {
	mu        sync.Mutex
	rps       int
	idleTTL   time.Duration
	entries   map[string]*ipEntry
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiters(rps int, idleTTL time.Duration) *ipLimiters {
	return &ipLimiters{
		rps:     rps,
		idleTTL: idleTTL,
		entries: make(map[string]*ipEntry),
		now:     time.Now,
	}
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterSweepInterval {
		for addr, e := range l.entries {
			if now.Sub(e.seen) > l.idleTTL {
				delete(l.entries, addr)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &ipEntry{lim: rate.NewLimiter(rate.Limit(l.rps), l.rps*2)}
		l.entries[ip] = e
	}
	e.seen = now
	return e.lim.Allow()
}

func (l *ipLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
