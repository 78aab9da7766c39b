package kv

import "time"

// entry 是内存实现中的一条记录，expiresAt 为零值表示永不过期.
type entry struct {
	value     []byte
	expiresAt time.Time
}

func newEntry(value []byte, ttl time.Duration) entry {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	return e
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}
