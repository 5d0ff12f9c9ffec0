package lookerlib

import (
	"encoding/json"
	"sync"
	"time"
)

// UsageStats tracks how a source behaves over time.
type UsageStats struct {
	Name string

	mutex        sync.Mutex
	lastUsed     time.Time
	lastDuration time.Duration
	successCount uint64
	missingCount uint64
}

// Used registers a query. Source has answered if hasData is true.
func (u *UsageStats) Used(hasData bool, duration time.Duration) {
	now := time.Now()

	u.mutex.Lock()
	defer u.mutex.Unlock()

	u.lastUsed = now
	u.lastDuration = duration

	if hasData {
		u.successCount++
	} else {
		u.missingCount++
	}
}

func (u *UsageStats) SuccessCount() uint64 {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	return u.successCount
}

func (u *UsageStats) MissingCount() uint64 {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	return u.missingCount
}

func (u *UsageStats) MarshalJSON() ([]byte, error) {
	var lastUsedTime int64

	u.mutex.Lock()

	if !u.lastUsed.IsZero() {
		lastUsedTime = u.lastUsed.Unix()
	}

	rawStruct := struct {
		Name           string `json:"name"`
		LastUsed       int64  `json:"last_used"`
		LastDurationMs int64  `json:"last_duration_ms"`
		SuccessCount   uint64 `json:"success_count"`
		MissingCount   uint64 `json:"missing_count"`
	}{
		Name:           u.Name,
		LastUsed:       lastUsedTime,
		LastDurationMs: u.lastDuration.Milliseconds(),
		SuccessCount:   u.successCount,
		MissingCount:   u.missingCount,
	}

	u.mutex.Unlock()

	return json.Marshal(&rawStruct)
}
