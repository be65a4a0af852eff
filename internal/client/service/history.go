package service

import (
	"strings"
	"sync"

	"bankpanel/internal/client"
)

const historyCapacity = 3

// searchHistory remembers recent distinct search signatures for diagnostics.
// It lives for the process lifetime, is bounded to three entries, and is
// shared by every caller of the service, so all access goes through the
// mutex. It is telemetry, never consulted to skip work.
type searchHistory struct {
	mu         sync.Mutex
	signatures []string
}

// Add records the signature unless it is already present. Once the capacity
// is reached the oldest entry is evicted first; entries are kept in insertion
// order, oldest first, with no recency reordering on repeats. Reports whether
// the signature was newly recorded.
func (h *searchHistory) Add(signature string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, s := range h.signatures {
		if s == signature {
			return false
		}
	}
	if len(h.signatures) >= historyCapacity {
		h.signatures = h.signatures[1:]
	}
	h.signatures = append(h.signatures, signature)
	return true
}

// Snapshot returns a copy of the history, oldest to newest.
func (h *searchHistory) Snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.signatures))
	copy(out, h.signatures)
	return out
}

// signature builds the dedup key for one filter/sort request. The last name
// appears twice; the duplicated field is part of the established signature
// format and kept as-is so histories stay comparable across versions.
func signature(p client.SearchParams) string {
	return strings.Join([]string{p.FirstName, p.LastName, p.LastName, p.SortBy, p.SortOrder}, "_")
}
