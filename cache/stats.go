package cache

// Unknown marks a snapshot dimension the backend cannot observe locally
// (e.g. size of a remote redis namespace).
const Unknown = -1

// Snapshot is an immutable point-in-time view of a store's counters.
type Snapshot struct {
	Size        int   `json:"size"`
	Capacity    int   `json:"capacity"`
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Evictions   int64 `json:"evictions"`
	Expirations int64 `json:"expirations"`
}

// HitRatePercent is hits/(hits+misses)*100, 0 when no requests have occurred.
func (s Snapshot) HitRatePercent() float64 {
	total := s.Hits + s.Misses
	if total <= 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// UsagePercent guards against capacity 0 (degenerate store) and Unknown.
func (s Snapshot) UsagePercent() float64 {
	if s.Capacity <= 0 || s.Size < 0 {
		return 0
	}
	return float64(s.Size) / float64(s.Capacity) * 100
}
