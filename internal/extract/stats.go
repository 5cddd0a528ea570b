package extract

import (
	"sort"
	"sync"
)

// StatsSnapshot is a point-in-time aggregate of one extraction run.
type StatsSnapshot struct {
	Pages       int            `json:"pages"`
	Annotations int            `json:"annotations"`
	Emitted     int            `json:"emitted"`
	Skipped     map[string]int `json:"skipped,omitempty"`
}

// SkipReasons returns the skip reasons in stable order.
func (s StatsSnapshot) SkipReasons() []string {
	reasons := make([]string, 0, len(s.Skipped))
	for r := range s.Skipped {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	return reasons
}

// TotalSkipped sums the per-reason skip counts.
func (s StatsSnapshot) TotalSkipped() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}

// Stats tracks what one extraction run saw, emitted and skipped.
// The extractor owns it exclusively while running; the serve mode
// reads snapshots afterwards, hence the mutex.
type Stats struct {
	mu          sync.Mutex
	pages       int
	annotations int
	emitted     int
	skipped     map[string]int
}

func NewStats() *Stats {
	return &Stats{skipped: make(map[string]int)}
}

func (s *Stats) addPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages++
}

func (s *Stats) addAnnotation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.annotations++
}

func (s *Stats) addEmitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitted++
}

func (s *Stats) addSkip(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipped[reason]++
}

// Snapshot copies the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	skipped := make(map[string]int, len(s.skipped))
	for k, v := range s.skipped {
		skipped[k] = v
	}
	return StatsSnapshot{
		Pages:       s.pages,
		Annotations: s.annotations,
		Emitted:     s.emitted,
		Skipped:     skipped,
	}
}
