package execution

// Scheduler distributes documentation files across slots
type Scheduler interface {
	Schedule(docs []string, slotCount int) [][]string
}

// RoundRobinScheduler distributes files evenly across slots. The run
// command uses it to split a doc set across CI partitions.
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes files evenly across slots using round-robin
func (s *RoundRobinScheduler) Schedule(docs []string, slotCount int) [][]string {
	if slotCount <= 0 {
		slotCount = 1
	}

	distribution := make([][]string, slotCount)
	for i := range distribution {
		distribution[i] = make([]string, 0)
	}

	for i, doc := range docs {
		slot := i % slotCount
		distribution[slot] = append(distribution[slot], doc)
	}

	return distribution
}
