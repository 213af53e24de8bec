package execution

// Scheduler distributes files across workers
type Scheduler interface {
	Schedule(files []string, workerCount int) [][]string
}

// RoundRobinScheduler distributes files evenly across workers
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes files evenly across workers using round-robin
func (s *RoundRobinScheduler) Schedule(files []string, workerCount int) [][]string {
	if workerCount <= 0 {
		workerCount = 1
	}

	distribution := make([][]string, workerCount)
	for i := range distribution {
		distribution[i] = make([]string, 0)
	}

	for i, file := range files {
		workerIndex := i % workerCount
		distribution[workerIndex] = append(distribution[workerIndex], file)
	}

	return distribution
}
