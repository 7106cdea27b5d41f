package experiments

import (
	"time"

	"github.com/google/uuid"
)

// MoveMetric captures one planning-and-move cycle of an agent.
type MoveMetric struct {
	Move          int    // Move number within the game
	Mark          string // Who moved
	PlanningSteps int
	Duration      time.Duration
	MemorySize    int // Memorized states after planning
}

// GameMetric captures a whole match.
type GameMetric struct {
	ID        uuid.UUID
	Winner    string
	Moves     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type Collector interface {
	StartGame()
	CompleteMove(m MoveMetric) MoveMetric
	CompleteGame(winner string) GameMetric
}

type collector struct {
	id        uuid.UUID
	startTime time.Time
	moves     int
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) StartGame() {
	c.id = uuid.New()
	c.startTime = time.Now()
	c.moves = 0
}

func (c *collector) CompleteMove(m MoveMetric) MoveMetric {
	c.moves++
	return m
}

func (c *collector) CompleteGame(winner string) GameMetric {
	end := time.Now()
	return GameMetric{
		ID:        c.id,
		Winner:    winner,
		Moves:     c.moves,
		StartTime: c.startTime,
		EndTime:   end,
		Duration:  end.Sub(c.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (d *dummyCollector) StartGame() {}

func (d *dummyCollector) CompleteMove(m MoveMetric) MoveMetric { return m }
func (d *dummyCollector) CompleteGame(winner string) GameMetric {
	return GameMetric{Winner: winner}
}
