package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"upkeep/clock"
	"upkeep/config"
	"upkeep/constants"
	"upkeep/models"
)

var testDBCounter int64

// captureSink records emitted events for assertions.
type captureSink struct {
	mu     sync.Mutex
	events []capturedEvent
}

type capturedEvent struct {
	Name    string
	Payload any
}

func (s *captureSink) Emit(eventName string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, capturedEvent{Name: eventName, Payload: payload})
}

func (s *captureSink) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.Name == name {
			n++
		}
	}
	return n
}

func newTestEngine(t *testing.T) (*Engine, *captureSink) {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	cfg := &config.Config{
		DBDriver: "sqlite",
		DBDSN:    fmt.Sprintf("file:upkeep_test_%d?mode=memory&cache=shared", n),
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	sink := &captureSink{}
	return NewEngine(db, sink, clock.MustNew("UTC")), sink
}

func fixNow(e *Engine, at time.Time) {
	e.now = func() time.Time { return at }
}

func seedEmployee(t *testing.T, e *Engine, name string) models.Employee {
	t.Helper()
	emp := models.Employee{Name: name}
	if err := e.db.Create(&emp).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return emp
}

// seedTask inserts a row directly, bypassing creation fan-out, for tests
// that need exactly one occurrence.
func seedTask(t *testing.T, e *Engine, task models.Task) *models.Task {
	t.Helper()
	if task.Status == "" {
		task.Status = constants.TaskStatusDraft
	}
	if err := e.db.Create(&task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return &task
}

func mustCreate(t *testing.T, e *Engine, in TaskInput) *models.Task {
	t.Helper()
	tasks, err := e.CreateTask(in)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return tasks[0]
}

func utcTime(date, timeOfDay string) time.Time {
	ts, err := time.Parse("2006-01-02 15:04", date+" "+timeOfDay)
	if err != nil {
		panic(err)
	}
	return ts
}
