// Package notify buffers the ephemeral status messages the import pipeline
// emits for the dashboard UI.
package notify

import (
	"log"
	"sync"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/models"
)

// Sink collects notifications until the UI drains them.
type Sink struct {
	mu      sync.Mutex
	pending []models.Notification
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Success queues a success message.
func (s *Sink) Success(message string) { s.push(models.SeveritySuccess, message) }

// Error queues an error message.
func (s *Sink) Error(message string) { s.push(models.SeverityError, message) }

// Info queues an informational message.
func (s *Sink) Info(message string) { s.push(models.SeverityInfo, message) }

func (s *Sink) push(severity models.Severity, message string) {
	log.Printf("[%s] %s", severity, message)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, models.NewNotification(severity, message))
}

// Drain returns the queued notifications in arrival order and empties the
// sink.
func (s *Sink) Drain() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	drained := s.pending
	s.pending = nil
	return drained
}
