package recipebook

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ActivityLogger records the operations performed against the recipe state.
type ActivityLogger interface {
	LogActivity(activity Activity) error
}

// Activity is a single state operation and its outcome.
type Activity struct {
	ID        string         `json:"id"`
	Operation string         `json:"operation"`
	Timestamp time.Time      `json:"timestamp"`
	Duration  time.Duration  `json:"duration_ns"`
	Input     map[string]any `json:"input,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// NewActivity stamps an activity for op with a fresh id and the current time.
func NewActivity(op string, input map[string]any) Activity {
	return Activity{
		ID:        uuid.NewString(),
		Operation: op,
		Timestamp: time.Now(),
		Input:     input,
	}
}

// FileActivityLogger accumulates activities and writes them as one document on Flush.
// It is safe for concurrent use.
type FileActivityLogger struct {
	mu         sync.Mutex
	activities []Activity
	writer     io.Writer
}

func NewFileActivityLogger(writer io.Writer) *FileActivityLogger {
	return &FileActivityLogger{
		activities: make([]Activity, 0),
		writer:     writer,
	}
}

// LogActivity buffers the activity (does not flush immediately)
func (fl *FileActivityLogger) LogActivity(activity Activity) error {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	fl.activities = append(fl.activities, activity)
	return nil
}

// Flush writes all buffered activities to the writer
func (fl *FileActivityLogger) Flush() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"session": map[string]any{
			"timestamp":  time.Now(),
			"activities": fl.activities,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal activity log: %w", err)
	}

	if _, err := fl.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}

	fl.activities = fl.activities[:0]
	return nil
}

type NoOpActivityLogger struct{}

func NewNoOpActivityLogger() *NoOpActivityLogger {
	return &NoOpActivityLogger{}
}

func (nop *NoOpActivityLogger) LogActivity(activity Activity) error {
	return nil
}

// StdoutActivityLogger writes each activity as a JSON line (for Lambda/CloudWatch)
type StdoutActivityLogger struct {
	out io.Writer
}

func NewStdoutActivityLogger() *StdoutActivityLogger {
	return &StdoutActivityLogger{out: os.Stdout}
}

func (l *StdoutActivityLogger) LogActivity(activity Activity) error {
	data, err := json.Marshal(activity)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}
