package recipebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileActivityLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileActivityLogger(&buf)

	require.NoError(t, logger.LogActivity(NewActivity("load_recipe", map[string]any{"id": "abc"})))
	failed := NewActivity("search", map[string]any{"query": "pizza"})
	failed.Error = "network request failed"
	require.NoError(t, logger.LogActivity(failed))

	assert.Zero(t, buf.Len(), "nothing is written before Flush")
	require.NoError(t, logger.Flush())

	var doc struct {
		Session struct {
			Activities []Activity `json:"activities"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Session.Activities, 2)
	assert.Equal(t, "load_recipe", doc.Session.Activities[0].Operation)
	assert.Equal(t, "network request failed", doc.Session.Activities[1].Error)

	// the buffer is cleared after a successful flush
	buf.Reset()
	require.NoError(t, logger.Flush())
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Empty(t, doc.Session.Activities)
}

func TestFileActivityLoggerConcurrentUse(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileActivityLogger(&buf)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = logger.LogActivity(NewActivity("delete_bookmark", map[string]any{"id": fmt.Sprintf("%d-%d", g, i)}))
			}
		}(g)
	}
	wg.Wait()

	require.NoError(t, logger.Flush())
	var doc struct {
		Session struct {
			Activities []Activity `json:"activities"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.Session.Activities, 8*50)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestFileActivityLoggerWriteError(t *testing.T) {
	logger := NewFileActivityLogger(failingWriter{})
	require.NoError(t, logger.LogActivity(NewActivity("initialize", nil)))
	assert.ErrorContains(t, logger.Flush(), "disk full")

	assert.NoError(t, NewFileActivityLogger(nil).Flush())
}

func TestStdoutActivityLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := &StdoutActivityLogger{out: &buf}

	require.NoError(t, logger.LogActivity(NewActivity("add_bookmark", map[string]any{"id": "abc"})))
	require.NoError(t, logger.LogActivity(NewActivity("delete_bookmark", map[string]any{"id": "abc"})))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var a Activity
	require.NoError(t, json.Unmarshal(lines[1], &a))
	assert.Equal(t, "delete_bookmark", a.Operation)
	assert.NotEmpty(t, a.ID)
}

func TestNoOpActivityLogger(t *testing.T) {
	assert.NoError(t, NewNoOpActivityLogger().LogActivity(Activity{}))
}
