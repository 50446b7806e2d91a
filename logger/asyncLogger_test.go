package logger

import (
	"gestor-turnos/types"
	"sync"
	"testing"
	"time"
)

func TestAsyncLoggerLogAfterClose(t *testing.T) {
	l := NewAsyncLogger(nil)
	go l.ProcessLog()
	l.Close()

	entry := types.LogEntry{Method: "GET", URL: "/api/turnos", CreatedAt: time.Now()}
	l.Log(entry)
	l.Close()
}

func TestAsyncLoggerCloseRacesLog(t *testing.T) {
	// No consumer: entries stay queued and a nil db is never touched.
	l := NewAsyncLogger(nil)
	l.channel = make(chan types.LogEntry, 1000)
	close(l.done)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				l.Log(types.LogEntry{Method: "GET", URL: "/"})
			}
		}()
	}
	l.Close()
	wg.Wait()
}
