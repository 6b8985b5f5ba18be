// Package applog writes the per-session log file. It is passed to the
// components that need to record failures instead of being reached
// through package globals, so a session owns its log from open to
// close.
package applog

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

// Log is a session log backed by one file under the logs directory.
type Log struct {
	*log.Logger
	Path string
	file *os.File
}

// Open creates logs/app_TIMESTAMP.log under dir and mirrors entries to
// stdout.
func Open(dir string) (*Log, error) {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, time.Now().Format("app_20060102_150405.log"))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	l := &Log{
		Logger: log.New(io.MultiWriter(os.Stdout, f), "", log.LstdFlags),
		Path:   path,
		file:   f,
	}
	l.Printf("logging initialized")
	l.Printf("log file: %s", path)
	return l, nil
}

// Discard returns a log that writes nowhere, for tests and headless
// runs.
func Discard() *Log {
	return &Log{Logger: log.New(io.Discard, "", 0)}
}

func (l *Log) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// CrashHandler logs a panic with its stack before re-panicking, so the
// crash reaches the log file even when the process dies.
//
//	defer logger.CrashHandler()
func (l *Log) CrashHandler() {
	r := recover()
	if r == nil {
		return
	}
	l.Printf("unhandled panic: %v\n%s", r, debug.Stack())
	if l.file != nil {
		l.file.Sync()
	}
	panic(r)
}
