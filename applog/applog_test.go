package applog

import (
	"os"
	"strings"
	"testing"
)

func TestOpenClose(t *testing.T) {
	l, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	l.Printf("hello from the test")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from the test") {
		t.Error("entry missing from log file")
	}
	if !strings.Contains(string(data), "logging initialized") {
		t.Error("header missing from log file")
	}
	// double close is harmless
	if err := l.Close(); err != nil {
		t.Error(err)
	}
}

func TestCrashHandler(t *testing.T) {
	l, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic swallowed")
			}
		}()
		defer l.CrashHandler()
		panic("boom")
	}()

	data, _ := os.ReadFile(l.Path)
	if !strings.Contains(string(data), "unhandled panic: boom") {
		t.Error("panic not logged")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Printf("dropped")
	if err := l.Close(); err != nil {
		t.Error(err)
	}
}
