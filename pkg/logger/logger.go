// Package logger provides the process-wide file logger for uireport.
//
// Lines are written as "<time> [LEVEL] message". Until Init is called every
// call is a no-op, so packages can log unconditionally.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	globalLogger *log.Logger
	logFile      *os.File
	verbose      bool
	mirror       io.Writer = os.Stderr
	mu           sync.Mutex
)

// Init opens (appending) the log file at logPath, creating parent
// directories as needed.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //#nosec G304 -- path from config
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	logFile = f
	globalLogger = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	return nil
}

// SetVerbose enables DEBUG lines and mirrors every line to stderr.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// SetMirror replaces the verbose mirror writer (stderr by default).
func SetMirror(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	mirror = w
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	globalLogger = nil
}

// Info logs an info message.
func Info(format string, v ...interface{}) {
	write("INFO", format, v...)
}

// Debug logs a debug message. Dropped unless verbose.
func Debug(format string, v ...interface{}) {
	mu.Lock()
	on := verbose
	mu.Unlock()
	if on {
		write("DEBUG", format, v...)
	}
}

// Warn logs a warning message.
func Warn(format string, v ...interface{}) {
	write("WARN", format, v...)
}

// Error logs an error message.
func Error(format string, v ...interface{}) {
	write("ERROR", format, v...)
}

// GetWriter returns the log file, or io.Discard before Init.
func GetWriter() io.Writer {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		return logFile
	}
	return io.Discard
}

func write(level, format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	msg := fmt.Sprintf("["+level+"] "+format, v...)
	if globalLogger != nil {
		globalLogger.Print(msg)
	}
	if verbose {
		fmt.Fprintln(mirror, msg)
	}
}
