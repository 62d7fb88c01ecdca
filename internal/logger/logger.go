package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu           sync.RWMutex
	currentLevel = LevelInfo
	output       io.Writer = os.Stderr
	jsonHandler  *slog.Logger

	// logFile is the file opened by Configure, closed when output changes
	logFile *os.File
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLevel sets the minimum level. Unknown names are ignored.
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToUpper(level) {
	case "DEBUG":
		currentLevel = LevelDebug
	case "INFO":
		currentLevel = LevelInfo
	case "WARN":
		currentLevel = LevelWarn
	case "ERROR":
		currentLevel = LevelError
	}
}

// SetOutput redirects log output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	setOutputLocked(w, nil)
}

// setOutputLocked swaps the output and closes the log file Configure opened
// earlier, unless it is still the target. Requires mu.
func setOutputLocked(w io.Writer, file *os.File) {
	if w == nil {
		w = os.Stderr
	}
	if logFile != nil && logFile != file {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "logger: close %s: %v\n", logFile.Name(), err)
		}
	}
	logFile = file
	output = w
	if jsonHandler != nil {
		jsonHandler = slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// SetFormat switches between the plain "text" format and "json".
func SetFormat(format string) {
	mu.Lock()
	defer mu.Unlock()

	if strings.EqualFold(format, "json") {
		jsonHandler = slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: slog.LevelDebug}))
		return
	}
	jsonHandler = nil
}

// Configure applies level, format and output in one call. Output is
// "stdout", "stderr" (the default) or a file path opened in append mode.
// A file opened by a previous call is closed.
func Configure(level, format, out string) error {
	var (
		w    io.Writer
		file *os.File
	)
	switch strings.ToLower(out) {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", out, err)
		}
		w, file = f, f
	}

	mu.Lock()
	setOutputLocked(w, file)
	mu.Unlock()

	SetFormat(format)
	SetLevel(level)
	return nil
}

func log(level Level, format string, v ...any) {
	// Write lock: output may be a writer that is not safe for concurrent use
	mu.Lock()
	defer mu.Unlock()

	if level < currentLevel {
		return
	}

	message := fmt.Sprintf(format, v...)

	if jsonHandler != nil {
		jsonHandler.Log(context.Background(), level.slogLevel(), message)
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(output, "[%s] [%s] %s\n", timestamp, level.String(), message)
}

func Debug(format string, v ...any) {
	log(LevelDebug, format, v...)
}

func Info(format string, v ...any) {
	log(LevelInfo, format, v...)
}

func Warn(format string, v ...any) {
	log(LevelWarn, format, v...)
}

func Error(format string, v ...any) {
	log(LevelError, format, v...)
}
