package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	errorLogger *log.Logger
	debugLogger *log.Logger

	errFile *os.File
	dbgFile *os.File
)

func setupLogging(debug bool) {
	logDir := filepath.Join(baseDir, "logs", "errors")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Printf("could not create log directory: %v\n", err)
	}
	ts := time.Now().Format("20060102-150405")

	errPath := filepath.Join(logDir, fmt.Sprintf("error-%s.log", ts))
	if errFile != nil {
		errFile.Close()
		errFile = nil
	}
	var errWriter io.Writer = os.Stderr
	if f, err := os.Create(errPath); err == nil {
		errFile = f
		errWriter = io.MultiWriter(os.Stderr, f)
	}
	errorLogger = log.New(errWriter, "", log.LstdFlags)
	log.SetOutput(errWriter)

	setDebugLogging(debug)
}

func logError(format string, v ...interface{}) {
	if errorLogger != nil {
		errorLogger.Printf(format, v...)
		return
	}
	log.Printf(format, v...)
}

func logDebug(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf(format, v...)
	}
}

func setDebugLogging(enabled bool) {
	if dbgFile != nil {
		dbgFile.Close()
		dbgFile = nil
	}
	if !enabled {
		debugLogger = nil
		return
	}
	logDir := filepath.Join(baseDir, "logs", "errors")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Printf("could not create log directory: %v\n", err)
	}
	ts := time.Now().Format("20060102-150405")
	dbgPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", ts))
	var dbgWriter io.Writer = os.Stderr
	if f, err := os.Create(dbgPath); err == nil {
		dbgFile = f
		dbgWriter = io.MultiWriter(os.Stderr, f)
	}
	debugLogger = log.New(dbgWriter, "", log.LstdFlags)
}

// closeLogs flushes and closes the log files and falls back to stderr.
func closeLogs() {
	setDebugLogging(false)
	if errFile != nil {
		errFile.Close()
		errFile = nil
	}
	errorLogger = nil
	log.SetOutput(os.Stderr)
}

// fatal logs an error, closes the log files and exits.
func fatal(format string, v ...interface{}) {
	logError(format, v...)
	closeLogs()
	os.Exit(1)
}
