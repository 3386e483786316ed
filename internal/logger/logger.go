// Package logger provides a small leveled console logger with ANSI colors.
package logger

import (
	"fmt"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

func stamp() string {
	return time.Now().Format("15:04:05")
}

// Info logs general information (blue).
func Info(message string, args ...interface{}) {
	fmt.Printf("%s[%s]%s %s%s%s\n", colorGray, stamp(), colorReset, colorBlue, fmt.Sprintf(message, args...), colorReset)
}

// Success logs a completed operation (green).
func Success(message string, args ...interface{}) {
	fmt.Printf("%s[%s]%s %s✓ %s%s\n", colorGray, stamp(), colorReset, colorGreen, fmt.Sprintf(message, args...), colorReset)
}

// Warning logs a recoverable problem (yellow).
func Warning(message string, args ...interface{}) {
	fmt.Printf("%s[%s]%s %s⚠ %s%s\n", colorGray, stamp(), colorReset, colorYellow, fmt.Sprintf(message, args...), colorReset)
}

// Error logs a failure (red).
func Error(message string, args ...interface{}) {
	fmt.Printf("%s[%s]%s %s✗ %s%s\n", colorGray, stamp(), colorReset, colorRed, fmt.Sprintf(message, args...), colorReset)
}

// Debug logs a development-only message (gray).
func Debug(message string, args ...interface{}) {
	fmt.Printf("%s[%s] DEBUG: %s%s\n", colorGray, stamp(), fmt.Sprintf(message, args...), colorReset)
}
