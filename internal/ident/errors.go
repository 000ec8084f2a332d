package ident

import "fmt"

const exitCodeUsage = 1

// Usage is the one-line usage text reported with a UsageError.
const Usage = "usage: speakset <token|message_id> <value...>"

// UsageError reports an invocation with fewer than a command and one value.
type UsageError struct{}

func (e *UsageError) Error() string { return Usage }

// ExitCode returns the process exit code for this error.
func (e *UsageError) ExitCode() int { return exitCodeUsage }

// UnknownCommandError reports a command other than token or message_id.
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Command)
}

// ExitCode returns the process exit code for this error.
func (e *UnknownCommandError) ExitCode() int { return exitCodeUsage }
