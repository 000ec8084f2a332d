package main

import (
	"os"
	"strings"

	"github.com/flarebyte/speakset-native/cmd/speakset/root"
)

type exitCoder interface {
	ExitCode() int
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	err := root.Execute(args)
	if err == nil {
		return 0
	}
	// One line on stderr; no usage dump or stack trace.
	msg := strings.TrimRight(err.Error(), "\r\n")
	if msg == "" {
		msg = "error"
	}
	_, _ = os.Stderr.WriteString(msg + "\n")
	code := 1
	if ec, ok := err.(exitCoder); ok {
		if c := ec.ExitCode(); c != 0 {
			code = c
		}
	}
	return code
}
