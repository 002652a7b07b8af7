package logger

import (
	"fmt"
	"log"
	"os"
)

// New returns a stdlib-backed logger for the small CLI tools, which print
// their results on stdout and keep diagnostics on stderr.
func New(tool string) *log.Logger {
	prefix := fmt.Sprintf("[%s] ", tool)
	return log.New(os.Stderr, prefix, log.LstdFlags)
}
