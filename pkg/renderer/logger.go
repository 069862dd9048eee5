package renderer

import (
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stderr
type DefaultLogger struct {
	out *log.Logger
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.out.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{out: log.New(os.Stderr, "", log.LstdFlags)}
}

// discardLogger drops everything; used where progress output is unwanted
type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

// NewDiscardLogger returns a logger that prints nothing
func NewDiscardLogger() core.Logger {
	return discardLogger{}
}
