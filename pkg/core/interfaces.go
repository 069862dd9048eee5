package core

// Logger receives progress messages from the renderer and its callers. A
// *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...interface{})
}
