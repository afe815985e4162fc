package linemap

import (
	"time"

	"github.com/charmbracelet/log"
)

// DefaultRebuildDebounce is the quiet period after a change signal before a
// rebuild executes. Bursts of signals inside the window coalesce into one
// rebuild.
const DefaultRebuildDebounce = 200 * time.Millisecond

// Options configures a Mapper.
type Options struct {
	// RebuildDebounce is the coalescing delay applied to change signals.
	// Zero or negative selects DefaultRebuildDebounce.
	RebuildDebounce time.Duration

	// Debug enables per-rebuild debug logging.
	Debug bool

	// Logger receives debug and error output. Nil selects the package
	// default logger.
	Logger *log.Logger
}

// withDefaults returns a copy with zero values replaced by defaults.
func (o Options) withDefaults() Options {
	if o.RebuildDebounce <= 0 {
		o.RebuildDebounce = DefaultRebuildDebounce
	}
	return o
}
