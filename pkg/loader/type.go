package loader

import (
	"fmt"
	"sync"

	"github.com/NotCoffee418/gws_dashboard/pkg/table"
	"go.uber.org/zap"
)

// LoadError is fatal for a run: the source could not be read as delimited text.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// CoercionWarning records a numeric cell that was replaced by a missing value.
type CoercionWarning struct {
	// Index into the loaded table rows
	Row    int    `json:"row"`
	Line   int    `json:"line"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

func (w CoercionWarning) String() string {
	return fmt.Sprintf("line %d: %q in column %q is not a number", w.Line, w.Value, w.Column)
}

// Report describes what happened while loading a file.
type Report struct {
	Path           string            `json:"path"`
	Rows           int               `json:"rows"`
	DroppedColumns []string          `json:"dropped_columns"`
	MissingColumns []string          `json:"missing_columns"`
	Warnings       []CoercionWarning `json:"warnings"`
}

// Cache memoizes loaded tables by path for the lifetime of the process.
// There is no invalidation, restart to pick up file changes.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*table.Table
	logger  *zap.Logger
}
