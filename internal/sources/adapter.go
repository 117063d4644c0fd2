// Package sources defines the contract shared by every content source
// adapter and the registry used to select one by name.
package sources

import (
	"fmt"
	"sort"
	"sync"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/logger"
)

// Adapter turns one source-specific payload into unified lessons.
// Implementations are pure: identical input yields identical output and no
// state is kept between calls, so an Adapter is safe for concurrent use.
type Adapter interface {
	// Name is the registry key, e.g. "roster".
	Name() string

	// Lessons parses data and maps it to lessons. A missing or malformed
	// top-level object is an *Error; a broken nested item is skipped and
	// recorded in Result.Skipped.
	Lessons(data []byte) (Result, error)
}

// Result is the output of one adapter call.
type Result struct {
	Lessons []content.Lesson
	Skipped []Skip
}

// Skip records a nested item that was left out of the output.
type Skip struct {
	Item   string
	Reason string
}

// Report collects skipped items for a single adapter call and logs each one.
type Report struct {
	source  string
	log     *logger.Logger
	skipped []Skip
}

// NewReport starts a report for the named source.
func NewReport(source string, log *logger.Logger) *Report {
	return &Report{source: source, log: logger.OrNop(log)}
}

// Skip records and logs a skipped item.
func (r *Report) Skip(item, reason string) {
	r.skipped = append(r.skipped, Skip{Item: item, Reason: reason})
	r.log.Warn("skipping item", "source", r.source, "item", item, "reason", reason)
}

// Skipf is Skip with a formatted reason.
func (r *Report) Skipf(item, format string, args ...any) {
	r.Skip(item, fmt.Sprintf(format, args...))
}

// Result packages lessons with the collected skips.
func (r *Report) Result(lessons []content.Lesson) Result {
	return Result{Lessons: lessons, Skipped: r.skipped}
}

// Registry maps adapter names to adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry creates a registry holding the given adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds or replaces an adapter under its Name.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Name()] = a
}

// Lookup returns the adapter registered under name.
func (r *Registry) Lookup(name string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("unknown source kind %q (available: %v)", name, r.namesLocked())
	}
	return a, nil
}

// Names returns the registered adapter names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.adapters))
	for n := range r.adapters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
