// Package deleter removes batches of files, preferring a reversible
// trash mechanism and falling back to permanent removal. One failure never
// aborts a batch.
package deleter

import (
	"os"

	"github.com/fenilsonani/dupesweep/internal/trash"
)

// ErrorCallback receives each path that could not be deleted along with the
// categorized error describing why.
type ErrorCallback func(path string, err *DeletionError)

// Result summarizes a batch deletion.
type Result struct {
	Deleted int
	Failed  int
}

// Deleter removes files through a removal strategy selected at startup.
type Deleter struct {
	strategy trash.Strategy
	fallback trash.Strategy
}

// New builds a Deleter around the best mechanism available on this platform.
func New() *Deleter {
	return WithStrategy(trash.Detect())
}

// WithStrategy builds a Deleter around a specific removal mechanism. Used by
// the CLI's --permanent flag and by tests.
func WithStrategy(s trash.Strategy) *Deleter {
	return &Deleter{strategy: s, fallback: trash.Permanent{}}
}

// StrategyName reports which removal mechanism the Deleter prefers.
func (d *Deleter) StrategyName() string {
	return d.strategy.Name()
}

// DeleteAll removes every path in the batch. A missing file counts as
// deleted (idempotent removal); any other failure is reported through
// onError and processing continues with the remaining paths.
func (d *Deleter) DeleteAll(paths []string, onError ErrorCallback) Result {
	var res Result
	for _, path := range paths {
		if err := d.deleteOne(path); err != nil {
			res.Failed++
			if onError != nil {
				onError(path, err)
			}
			continue
		}
		res.Deleted++
	}
	return res
}

func (d *Deleter) deleteOne(path string) *DeletionError {
	err := d.strategy.Delete(path)
	if err != nil && d.strategy.Name() != d.fallback.Name() {
		err = d.fallback.Delete(path)
	}
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return CategorizeError(path, err)
}
