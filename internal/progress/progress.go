package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/fenilsonani/dupesweep/pkg/utils"
)

// Phase represents the current phase of operation
type Phase string

const (
	PhaseCollecting Phase = "collecting"
	PhaseHashing    Phase = "hashing"
	PhaseDeleting   Phase = "deleting"
	PhaseComplete   Phase = "complete"
	PhaseError      Phase = "error"
)

// ScanProgress represents progress during collection and hashing
type ScanProgress struct {
	Phase      Phase
	Folder     string
	FilesFound int
	Hashed     int
	HashTotal  int
	Groups     int
	StartTime  time.Time
	Err        error
}

// DeleteProgress represents progress during deletion
type DeleteProgress struct {
	Phase        Phase
	CurrentFile  string
	DeletedFiles int
	TotalFiles   int
	DeletedSize  int64
	FailedFiles  int
	StartTime    time.Time
	Err          error
}

// Reporter provides thread-safe progress reporting
type Reporter struct {
	scanProgress   *ScanProgress
	deleteProgress *DeleteProgress
	mu             sync.RWMutex
	listeners      []chan interface{}
}

// NewReporter creates a new progress reporter
func NewReporter() *Reporter {
	return &Reporter{
		listeners: make([]chan interface{}, 0),
	}
}

// Subscribe returns a channel that receives progress updates
func (r *Reporter) Subscribe() <-chan interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan interface{}, 10)
	r.listeners = append(r.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel
func (r *Reporter) Unsubscribe(ch <-chan interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, listener := range r.listeners {
		if listener == ch {
			close(listener)
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// UpdateScanProgress updates scan progress and notifies listeners
func (r *Reporter) UpdateScanProgress(update *ScanProgress) {
	r.mu.Lock()
	r.scanProgress = update
	listeners := make([]chan interface{}, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, listener := range listeners {
		select {
		case listener <- update:
		default:
			// Skip if channel is full
		}
	}
}

// UpdateDeleteProgress updates delete progress and notifies listeners
func (r *Reporter) UpdateDeleteProgress(update *DeleteProgress) {
	r.mu.Lock()
	r.deleteProgress = update
	listeners := make([]chan interface{}, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, listener := range listeners {
		select {
		case listener <- update:
		default:
		}
	}
}

// GetScanProgress returns the current scan progress
func (r *Reporter) GetScanProgress() *ScanProgress {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scanProgress
}

// GetDeleteProgress returns the current delete progress
func (r *Reporter) GetDeleteProgress() *DeleteProgress {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.deleteProgress
}

// FormatScanProgress returns a human-readable scan progress string
func FormatScanProgress(p *ScanProgress) string {
	if p == nil {
		return "Initializing..."
	}

	elapsed := time.Since(p.StartTime)

	switch p.Phase {
	case PhaseCollecting:
		return fmt.Sprintf("Collecting files... %d found [%s]",
			p.FilesFound, FormatDuration(elapsed))
	case PhaseHashing:
		return fmt.Sprintf("Hashing %d/%d files [%s]",
			p.Hashed, p.HashTotal, FormatDuration(elapsed))
	case PhaseComplete:
		return fmt.Sprintf("Scan complete: %d files, %d duplicate groups in %s",
			p.FilesFound, p.Groups, FormatDuration(elapsed))
	case PhaseError:
		return fmt.Sprintf("Scan error: %v", p.Err)
	default:
		return "Scanning..."
	}
}

// FormatDeleteProgress returns a human-readable delete progress string
func FormatDeleteProgress(p *DeleteProgress) string {
	if p == nil {
		return "Preparing..."
	}

	elapsed := time.Since(p.StartTime)

	switch p.Phase {
	case PhaseDeleting:
		return fmt.Sprintf("Deleting... %d/%d files - %s freed",
			p.DeletedFiles, p.TotalFiles, utils.FormatBytes(p.DeletedSize))
	case PhaseComplete:
		return fmt.Sprintf("Deletion complete: %d files (%s) in %s",
			p.DeletedFiles, utils.FormatBytes(p.DeletedSize), FormatDuration(elapsed))
	case PhaseError:
		return fmt.Sprintf("Deletion error: %v", p.Err)
	default:
		return "Preparing deletion..."
	}
}

// FormatDuration formats duration in human-readable format
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
