package progress

import (
	"strings"
	"testing"
	"time"
)

func TestSubscribeReceivesUpdates(t *testing.T) {
	r := NewReporter()
	ch := r.Subscribe()

	update := &ScanProgress{Phase: PhaseHashing, Hashed: 3, HashTotal: 9}
	r.UpdateScanProgress(update)

	select {
	case got := <-ch:
		sp, ok := got.(*ScanProgress)
		if !ok || sp.Hashed != 3 {
			t.Errorf("received %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no update received")
	}

	if r.GetScanProgress() != update {
		t.Error("GetScanProgress() did not return the latest update")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	r := NewReporter()
	ch := r.Subscribe()
	r.Unsubscribe(ch)

	if _, open := <-ch; open {
		t.Error("channel still open after Unsubscribe")
	}

	// Updating after unsubscribe must not panic.
	r.UpdateScanProgress(&ScanProgress{Phase: PhaseComplete})
}

func TestFullListenerDoesNotBlock(t *testing.T) {
	r := NewReporter()
	r.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			r.UpdateDeleteProgress(&DeleteProgress{Phase: PhaseDeleting, DeletedFiles: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("updates blocked on a full listener")
	}
}

func TestFormatScanProgress(t *testing.T) {
	if got := FormatScanProgress(nil); got != "Initializing..." {
		t.Errorf("nil progress = %q", got)
	}

	hashing := FormatScanProgress(&ScanProgress{
		Phase: PhaseHashing, Hashed: 5, HashTotal: 20, StartTime: time.Now(),
	})
	if !strings.Contains(hashing, "5/20") {
		t.Errorf("hashing line = %q", hashing)
	}

	complete := FormatScanProgress(&ScanProgress{
		Phase: PhaseComplete, FilesFound: 42, Groups: 3, StartTime: time.Now(),
	})
	if !strings.Contains(complete, "42 files") || !strings.Contains(complete, "3 duplicate groups") {
		t.Errorf("complete line = %q", complete)
	}
}

func TestFormatDeleteProgress(t *testing.T) {
	deleting := FormatDeleteProgress(&DeleteProgress{
		Phase: PhaseDeleting, DeletedFiles: 2, TotalFiles: 8, DeletedSize: 1024, StartTime: time.Now(),
	})
	if !strings.Contains(deleting, "2/8") || !strings.Contains(deleting, "1.00 KB") {
		t.Errorf("deleting line = %q", deleting)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m30s"},
		{3661 * time.Second, "1h1m1s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
