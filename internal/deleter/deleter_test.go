package deleter

import (
	"errors"
	"os"
	"testing"

	"github.com/fenilsonani/dupesweep/internal/testutil"
	"github.com/fenilsonani/dupesweep/internal/trash"
)

// failingStrategy always refuses, to exercise the fallback path.
type failingStrategy struct{}

func (failingStrategy) Name() string             { return "failing" }
func (failingStrategy) Delete(path string) error { return errors.New("refused") }

func TestDeleteAll(t *testing.T) {
	fixture := testutil.NewFixture(t)
	a := fixture.CreateFile("a.txt", []byte("a"))
	b := fixture.CreateFile("b.txt", []byte("b"))

	d := WithStrategy(trash.Permanent{})
	result := d.DeleteAll([]string{a, b}, nil)

	if result.Deleted != 2 || result.Failed != 0 {
		t.Errorf("result = %+v, want 2 deleted, 0 failed", result)
	}
	fixture.AssertFileNotExists(a)
	fixture.AssertFileNotExists(b)
}

func TestDeleteAllMissingCountsAsDeleted(t *testing.T) {
	fixture := testutil.NewFixture(t)
	exists := fixture.CreateFile("real.txt", []byte("r"))
	missing := fixture.Path("phantom.txt")

	d := WithStrategy(trash.Permanent{})

	var reported []string
	result := d.DeleteAll([]string{exists, missing}, func(path string, err *DeletionError) {
		reported = append(reported, path)
	})

	if result.Deleted != 2 || result.Failed != 0 {
		t.Errorf("result = %+v, want 2 deleted, 0 failed", result)
	}
	if len(reported) != 0 {
		t.Errorf("callback fired for %v, want no calls", reported)
	}
}

func TestDeleteAllFallsBackToPermanent(t *testing.T) {
	fixture := testutil.NewFixture(t)
	path := fixture.CreateFile("stubborn.txt", []byte("s"))

	d := WithStrategy(failingStrategy{})
	result := d.DeleteAll([]string{path}, nil)

	if result.Deleted != 1 || result.Failed != 0 {
		t.Errorf("result = %+v, want fallback delete to succeed", result)
	}
	fixture.AssertFileNotExists(path)
}

func TestDeleteAllReportsFailures(t *testing.T) {
	testutil.SkipIfRoot(t)

	fixture := testutil.NewFixture(t)
	dir := fixture.CreateDir("locked")
	victim := fixture.CreateFile("locked/victim.txt", []byte("v"))
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	d := WithStrategy(trash.Permanent{})

	var errs []*DeletionError
	result := d.DeleteAll([]string{victim}, func(path string, err *DeletionError) {
		errs = append(errs, err)
	})

	if result.Failed != 1 || result.Deleted != 0 {
		t.Fatalf("result = %+v, want 1 failure", result)
	}
	if len(errs) != 1 {
		t.Fatalf("callback fired %d times, want 1", len(errs))
	}
	if errs[0].Reason != ErrorPermissionDenied {
		t.Errorf("reason = %v, want permission denied", errs[0].Reason)
	}
}

func TestStrategyName(t *testing.T) {
	d := WithStrategy(trash.Permanent{})
	if got := d.StrategyName(); got != "permanent" {
		t.Errorf("StrategyName() = %s, want permanent", got)
	}
}
