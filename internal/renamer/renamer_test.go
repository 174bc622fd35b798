package renamer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fenilsonani/dupesweep/internal/config"
	"github.com/fenilsonani/dupesweep/internal/testutil"
)

func TestSchemaFromConfig(t *testing.T) {
	rc := config.RenameConfig{
		Components: []config.RenameComponent{
			{Kind: "folder_name"},
			{Kind: "sequence", PadWidth: 3},
			{Kind: "literal", Value: "backup"},
		},
	}

	schema, err := SchemaFromConfig(rc)
	if err != nil {
		t.Fatalf("SchemaFromConfig() error = %v", err)
	}
	if schema.Separator != "_" {
		t.Errorf("empty separator not defaulted: %q", schema.Separator)
	}
	if len(schema.Components) != 3 {
		t.Fatalf("got %d components, want 3", len(schema.Components))
	}
	if schema.Components[1].PadWidth != 3 || schema.Components[2].Value != "backup" {
		t.Errorf("component fields lost: %+v", schema.Components)
	}
}

func TestSchemaFromConfigRejectsUnknownKind(t *testing.T) {
	rc := config.RenameConfig{
		Components: []config.RenameComponent{{Kind: "weather"}},
	}
	if _, err := SchemaFromConfig(rc); err == nil {
		t.Error("expected error for unknown component kind")
	}
}

func TestApplyBasic(t *testing.T) {
	fixture := testutil.NewFixture(t)
	stamp := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	path := fixture.CreateFile("inbox/scan.pdf", []byte("doc"))
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	schema := Schema{
		Separator: "_",
		Components: []Component{
			{Kind: KindFolderName},
			{Kind: KindDateModified},
			{Kind: KindSequence, PadWidth: 3},
		},
	}

	result := Apply([]string{path}, schema)

	if result.Renamed != 1 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v", result)
	}
	want := fixture.Path("inbox/inbox_20250314.pdf")
	if result.Items[0].To != want {
		t.Errorf("renamed to %s, want %s", result.Items[0].To, want)
	}
	fixture.AssertFileExists(want)
	fixture.AssertFileNotExists(path)
}

func TestApplyCollisionSequence(t *testing.T) {
	fixture := testutil.NewFixture(t)
	stamp := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)

	var paths []string
	for i := 0; i < 3; i++ {
		p := fixture.CreateFile(fmt.Sprintf("box/file%d.txt", i), []byte{byte(i)})
		if err := os.Chtimes(p, stamp, stamp); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	schema := Schema{
		Separator: "_",
		Components: []Component{
			{Kind: KindLiteral, Value: "item"},
			{Kind: KindSequence, PadWidth: 2},
		},
	}

	result := Apply(paths, schema)
	if result.Renamed != 3 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v", result)
	}

	// First file takes the base name, collisions pick up sequence numbers.
	fixture.AssertFileExists(fixture.Path("box/item.txt"))
	fixture.AssertFileExists(fixture.Path("box/item_01.txt"))
	fixture.AssertFileExists(fixture.Path("box/item_02.txt"))
}

func TestApplySkipsAlreadyNamed(t *testing.T) {
	fixture := testutil.NewFixture(t)
	path := fixture.CreateFile("box/item.txt", []byte("x"))

	schema := Schema{
		Separator:  "_",
		Components: []Component{{Kind: KindLiteral, Value: "item"}},
	}

	result := Apply([]string{path}, schema)
	if result.Skipped != 1 || result.Renamed != 0 {
		t.Errorf("result = %+v, want the already-named file skipped", result)
	}
	fixture.AssertFileExists(path)
}

func TestApplySkipsMissing(t *testing.T) {
	schema := Schema{
		Separator:  "_",
		Components: []Component{{Kind: KindLiteral, Value: "x"}},
	}
	result := Apply([]string{filepath.Join(t.TempDir(), "ghost.txt")}, schema)
	if result.Skipped != 1 || result.Renamed != 0 || len(result.Errors) != 0 {
		t.Errorf("result = %+v, want one skip", result)
	}
}

func TestApplyOriginalStem(t *testing.T) {
	fixture := testutil.NewFixture(t)
	path := fixture.CreateFile("docs/report draft.txt", []byte("r"))

	schema := Schema{
		Separator: "-",
		Components: []Component{
			{Kind: KindLiteral, Value: "final"},
			{Kind: KindOriginalStem},
		},
	}

	result := Apply([]string{path}, schema)
	if result.Renamed != 1 {
		t.Fatalf("result = %+v", result)
	}
	if got := filepath.Base(result.Items[0].To); got != "final-report draft.txt" {
		t.Errorf("renamed to %q", got)
	}
}

func TestSanitizeComponent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`a<b>c:d"e/f\g|h?i*j`, "abcdefghij"},
		{"  padded  ", "padded"},
		{"tab\there", "tabhere"},
	}
	for _, tt := range tests {
		if got := sanitizeComponent(tt.in); got != tt.want {
			t.Errorf("sanitizeComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePreset(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"images", "images"},
		{"  Videos ", "videos"},
		{"everything", "all"},
		{"", "all"},
	}
	for _, tt := range tests {
		if got := NormalizePreset(tt.in); got != tt.want {
			t.Errorf("NormalizePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchesPreset(t *testing.T) {
	tests := []struct {
		path   string
		preset string
		want   bool
	}{
		{"/x/photo.JPG", "images", true},
		{"/x/photo.jpg", "videos", false},
		{"/x/clip.mkv", "videos", true},
		{"/x/notes.md", "documents", true},
		{"/x/archive.tar", "archives", true},
		{"/x/noext", "images", false},
		{"/x/anything.xyz", "all", true},
	}
	for _, tt := range tests {
		if got := MatchesPreset(tt.path, tt.preset); got != tt.want {
			t.Errorf("MatchesPreset(%q, %q) = %v, want %v", tt.path, tt.preset, got, tt.want)
		}
	}
}

func TestBuildNameFallbackStem(t *testing.T) {
	// A schema whose parts all come out empty falls back to the stem.
	schema := Schema{
		Separator:  "_",
		Components: []Component{{Kind: KindSequence, PadWidth: 3}},
	}
	got := buildName(schema, "box", "original", ".txt", time.Now(), time.Now(), 0)
	if !strings.HasPrefix(got, "original") {
		t.Errorf("buildName() = %q, want stem fallback", got)
	}
}
