// Package renamer applies a schema-driven rename to a set of files: each new
// name is built from components (folder name, dates, times, sequence number,
// original stem, literals) joined by a separator, with a two-pass collision
// strategy that only emits the sequence number when the base name is taken.
package renamer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fenilsonani/dupesweep/internal/config"
)

// ComponentKind selects a rename schema component variant.
type ComponentKind string

const (
	KindFolderName   ComponentKind = "folder_name"
	KindDateCreated  ComponentKind = "date_created"
	KindDateModified ComponentKind = "date_modified"
	KindTimeCreated  ComponentKind = "time_created"
	KindTimeModified ComponentKind = "time_modified"
	KindSequence     ComponentKind = "sequence"
	KindOriginalStem ComponentKind = "original_stem"
	KindLiteral      ComponentKind = "literal"
)

// maxSequence bounds the collision-resolution search.
const maxSequence = 10000

// Component is one piece of a rename schema.
type Component struct {
	Kind     ComponentKind
	PadWidth int    // sequence only
	Value    string // literal only
}

// Schema defines how files are renamed.
type Schema struct {
	Components []Component
	Separator  string
}

// SchemaFromConfig converts the persisted rename settings into a Schema.
func SchemaFromConfig(rc config.RenameConfig) (Schema, error) {
	schema := Schema{Separator: rc.Separator}
	if schema.Separator == "" {
		schema.Separator = "_"
	}
	for _, c := range rc.Components {
		kind := ComponentKind(c.Kind)
		switch kind {
		case KindFolderName, KindDateCreated, KindDateModified,
			KindTimeCreated, KindTimeModified, KindSequence,
			KindOriginalStem, KindLiteral:
		default:
			return Schema{}, fmt.Errorf("unknown rename component kind: %q", c.Kind)
		}
		schema.Components = append(schema.Components, Component{
			Kind:     kind,
			PadWidth: c.PadWidth,
			Value:    c.Value,
		})
	}
	return schema, nil
}

// Item records one successful rename.
type Item struct {
	From string
	To   string
}

// RenameError records one failed rename.
type RenameError struct {
	Path    string
	Message string
}

// Result summarizes an Apply pass.
type Result struct {
	Renamed int
	Skipped int
	Items   []Item
	Errors  []RenameError
}

// Apply renames every path per the schema. Missing files and files already
// carrying their target name are skipped; failures are collected and never
// abort the batch.
func Apply(paths []string, schema Schema) Result {
	var res Result
	reserved := make(map[string]bool)

	for _, source := range paths {
		info, err := os.Stat(source)
		if err != nil {
			if os.IsNotExist(err) {
				res.Skipped++
				continue
			}
			res.Errors = append(res.Errors, RenameError{
				Path:    source,
				Message: fmt.Sprintf("Could not read metadata: %v", err),
			})
			continue
		}
		if !info.Mode().IsRegular() {
			res.Skipped++
			continue
		}

		parent := filepath.Dir(source)
		folderName := filepath.Base(parent)
		ext := filepath.Ext(source)
		stem := strings.TrimSuffix(filepath.Base(source), ext)

		// Creation time is not portably available; modification time is
		// the fallback for the created components.
		modified := info.ModTime()
		created := modified

		// Pass 1: the base name, with the sequence component omitted.
		baseCandidate := filepath.Join(parent, buildName(schema, folderName, stem, ext, created, modified, 0))
		if baseCandidate == source {
			res.Skipped++
			continue
		}

		target := baseCandidate
		if exists(baseCandidate) || reserved[baseCandidate] {
			// Pass 2: first free sequence number.
			target = ""
			for seq := 1; seq <= maxSequence; seq++ {
				candidate := filepath.Join(parent, buildName(schema, folderName, stem, ext, created, modified, seq))
				if candidate == source {
					continue
				}
				if !exists(candidate) && !reserved[candidate] {
					target = candidate
					break
				}
			}
			if target == "" {
				res.Errors = append(res.Errors, RenameError{
					Path:    source,
					Message: fmt.Sprintf("Could not find a free target name after %d attempts", maxSequence),
				})
				continue
			}
		}

		if err := os.Rename(source, target); err != nil {
			res.Errors = append(res.Errors, RenameError{
				Path:    source,
				Message: fmt.Sprintf("Rename failed: %v", err),
			})
			continue
		}
		reserved[target] = true
		res.Items = append(res.Items, Item{From: source, To: target})
	}

	res.Renamed = len(res.Items)
	return res
}

// buildName assembles the new file name. seq == 0 omits the sequence
// component (the base-name pass); seq > 0 emits it padded to PadWidth.
func buildName(schema Schema, folderName, stem, ext string, created, modified time.Time, seq int) string {
	var parts []string
	for _, comp := range schema.Components {
		var part string
		switch comp.Kind {
		case KindFolderName:
			part = sanitizeComponent(folderName)
		case KindDateCreated:
			part = created.Format("20060102")
		case KindDateModified:
			part = modified.Format("20060102")
		case KindTimeCreated:
			part = created.Format("150405")
		case KindTimeModified:
			part = modified.Format("150405")
		case KindOriginalStem:
			part = sanitizeComponent(stem)
		case KindLiteral:
			part = sanitizeComponent(comp.Value)
		case KindSequence:
			if seq > 0 {
				part = fmt.Sprintf("%0*d", comp.PadWidth, seq)
			}
		}
		if part != "" {
			parts = append(parts, part)
		}
	}

	name := sanitizeComponent(stem)
	if len(parts) > 0 {
		name = strings.Join(parts, schema.Separator)
	}
	return name + ext
}

// sanitizeComponent strips characters that are unsafe in file names.
func sanitizeComponent(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x20 || strings.ContainsRune(`<>:"/\|?*`, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
