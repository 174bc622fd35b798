package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/dupesweep/internal/dedupe"
	"github.com/fenilsonani/dupesweep/pkg/utils"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatCSV     OutputFormat = "csv"
	FormatSummary OutputFormat = "summary"
)

// Report is the presentation view of a finished scan.
type Report struct {
	Root        string
	Outcome     dedupe.Outcome
	Scanned     int
	ScanSkipped int
	Elapsed     time.Duration
}

// Group is one duplicate group prepared for rendering: described key,
// newest file first, total byte size.
type Group struct {
	Key         dedupe.Key
	Description string
	Files       []dedupe.FileRecord
	TotalSize   int64
}

// SortedGroups flattens an outcome into deterministically ordered groups:
// groups sorted by key description, files within a group newest first.
func SortedGroups(out dedupe.Outcome) []Group {
	groups := make([]Group, 0, len(out.Groups))
	for key, files := range out.Groups {
		sorted := make([]dedupe.FileRecord, len(files))
		copy(sorted, files)
		sort.Slice(sorted, func(i, j int) bool {
			if !sorted[i].ModTime.Equal(sorted[j].ModTime) {
				return sorted[i].ModTime.After(sorted[j].ModTime)
			}
			return sorted[i].Path < sorted[j].Path
		})

		var total int64
		for _, f := range sorted {
			total += f.Size
		}

		groups = append(groups, Group{
			Key:         key,
			Description: dedupe.DescribeKey(key),
			Files:       sorted,
			TotalSize:   total,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Description != groups[j].Description {
			return groups[i].Description < groups[j].Description
		}
		return groups[i].Files[0].Path < groups[j].Files[0].Path
	})
	return groups
}

// Reclaimable returns the bytes freed by deleting all but the first file of
// each group.
func Reclaimable(groups []Group) int64 {
	var total int64
	for _, g := range groups {
		sizes := make([]int64, 0, len(g.Files)-1)
		for _, f := range g.Files[1:] {
			sizes = append(sizes, f.Size)
		}
		total += utils.SumSizes(sizes)
	}
	return total
}

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// Report generates a report from a scan
func (r *Reporter) Report(rep *Report) error {
	switch r.format {
	case FormatTable:
		return r.reportTable(rep)
	case FormatJSON:
		return r.reportJSON(rep)
	case FormatYAML:
		return r.reportYAML(rep)
	case FormatCSV:
		return r.reportCSV(rep)
	case FormatSummary:
		return r.reportSummary(rep)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// reportSummary generates a summary report
func (r *Reporter) reportSummary(rep *Report) error {
	groups := SortedGroups(rep.Outcome)

	duplicates := 0
	for _, g := range groups {
		duplicates += len(g.Files) - 1
	}

	fmt.Fprintf(r.writer, "=== Duplicate Scan Summary ===\n")
	fmt.Fprintf(r.writer, "Folder: %s\n", rep.Root)
	fmt.Fprintf(r.writer, "Files Scanned: %d\n", rep.Scanned)
	fmt.Fprintf(r.writer, "Duplicate Groups: %d\n", len(groups))
	fmt.Fprintf(r.writer, "Redundant Files: %d\n", duplicates)
	fmt.Fprintf(r.writer, "Reclaimable: %s\n", utils.FormatBytes(Reclaimable(groups)))
	if rep.Elapsed > 0 {
		fmt.Fprintf(r.writer, "Elapsed: %s\n", rep.Elapsed.Round(time.Millisecond))
	}

	if rep.ScanSkipped > 0 {
		fmt.Fprintf(r.writer, "Skipped (I/O errors): %d\n", rep.ScanSkipped)
	}
	if rep.Outcome.HashSkipped > 0 {
		fmt.Fprintf(r.writer, "Skipped hashing (over size cap): %d\n", rep.Outcome.HashSkipped)
	}

	return nil
}

// reportTable generates a table report, one block per group
func (r *Reporter) reportTable(rep *Report) error {
	groups := SortedGroups(rep.Outcome)

	for i, g := range groups {
		fmt.Fprintf(r.writer, "Group %d: %s (%d files, %s)\n",
			i+1, g.Description, len(g.Files), utils.FormatBytes(g.TotalSize))
		for _, f := range g.Files {
			fmt.Fprintf(r.writer, "  %-70s %12s  %s\n",
				f.Path,
				utils.FormatBytes(f.Size),
				f.ModTime.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintln(r.writer)
	}

	fmt.Fprintf(r.writer, "Total: %d groups, %s reclaimable\n",
		len(groups), utils.FormatBytes(Reclaimable(groups)))
	return nil
}

type reportFile struct {
	Path          string `json:"path" yaml:"path"`
	Size          int64  `json:"size" yaml:"size"`
	SizeFormatted string `json:"size_formatted" yaml:"size_formatted"`
	Modified      string `json:"modified" yaml:"modified"`
}

type reportGroup struct {
	Key   string       `json:"key" yaml:"key"`
	Files []reportFile `json:"files" yaml:"files"`
}

type reportDoc struct {
	Timestamp   string        `json:"timestamp" yaml:"timestamp"`
	Folder      string        `json:"folder" yaml:"folder"`
	Scanned     int           `json:"files_scanned" yaml:"files_scanned"`
	ScanSkipped int           `json:"scan_skipped" yaml:"scan_skipped"`
	HashSkipped int           `json:"hash_skipped" yaml:"hash_skipped"`
	Groups      []reportGroup `json:"groups" yaml:"groups"`
}

func buildDoc(rep *Report) reportDoc {
	doc := reportDoc{
		Timestamp:   time.Now().Format(time.RFC3339),
		Folder:      rep.Root,
		Scanned:     rep.Scanned,
		ScanSkipped: rep.ScanSkipped,
		HashSkipped: rep.Outcome.HashSkipped,
		Groups:      []reportGroup{},
	}
	for _, g := range SortedGroups(rep.Outcome) {
		rg := reportGroup{Key: g.Description}
		for _, f := range g.Files {
			rg.Files = append(rg.Files, reportFile{
				Path:          f.Path,
				Size:          f.Size,
				SizeFormatted: utils.FormatBytes(f.Size),
				Modified:      f.ModTime.Format(time.RFC3339),
			})
		}
		doc.Groups = append(doc.Groups, rg)
	}
	return doc
}

// reportJSON generates a JSON report
func (r *Reporter) reportJSON(rep *Report) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildDoc(rep))
}

// reportYAML generates a YAML report
func (r *Reporter) reportYAML(rep *Report) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(buildDoc(rep))
}

// reportCSV generates a CSV export, one row per file with its group number
func (r *Reporter) reportCSV(rep *Report) error {
	w := csv.NewWriter(r.writer)
	if err := w.Write([]string{"group", "key", "path", "size", "modified"}); err != nil {
		return err
	}

	for i, g := range SortedGroups(rep.Outcome) {
		for _, f := range g.Files {
			row := []string{
				strconv.Itoa(i + 1),
				g.Description,
				f.Path,
				strconv.FormatInt(f.Size, 10),
				f.ModTime.Format(time.RFC3339),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

// SaveToFile saves the report to a file
func SaveToFile(rep *Report, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reporter := New(file, format)
	return reporter.Report(rep)
}
