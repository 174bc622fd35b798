package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/dupesweep/internal/config"
	"github.com/fenilsonani/dupesweep/internal/dedupe"
	"github.com/fenilsonani/dupesweep/internal/deleter"
	"github.com/fenilsonani/dupesweep/internal/reporter"
	"github.com/fenilsonani/dupesweep/internal/ui/styles"
	"github.com/fenilsonani/dupesweep/pkg/utils"
)

// ViewState represents the current view in the picker
type ViewState int

const (
	ViewScanning ViewState = iota
	ViewBrowsing
	ViewConfirm
	ViewDeleting
	ViewSummary
)

// row addresses one file line in the flattened group list
type row struct {
	group int
	file  int
}

// ScanDoneMsg carries a finished scan into the model
type ScanDoneMsg struct {
	Report *reporter.Report
}

// ScanFailedMsg carries a scan failure
type ScanFailedMsg struct {
	Err error
}

// DeleteDoneMsg carries deletion results
type DeleteDoneMsg struct {
	Result deleter.Result
	Errors []string
}

// PickerModel is the interactive duplicate picker: scan, browse groups,
// toggle which files to keep, delete the rest.
type PickerModel struct {
	cfg     *config.Config
	state   ViewState
	spinner spinner.Model

	report *reporter.Report
	groups []reporter.Group
	rows   []row
	keep   map[string]bool

	cursor int
	offset int
	height int

	result    deleter.Result
	deleteErr []string
	err       error
}

// NewPicker creates the picker model; the scan starts on Init.
func NewPicker(cfg *config.Config) *PickerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SubtitleStyle
	return &PickerModel{
		cfg:     cfg,
		state:   ViewScanning,
		spinner: s,
		keep:    make(map[string]bool),
		height:  24,
	}
}

// Init starts the spinner and the scan
func (m *PickerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, scanCmd(m.cfg))
}

// scanCmd runs collection and grouping off the UI loop. The engine is
// synchronous; the tea.Cmd boundary keeps the interactive thread free.
func scanCmd(cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		records, skipped, err := dedupe.Collect(cfg.Folder, cfg.CollectOptions())
		if err != nil {
			return ScanFailedMsg{Err: err}
		}

		grouper := dedupe.Grouper{Criteria: cfg.Criteria(), HashCap: cfg.HashCapBytes()}
		outcome := grouper.Group(records)

		return ScanDoneMsg{Report: &reporter.Report{
			Root:        cfg.Folder,
			Outcome:     outcome,
			Scanned:     len(records),
			ScanSkipped: skipped.Total(),
			Elapsed:     time.Since(start),
		}}
	}
}

// deleteCmd removes every file not marked keep
func deleteCmd(groups []reporter.Group, keep map[string]bool) tea.Cmd {
	return func() tea.Msg {
		var doomed []string
		for _, g := range groups {
			for _, f := range g.Files {
				if !keep[f.Path] {
					doomed = append(doomed, f.Path)
				}
			}
		}

		var errs []string
		result := deleter.New().DeleteAll(doomed, func(path string, err *deleter.DeletionError) {
			errs = append(errs, err.UserMessage())
		})
		return DeleteDoneMsg{Result: result, Errors: errs}
	}
}

// Update handles messages
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case spinner.TickMsg:
		if m.state == ViewScanning || m.state == ViewDeleting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case ScanFailedMsg:
		m.err = msg.Err
		m.state = ViewSummary
		return m, nil

	case ScanDoneMsg:
		m.report = msg.Report
		m.groups = reporter.SortedGroups(msg.Report.Outcome)
		m.buildRows()
		// Default keep policy: the newest file of every group survives.
		for _, g := range m.groups {
			m.keep[g.Files[0].Path] = true
		}
		m.state = ViewBrowsing
		return m, nil

	case DeleteDoneMsg:
		m.result = msg.Result
		m.deleteErr = msg.Errors
		m.state = ViewSummary
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *PickerModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case ViewBrowsing:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case " ":
			m.toggleKeep()
		case "enter":
			if len(m.groups) > 0 {
				m.state = ViewConfirm
			}
		}

	case ViewConfirm:
		switch msg.String() {
		case "y", "enter":
			m.state = ViewDeleting
			return m, tea.Batch(m.spinner.Tick, deleteCmd(m.groups, m.keep))
		case "n", "esc":
			m.state = ViewBrowsing
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case ViewSummary:
		switch msg.String() {
		case "ctrl+c", "q", "enter", "esc":
			return m, tea.Quit
		}

	default:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *PickerModel) buildRows() {
	m.rows = m.rows[:0]
	for gi, g := range m.groups {
		for fi := range g.Files {
			m.rows = append(m.rows, row{group: gi, file: fi})
		}
	}
}

// toggleKeep flips the keep mark under the cursor. Every group must keep at
// least one file, so the last kept file of a group cannot be unmarked.
func (m *PickerModel) toggleKeep() {
	if m.cursor >= len(m.rows) {
		return
	}
	r := m.rows[m.cursor]
	file := m.groups[r.group].Files[r.file]

	if !m.keep[file.Path] {
		m.keep[file.Path] = true
		return
	}

	kept := 0
	for _, f := range m.groups[r.group].Files {
		if m.keep[f.Path] {
			kept++
		}
	}
	if kept > 1 {
		delete(m.keep, file.Path)
	}
}

func (m *PickerModel) doomedCount() (int, int64) {
	count := 0
	var size int64
	for _, g := range m.groups {
		for _, f := range g.Files {
			if !m.keep[f.Path] {
				count++
				size += f.Size
			}
		}
	}
	return count, size
}

// View renders the current state
func (m *PickerModel) View() string {
	switch m.state {
	case ViewScanning:
		return fmt.Sprintf("\n %s Scanning %s...\n", m.spinner.View(), m.cfg.Folder)
	case ViewBrowsing:
		return m.viewBrowsing()
	case ViewConfirm:
		return m.viewConfirm()
	case ViewDeleting:
		return fmt.Sprintf("\n %s Deleting...\n", m.spinner.View())
	case ViewSummary:
		return m.viewSummary()
	}
	return ""
}

func (m *PickerModel) viewBrowsing() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("dupesweep: duplicate groups"))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(
		fmt.Sprintf("%s  (%d files scanned in %s)",
			m.report.Root, m.report.Scanned, m.report.Elapsed.Round(time.Millisecond))))
	b.WriteString("\n")

	if len(m.groups) == 0 {
		b.WriteString("\nNo duplicates found.\n\n")
		b.WriteString(styles.HelpStyle.Render("q: quit"))
		return b.String()
	}

	visible := m.height - 6
	if visible < 3 {
		visible = 3
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}

	lastGroup := -1
	for i := m.offset; i < len(m.rows) && i < m.offset+visible; i++ {
		r := m.rows[i]
		g := m.groups[r.group]
		if r.group != lastGroup {
			b.WriteString(styles.GroupHeaderStyle.Render(
				fmt.Sprintf("%s (%d files)", g.Description, len(g.Files))))
			b.WriteString("\n")
			lastGroup = r.group
		}

		f := g.Files[r.file]
		marker := styles.DeleteStyle.Render("[delete]")
		if m.keep[f.Path] {
			marker = styles.KeepStyle.Render("[keep]  ")
		}

		line := fmt.Sprintf("  %s %s %s", marker, f.Path,
			styles.FileSizeStyle.Render(utils.FormatBytes(f.Size)))
		if i == m.cursor {
			line = styles.SelectedStyle.Render(">") + line[1:]
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	count, size := m.doomedCount()
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(
		fmt.Sprintf("%d files marked for deletion (%s)", count, utils.FormatBytes(size))))
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("space: toggle keep  enter: delete marked  q: quit"))
	return b.String()
}

func (m *PickerModel) viewConfirm() string {
	count, size := m.doomedCount()
	return fmt.Sprintf("\n%s\n\n%s\n",
		styles.TitleStyle.Render(fmt.Sprintf("Delete %d files (%s)?", count, utils.FormatBytes(size))),
		styles.HelpStyle.Render("y: delete  n: back"))
}

func (m *PickerModel) viewSummary() string {
	var b strings.Builder
	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Scan failed: %v", m.err)))
	} else {
		b.WriteString(styles.SuccessStyle.Render(
			fmt.Sprintf("Deleted %d files", m.result.Deleted)))
		if m.result.Failed > 0 {
			b.WriteString("\n")
			b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("%d failures:", m.result.Failed)))
			for _, e := range m.deleteErr {
				b.WriteString("\n  " + e)
			}
		}
	}
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("press any key to exit"))
	return b.String()
}
