package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fenilsonani/dupesweep/internal/config"
	"github.com/fenilsonani/dupesweep/internal/dedupe"
	"github.com/fenilsonani/dupesweep/internal/deleter"
	"github.com/fenilsonani/dupesweep/internal/progress"
	"github.com/fenilsonani/dupesweep/internal/renamer"
	"github.com/fenilsonani/dupesweep/internal/reporter"
	"github.com/fenilsonani/dupesweep/internal/trash"
	"github.com/fenilsonani/dupesweep/internal/ui"
	"github.com/fenilsonani/dupesweep/pkg/utils"
)

var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath  string
	daysBack    int
	namePrefix  string
	noRecurse   bool
	useHash     bool
	useSize     bool
	useName     bool
	useMtime    bool
	useMime     bool
	hashCap     string
	outputFmt   string
	outputFile  string
	dryRun      bool
	force       bool
	interactive bool
	permanent   bool
	preset      string
	initConfig  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dupesweep",
	Short: "Find and remove duplicate files",
	Long: `Dupesweep finds duplicate files in a directory tree under the criteria you
select (content hash, size, name, modified time, MIME type) and deletes the
redundant copies, preferring the system trash so mistakes stay recoverable.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
}

var scanCmd = &cobra.Command{
	Use:   "scan [folder]",
	Short: "Scan a folder for duplicate files",
	Long:  `Scans a folder and reports duplicate groups without making any changes.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, folder, err := resolveConfig(cmd, args)
		if err != nil {
			return err
		}

		rep, err := runScan(cfg, folder)
		if err != nil {
			return err
		}

		format := parseFormat(outputFmt)
		if outputFile != "" {
			if err := reporter.SaveToFile(rep, outputFile, format); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			fmt.Printf("Report saved to: %s\n", outputFile)
			return nil
		}

		rptr := reporter.New(os.Stdout, format)
		if err := rptr.Report(rep); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean [folder]",
	Short: "Delete duplicate files, keeping the newest of each group",
	Long: `Scans a folder for duplicates and deletes all but the newest file of every
group. Use --interactive to pick the survivors yourself.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, folder, err := resolveConfig(cmd, args)
		if err != nil {
			return err
		}

		if interactive {
			cfg.Folder = folder
			return ui.Run(cfg)
		}

		rep, err := runScan(cfg, folder)
		if err != nil {
			return err
		}

		groups := reporter.SortedGroups(rep.Outcome)
		if len(groups) == 0 {
			fmt.Println("No duplicates found.")
			return nil
		}

		rptr := reporter.New(os.Stdout, reporter.FormatSummary)
		if err := rptr.Report(rep); err != nil {
			return err
		}

		// Keep the newest file of each group, delete the rest.
		var doomed []string
		var doomedSize int64
		for _, g := range groups {
			for _, f := range g.Files[1:] {
				doomed = append(doomed, f.Path)
				doomedSize += f.Size
			}
		}

		if dryRun {
			fmt.Printf("\n[DRY RUN] Would delete %d files (%s):\n", len(doomed), utils.FormatBytes(doomedSize))
			for _, path := range doomed {
				fmt.Printf("  %s\n", path)
			}
			return nil
		}

		if !force {
			fmt.Printf("\nDelete %d files (%s)? (y/N): ", len(doomed), utils.FormatBytes(doomedSize))
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(response)
			if response != "y" && response != "Y" {
				fmt.Println("Cancelled")
				return nil
			}
		}

		del := deleter.New()
		if permanent {
			del = deleter.WithStrategy(trash.Permanent{})
		}

		var errs []*deleter.DeletionError
		result := del.DeleteAll(doomed, func(path string, derr *deleter.DeletionError) {
			fmt.Fprintln(os.Stderr, derr.UserMessage())
			errs = append(errs, derr)
		})

		fmt.Printf("\nDeleted %d files via %s", result.Deleted, del.StrategyName())
		if result.Failed > 0 {
			fmt.Printf(", %d failed", result.Failed)
			fmt.Print(deleter.FormatErrorSummary(errs))
		}
		fmt.Println()
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename [folder]",
	Short: "Rename collected files using the configured schema",
	Long: `Collects files from a folder (honoring the day window and prefix filter)
and renames them using the rename schema from the config file. Collisions
are resolved with a sequence number.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, folder, err := resolveConfig(cmd, args)
		if err != nil {
			return err
		}

		schema, err := renamer.SchemaFromConfig(cfg.Rename)
		if err != nil {
			return err
		}

		records, _, err := dedupe.Collect(folder, cfg.CollectOptions())
		if err != nil {
			return err
		}

		activePreset := cfg.Rename.FileTypePreset
		if cmd.Flags().Changed("preset") {
			activePreset = preset
		}

		var paths []string
		for _, rec := range records {
			if renamer.MatchesPreset(rec.Path, activePreset) {
				paths = append(paths, rec.Path)
			}
		}

		result := renamer.Apply(paths, schema)

		for _, item := range result.Items {
			fmt.Printf("%s -> %s\n", item.From, item.To)
		}
		for _, rerr := range result.Errors {
			fmt.Fprintf(os.Stderr, "%s: %s\n", rerr.Path, rerr.Message)
		}
		fmt.Printf("\nRenamed %d files, skipped %d, %d errors\n",
			result.Renamed, result.Skipped, len(result.Errors))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long:  `Shows the config file location and the effective settings. With --init,
writes a default config file if none exists yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if initConfig {
			cfgPath, err := config.EnsureConfigExists()
			if err != nil {
				return err
			}
			fmt.Printf("Config file: %s\n", cfgPath)
			return nil
		}

		cfgPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n", cfgPath)
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Println("Config file does not exist. Using default configuration.")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("\nFolder: %s\nDays back: %d\nCriteria: %s\nHash cap: %s\nRecursive: %v\n",
			cfg.Folder, cfg.Days, describeCriteria(cfg), describeCap(cfg), cfg.IncludeSubfolders)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")

	for _, cmd := range []*cobra.Command{scanCmd, cleanCmd, renameCmd} {
		cmd.Flags().IntVar(&daysBack, "days", 0, "only consider files modified in the last N days (0 = all)")
		cmd.Flags().StringVar(&namePrefix, "prefix", "", "only consider files whose name starts with this prefix")
		cmd.Flags().BoolVar(&noRecurse, "no-recurse", false, "do not descend into subfolders")
	}

	for _, cmd := range []*cobra.Command{scanCmd, cleanCmd} {
		cmd.Flags().BoolVar(&useHash, "hash", false, "group by content hash")
		cmd.Flags().BoolVar(&useSize, "size", false, "group by file size")
		cmd.Flags().BoolVar(&useName, "name", false, "group by file name")
		cmd.Flags().BoolVar(&useMtime, "mtime", false, "group by modified time")
		cmd.Flags().BoolVar(&useMime, "mime", false, "group by MIME type")
		cmd.Flags().StringVar(&hashCap, "hash-cap", "", "skip hashing files larger than this size (e.g. 500MB, 0 = no cap)")
	}

	scanCmd.Flags().StringVar(&outputFmt, "output", "summary", "output format (summary, table, json, yaml, csv)")
	scanCmd.Flags().StringVar(&outputFile, "file", "", "save report to file")

	cleanCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be deleted without actually deleting")
	cleanCmd.Flags().BoolVar(&force, "force", false, "skip confirmation prompts")
	cleanCmd.Flags().BoolVar(&interactive, "interactive", false, "pick survivors in an interactive picker")
	cleanCmd.Flags().BoolVar(&permanent, "permanent", false, "delete permanently instead of using the trash")

	renameCmd.Flags().StringVar(&preset, "preset", "all", "file type preset (all, images, videos, audio, documents, archives)")

	configCmd.Flags().BoolVar(&initConfig, "init", false, "create a default config file if missing")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cfgPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(cfgPath)
}

// resolveConfig loads the config file and overlays any flags the user set.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("days") {
		cfg.Days = daysBack
	}
	if cmd.Flags().Changed("prefix") {
		cfg.NamePrefix = namePrefix
	}
	if cmd.Flags().Changed("no-recurse") {
		cfg.IncludeSubfolders = !noRecurse
	}

	// Criteria flags replace the configured set as a whole when any is set.
	if anyFlagChanged(cmd, "hash", "size", "name", "mtime", "mime") {
		cfg.UseHash = useHash
		cfg.UseSize = useSize
		cfg.UseName = useName
		cfg.UseMtime = useMtime
		cfg.UseMime = useMime
	}

	if cmd.Flags().Changed("hash-cap") {
		capBytes, err := utils.ParseSize(hashCap)
		if err != nil {
			return nil, "", fmt.Errorf("invalid --hash-cap: %w", err)
		}
		if capBytes == 0 {
			cfg.HashLimitEnabled = false
		} else {
			cfg.HashLimitEnabled = true
			cfg.HashMaxMB = int(capBytes / utils.MB)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	folder := cfg.Folder
	if len(args) > 0 {
		folder = args[0]
	}
	if folder == "" {
		folder = config.DefaultFolder()
	}
	return cfg, folder, nil
}

func anyFlagChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func runScan(cfg *config.Config, folder string) (*reporter.Report, error) {
	start := time.Now()

	prog := progress.NewReporter()
	updates := prog.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range updates {
			if sp, ok := update.(*progress.ScanProgress); ok {
				fmt.Fprintf(os.Stderr, "\r\033[K%s", progress.FormatScanProgress(sp))
			}
		}
	}()

	prog.UpdateScanProgress(&progress.ScanProgress{
		Phase: progress.PhaseCollecting, Folder: folder, StartTime: start,
	})

	records, skipped, err := dedupe.Collect(folder, cfg.CollectOptions())
	if err != nil {
		prog.Unsubscribe(updates)
		<-done
		fmt.Fprintln(os.Stderr)
		return nil, err
	}

	grouper := dedupe.Grouper{
		Criteria: cfg.Criteria(),
		HashCap:  cfg.HashCapBytes(),
		Progress: func(hashed, total int) {
			prog.UpdateScanProgress(&progress.ScanProgress{
				Phase: progress.PhaseHashing, Folder: folder,
				FilesFound: len(records), Hashed: hashed, HashTotal: total,
				StartTime: start,
			})
		},
	}
	outcome := grouper.Group(records)

	prog.UpdateScanProgress(&progress.ScanProgress{
		Phase: progress.PhaseComplete, Folder: folder,
		FilesFound: len(records), Groups: len(outcome.Groups),
		StartTime: start,
	})
	prog.Unsubscribe(updates)
	<-done
	fmt.Fprintln(os.Stderr)

	persistRecentFolder(cfg, folder)

	return &reporter.Report{
		Root:        folder,
		Outcome:     outcome,
		Scanned:     len(records),
		ScanSkipped: skipped.Total(),
		Elapsed:     time.Since(start),
	}, nil
}

// persistRecentFolder records the scanned folder in the config file's
// history. Only an existing config file is updated; scanning never creates
// one as a side effect.
func persistRecentFolder(cfg *config.Config, folder string) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.GetConfigPath(); err != nil {
			return
		}
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	cfg.AddRecentFolder(folder)
	if err := config.Save(cfg, path); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not update config: %v\n", err)
	}
}

func parseFormat(format string) reporter.OutputFormat {
	switch format {
	case "json":
		return reporter.FormatJSON
	case "yaml":
		return reporter.FormatYAML
	case "csv":
		return reporter.FormatCSV
	case "table":
		return reporter.FormatTable
	default:
		return reporter.FormatSummary
	}
}

func describeCriteria(cfg *config.Config) string {
	var parts []string
	if cfg.UseHash {
		parts = append(parts, "hash")
	}
	if cfg.UseSize {
		parts = append(parts, "size")
	}
	if cfg.UseName {
		parts = append(parts, "name")
	}
	if cfg.UseMtime {
		parts = append(parts, "mtime")
	}
	if cfg.UseMime {
		parts = append(parts, "mime")
	}
	return strings.Join(parts, ", ")
}

func describeCap(cfg *config.Config) string {
	if capBytes := cfg.HashCapBytes(); capBytes > 0 {
		return utils.FormatBytes(capBytes)
	}
	return "none"
}
