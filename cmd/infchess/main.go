// infchess validates infinite chess game files: it replays every move as an
// untrusted move, reports where each game ended and the first illegal move,
// and can count move trees or draw final positions.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/infinite-chess-go/internal/config"
	"github.com/lgbarn/infinite-chess-go/internal/hashing"
	"github.com/lgbarn/infinite-chess-go/internal/worker"
)

const programVersion = "0.1.0"

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1 // some game failed to load or contained an illegal move
	exitUsage   = 2
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(exitOK)
	}

	if *version {
		fmt.Printf("infchess version %s\n", programVersion)
		os.Exit(exitOK)
	}

	os.Exit(run(flag.Args()))
}

// run validates the game files named by args and the -f list.
func run(args []string) int {
	b := configFromFlags()
	if err := b.Build().Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	var files closers
	defer files.closeAll()

	for _, setup := range []func(*config.ConfigBuilder, *closers) error{
		setupLogFile, setupOutputFile, setupDuplicateFile,
	} {
		if err := setup(b, &files); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitUsage
		}
	}
	cfg := b.Build()
	if cfg.Output.SVGDir != "" {
		if err := os.MkdirAll(cfg.Output.SVGDir, 0o755); err != nil { //nolint:gosec // G301: output directory chosen by the user
			fmt.Fprintf(os.Stderr, "Error creating SVG directory %s: %v\n", cfg.Output.SVGDir, err)
			return exitUsage
		}
	}

	paths, err := collectInputs(args, *fileListFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "No game files given\n")
		usage()
		return exitUsage
	}

	detector := setupDuplicateDetector(cfg)
	if *checkFile != "" {
		if err := seedDuplicates(cfg, detector, *checkFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitUsage
		}
	}
	stats, err := processFiles(paths, newProcessingContext(cfg, detector))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing reports: %v\n", err)
		return exitInvalid
	}

	reportStatistics(cfg, detector, stats)
	if !stats.ok() {
		return exitInvalid
	}
	return exitOK
}

// closers collects the files opened for a run.
type closers []io.Closer

func (c *closers) add(f io.Closer) {
	*c = append(*c, f)
}

func (c closers) closeAll() {
	for _, f := range c {
		_ = f.Close()
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(b *config.ConfigBuilder, files *closers) error {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			return fmt.Errorf("creating log file %s: %w", *logFile, err)
		}
		files.add(file)
		b.WithLogFile(file)
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", *appendLog, err)
		}
		files.add(file)
		b.WithLogFile(file)
	}
	return nil
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(b *config.ConfigBuilder, files *closers) error {
	if *outputFile == "" {
		return nil
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		return fmt.Errorf("creating output file %s: %w", *outputFile, err)
	}
	files.add(file)
	b.WithOutput(file)
	return nil
}

// setupDuplicateFile configures the duplicate output file.
func setupDuplicateFile(b *config.ConfigBuilder, files *closers) error {
	if *duplicateFile == "" {
		return nil
	}

	file, err := os.Create(*duplicateFile)
	if err != nil {
		return fmt.Errorf("creating duplicate file %s: %w", *duplicateFile, err)
	}
	files.add(file)
	b.WithDuplicateFile(file)
	return nil
}

// setupDuplicateDetector creates the detector shared by all workers, or nil
// when duplicates are not looked for.
func setupDuplicateDetector(cfg *config.Config) *hashing.ThreadSafeDuplicateDetector {
	if !cfg.Duplicate.Suppress && cfg.Duplicate.DuplicateFile == nil && *checkFile == "" {
		return nil
	}
	cfg.Duplicate.Suppress = true
	return hashing.NewThreadSafeDuplicateDetector(*exactDuplicates, *duplicateCapacity)
}

// seedDuplicates replays the games listed in listFile and marks their final
// positions as seen, so games ending the same way are treated as
// duplicates. Unreadable check games are logged and skipped.
func seedDuplicates(cfg *config.Config, detector *hashing.ThreadSafeDuplicateDetector, listFile string) error {
	paths, err := collectInputs(nil, listFile)
	if err != nil {
		return err
	}
	seen := hashing.NewDuplicateDetector(*exactDuplicates, *duplicateCapacity)
	replayer := worker.NewReplayer(cfg, nil)
	for _, path := range paths {
		sig, err := replayer.Fingerprint(path)
		if err != nil {
			cfg.Logf(1, "%s: %v\n", path, err)
			continue
		}
		seen.CheckAndAdd(sig)
	}
	detector.LoadFromDetector(seen)
	cfg.Logf(2, "%d position(s) loaded from %s\n", seen.UniqueCount(), listFile)
	return nil
}

// collectInputs lists the game files to validate: the arguments, with
// directories expanded to the YAML files they contain, followed by the
// entries of listFile.
func collectInputs(args []string, listFile string) ([]string, error) {
	names := slices.Clone(args)
	if listFile != "" {
		listed, err := readFileList(listFile)
		if err != nil {
			return nil, err
		}
		names = append(names, listed...)
	}

	var paths []string
	for _, name := range names {
		info, err := os.Stat(name)
		if err != nil || !info.IsDir() {
			// Missing files are reported per game.
			paths = append(paths, name)
			continue
		}
		found, err := gameFilesIn(name)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

// gameFilesIn returns the sorted .yaml and .yml files directly inside dir.
func gameFilesIn(dir string) ([]string, error) {
	var found []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		found = append(found, matches...)
	}
	slices.Sort(found)
	return found, nil
}

// readFileList reads one path per line, skipping blank lines and # comments.
func readFileList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, fmt.Errorf("opening file list %s: %w", path, err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file list %s: %w", path, err)
	}
	return paths, nil
}

// reportStatistics writes the run summary to the log.
func reportStatistics(cfg *config.Config, detector *hashing.ThreadSafeDuplicateDetector, stats runStats) {
	if detector != nil {
		cfg.Logf(1, "%d game(s) reported, %d duplicate(s) out of %d.\n", stats.reported, stats.duplicates, stats.total)
		cfg.Logf(2, "%d distinct final position(s), %d repeat(s).\n", detector.UniqueCount(), detector.DuplicateCount())
		if detector.IsFull() {
			cfg.Logf(1, "Duplicate table full: later positions were checked but not stored.\n")
		}
	} else {
		cfg.Logf(1, "%d game(s) reported out of %d.\n", stats.reported, stats.total)
	}
	if !stats.ok() {
		cfg.Logf(1, "%d game(s) with an illegal move, %d unreadable.\n", stats.illegal, stats.failed)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: infchess [options] [game-files or directories...]\n\n")
	fmt.Fprintf(os.Stderr, "Validates infinite chess games stored as YAML files.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExit status is 0 when every game is legal, 1 when a game\n")
	fmt.Fprintf(os.Stderr, "could not be read or contains an illegal move, 2 on usage errors.\n")
}
