package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"upload-collector/internal/config"
	"upload-collector/internal/dropzone"
	"upload-collector/internal/localfs"
	"upload-collector/internal/logging"
	"upload-collector/internal/manifest"
	"upload-collector/internal/progress"
	"upload-collector/internal/session"
	"upload-collector/internal/walker"
)

type options struct {
	configPath string
	verbose    bool
	quiet      bool
	workers    int
	outputPath string
	against    string
	noHash     bool
}

// app is the state shared by every command of one invocation.
type app struct {
	opts    *options
	cfg     *config.Config
	logger  zerolog.Logger
	session *session.Session
	scan    *progress.Bar
}

func (o *options) load() (*app, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if o.workers > 0 {
		cfg.Workers = o.workers
	}
	if o.outputPath != "" {
		cfg.OutputFile = o.outputPath
	}

	logger := logging.NewDefault(o.verbose)
	a := &app{
		opts:    o,
		cfg:     cfg,
		logger:  logger,
		session: session.New(logger),
	}

	a.scan = progress.NewWithWriter("Scanning", 0, a.progressWriter())
	a.session.Observer = a.scan
	return a, nil
}

func (a *app) progressWriter() io.Writer {
	if a.opts.quiet {
		return nil
	}
	return os.Stderr
}

func (a *app) reportSkipped(result *walker.Result) {
	for _, err := range result.Errors {
		fmt.Fprintf(os.Stderr, "  skipped: %v\n", err)
	}
	if result.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "  %d dropped item(s) had no file or directory\n", result.Skipped)
	}
}

// finish fingerprints the queue, prints it and writes the manifest.
func (a *app) finish(w io.Writer) error {
	records := a.session.Snapshot()

	var hashes map[int]string
	if !a.opts.noHash {
		files := 0
		for _, r := range records {
			if !r.IsDirectoryMarker() {
				files++
			}
		}

		bar := progress.NewWithWriter("Hashing", int64(files), a.progressWriter())
		hashResult, err := walker.HashFiles(records, a.cfg.Workers, bar)
		if err != nil {
			return fmt.Errorf("failed to hash files: %w", err)
		}
		bar.Finish()

		hashes = hashResult.Hashes
		for _, err := range hashResult.Errors {
			a.logger.Warn().Err(err).Msg("could not fingerprint file")
		}
	}

	m, err := manifest.Build(a.session.ID(), records, hashes)
	if err != nil {
		return fmt.Errorf("failed to build manifest: %w", err)
	}

	fmt.Fprintf(w, "Pending uploads (%d):\n", len(m.Entries))
	for _, e := range m.Entries {
		if e.Directory {
			fmt.Fprintf(w, "  %10s  %s/\n", "<dir>", e.Path)
			continue
		}
		fmt.Fprintf(w, "  %10d  %s\n", e.Size, e.Path)
	}
	fmt.Fprintf(w, "\n  Files: %d, Directories: %d, Root: %s\n", m.Files(), len(m.Entries)-m.Files(), m.Root)

	if a.opts.against != "" {
		previous, err := manifest.Load(a.opts.against)
		if err != nil {
			return fmt.Errorf("failed to load manifest: %w", err)
		}
		fmt.Fprintln(w)
		fmt.Fprint(w, manifest.FormatReport(manifest.Compare(previous, m)))
	}

	if a.cfg.OutputFile != "" {
		if err := manifest.Save(m, a.cfg.OutputFile); err != nil {
			return fmt.Errorf("failed to save manifest: %w", err)
		}
		fmt.Fprintf(w, "  Manifest: %s\n", a.cfg.OutputFile)
	}

	return nil
}

func newPickCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pick [directory]",
		Short: "Add a whole directory tree to the upload queue",
		Long: `Add a directory and everything below it to the upload queue.

Without an argument the directory is asked for interactively; an empty
answer cancels and nothing is queued.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.load()
			if err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			picker := localfs.NewPicker(path, localfs.OptionsFromConfig(a.cfg))
			if !a.session.PickerVisible(picker) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Directory picker unavailable: pass a directory or run in a terminal.")
				return nil
			}

			result, err := a.session.PickDirectory(cmd.Context(), picker)
			a.scan.Finish()
			if errors.Is(err, walker.ErrPickerCancelled) {
				a.logger.Debug().Err(err).Msg("picker cancelled")
				fmt.Fprintln(cmd.ErrOrStderr(), "No directory selected.")
				return nil
			}
			if err != nil {
				return err
			}

			a.reportSkipped(result)
			return a.finish(cmd.OutOrStdout())
		},
	}
}

func newDropCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <path>...",
		Short: "Add dropped files and directories to the upload queue",
		Long: `Add any mix of files and directories, as if dragged onto the window.

Directories are read in batches of batch_size entries. Paths that do not
exist are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.load()
			if err != nil {
				return err
			}

			items := localfs.DropItems(args, localfs.OptionsFromConfig(a.cfg))
			result, err := a.session.Drop(cmd.Context(), items)
			a.scan.Finish()
			if err != nil {
				return fmt.Errorf("failed to read dropped items: %w", err)
			}

			a.reportSkipped(result)
			return a.finish(cmd.OutOrStdout())
		},
	}
}

func newSelectCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "select <file>...",
		Short: "Add individually selected files to the upload queue",
		Long: `Add individual files. Each file is checked against accept, exclude and
max_file_size from the config; rejected files are reported and not queued.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.load()
			if err != nil {
				return err
			}

			change := dropzone.FilterFromConfig(a.cfg).Select(args)
			a.session.AddSelected(change)
			for _, r := range change.Rejected {
				fmt.Fprintf(cmd.ErrOrStderr(), "  rejected: %s (%s)\n", r.Name, r.Reason)
			}

			return a.finish(cmd.OutOrStdout())
		},
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:   "upload-collector",
		Short: "Collect files and directory trees into an upload queue",
		Long: `upload-collector turns a picked directory, a set of dropped paths or a
manual file selection into one ordered list of pending uploads.

Directories appear before their contents, each entry carries its relative
path, and the list can be saved as a JSON manifest with a merkle root.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "config.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVarP(&o.quiet, "quiet", "q", false, "Hide progress output")
	rootCmd.PersistentFlags().IntVarP(&o.workers, "workers", "w", 0, "Number of hashing goroutines (0 = from config)")
	rootCmd.PersistentFlags().StringVarP(&o.outputPath, "output", "o", "", "Write the manifest JSON to this path")
	rootCmd.PersistentFlags().StringVar(&o.against, "against", "", "Compare the queue with a previously saved manifest")
	rootCmd.PersistentFlags().BoolVar(&o.noHash, "no-hash", false, "Skip content fingerprints")

	rootCmd.AddCommand(newPickCmd(o), newDropCmd(o), newSelectCmd(o))
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
