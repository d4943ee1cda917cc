package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/evanschultz/plank/internal/adapters/storage/memory"
	"github.com/evanschultz/plank/internal/adapters/storage/sqlite"
	"github.com/evanschultz/plank/internal/app"
	"github.com/evanschultz/plank/internal/board"
	"github.com/evanschultz/plank/internal/config"
	"github.com/evanschultz/plank/internal/platform"
	"github.com/evanschultz/plank/internal/tui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// version is stamped at release time.
var version = "dev"

// program is the slice of tea.Program that run depends on.
type program interface {
	Run() (tea.Model, error)
}

// programFactory builds the board program; tests swap it for a fake.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

func main() {
	root := newRootCommand(os.Stdout, os.Stderr)
	if err := fang.Execute(context.Background(), root, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// run executes the command tree without fang styling.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// cliOptions holds the persistent flag values.
type cliOptions struct {
	configPath string
	appName    string
	devMode    bool
}

// newRootCommand wires the plank command tree.
func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	opts := &cliOptions{appName: platform.DefaultAppName, devMode: version == "dev"}
	if envDev, ok := parseBoolEnv("PLANK_DEV_MODE"); ok {
		opts.devMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("PLANK_APP_NAME")); envApp != "" {
		opts.appName = envApp
	}

	root := &cobra.Command{
		Use:           "plank",
		Short:         "A two-column project board for the terminal",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBoard(cmd.Context(), opts, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML")
	flags.StringVar(&opts.appName, "app", opts.appName, "application name for config/data path resolution")
	flags.BoolVar(&opts.devMode, "dev", opts.devMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(&cobra.Command{
		Use:   "paths",
		Short: "Print resolved config and data paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printPaths(cmd.OutOrStdout(), opts)
		},
	})
	return root
}

// printPaths writes the resolved runtime paths.
func printPaths(out io.Writer, opts *cliOptions) error {
	paths, err := platform.Resolve(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "app: %s\n", opts.appName)
	_, _ = fmt.Fprintf(out, "dev_mode: %t\n", opts.devMode)
	_, _ = fmt.Fprintf(out, "config: %s\n", resolveConfigPath(opts.configPath, paths))
	_, _ = fmt.Fprintf(out, "data_dir: %s\n", paths.DataDir)
	_, _ = fmt.Fprintf(out, "log_dir: %s\n", paths.LogDir)
	return nil
}

// resolveConfigPath picks the flag, then PLANK_CONFIG, then the platform default.
func resolveConfigPath(flagPath string, paths platform.Paths) string {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p
	}
	if envPath := strings.TrimSpace(os.Getenv("PLANK_CONFIG")); envPath != "" {
		return envPath
	}
	return paths.ConfigPath
}

// runBoard loads config, opens storage and runs the board until the user quits.
func runBoard(ctx context.Context, opts *cliOptions, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	paths, err := platform.Resolve(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return err
	}

	configPath := resolveConfigPath(opts.configPath, paths)
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return fmt.Errorf("load config %q: %w", configPath, err)
	}

	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, cfg.Logging, paths.LogDir, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// The board owns the terminal; runtime logs go to the dev file only.
	logger.SetConsoleEnabled(false)
	defer func() {
		_ = logger.Close()
	}()

	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode)
	logger.Info("configuration loaded", "config_path", configPath, "backend", cfg.Storage.Backend, "log_level", cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	repo, closeRepo, err := openRepository(cfg.Storage.Backend)
	if err != nil {
		logger.Error("repository open failed", "backend", cfg.Storage.Backend, "err", err)
		return fmt.Errorf("open %s repository: %w", cfg.Storage.Backend, err)
	}
	defer func() {
		if closeErr := closeRepo(); closeErr != nil {
			logger.Warn("repository close failed", "backend", cfg.Storage.Backend, "err", closeErr)
		}
	}()
	logger.Info("repository ready", "backend", cfg.Storage.Backend)

	store := app.NewStore(repo, uuid.NewString, time.Now, app.WithLogger(logger.FileSink()))
	model := tui.NewModel(store,
		tui.WithContext(ctx),
		tui.WithFormConfig(toFormConfig(cfg.Validation)),
		tui.WithShowDescriptions(cfg.Board.ShowDescriptions),
		tui.WithKeyConfig(tui.KeyConfig{
			NewProject: cfg.Keys.NewProject,
			CardInfo:   cfg.Keys.CardInfo,
			Grab:       cfg.Keys.Grab,
			CopyID:     cfg.Keys.CopyID,
		}),
	)

	logger.Info("starting tui program loop")
	if _, err := programFactory(model).Run(); err != nil {
		logger.Error("tui program failed", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("tui program exited")
	return nil
}

// openRepository builds the configured repository and its close func.
func openRepository(backend config.StorageBackend) (app.Repository, func() error, error) {
	switch backend {
	case config.StorageSQLite:
		repo, err := sqlite.OpenInMemory()
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case config.StorageMemory, "":
		return memory.New(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", backend)
	}
}

// toFormConfig maps TOML validation settings onto the form.
func toFormConfig(v config.ValidationConfig) board.FormConfig {
	return board.FormConfig{
		Policy:               v.Reject,
		TitleRequired:        v.TitleRequired,
		DescriptionMinLength: config.Bound(v.DescriptionMinLength),
		DescriptionMaxLength: config.Bound(v.DescriptionMaxLength),
		PeopleMin:            config.Bound(v.PeopleMin),
		PeopleMax:            config.Bound(v.PeopleMax),
	}
}

// parseBoolEnv reads a boolean environment variable.
func parseBoolEnv(name string) (bool, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false
	}
	return v, true
}
