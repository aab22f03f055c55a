package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"taskgrid/internal/app"
	"taskgrid/internal/config"
	"taskgrid/internal/logging"
	"taskgrid/internal/storage"
	"taskgrid/internal/ui"
)

const envUser = "TASKGRID_USER"

type options struct {
	configPath string
	user       string
	dataDir    string
	backend    string
	logLevel   string

	stdin  io.Reader
	stderr io.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdin: stdin, stderr: stderr}
	root := &cobra.Command{
		Use:           "taskgrid",
		Short:         "Personal task tracker with list and calendar views",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $"+config.EnvConfigPath+" or the user config dir)")
	flags.StringVarP(&opts.user, "user", "u", os.Getenv(envUser), "username whose tasks to open")
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory holding task files (overrides config)")
	flags.StringVar(&opts.backend, "backend", "", "storage backend: json or sqlite (overrides config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newDeleteCmd(opts),
		newStatsCmd(opts),
		newCalendarCmd(opts),
	)
	return root
}

func (o *options) loadConfig() (config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.backend != "" {
		cfg.Backend = o.backend
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, cfg.Validate()
}

// openSession loads the configured user's tasks, logging to logger.
func (o *options) openSession(cfg config.Config, logger *log.Logger) (*app.Session, error) {
	if strings.TrimSpace(o.user) == "" {
		return nil, errors.New("no user given: pass --user or set " + envUser)
	}
	gw, err := storage.Open(storage.Backend(cfg.Backend), cfg.DataDir, o.user)
	if err != nil {
		return nil, err
	}
	s, err := app.Open(gw, logger)
	if err != nil {
		gw.Close()
		return nil, err
	}
	return s, nil
}

// headless prepares config, a stderr logger and the session for subcommands.
func (o *options) headless() (*app.Session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(o.stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return o.openSession(cfg, logger)
}

func runTUI(cmd *cobra.Command, o *options) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	if strings.TrimSpace(o.user) == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Enter username: ")
		line, err := bufio.NewReader(o.stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		o.user = strings.TrimSpace(line)
	}

	logger, logFile, err := logging.NewFile(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	session, err := o.openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer session.Close()
	logger.Info("session started", "user", o.user, "backend", cfg.Backend, "tasks", session.Store.Len())
	return ui.Run(session, cfg, logger)
}
