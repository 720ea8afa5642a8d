package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/namegov/internal/config"
)

// globalOptions holds the persistent flags shared by every subcommand and the
// logger built from them.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{logger: logrus.New()}

	root := &cobra.Command{
		Use:           "namegov",
		Short:         "namegov: naming policy and compliance engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML configuration file (default: none)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", `Log format: "text" or "json"`)

	root.AddCommand(
		newSuggestNameCmd(opts),
		newValidateCmd(opts),
		newReportSLACmd(opts),
		newAuditCmd(opts),
		newDoctorCmd(opts),
		newVersionCmd(),
	)
	return root
}

// newLogger builds the CLI logger. Logs always go to w (stderr) so stdout
// carries only command output.
func newLogger(w io.Writer, level, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	logger.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid --log-format %q: must be text or json", format)
	}
	return logger, nil
}

// loadConfig reads the --config file. Without one an empty Config is
// returned and nothing is read from disk.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	if o.configPath == "" {
		return &config.Config{}, nil
	}
	var loader config.Loader = config.NewFileLoader(o.configPath)
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	o.logger.WithField("path", loader.ConfigPath()).Debug("Loaded configuration")
	return cfg, nil
}

// colorEnabled reports whether ANSI colors should be written to w: only for
// terminals, and never when NO_COLOR is set.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
