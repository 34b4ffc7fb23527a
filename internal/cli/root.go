package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/simpleupdown/updown/locales"
	"github.com/simpleupdown/updown/pkg/config"
	"github.com/simpleupdown/updown/pkg/environment"
	"github.com/simpleupdown/updown/pkg/expiry"
	"github.com/simpleupdown/updown/pkg/i18n"
	"github.com/simpleupdown/updown/pkg/logger"
	"github.com/simpleupdown/updown/pkg/requestid"
	"github.com/simpleupdown/updown/pkg/updown"
)

// Option configures the root command.
type Option func(*app)

// WithEnvironment reads configuration from vars instead of the process
// environment and skips .env loading.
func WithEnvironment(vars map[string]string) Option {
	return func(a *app) { a.env = vars }
}

// app holds what PersistentPreRunE resolves for the subcommands.
type app struct {
	env map[string]string

	// persistent flags
	langFlag    string
	baseURLFlag string
	verbose     bool

	cfg    AppConfig
	logger *slog.Logger
	tr     *i18n.Translator
	lang   string
}

// NewRootCommand returns the updown command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "updown",
		Short: "Command-line client for the simple-updown file sharing service",
		Long: `updown lists the files of a simple-updown backend with their remaining
lifetime, downloads and deletes them, prints share links and archives files
that are about to expire.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
	}

	root.PersistentFlags().StringVar(&a.langFlag, "lang", "", "Display language (ko, en); defaults to UPDOWN_LANG or the system locale")
	root.PersistentFlags().StringVar(&a.baseURLFlag, "base-url", "", "Backend URL (overrides UPDOWN_BASE_URL)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		newListCommand(a),
		newInspectCommand(a),
		newDeleteCommand(a),
		newDownloadCommand(a),
		newShareCommand(a),
		newArchiveCommand(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	parseOpts := []config.ParseOption{}
	if a.env != nil {
		parseOpts = append(parseOpts, config.WithEnvironment(a.env))
	} else if err := config.LoadEnv(); err != nil {
		return err
	}
	if err := config.Parse(&a.cfg, parseOpts...); err != nil {
		return err
	}
	if a.baseURLFlag != "" {
		a.cfg.BaseURL = a.baseURLFlag
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(a.cfg.AppEnv, "updown"),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	level, err := logger.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: LOG_LEVEL: %w", ErrInvalidConfig, err)
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	logOpts = append(logOpts, logger.WithLevel(level))
	if a.cfg.LogFormat != "" {
		format, err := logger.ParseFormat(a.cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("%w: LOG_FORMAT: %w", ErrInvalidConfig, err)
		}
		logOpts = append(logOpts, logger.WithFormat(format))
	}
	a.logger = logger.New(logOpts...)

	ctx := environment.WithContext(cmd.Context(), environment.Parse(a.cfg.AppEnv))
	cmd.SetContext(ctx)

	a.tr, err = i18n.NewTranslator(ctx,
		i18n.NewFSAdapter(locales.FS, ".", i18n.NewYAMLParser()),
		i18n.WithLogger(a.logger.With(logger.Component("i18n"))),
		i18n.WithMissingTranslationsLogging(environment.IsDevelopment(ctx)),
	)
	if err != nil {
		return err
	}
	a.lang = a.tr.Match(a.langFlag, a.cfg.Lang, a.cfg.LCAll, a.cfg.LCMessages, a.cfg.Locale)

	a.logger.DebugContext(ctx, "configuration loaded",
		logger.URL(a.cfg.BaseURL), slog.String("lang", a.lang))
	return nil
}

func (a *app) clock(soonHours int) (*expiry.Clock, error) {
	opts, err := a.cfg.clockOptions(soonHours)
	if err != nil {
		return nil, err
	}
	opts = append(opts, expiry.WithLabels(expiry.NewTranslatedLabels(a.tr, a.lang)))
	return expiry.New(opts...), nil
}

func (a *app) client() (*updown.Client, error) {
	return updown.NewClient(a.cfg.BaseURL,
		updown.WithTimeout(a.cfg.Timeout),
		updown.WithRetries(a.cfg.Retries),
		updown.WithLogger(a.logger),
	)
}

func (a *app) text(key, fallback string, args ...string) string {
	return a.tr.Td(a.lang, key, fallback, args...)
}

func parseBuckets(names []string) ([]expiry.Bucket, error) {
	buckets := make([]expiry.Bucket, 0, len(names))
	for _, n := range names {
		b, err := expiry.ParseBucket(n)
		if err != nil {
			return nil, errors.Join(ErrInvalidArgument, err)
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
