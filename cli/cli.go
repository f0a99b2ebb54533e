package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Oudwins/seedance/internals/conf"
	"github.com/Oudwins/seedance/internals/env"
	"github.com/Oudwins/seedance/internals/logging"
	"github.com/Oudwins/seedance/internals/version"
	"github.com/Oudwins/seedance/sdk"
)

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.New("invalid usage")

type app struct {
	apiKey     string
	baseURL    string
	configPath string
	jsonOutput bool
	verbose    bool

	stdout io.Writer
	stderr io.Writer

	config     *conf.Config
	logger     *slog.Logger
	httpClient *http.Client
}

// Run executes the seedance command line with args, excluding the program name.
func Run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) error {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "seedance",
		Short:         "Create and manage Seedance video generation tasks",
		Version:       version.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.apiKey, "api-key", "", "API key (overrides ARK_API_KEY and .env)")
	flags.StringVar(&a.baseURL, "base-url", "", "API base URL (overrides ARK_BASE_URL)")
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.seedance/config.json)")
	flags.BoolVar(&a.jsonOutput, "json", false, "output raw JSON")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		a.createCommand(),
		a.getCommand(),
		a.waitCommand(),
		a.listCommand(),
		a.cancelCommand(),
	)
	return root
}

// setup loads the config file and builds the logger. Level precedence is
// SEEDANCE_LOG_LEVEL, then --verbose, then warn.
func (a *app) setup() error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	envs, err := env.Load()
	if err != nil {
		return err
	}
	if envs.LOG_LEVEL != "" {
		level, err = logging.ParseLevel(envs.LOG_LEVEL)
		if err != nil {
			return fmt.Errorf("SEEDANCE_LOG_LEVEL: %w", err)
		}
	}
	a.logger = logging.New(a.stderr, level)

	path := a.configPath
	if path == "" {
		if path, err = conf.DefaultPath(); err != nil {
			a.logger.Warn("could not resolve config path, using defaults", "error", err)
		}
	}
	config, err := conf.Load(path)
	if err != nil {
		return err
	}
	a.config = config
	a.logger.Debug("config loaded", "path", path)
	return nil
}

func (a *app) newClient() (*sdk.Client, error) {
	opts := []sdk.Option{
		sdk.WithAPIKey(a.apiKey),
		sdk.WithBaseURL(a.baseURL),
		sdk.WithTimeout(a.config.Request.TimeoutDuration()),
		sdk.WithLogger(a.logger),
	}
	if a.httpClient != nil {
		opts = append(opts, sdk.WithHTTPClient(a.httpClient))
	}
	return sdk.NewClient(opts...)
}

// Report prints err the way the command line shows failures, including the
// server's response body for API errors.
func Report(w io.Writer, err error) {
	if apiErr, ok := sdk.AsAPIError(err); ok {
		fmt.Fprintf(w, "API Error: %v\n", err)
		if len(apiErr.RawBody) > 0 {
			fmt.Fprintf(w, "   Details: %s\n", apiErr.RawBody)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	if errors.Is(err, ErrUsage) {
		fmt.Fprintln(w, "Run 'seedance --help' for usage.")
	}
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
