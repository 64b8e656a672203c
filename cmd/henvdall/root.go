package henvdall

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/railwayapp/henvdall/internal/config"
	"github.com/railwayapp/henvdall/internal/console"
)

// ErrIssuesFound is returned by audit when placeholder values were detected
var ErrIssuesFound = errors.New("placeholder values detected")

var (
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "henvdall",
	Short: "The Gatekeeper of Environment Variables - Ensure your .env stays in sync",
	Long: `Henvdall keeps your .env file in sync with its .env.example template:
- sync adds the template keys your .env is missing, asking for each value
- audit warns about values that still look like placeholders`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("failed to bind flags: %w", err)
		}
		if err := viper.BindPFlag("no_color", cmd.Flags().Lookup("no-color")); err != nil {
			return fmt.Errorf("failed to bind flags: %w", err)
		}

		var err error
		cfg, err = config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		logger, err = newLogger(cfg.Verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("Using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	// A second interrupt kills the process
	context.AfterFunc(ctx, stop)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// reportError prints err styled as an error. ErrIssuesFound is not printed.
func reportError(w io.Writer, err error) {
	if errors.Is(err, ErrIssuesFound) {
		return
	}
	noColor := cfg != nil && cfg.NoColor
	console.NewRenderer(w, console.WithNoColor(noColor)).Error(err)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.henvdall.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".henvdall")
	}

	config.SetDefaults(viper.GetViper())
	config.ConfigureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Failed to read config file:", err)
		}
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		viper.SetDefault("no_color", true)
	}
}

// newLogger builds a console logger on stderr that only shows warnings
// unless verbose is set
func newLogger(verbose bool) (*zap.Logger, error) {
	logConfig := zap.NewProductionConfig()
	logConfig.Encoding = "console"
	logConfig.OutputPaths = []string{"stderr"}
	logConfig.ErrorOutputPaths = []string{"stderr"}
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return logConfig.Build()
}
