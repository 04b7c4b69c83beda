package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benjaminschreck/go-mailmacro/pkg/macro"
)

const version = "0.1.0"

var (
	cfgFile string
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "mailmacro",
	Short: "Expand /{...} macros in letters",
	Long: `mailmacro expands the /{...} placeholders of a letter: receiver and sender
names, device and time variables, random draws, IP and weather lookups and the
/{Key=Val=Text}, /{Key!=Val=Text} and /{Key:Text} conditionals.

Configuration is read, lowest priority first, from .mailmacro.yml, MAILMACRO_*
environment variables and command-line flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mailmacro version %s\n", version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .mailmacro.yml)")
	flags.StringP("log-level", "l", "warn", "log level (debug, info, warn, error, off)")
	flags.String("locale", "", "locale for weekday, meridiem and coin labels (ko, en, ja)")
	flags.Duration("lookup-timeout", 0, "timeout for each IP or weather lookup")

	for _, name := range []string{"log-level", "locale", "lookup-timeout"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(versionCmd, expandCmd, serveCmd, lettersCmd)
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".mailmacro")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MAILMACRO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func initLogger() error {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := strings.ToLower(viper.GetString("log-level"))
	if level == "off" {
		logger = zap.NewNop()
	} else {
		zapLevel, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		config.Level = zap.NewAtomicLevelAt(zapLevel)
		if logger, err = config.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	macro.SetLogger(macro.FromZap(logger))
	return nil
}

// engineConfig layers viper settings over the MAILMACRO_* environment.
func engineConfig() (*macro.Config, error) {
	config := macro.ConfigFromEnvironment()
	if v := viper.GetString("locale"); v != "" {
		config.Locale = v
	}
	if v := viper.GetDuration("lookup-timeout"); v > 0 {
		config.LookupTimeout = v
	}
	if v := viper.GetString("log-level"); v != "" {
		config.LogLevel = v
	}
	for key, target := range map[string]*string{
		"ip-lookup-url":      &config.IPLookupURL,
		"weather-lookup-url": &config.WeatherLookupURL,
		"fallback-ip":        &config.FallbackIP,
		"fallback-weather":   &config.FallbackWeather,
	} {
		if viper.IsSet(key) {
			*target = viper.GetString(key)
		}
	}
	if viper.IsSet("max-concurrency") {
		config.MaxConcurrency = viper.GetInt("max-concurrency")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
