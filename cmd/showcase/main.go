package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/showcase/internal/config"
	"github.com/h0rv/showcase/internal/domain"
	"github.com/h0rv/showcase/internal/logger"
	"github.com/h0rv/showcase/internal/posts"
	"github.com/h0rv/showcase/internal/prefs"
	"github.com/h0rv/showcase/internal/submit"
	"github.com/h0rv/showcase/internal/theme"
	"github.com/h0rv/showcase/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "showcase",
		Short: "Terminal showcase with themes, remote posts and a contact form",
		Long: `showcase is a small interactive terminal page.

  Home     cycle the visual theme; the choice is remembered
  Posts    fetch the latest posts and view their details
  Contact  fill in and send a validated contact form

Configuration is read from $HOME/.showcase.yaml (or --config) and
SHOWCASE_* environment variables, e.g. SHOWCASE_API_TRANSPORT=graphql.`,
		SilenceUsage: true,
		RunE:         run,
	}

	cobra.OnInitialize(initConfig)

	// Flags are not bound to viper; they override config and environment only
	// when set explicitly.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.showcase.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("transport", posts.TransportREST, "post source transport (rest, graphql)")

	rootCmd.AddCommand(newPostsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".showcase")
	}

	config.ConfigureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			cobra.CheckErr(fmt.Errorf("failed to read config: %w", err))
		}
	}
}

// loadConfig resolves the configuration, applying explicitly set flags last.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	if f := flags.Lookup("log-level"); f != nil && f.Changed {
		viper.Set("logging.level", f.Value.String())
	}
	if f := flags.Lookup("transport"); f != nil && f.Changed {
		viper.Set("api.transport", f.Value.String())
	}
	return config.FromViper(viper.GetViper())
}

// newLogger opens the diagnostics log file. The returned closer is never nil.
func newLogger(cfg config.LoggingConfig) (*logger.Logger, func() error, error) {
	f, err := logger.OpenFile(cfg.File)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	log, err := logger.New(logger.Options{
		Level:         cfg.Level,
		HumanReadable: cfg.Human,
		Writer:        f,
	})
	if err != nil {
		_ = f.Close()
		return nil, func() error { return nil }, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, f.Close, nil
}

// newSource creates the post source selected by cfg.
func newSource(cfg config.APIConfig, log *logger.Logger) (posts.Source, error) {
	return posts.New(posts.Config{
		Transport:  cfg.Transport,
		BaseURL:    cfg.BaseURL,
		GraphQLURL: cfg.GraphQLURL,
		Timeout:    cfg.Timeout,
		Logger:     log,
	})
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	store, closeStore, err := prefs.Open(cfg.Prefs.Backend, cfg.Prefs.ResolvedPath())
	if err != nil {
		// The page still works; the theme just is not remembered.
		log.Error(err, "failed to open preference store, using memory")
		store = prefs.NewMemoryStore()
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error(err, "failed to close preference store")
		}
	}()

	source, err := newSource(cfg.API, log)
	if err != nil {
		return err
	}

	log.WithFields(map[string]any{
		"transport": cfg.API.Transport,
		"prefs":     cfg.Prefs.Backend,
	}).Info("starting showcase")

	ctx := context.Background()
	app := tui.NewAppModel(ctx, tui.Deps{
		Source:    source,
		Submitter: submit.NewSimulated(log),
		Cycle:     theme.NewCycle(domain.Themes(), store, log),
		BaseURL:   strings.TrimRight(cfg.API.BaseURL, "/"),
		Log:       log,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
