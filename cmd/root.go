package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hankchat/hanktui/internal/app"
	"github.com/hankchat/hanktui/internal/config"
	"github.com/hankchat/hanktui/internal/log"
	"github.com/hankchat/hanktui/internal/paths"
	"github.com/hankchat/hanktui/internal/remote"
	"github.com/hankchat/hanktui/internal/storage/sqlite"
	"github.com/hankchat/hanktui/internal/transcript"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	noHistory bool
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "hanktui",
	Short:   "A terminal chat client for Hank",
	Long:    `A terminal user interface for chatting with a Hank server: a scrollable transcript, a multi-line composer, and background sync over HTTP polling.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/hanktui/config.yaml)")
	rootCmd.Flags().StringP("host", "H", "",
		"chat server host (overrides config)")
	rootCmd.Flags().IntP("port", "p", 0,
		"chat server port (overrides config)")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false,
		"start with an empty transcript and skip saving on exit")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log to hanktui-debug.log")

	// Bind flags and environment to viper
	_ = viper.BindPFlag("server.host", rootCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", rootCmd.Flags().Lookup("port"))
	_ = viper.BindEnv("server.host", "HANK_HOST")
	_ = viper.BindEnv("server.port", "HANK_PORT")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("server.host", defaults.Server.Host)
	viper.SetDefault("server.port", defaults.Server.Port)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_timestamps", defaults.UI.ShowTimestamps)
	viper.SetDefault("ui.time_format", defaults.UI.TimeFormat)
	viper.SetDefault("sync.poll_interval", defaults.Sync.PollInterval)
	viper.SetDefault("history.enabled", defaults.History.Enabled)
	viper.SetDefault("history.limit", defaults.History.Limit)

	path := paths.ResolveConfigPath(cfgFile)
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		// First run: seed the default config so the user has something
		// to edit. If the write fails we just run on defaults.
		if os.IsNotExist(err) {
			if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(_ *cobra.Command, _ []string) error {
	debug := os.Getenv("HANKTUI_DEBUG") != "" || debugFlag
	if debug {
		logPath := os.Getenv("HANKTUI_LOG")
		if logPath == "" {
			logPath = "hanktui-debug.log"
		}

		cleanup, err := log.InitWithTeaLog(logPath, "hanktui")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()

		log.Info(log.CatConfig, "hanktui starting", "debug", true, "logPath", logPath)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	serverURL := cfg.ServerURL()
	client := remote.NewClient(serverURL)
	store := transcript.NewStore()

	// Remember the effective server so plain `hanktui` reconnects to the
	// last one chosen via flags or environment.
	if err := config.SaveServer(paths.ResolveConfigPath(cfgFile), cfg.Server); err != nil {
		log.Warn(log.CatConfig, "Could not persist server selection", "error", err)
	}

	db := openHistory(serverURL, store)
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	model := app.New(cfg, client, store)
	if debug {
		model = model.WithDebug()
	}
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()

	// Best-effort save; a persistence failure must never turn a clean
	// exit into an error.
	if fm, ok := finalModel.(app.Model); ok {
		fm.Close()
		if db != nil {
			if saveErr := db.Messages().SaveRecent(serverURL, fm.Store().Messages(), cfg.History.Limit); saveErr != nil {
				log.ErrorErr(log.CatStore, "Saving history failed", saveErr)
			}
		}
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// openHistory opens the local history database and seeds the transcript
// with the most recent saved messages. Returns nil when history is
// disabled or unavailable; the chat works fine without it.
func openHistory(serverURL string, store *transcript.Store) *sqlite.DB {
	if noHistory || !cfg.History.Enabled {
		return nil
	}

	db, err := sqlite.NewDB(config.DefaultHistoryDBPath())
	if err != nil {
		log.ErrorErr(log.CatStore, "Opening history database failed", err)
		return nil
	}

	saved, err := db.Messages().LoadRecent(serverURL, cfg.History.Limit)
	if err != nil {
		log.ErrorErr(log.CatStore, "Loading saved history failed", err)
		return db
	}
	store.LoadSaved(saved)
	if len(saved) > 0 {
		store.AppendSystem(fmt.Sprintf("History loaded (%d messages)", len(saved)))
	} else {
		store.AppendSystem("New session")
	}
	log.Debug(log.CatStore, "Loaded saved history", "count", len(saved), "server", serverURL)
	return db
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
