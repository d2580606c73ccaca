package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/kamerwatch/internal/model"
)

// Set at build time via -ldflags
var version = "v0.3.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kamerwatch",
	Short: "kamerwatch - structured records from Belgian Chamber transcripts",
	Long: `kamerwatch crawls the published transcripts of the Belgian Chamber of
Representatives and turns them into structured records.

Plenary and committee transcripts are parsed into meetings, oral questions,
propositions and roll-call votes with named voters. Legislative dossiers
referenced by those meetings are downloaded and parsed as well.

Records are written to SQLite and, optionally, to JSON files.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kamerwatch %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.kamerwatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".kamerwatch"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// KAMERWATCH_HTTP_USER_AGENT overrides http.user_agent
	viper.SetEnvPrefix("KAMERWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper(), model.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so that environment variables
// reach keys absent from the config file
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("session", cfg.Session)
	v.SetDefault("data_dir", cfg.DataDir)

	v.SetDefault("http.timeout", cfg.HTTP.Timeout)
	v.SetDefault("http.user_agent", cfg.HTTP.UserAgent)
	v.SetDefault("http.max_body_bytes", cfg.HTTP.MaxBodyBytes)
	v.SetDefault("http.max_retries", cfg.HTTP.MaxRetries)
	v.SetDefault("http.respect_robots", cfg.HTTP.RespectRobots)
	v.SetDefault("http.insecure_tls", cfg.HTTP.InsecureTLS)
	v.SetDefault("http.http_proxy", cfg.HTTP.HTTPProxy)
	v.SetDefault("http.https_proxy", cfg.HTTP.HTTPSProxy)
	v.SetDefault("http.no_proxy", cfg.HTTP.NoProxy)

	v.SetDefault("rate_limiting.requests_per_second", cfg.RateLimiting.RequestsPerSecond)
	v.SetDefault("rate_limiting.burst_size", cfg.RateLimiting.BurstSize)

	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)

	v.SetDefault("concurrency.dossier_workers", cfg.Concurrency.DossierWorkers)
	v.SetDefault("crawl.max_probes", cfg.Crawl.MaxProbes)

	v.SetDefault("sources.plenary_url", cfg.Sources.PlenaryURL)
	v.SetDefault("sources.committee_url", cfg.Sources.CommitteeURL)
	v.SetDefault("sources.dossier_url", cfg.Sources.DossierURL)

	v.SetDefault("output.db_path", cfg.Output.DBPath)
	v.SetDefault("output.json_dir", cfg.Output.JSONDir)
	v.SetDefault("output.verbose", cfg.Output.Verbose)
}

// loadConfig resolves the configuration from defaults, file, env and flags
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// newLogger writes text logs to stderr, at debug level when verbose
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
