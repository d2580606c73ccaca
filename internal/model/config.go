package model

import "time"

// Config holds the complete kamerwatch configuration
type Config struct {
	Session      int               `yaml:"session" mapstructure:"session"`
	DataDir      string            `yaml:"data_dir" mapstructure:"data_dir"`
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Crawl        CrawlConfig       `yaml:"crawl" mapstructure:"crawl"`
	Sources      SourcesConfig     `yaml:"sources" mapstructure:"sources"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls how documents are downloaded
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxRetries    int           `yaml:"max_retries" mapstructure:"max_retries"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// RateLimitConfig is applied per host
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// CacheConfig controls the in-memory layer in front of the document store
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
}

// ConcurrencyConfig bounds parallel dossier refreshes
type ConcurrencyConfig struct {
	DossierWorkers int `yaml:"dossier_workers" mapstructure:"dossier_workers"`
}

// CrawlConfig controls discovery of newly published meetings
type CrawlConfig struct {
	MaxProbes int `yaml:"max_probes" mapstructure:"max_probes"` // Upper bound on ids probed per run
}

// SourcesConfig holds URL templates; %d verbs are filled with session and ids
type SourcesConfig struct {
	PlenaryURL   string `yaml:"plenary_url" mapstructure:"plenary_url"`
	CommitteeURL string `yaml:"committee_url" mapstructure:"committee_url"`
	DossierURL   string `yaml:"dossier_url" mapstructure:"dossier_url"`
}

// OutputConfig selects the record sinks
type OutputConfig struct {
	DBPath  string `yaml:"db_path" mapstructure:"db_path"`
	JSONDir string `yaml:"json_dir,omitempty" mapstructure:"json_dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the production defaults
func DefaultConfig() *Config {
	return &Config{
		Session: 56,
		DataDir: "data",
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "kamerwatch/0.3 (+https://github.com/ppiankov/kamerwatch)",
			MaxBodyBytes:  20_000_000,
			MaxRetries:    3,
			RespectRobots: true,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			DossierWorkers: 4,
		},
		Crawl: CrawlConfig{
			MaxProbes: 50,
		},
		Sources: SourcesConfig{
			PlenaryURL:   "https://www.dekamer.be/doc/PCRI/html/%d/ip%03dx.html",
			CommitteeURL: "https://www.dekamer.be/doc/CCRI/html/%d/ic%03dx.html",
			DossierURL:   "https://www.dekamer.be/kvvcr/showpage.cfm?section=/flwb&language=nl&cfm=/site/wwwcfm/flwb/flwbn.cfm?lang=N&legislat=%d&dossierID=%s",
		},
		Output: OutputConfig{
			DBPath: "kamerwatch.db",
		},
	}
}
