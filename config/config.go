package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultBackendURL    = "http://localhost:8000"
	defaultPollInterval  = 30 * time.Second
	defaultDashboardAddr = ":8090"
	defaultDataDir       = "./wal"
)

// Config is the assembled runtime configuration. Secrets come from the
// environment only, never from the YAML file.
type Config struct {
	BackendURL    string
	PollInterval  time.Duration
	DashboardAddr string
	DataDir       string
	LoginEmail    string

	// env-provided
	WalletKey     string
	OperatorKey   string
	LoginPassword string
}

type configTmp struct {
	BackendURL    string `yaml:"backend_url"`
	PollInterval  string `yaml:"poll_interval,omitempty"`
	DashboardAddr string `yaml:"dashboard_addr,omitempty"`
	DataDir       string `yaml:"data_dir,omitempty"`
	LoginEmail    string `yaml:"login_email,omitempty"`
}

// Get builds the configuration from a YAML file when --config is provided,
// from CLI flags otherwise. A .env file is loaded best-effort first.
func Get() (Config, error) {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to yaml config")
	backend := flag.String("backend", defaultBackendURL, "backend base origin")
	pollInterval := flag.Duration("pollinterval", defaultPollInterval, "balance poll interval")
	dashboard := flag.String("dashboard", defaultDashboardAddr, "dashboard listen address")
	dataDir := flag.String("datadir", defaultDataDir, "directory for local persistence")
	email := flag.String("email", "", "login email")
	flag.Parse()

	cfg := Config{
		BackendURL:    *backend,
		PollInterval:  *pollInterval,
		DashboardAddr: *dashboard,
		DataDir:       *dataDir,
		LoginEmail:    *email,
	}

	if *configPath != "" {
		fileCfg, err := getYaml(*configPath)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}

	cfg.WalletKey = os.Getenv("CRYPTORA_WALLET_KEY")
	cfg.OperatorKey = os.Getenv("CRYPTORA_OPERATOR_KEY")
	cfg.LoginPassword = os.Getenv("CRYPTORA_PASSWORD")

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getYaml(path string) (Config, error) {
	var tmp configTmp

	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	cfg := Config{
		BackendURL:    tmp.BackendURL,
		PollInterval:  defaultPollInterval,
		DashboardAddr: defaultDashboardAddr,
		DataDir:       defaultDataDir,
		LoginEmail:    tmp.LoginEmail,
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = defaultBackendURL
	}
	if tmp.PollInterval != "" {
		interval, err := time.ParseDuration(tmp.PollInterval)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'poll_interval' param in yaml config: %s, error: %w", tmp.PollInterval, err)
		}
		cfg.PollInterval = interval
	}
	if tmp.DashboardAddr != "" {
		cfg.DashboardAddr = tmp.DashboardAddr
	}
	if tmp.DataDir != "" {
		cfg.DataDir = tmp.DataDir
	}
	return cfg, nil
}

func (c Config) validate() error {
	parsed, err := url.Parse(c.BackendURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid backend url: %q", c.BackendURL)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	return nil
}
