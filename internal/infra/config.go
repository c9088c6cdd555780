package infra

import (
	"fmt"
	"os"
	"time"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InstrumentConfig seeds one instrument into the book at startup.
type InstrumentConfig struct {
	Symbol string          `yaml:"symbol"`
	Price  decimal.Decimal `yaml:"price"`
}

// Config holds every setting of the gateway. Values may be overridden
// through environment variables after loading.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	FIX struct {
		SettingsPath string `yaml:"settings_path"`
	} `yaml:"fix"`

	Instruments []InstrumentConfig `yaml:"instruments"`

	Simulator struct {
		TickIntervalSec int             `yaml:"tick_interval_sec"`
		MaxDelta        decimal.Decimal `yaml:"max_delta"`
		PriceFloor      decimal.Decimal `yaml:"price_floor"`
		Spread          decimal.Decimal `yaml:"spread"`
		EntrySize       int64           `yaml:"entry_size"`
	} `yaml:"simulator"`

	HTTP struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"http"`

	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`

	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file, applies environment
// overrides and defaults, then validates.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.FIX.SettingsPath == "" {
		c.FIX.SettingsPath = "configs/server.cfg"
	}
	if c.Simulator.TickIntervalSec <= 0 {
		c.Simulator.TickIntervalSec = 5
	}
	if c.Simulator.MaxDelta.IsZero() {
		c.Simulator.MaxDelta = decimal.NewFromFloat(0.5)
	}
	if c.Simulator.PriceFloor.IsZero() {
		c.Simulator.PriceFloor = decimal.NewFromFloat(0.01)
	}
	if c.Simulator.Spread.IsZero() {
		c.Simulator.Spread = decimal.NewFromFloat(0.01)
	}
	if c.Simulator.EntrySize <= 0 {
		c.Simulator.EntrySize = 100
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data/gateway.db"
	}
}

// InstrumentList converts the configured instruments into domain values.
func (c *Config) InstrumentList() []domain.Instrument {
	out := make([]domain.Instrument, 0, len(c.Instruments))
	for _, inst := range c.Instruments {
		out = append(out, domain.Instrument{Symbol: inst.Symbol, Price: inst.Price})
	}
	return out
}

// TickInterval returns the simulator cadence as a duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Simulator.TickIntervalSec) * time.Second
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if len(c.Instruments) == 0 {
		return fmt.Errorf("at least one instrument is required")
	}
	seen := make(map[string]bool, len(c.Instruments))
	for _, inst := range c.Instruments {
		if inst.Symbol == "" {
			return fmt.Errorf("instrument with empty symbol")
		}
		if seen[inst.Symbol] {
			return fmt.Errorf("duplicate instrument %s", inst.Symbol)
		}
		seen[inst.Symbol] = true
		if inst.Price.LessThan(c.Simulator.PriceFloor) {
			return fmt.Errorf("instrument %s: initial price %s below floor %s",
				inst.Symbol, inst.Price, c.Simulator.PriceFloor)
		}
	}
	if c.Simulator.MaxDelta.IsNegative() {
		return fmt.Errorf("max delta must not be negative")
	}
	if c.Simulator.Spread.IsNegative() {
		return fmt.Errorf("spread must not be negative")
	}
	if !c.Simulator.PriceFloor.IsPositive() {
		return fmt.Errorf("price floor must be positive")
	}
	return nil
}

// overrideWithEnv applies environment variable overrides where present.
func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("GATEWAY_FIX_SETTINGS"); v != "" {
		cfg.FIX.SettingsPath = v
	}
	if v := os.Getenv("GATEWAY_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("GATEWAY_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("GATEWAY_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
