package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	SEC            SEC            `yaml:"sec"`
	Market         Market         `yaml:"market"`
	Output         Output         `yaml:"output"`
	Cache          Cache          `yaml:"cache"`
	Log            Log            `yaml:"log"`
	Metrics        Metrics        `yaml:"metrics"`
	Schedule       Schedule       `yaml:"schedule"`
	Telegram       Telegram       `yaml:"telegram"`
	Classification Classification `yaml:"classification"`
	Proxy          string         `yaml:"proxy" validate:"omitempty,url"`
}

type SEC struct {
	// The SEC requires a User-Agent naming the requester, e.g. "Jane Doe jane@example.com".
	UserAgent  string  `yaml:"user_agent" validate:"required"`
	BaseURL    string  `yaml:"base_url" default:"https://data.sec.gov" validate:"url"`
	TickersURL string  `yaml:"tickers_url" default:"https://www.sec.gov/files/company_tickers.json" validate:"url"`
	RateLimit  float64 `yaml:"rate_limit" default:"10" validate:"gt=0,lte=10"`
}

type Market struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	BaseURL string `yaml:"base_url" default:"https://query1.finance.yahoo.com" validate:"url"`
}

type Output struct {
	Dir string `yaml:"dir" default:"dashboards" validate:"required"`
}

type Cache struct {
	Backend    string        `yaml:"backend" default:"sqlite" validate:"oneof=sqlite redis none"`
	TTL        time.Duration `yaml:"ttl" default:"24h" validate:"gte=0"`
	SQLitePath string        `yaml:"sqlite_path" default:"data/http_cache.db" validate:"required_if=Backend sqlite"`
	Redis      struct {
		Addr     string `yaml:"addr" default:"localhost:6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix" default:"stockdashboard"`
	} `yaml:"redis"`
}

type Log struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" default:"console" validate:"oneof=console json"`
	Output string `yaml:"output" default:"stderr" validate:"required"`
}

type Metrics struct {
	// Textfile, when set, receives the run metrics in the node exporter
	// textfile format after every run.
	Textfile string `yaml:"textfile"`
}

type Schedule struct {
	Cron    string   `yaml:"cron" default:"0 0 6 * * 1"`
	Tickers []string `yaml:"tickers" validate:"dive,required"`
}

type Telegram struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token" validate:"required_if=Enabled true"`
	ChatID   string `yaml:"chat_id" validate:"required_if=Enabled true"`
	// SendFile uploads the workbook after each scheduled run.
	SendFile bool `yaml:"send_file" default:"true"`
}

// Classification overrides the metric colouring groups. Empty means the
// built-in groups.
type Classification struct {
	Positive []string `yaml:"positive"`
	Neutral  []string `yaml:"neutral"`
	Negative []string `yaml:"negative"`
}

// Load reads config from a YAML file over struct defaults, then applies
// environment variable overrides. A .env file next to the working
// directory seeds the environment without replacing variables already set.
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SEC_USER_AGENT"); v != "" {
		c.SEC.UserAgent = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		c.Schedule.Cron = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Schedule.Tickers = splitList(v)
	}
	if v := os.Getenv("SEC_RATE_LIMIT"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil {
			c.SEC.RateLimit = rps
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, strings.ToUpper(s))
		}
	}
	return out
}

var validate = validator.New()

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return describe(err)
	}
	return nil
}

// ValidateSchedule additionally checks the settings of the scheduler.
func (c *Config) ValidateSchedule() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Schedule.Cron == "" {
		return fmt.Errorf("schedule.cron is required")
	}
	if len(c.Schedule.Tickers) == 0 {
		return fmt.Errorf("schedule.tickers must list at least one ticker")
	}
	return nil
}

// describe flattens validator errors into one readable error.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), "Config.")
		switch e.Tag() {
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", ")))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation: %s", field, e.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
