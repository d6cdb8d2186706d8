// Package config загружает настройки прогона из окружения и .env файлов.
// Некорректные значения (не bool, не int) возвращаются ошибкой при старте,
// а не подменяются значениями по умолчанию.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBrowser      = "chrome"
	DefaultWindowWidth  = 1920
	DefaultWindowHeight = 1080
	DefaultWaitTimeout  = 10 * time.Second
	DefaultPollInterval = 250 * time.Millisecond
)

type Cfg struct {
	Database   Database
	Logger     Logger
	Browser    Browser
	Suite      Suite
	Migrations Migrations
	Metrics    Metrics
	App        App
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// DSN - строка подключения в виде URL, понятная и gorm, и golang-migrate.
func (d Database) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Enabled сообщает, настроено ли хранилище истории прогонов.
func (d Database) Enabled() bool {
	return d.Host != "" && d.Name != ""
}

// Migrations.Path - каталог с SQL миграциями. Пустое значение означает
// миграции, встроенные в бинарник.
type Migrations struct {
	Path string
}

type Logger struct {
	Env   string
	Level string
}

type Browser struct {
	Variant         string
	Headless        bool
	WindowWidth     int
	WindowHeight    int
	WaitTimeout     time.Duration
	PollInterval    time.Duration
	BrowsersPath    string
	InstallBrowsers bool
	ReplaceActive   bool

	// MaxLaunchFailures - сколько неудачных запусков подряд допускается,
	// прежде чем остальные сценарии будут помечены упавшими без запуска.
	MaxLaunchFailures int
	LaunchRetryAfter  time.Duration
}

type Suite struct {
	BaseURL     string
	FeaturesDir string
	Tags        []string
	Parallel    int
	Username    string
	Password    string
}

type Metrics struct {
	File string
}

// App - адрес HTTP сервера истории прогонов.
type App struct {
	Host string
	Port string
}

// Load читает переменные окружения. Перечисленные files подгружаются через
// godotenv перед чтением; без аргументов используется .env, если он есть.
func Load(files ...string) (*Cfg, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл конфигурации: %w", err)
	}

	p := &parser{}

	cfg := &Cfg{
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     env("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
		},
		Browser: Browser{
			Variant:         strings.ToLower(env("BROWSER", DefaultBrowser)),
			Headless:        p.envBool("HEADLESS_MODE", false),
			WindowWidth:     p.envInt("WINDOW_WIDTH", DefaultWindowWidth),
			WindowHeight:    p.envInt("WINDOW_HEIGHT", DefaultWindowHeight),
			WaitTimeout:     p.envDuration("WAIT_TIMEOUT", DefaultWaitTimeout),
			PollInterval:    p.envDuration("POLL_INTERVAL", DefaultPollInterval),
			BrowsersPath:    env("PLAYWRIGHT_BROWSERS_PATH", ""),
			InstallBrowsers: p.envBool("PW_INSTALL", false),
			ReplaceActive:   p.envBool("REPLACE_ACTIVE_SESSION", true),

			MaxLaunchFailures: p.envInt("MAX_LAUNCH_FAILURES", 3),
			LaunchRetryAfter:  p.envDuration("LAUNCH_RETRY_AFTER", 30*time.Second),
		},
		Suite: Suite{
			BaseURL:     env("BASE_URL", "https://parabank.parasoft.com/parabank/"),
			FeaturesDir: env("FEATURES_DIR", "features"),
			Tags:        envList("TAGS"),
			Parallel:    p.envInt("PARALLEL", 1),
			Username:    env("TEST_USERNAME", "john"),
			Password:    env("TEST_PASSWORD", "demo"),
		},
		Migrations: Migrations{
			Path: os.Getenv("MIGRATIONS_PATH"),
		},
		Metrics: Metrics{
			File: os.Getenv("METRICS_FILE"),
		},
		App: App{
			Host: env("APP_HOST", "127.0.0.1"),
			Port: env("APP_PORT", "8080"),
		},
	}

	p.positive("WINDOW_WIDTH", cfg.Browser.WindowWidth)
	p.positive("WINDOW_HEIGHT", cfg.Browser.WindowHeight)
	p.positive("PARALLEL", cfg.Suite.Parallel)

	if err := p.err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parser копит ошибки разбора, чтобы Load сообщил обо всех плохих ключах сразу.
type parser struct {
	errs []error
}

func (p *parser) envInt(key string, defaultValue int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: ожидалось целое число, получено %q", key, v))
		return defaultValue
	}
	return n
}

func (p *parser) envBool(key string, defaultValue bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "":
		return defaultValue
	case "true":
		return true
	case "false":
		return false
	}
	p.errs = append(p.errs, fmt.Errorf("%s: ожидалось true/false, получено %q", key, v))
	return defaultValue
}

func (p *parser) envDuration(key string, defaultValue time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		p.errs = append(p.errs, fmt.Errorf("%s: ожидалась положительная длительность, получено %q", key, v))
		return defaultValue
	}
	return d
}

func (p *parser) positive(key string, n int) {
	if n <= 0 {
		p.errs = append(p.errs, fmt.Errorf("%s: значение должно быть больше нуля, получено %d", key, n))
	}
}

func (p *parser) err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return fmt.Errorf("некорректная конфигурация: %w", errors.Join(p.errs...))
}
