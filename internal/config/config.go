package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const (
	RateLimitBackendPostgres = "postgres"
	RateLimitBackendRedis    = "redis"
)

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Auth      AuthConfig      `toml:"auth"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
	// TrustProxyHeaders адрес клиента берётся из X-Forwarded-For / X-Real-IP
	TrustProxyHeaders bool `toml:"trust_proxy_headers"`
	// TrustedProxies адреса или CIDR прокси, чьи записи в X-Forwarded-For пропускаются.
	// Пусто: доверяем только непосредственному собеседнику.
	TrustedProxies []string `toml:"trusted_proxies"`
}

// TrustedProxyNets разбирает trusted_proxies. Одиночный адрес превращается в сеть /32 или /128.
func (s ServerConfig) TrustedProxyNets() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(s.TrustedProxies))
	for _, raw := range s.TrustedProxies {
		value := strings.TrimSpace(raw)
		if !strings.Contains(value, "/") {
			ip := net.ParseIP(value)
			if ip == nil {
				return nil, fmt.Errorf("%w: server.trusted_proxies - invalid address %q", ErrInvalidConfig, raw)
			}
			bits := 128
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, network, err := net.ParseCIDR(value)
		if err != nil {
			return nil, fmt.Errorf("%w: server.trusted_proxies - invalid CIDR %q: %v", ErrInvalidConfig, raw, err)
		}
		nets = append(nets, network)
	}
	return nets, nil
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type BookingConfig struct {
	// UTCOffsetMinutes смещение часового пояса площадки, по нему определяется "сегодня".
	// nil означает значение по умолчанию (UTC+8), 0 - явный UTC.
	UTCOffsetMinutes *int   `toml:"utc_offset_minutes"`
	WorkdayStart     string `toml:"workday_start"`
	WorkdayEnd       string `toml:"workday_end"`
}

// Offset смещение в минутах с учётом значения по умолчанию
func (b BookingConfig) Offset() int {
	if b.UTCOffsetMinutes == nil {
		return domain.DefaultUTCOffsetMinutes
	}
	return *b.UTCOffsetMinutes
}

// Location часовой пояс площадки
func (b BookingConfig) Location() *time.Location {
	offset := b.Offset()
	sign := "+"
	abs := offset
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", sign, abs/60, abs%60)
	return time.FixedZone(name, offset*60)
}

type RateLimitConfig struct {
	Backend            string `toml:"backend"` // postgres | redis
	MaxAttempts        int    `toml:"max_attempts"`
	BlockWindowSeconds int    `toml:"block_window_seconds"`
	// FailClosed при ошибке хранилища блокирует вход вместо пропуска
	FailClosed bool `toml:"fail_closed"`
}

// BlockWindow окно блокировки
func (r RateLimitConfig) BlockWindow() time.Duration {
	return time.Duration(r.BlockWindowSeconds) * time.Second
}

type AuthConfig struct {
	SessionTTLMinutes int `toml:"session_ttl_minutes"`
	// Администратор, создаваемый при старте, если в системе нет ни одного
	AdminEmail    string `toml:"admin_email"`
	AdminName     string `toml:"admin_name"`
	AdminPassword string `toml:"admin_password"`
}

// SessionTTL время жизни сессии
func (a AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.SessionTTLMinutes) * time.Minute
}

// Load загружает конфигурацию из TOML файла.
// Если рядом лежит .env, переменные из него подхватываются и переопределяют значения файла.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv переопределяет значения из окружения
func (c *Config) applyEnv() error {
	stringVars := map[string]*string{
		"DB_HOST":        &c.Database.Host,
		"DB_USER":        &c.Database.User,
		"DB_PASSWORD":    &c.Database.Password,
		"DB_NAME":        &c.Database.DBName,
		"DB_SSLMODE":     &c.Database.SSLMode,
		"REDIS_ADDR":     &c.Redis.Addr,
		"REDIS_PASSWORD": &c.Redis.Password,
		"LOG_LEVEL":      &c.Logs.Level,
		"ADMIN_EMAIL":    &c.Auth.AdminEmail,
		"ADMIN_PASSWORD": &c.Auth.AdminPassword,
	}
	for name, target := range stringVars {
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			*target = value
		}
	}

	intVars := map[string]*int{
		"DB_PORT":   &c.Database.Port,
		"HTTP_PORT": &c.Server.HTTPPort,
	}
	for name, target := range intVars {
		value := strings.TrimSpace(os.Getenv(name))
		if value == "" {
			continue
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", ErrInvalidConfig, name)
		}
		*target = parsed
	}

	return nil
}

func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "login_attempts"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "room_booking"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Booking.WorkdayStart == "" {
		c.Booking.WorkdayStart = domain.DefaultWorkdayStart
	}
	if c.Booking.WorkdayEnd == "" {
		c.Booking.WorkdayEnd = domain.DefaultWorkdayEnd
	}
	if c.RateLimit.Backend == "" {
		c.RateLimit.Backend = RateLimitBackendPostgres
	}
	if c.RateLimit.MaxAttempts == 0 {
		c.RateLimit.MaxAttempts = domain.DefaultLoginMaxAttempts
	}
	if c.RateLimit.BlockWindowSeconds == 0 {
		c.RateLimit.BlockWindowSeconds = int(domain.DefaultLoginBlockWindow / time.Second)
	}
	if c.Auth.AdminName == "" {
		c.Auth.AdminName = "Administrator"
	}
	if c.Auth.SessionTTLMinutes == 0 {
		c.Auth.SessionTTLMinutes = int(domain.DefaultSessionTTL / time.Minute)
	}
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	var problems []string

	if _, err := c.Server.TrustedProxyNets(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Database.User == "" {
		problems = append(problems, "database.user is required")
	}
	if offset := c.Booking.Offset(); offset < -12*60 || offset > 14*60 {
		problems = append(problems, "booking.utc_offset_minutes must be within [-720, 840]")
	}
	start, errStart := time.Parse(domain.TimeFormat, c.Booking.WorkdayStart)
	end, errEnd := time.Parse(domain.TimeFormat, c.Booking.WorkdayEnd)
	if errStart != nil || errEnd != nil {
		problems = append(problems, "booking.workday_start and booking.workday_end must be HH:MM")
	} else if !end.After(start) {
		problems = append(problems, "booking.workday_end must be after booking.workday_start")
	}
	switch c.RateLimit.Backend {
	case RateLimitBackendPostgres:
	case RateLimitBackendRedis:
		if c.Redis.Addr == "" {
			problems = append(problems, "redis.addr is required for rate_limit.backend = \"redis\"")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown rate_limit.backend %q", c.RateLimit.Backend))
	}
	if c.RateLimit.MaxAttempts < 1 {
		problems = append(problems, "rate_limit.max_attempts must be positive")
	}
	if c.RateLimit.BlockWindowSeconds < 1 {
		problems = append(problems, "rate_limit.block_window_seconds must be positive")
	}
	if c.Auth.SessionTTLMinutes < 1 {
		problems = append(problems, "auth.session_ttl_minutes must be positive")
	}
	if (c.Auth.AdminEmail == "") != (c.Auth.AdminPassword == "") {
		problems = append(problems, "auth.admin_email and auth.admin_password must be set together")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
