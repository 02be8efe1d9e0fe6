package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Upload   UploadConfig   `yaml:"upload"`
	S3       S3Config       `yaml:"s3"`
	Logger   LoggerConfig   `yaml:"logger"`
	Jobs     JobsConfig     `yaml:"jobs"`
	Admin    AdminConfig    `yaml:"admin"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Mode            string        `yaml:"mode"`
	BasePath        string        `yaml:"base_path"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// GetDSN returns DATABASE_URL style DSN if set, otherwise builds one from the parts
func (d DatabaseConfig) GetDSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	URL            string        `yaml:"url"`
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	UnreadCacheTTL time.Duration `yaml:"unread_cache_ttl"`
}

type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	Expiration time.Duration `yaml:"expiration"`
	CookieName string        `yaml:"cookie_name"`
	Secure     bool          `yaml:"secure"`
}

// UploadConfig describes where uploaded images live and how they are addressed in post content
type UploadConfig struct {
	Backend      string        `yaml:"backend"` // local | s3
	Dir          string        `yaml:"dir"`
	URLPrefix    string        `yaml:"url_prefix"`
	MaxSize      int64         `yaml:"max_size"`
	ScopedWindow time.Duration `yaml:"scoped_window"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Prefix    string `yaml:"prefix"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

type JobsConfig struct {
	NotificationRetentionCron string `yaml:"notification_retention_cron"`
	NotificationRetentionDays int    `yaml:"notification_retention_days"`
	ImageSweepCron            string `yaml:"image_sweep_cron"` // empty disables the scheduled sweep
}

type AdminConfig struct {
	Usernames []string `yaml:"usernames"`
}

// IsAdmin reports whether username is listed as an administrator
func (a AdminConfig) IsAdmin(username string) bool {
	for _, u := range a.Usernames {
		if u == username {
			return true
		}
	}
	return false
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Mode:            "debug",
			BasePath:        "/api",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Name:            "study",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Addr:           "localhost:6379",
			UnreadCacheTTL: 5 * time.Minute,
		},
		JWT: JWTConfig{
			Expiration: time.Hour,
			CookieName: "token",
		},
		Upload: UploadConfig{
			Backend:      "local",
			Dir:          "static/uploads",
			URLPrefix:    "/static/uploads/",
			MaxSize:      5 << 20,
			ScopedWindow: time.Hour,
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Jobs: JobsConfig{
			NotificationRetentionCron: "0 4 * * *",
			NotificationRetentionDays: 30,
		},
	}
}

// Load reads configuration from defaults, an optional .env file, the yaml file at path and
// finally environment variables, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := defaults()

	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("BASE_PATH"); v != "" {
		cfg.Server.BasePath = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = p
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}

	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		cfg.JWT.Secure = v == "true"
	}

	if v := os.Getenv("UPLOAD_BACKEND"); v != "" {
		cfg.Upload.Backend = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.Upload.Dir = v
	}
	if v := os.Getenv("UPLOAD_URL_PREFIX"); v != "" {
		cfg.Upload.URLPrefix = v
	}

	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.S3.Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		cfg.S3.Region = v
	}
	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		cfg.S3.Endpoint = v
	}
	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		cfg.S3.AccessKey = v
	}
	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		cfg.S3.SecretKey = v
	}

	if v := os.Getenv("IMAGE_SWEEP_CRON"); v != "" {
		cfg.Jobs.ImageSweepCron = v
	}
	if v := os.Getenv("ADMIN_USERNAMES"); v != "" {
		cfg.Admin.Usernames = splitList(v)
	}
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required (set JWT_SECRET)")
	}
	if c.Upload.URLPrefix == "" {
		return fmt.Errorf("upload url_prefix is required")
	}
	switch c.Upload.Backend {
	case "local":
		if c.Upload.Dir == "" {
			return fmt.Errorf("upload dir is required for the local backend")
		}
	case "s3":
		if c.S3.Bucket == "" || c.S3.Region == "" {
			return fmt.Errorf("s3 bucket and region are required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown upload backend: %s", c.Upload.Backend)
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
