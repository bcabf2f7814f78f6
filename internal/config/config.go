package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver          string        `yaml:"driver"` // postgres, mysql
		DSN             string        `yaml:"url"`
		MaxOpenConns    int           `yaml:"max_open_conns"`
		MaxIdleConns    int           `yaml:"max_idle_conns"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
		AutoMigrate     bool          `yaml:"auto_migrate"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	Storage struct {
		BasePath string `yaml:"base_path"` // Каталог для загруженных файлов
		BaseURL  string `yaml:"base_url"`  // Префикс, по которому файлы отдаются статикой
	} `yaml:"storage"`

	Upload struct {
		MaxSize  int64 `yaml:"max_size"`  // Лимит на один файл в байтах
		MaxFiles int   `yaml:"max_files"` // Лимит файлов в одном запросе
	} `yaml:"upload"`
}

// IsProduction - true для server.env == "production"
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// TokenTTL - срок жизни access-токена
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTLHours) * time.Hour
}

// Address - адрес, на котором слушает HTTP-сервер
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

var AppConfig *Config

// Defaults возвращает конфигурацию по умолчанию
func Defaults() *Config {
	var cfg Config

	cfg.Server.Port = 3000
	cfg.Server.Env = "development"

	cfg.Database.Driver = "postgres"
	cfg.Database.MaxOpenConns = 10
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxLifetime = 30 * time.Minute
	cfg.Database.AutoMigrate = true

	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "Sistema de Casos"

	cfg.JWT.TTLHours = 8

	cfg.Storage.BasePath = "uploads"
	cfg.Storage.BaseURL = "/uploads"

	cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	cfg.Upload.MaxFiles = 5

	return &cfg
}

// Load читает YAML-файл (если он есть) поверх значений по умолчанию,
// затем применяет переменные окружения.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// Файл необязателен: всё можно задать через окружение
		default:
			return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (JWT_SECRET)")
	}
	if c.Database.DSN == "" {
		return errors.New("database url is required (DATABASE_URL)")
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.JWT.TTLHours <= 0 {
		return fmt.Errorf("invalid jwt ttl_hours: %d", c.JWT.TTLHours)
	}
	if c.Upload.MaxSize <= 0 || c.Upload.MaxFiles <= 0 {
		return errors.New("upload limits must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	setString("SERVER_ENV", &cfg.Server.Env)
	setString("DATABASE_DRIVER", &cfg.Database.Driver)
	setString("DATABASE_URL", &cfg.Database.DSN)
	setString("JWT_SECRET", &cfg.JWT.Secret)
	setString("SMTP_HOST", &cfg.Email.SMTPHost)
	setString("SMTP_USER", &cfg.Email.SMTPUsername)
	setString("SMTP_PASS", &cfg.Email.SMTPPassword)
	setString("SMTP_FROM", &cfg.Email.FromEmail)
	setString("UPLOADS_DIR", &cfg.Storage.BasePath)

	if err := setInt("PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if err := setInt("SMTP_PORT", &cfg.Email.SMTPPort); err != nil {
		return err
	}

	// Как и раньше, отправитель по умолчанию - учетная запись SMTP
	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = cfg.Email.SMTPUsername
	}

	return nil
}

// LoadConfig загружает глобальную конфигурацию или завершает процесс
func LoadConfig() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
