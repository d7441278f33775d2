// Package config предоставляет структуры и функцию для загрузки конфигурации.
//
// Все параметры задаются переменными окружения при старте процесса;
// для локальной разработки можно указать yaml-файл через CONFIG_PATH.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	Postgres        `yaml:"postgres"`
	RedisConnection `yaml:"redis_connection"`
	Token           `yaml:"token"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Postgres структура для настройки подключения к базе данных.
type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER" env-required:"true"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-required:"true"`
	DBName   string `yaml:"db_name" env:"POSTGRES_DB_NAME" env-required:"true"`
}

// ConnString возвращает строку подключения к PostgreSQL.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.DBName)
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	Addr        string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	User        string        `yaml:"user" env:"REDIS_USER" env-default:""`
	DB          int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	MaxRetries  int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env:"REDIS_TIMEOUT" env-default:"3s"`
}

// Token структура для настройки подписи и времени жизни токена доступа.
type Token struct {
	SecretKey  string `yaml:"secret_key" env:"TOKEN_SECRET_KEY" env-required:"true"`
	TTLMinutes int    `yaml:"ttl_minutes" env:"COOKIE_TTL_MINUTES" env-default:"60"`
}

// TTL возвращает время жизни токена.
func (t Token) TTL() time.Duration {
	return time.Duration(t.TTLMinutes) * time.Minute
}

// MustLoad загружает конфигурацию и аварийно завершает процесс при ошибке.
// Если задан CONFIG_PATH, настройки читаются из yaml-файла с дополнением
// из окружения, иначе — только из окружения.
func MustLoad() *Config {
	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("file: %s - does not exist", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from env: %s", err)
	}
	return &cfg
}
