// Package config описывает настройки сервиса и их загрузку через cleanenv.
//
// Источник — YAML-файл из CONFIG_PATH (если задан) и переменные окружения,
// которые перекрывают значения из файла. Для большинства полей есть значения по умолчанию.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Поддерживаемые драйверы хранилища пользователей.
const (
	DriverMongo    = "mongodb"
	DriverPostgres = "postgres"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	Storage         `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	GRPCServer      `yaml:"grpc_server"`
	JWTToken        `yaml:"jwttoken"`
	CacheTTL        `yaml:"cache"`
	RouteAuth       `yaml:"auth"`
	Hashing         `yaml:"password"`
	RabbitMQ        `yaml:"rabbitmq"`
}

// Storage настройки хранилища пользователей
type Storage struct {
	Driver         string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongodb"`
	MongoURI       string `yaml:"mongo_uri" env:"MONGODB_URI" env-default:"mongodb://127.0.0.1:27017"`
	MongoDatabase  string `yaml:"mongo_database" env:"MONGODB_DATABASE" env-default:"profile"`
	PostgresDSN    string `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	RedisAddress     string        `yaml:"address" env:"REDIS_ADDRESS" env-default:"127.0.0.1:6379"`
	RedisPassword    string        `yaml:"password" env:"REDIS_PASSWORD"`
	RedisUser        string        `yaml:"user" env:"REDIS_USER"`
	RedisDB          int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	RedisMaxRetries  int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	RedisDialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	RedisTimeout     time.Duration `yaml:"timeout" env:"REDIS_TIMEOUT" env-default:"1s"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP    string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":3002"`
	TimeoutHTTP    time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"15s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" env-default:"10s"`
}

// GRPCServer адрес gRPC health-сервера, пустая строка отключает его
type GRPCServer struct {
	AddressGRPC string `yaml:"address" env:"GRPC_ADDRESS"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"JWT_EXPIRES_IN" env-default:"1h"`
}

// CacheTTL время жизни записей кеша, 0 — без срока
type CacheTTL struct {
	UserTTL time.Duration `yaml:"user_ttl" env:"CACHE_USER_TTL" env-default:"1h"`
	ListTTL time.Duration `yaml:"list_ttl" env:"CACHE_LIST_TTL" env-default:"0s"`
}

// RouteAuth определяет, какие маршруты чтения требуют bearer-токен
type RouteAuth struct {
	ProtectReadUser  bool `yaml:"protect_read_user" env:"AUTH_PROTECT_READ_USER" env-default:"true"`
	ProtectListUsers bool `yaml:"protect_list_users" env:"AUTH_PROTECT_LIST_USERS" env-default:"false"`
}

// Hashing параметры bcrypt
type Hashing struct {
	BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

// RabbitMQ настройки публикации событий, пустой URL отключает публикацию
type RabbitMQ struct {
	RabbitURL        string `yaml:"url" env:"RABBITMQ_URL"`
	RabbitExchange   string `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"users"`
	RabbitRoutingKey string `yaml:"routing_key" env:"RABBITMQ_ROUTING_KEY" env-default:"user.created"`
}

// Load читает конфиг из файла CONFIG_PATH (если задан) и окружения.
func Load() (*Config, error) {
	const op = "config.Load"
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("%s: config file %s: %w", op, configPath, err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Driver {
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("storage.mongo_uri is required for mongodb driver")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("storage.postgres_dsn is required for postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
	if c.JWTSecretKey == "" {
		return errors.New("jwttoken.jwt_secret_key is required")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  MongoDatabase: %s\n"+
			"  MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"  MaxRetries: %d\n"+
			"  DialTimeout: %s\n"+
			"  Timeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"  RequestTimeout: %s\n"+
			"GRPCServer:\n"+
			"  Address: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n"+
			"Cache:\n"+
			"  UserTTL: %s\n"+
			"  ListTTL: %s\n"+
			"Auth:\n"+
			"  ProtectReadUser: %t\n"+
			"  ProtectListUsers: %t\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n",
		c.Env,
		c.Driver,
		c.MongoDatabase,
		c.MigrationsPath,
		c.RedisAddress,
		c.RedisUser,
		c.RedisDB,
		c.RedisMaxRetries,
		c.RedisDialTimeout,
		c.RedisTimeout,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.RequestTimeout,
		c.AddressGRPC,
		c.TokenTTL,
		c.UserTTL,
		c.ListTTL,
		c.ProtectReadUser,
		c.ProtectListUsers,
		c.RabbitURL != "",
		c.RabbitExchange,
	)
}
