// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
//
// Конфиг читается из yaml-файла, путь к которому задаётся переменной CONFIG_PATH,
// отдельные значения могут быть переопределены переменными окружения
// (в том числе из .env-файла, подгружаемого при старте).
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env               string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnection `yaml:"storage_connection"`
	RedisConnection   `yaml:"redis_connection"`
	HTTPServer        `yaml:"http_server"`
	JWTToken          `yaml:"jwttoken"`
	BcryptCost        int    `yaml:"bcrypt_cost" env-default:"12"`
	Timezone          string `yaml:"timezone" env:"TZ_NAME" env-default:"Asia/Kolkata"`
}

// StorageConnection структура для настройки подключения к mongodb.
// Имена коллекций для каждой сущности задаются отдельно, как и в исходных
// переменных окружения развёртывания.
type StorageConnection struct {
	URL                     string        `yaml:"url" env:"DB_URL"`
	DBName                  string        `yaml:"db_name" env:"DB_NAME"`
	UsersCollection         string        `yaml:"users_collection" env:"USER_TABLE_NAME" env-default:"users"`
	SubscriptionsCollection string        `yaml:"subscriptions_collection" env:"SUBSCRIPTION_TABLE_NAME" env-default:"subscriptions"`
	ConnectTimeout          time.Duration `yaml:"connect_timeout" env-default:"10s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	Addr        string        `yaml:"addressredis" env:"REDIS_ADDR"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	Timeout     time.Duration `yaml:"timeoutredis"`
	CacheTTL    time.Duration `yaml:"cache_ttl" env-default:"5m"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токенами.
// Секреты access- и refresh-токенов различаются, времена жизни фиксированы:
// короткий access и длинный refresh.
type JWTToken struct {
	AccessSecretKey  string        `yaml:"access_secret_key" env:"JWT_ACCESS_SECRET"`
	RefreshSecretKey string        `yaml:"refresh_secret_key" env:"JWT_REFRESH_SECRET"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl" env-default:"30m"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl" env-default:"168h"`
}

// MustLoad функция для загрузки конфига, завершает процесс при любой ошибке.
func MustLoad() *Config {
	// .env не обязателен, при отсутствии просто работаем с окружением
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
