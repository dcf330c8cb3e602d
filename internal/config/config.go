package config

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const ConfigPathEnv = "KITCHENHUB_CONFIG"

/*
初始化與讀取分開
init : 設置 viper watch 與 onConfigChange
read : 一般讀取，使用讀寫鎖
*/
var configSingleton *ConfigSingleton
var muonce sync.Once

type ConfigSingleton struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	Env         string `mapstructure:"ENV"`
	ServerPort  string `mapstructure:"SERVER_PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogConsole  bool   `mapstructure:"LOG_CONSOLE"`

	DbName        string `mapstructure:"POSTGRES_DB"`
	DbHost        string `mapstructure:"POSTGRES_HOST"`
	DbPort        string `mapstructure:"POSTGRES_PORT"`
	DbUser        string `mapstructure:"POSTGRES_USER"`
	DbPas         string `mapstructure:"POSTGRES_PASSWORD"`
	DbAutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`

	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	ProductCacheTTL time.Duration `mapstructure:"PRODUCT_CACHE_TTL"`

	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic string `mapstructure:"KAFKA_ORDER_TOPIC"`
	KafkaLogTopic   string `mapstructure:"KAFKA_LOG_TOPIC"`

	AuthTokenKey        string        `mapstructure:"AUTH_TOKEN_KEY"`
	AccessTokenDuration time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`

	RateLimitCapacity int     `mapstructure:"RATE_LIMIT_CAPACITY"`
	RateLimitRate     float64 `mapstructure:"RATE_LIMIT_RATE"`
	TrustProxyHeaders bool    `mapstructure:"TRUST_PROXY_HEADERS"`

	OtelEndpoint    string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// RedisEnabled 沒有設定 REDIS_ADDR 時不使用 redis
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *Config) KafkaEnabled() bool {
	return len(c.Brokers()) > 0
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "kitchenhub")
	v.SetDefault("ENV", "dev")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_CONSOLE", false)

	v.SetDefault("POSTGRES_DB", "kitchenhub")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("PRODUCT_CACHE_TTL", 10*time.Minute)

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_ORDER_TOPIC", "kitchenhub.orders")
	v.SetDefault("KAFKA_LOG_TOPIC", "")

	v.SetDefault("AUTH_TOKEN_KEY", "")
	v.SetDefault("ACCESS_TOKEN_DURATION", time.Hour)

	v.SetDefault("RATE_LIMIT_CAPACITY", 100)
	v.SetDefault("RATE_LIMIT_RATE", 50)
	v.SetDefault("TRUST_PROXY_HEADERS", false)

	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.Config
}

func initConfig() {
	muonce.Do(func() {
		v := viper.New()
		path := ConfigPath()
		cf, err := Load(v, path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("error read config")
		}
		configSingleton = &ConfigSingleton{Config: cf}

		if _, err := os.Stat(path); err != nil {
			return
		}
		v.OnConfigChange(func(e fsnotify.Event) {
			cf, err := unmarshal(v)
			if err != nil {
				log.Error().Err(err).Str("file", e.Name).Msg("failed to reload config file, keep previous config")
				return
			}
			configSingleton.mu.Lock()
			configSingleton.Config = cf
			configSingleton.mu.Unlock()
			log.Info().Str("file", e.Name).Msg("config reloaded")
		})
		v.WatchConfig()
	})
}

// ConfigPath .env 路徑，預設為工作目錄下的 .env
func ConfigPath() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	return ".env"
}

/*
Load 單純回傳錯誤，由外部決定要不要 Fatal
檔案不存在時只使用預設值與環境變數
*/
func Load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, err
	}
	return cf, nil
}
