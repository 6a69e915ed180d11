package config

import (
	"time"

	"github.com/spf13/viper"

	pkgconfig "github.com/donorhub/donorhub/pkg/config"
	"github.com/donorhub/donorhub/pkg/database"
	"github.com/donorhub/donorhub/pkg/log"
)

type Config struct {
	Server    ServerConfig
	Database  database.Config
	Redis     RedisConfig
	WebSocket WebSocketConfig
	Chat      ChatConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	Log       log.Config
}

type ServerConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type WebSocketConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

type ChatConfig struct {
	// SendTimeout bounds the resolver lookup and store append of one
	// send_message; exceeding it reports a timeout to the sender only.
	SendTimeout     time.Duration `mapstructure:"send_timeout"`
	HistoryCacheTTL time.Duration `mapstructure:"history_cache_ttl"`
	HistoryPrefix   string        `mapstructure:"history_prefix"`
}

type JWTConfig struct {
	Secret    string
	Issuer    string
	AccessTTL time.Duration `mapstructure:"access_ttl"`
}

type SMTPConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "donorhub")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "donorhub")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.conn_max_lifetime", 30)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 4096)
	v.SetDefault("chat.send_timeout", "5s")
	v.SetDefault("chat.history_cache_ttl", "60s")
	v.SetDefault("chat.history_prefix", "chat:history")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "donorhub")
	v.SetDefault("jwt.access_ttl", "24h")
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.service_name", "donorhub")

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("smtp.host", "SMTP_HOST")
	v.BindEnv("smtp.port", "SMTP_PORT")
	v.BindEnv("smtp.username", "EMAIL_USER")
	v.BindEnv("smtp.password", "EMAIL_PASS")
	v.BindEnv("smtp.from", "EMAIL_FROM")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Parse durations
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 30*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)
	cfg.Chat.SendTimeout = parseDuration(v, "chat.send_timeout", 5*time.Second)
	cfg.Chat.HistoryCacheTTL = parseDuration(v, "chat.history_cache_ttl", time.Minute)
	cfg.JWT.AccessTTL = parseDuration(v, "jwt.access_ttl", 24*time.Hour)

	return &cfg, nil
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	str := v.GetString(key)
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}
