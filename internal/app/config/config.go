package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServerConfig struct {
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

type MongoDBConfig struct {
	URI      string `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	User     string `yaml:"user" env:"MONGO_USER"`
	Password string `yaml:"password" env:"MONGO_PASSWORD"`
	Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"booksy"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type NATSConfig struct {
	URL string `yaml:"url" env:"NATS_URL" env-default:"nats://localhost:4222"`
}

type SMTPConfig struct {
	Host        string `yaml:"host" env:"SMTP_HOST" env-required:"true"`
	Port        int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username    string `yaml:"username" env:"SMTP_USERNAME"`
	Password    string `yaml:"password" env:"SMTP_PASSWORD"`
	SenderEmail string `yaml:"sender_email" env:"SMTP_SENDER_EMAIL" env-required:"true"`
	SenderName  string `yaml:"sender_name" env:"SMTP_SENDER_NAME" env-default:"Booksy"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"72h"`
	OTPTTL    time.Duration `yaml:"otp_ttl" env:"OTP_TTL" env-default:"10m"`
	// AdminEmails is the bootstrap allowlist: registering with one of these
	// addresses yields the admin role. Everything else gets "user".
	AdminEmails []string `yaml:"admin_emails" env:"ADMIN_EMAILS" env-separator:","`
}

type GoogleBooksConfig struct {
	BaseURL  string        `yaml:"base_url" env:"GOOGLE_BOOKS_BASE_URL" env-default:"https://www.googleapis.com/books/v1/volumes"`
	Timeout  time.Duration `yaml:"timeout" env:"GOOGLE_BOOKS_TIMEOUT" env-default:"10s"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"GOOGLE_BOOKS_CACHE_TTL" env-default:"15m"`
}

type BookCacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"BOOK_CACHE_TTL" env-default:"5m"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
	TimeFormat string `yaml:"time_format" env:"LOG_TIME_FORMAT" env-default:"2006-01-02T15:04:05.000Z07:00"`
}

type MetricsConfig struct {
	Port string `yaml:"port" env:"METRICS_PORT" env-default:""`
}

type TracingConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:""`
}

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer  HTTPServerConfig  `yaml:"http_server"`
	MongoDB     MongoDBConfig     `yaml:"mongo"`
	Redis       RedisConfig       `yaml:"redis"`
	NATS        NATSConfig        `yaml:"nats"`
	SMTP        SMTPConfig        `yaml:"smtp"`
	Auth        AuthConfig        `yaml:"auth"`
	GoogleBooks GoogleBooksConfig `yaml:"google_books"`
	BookCache   BookCacheConfig   `yaml:"book_cache"`
	Logger      LoggerConfig      `yaml:"logger"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Tracing     TracingConfig     `yaml:"tracing"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	err := cleanenv.ReadConfig(path, &cfg)
	if err != nil {
		if _, ok := err.(*os.PathError); ok {
			log.Printf("Warning: config file not found at %s, loading from environment variables only.", path)
			if errEnv := cleanenv.ReadEnv(&cfg); errEnv != nil {
				return nil, errEnv
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return cfg
}
