package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "config/config.yaml"

type DrovoConfig struct {
	Env        string `yaml:"env" env:"DROVO_ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	GRPCServer `yaml:"grpc_server"`
	DB         `yaml:"db"`
	LogConfig  `yaml:"log_config"`
	Kafka      `yaml:"kafka"`
	Razorpay   `yaml:"razorpay"`
	Cloudinary `yaml:"cloudinary"`
	Firebase   `yaml:"firebase"`
	WhatsApp   `yaml:"whatsapp"`
	SMTP       `yaml:"smtp"`
	Auth       `yaml:"auth"`
	Crypto     `yaml:"crypto"`
	Orders     `yaml:"orders"`
	Background `yaml:"background"`
}

type HTTPServer struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"PORT" env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50051"`
}

type DB struct {
	Dsn            string `yaml:"dsn" env:"DATABASE_URL" env-required:"true"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
	MigrateOnStart bool   `yaml:"migrate_on_start" env:"MIGRATE_ON_START" env-default:"true"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

type Kafka struct {
	Brokers    []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	OrderTopic string   `yaml:"order_topic" env:"KAFKA_ORDER_TOPIC" env-default:"drovo.order-events"`
}

type Razorpay struct {
	KeyID      string        `yaml:"key_id" env:"RAZORPAY_KEY_ID"`
	KeySecret  string        `yaml:"key_secret" env:"RAZORPAY_KEY_SECRET"`
	BaseURL    string        `yaml:"base_url" env:"RAZORPAY_BASE_URL" env-default:"https://api.razorpay.com"`
	Timeout    time.Duration `yaml:"timeout" env-default:"10s"`
	Retries    int           `yaml:"retries" env-default:"3"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"500ms"`
}

type Cloudinary struct {
	CloudName string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `yaml:"api_key" env:"CLOUDINARY_API_KEY"`
	APISecret string `yaml:"api_secret" env:"CLOUDINARY_API_SECRET"`
}

type Firebase struct {
	ProjectID       string `yaml:"project_id" env:"FIREBASE_PROJECT_ID"`
	CredentialsJSON string `yaml:"credentials_json" env:"FIREBASE_CREDENTIALS_JSON"`
}

type WhatsApp struct {
	Enabled       bool          `yaml:"enabled" env:"WHATSAPP_ENABLED" env-default:"false"`
	BaseURL       string        `yaml:"base_url" env:"WHATSAPP_BASE_URL" env-default:"https://graph.facebook.com/v20.0"`
	PhoneNumberID string        `yaml:"phone_number_id" env:"WHATSAPP_PHONE_NUMBER_ID"`
	AccessToken   string        `yaml:"access_token" env:"WHATSAPP_ACCESS_TOKEN"`
	MinBackoff    time.Duration `yaml:"min_backoff" env-default:"2s"`
	MaxBackoff    time.Duration `yaml:"max_backoff" env-default:"2m"`
}

type SMTP struct {
	Host     string `yaml:"host" env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"EMAIL_USER"`
	Password string `yaml:"password" env:"EMAIL_PASS"`
	From     string `yaml:"from" env:"EMAIL_FROM"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
}

type Crypto struct {
	// Keys holds "id:hexkey" pairs separated by commas.
	Keys        string `yaml:"keys" env:"BANK_ENCRYPTION_KEYS" env-required:"true"`
	ActiveKeyID string `yaml:"active_key_id" env:"BANK_ENCRYPTION_ACTIVE_KEY" env-required:"true"`
}

type Orders struct {
	MinOrderAmount      float64       `yaml:"min_order_amount" env:"MIN_ORDER_AMOUNT" env-default:"0"`
	NotificationTimeout time.Duration `yaml:"notification_timeout" env-default:"30s"`
}

type Background struct {
	ReminderInterval time.Duration `yaml:"reminder_interval" env-default:"12h"`
	ReminderWindow   time.Duration `yaml:"reminder_window" env-default:"72h"`
}

// Load reads the config file (DROVO_CONFIG_PATH or config/config.yaml) and
// overlays the environment. A missing file falls back to environment only.
func Load() (*DrovoConfig, error) {
	configPath := os.Getenv("DROVO_CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	var cfg DrovoConfig
	if _, err := os.Stat(configPath); err != nil {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env config: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", configPath, err)
	}
	return &cfg, nil
}

func MustLoad() *DrovoConfig {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
