package config

import (
	"fmt"
	"log"
	"net"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envFile = "config.env"

type Config struct {
	HTTPPort  string `envconfig:"APP_PORT" default:"8080"`
	GRPC      GRPCConfig
	Log       LogConfig
	DB        DBConfig
	JWT       JWTConfig
	Kafka     KafkaConfig
	Risk      RiskConfig
	Payment   PaymentConfig
	Analytics AnalyticsConfig
}

// GRPCConfig: по умолчанию сервер слушает только loopback.
// Пустой AuthToken отключает проверку токена.
type GRPCConfig struct {
	Host      string `envconfig:"GRPC_HOST" default:"127.0.0.1"`
	Port      string `envconfig:"GRPC_PORT" default:"50051"`
	AuthToken string `envconfig:"GRPC_AUTH_TOKEN"`
}

func (g GRPCConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" default:"artha.log"`
}

type DBConfig struct {
	Host     string `envconfig:"POSTGRES_HOST"     required:"true"`
	Port     string `envconfig:"POSTGRES_PORT"     required:"true"`
	User     string `envconfig:"POSTGRES_USER"     required:"true"`
	Password string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	DBName   string `envconfig:"POSTGRES_DB"       required:"true"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE"  default:"disable"`
}

type JWTConfig struct {
	Secret     string        `envconfig:"JWT_SECRET" required:"true"`
	Expiration time.Duration `envconfig:"JWT_EXPIRATION" default:"24h"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"risk-alerts"`
	Enabled bool     `envconfig:"KAFKA_ENABLED" default:"true"`
}

// RiskConfig настраивает isolation forest и реакцию на высокий риск
type RiskConfig struct {
	Seed           int64   `envconfig:"RISK_SEED" default:"42"`
	Trees          int     `envconfig:"RISK_TREES" default:"100"`
	MaxSamples     int     `envconfig:"RISK_MAX_SAMPLES" default:"256"`
	Contamination  float64 `envconfig:"RISK_CONTAMINATION" default:"0.1"`
	AlertThreshold int     `envconfig:"RISK_ALERT_THRESHOLD" default:"70"`
	BlockHigh      bool    `envconfig:"RISK_BLOCK_HIGH" default:"false"`
	AlertWorkers   int     `envconfig:"RISK_ALERT_WORKERS" default:"5"`
	AlertQueueSize int     `envconfig:"RISK_ALERT_QUEUE" default:"100"`
	MaxHistory     int     `envconfig:"RISK_MAX_HISTORY" default:"10000"`
}

type PaymentConfig struct {
	Currency string `envconfig:"UPI_CURRENCY" default:"INR"`
}

type AnalyticsConfig struct {
	HighValueThreshold float64 `envconfig:"ANALYTICS_HIGH_VALUE_THRESHOLD" default:"5000"`
	AverageAlert       float64 `envconfig:"ANALYTICS_AVERAGE_ALERT" default:"4000"`
}

// NotifierConfig is read by cmd/notifier only. HTTP API алертов без аутентификации,
// поэтому по умолчанию слушает loopback.
type NotifierConfig struct {
	HTTPHost string `envconfig:"NOTIFIER_HTTP_HOST" default:"127.0.0.1"`
	HTTPPort string `envconfig:"NOTIFIER_HTTP_PORT" default:"8081"`
	Log      LogConfig
	Kafka    ConsumerConfig
	MongoDB  MongoDBConfig
}

func (n *NotifierConfig) HTTPAddr() string {
	return net.JoinHostPort(n.HTTPHost, n.HTTPPort)
}

type ConsumerConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"risk-alerts"`
	GroupID string   `envconfig:"KAFKA_GROUP_ID" default:"artha-notifier"`
	Workers int      `envconfig:"KAFKA_WORKERS" default:"3"`
}

type MongoDBConfig struct {
	URI        string        `envconfig:"MONGO_URI" required:"true"`
	Database   string        `envconfig:"MONGO_DATABASE" default:"artha"`
	Collection string        `envconfig:"MONGO_COLLECTION" default:"risk_alerts"`
	Timeout    time.Duration `envconfig:"MONGO_TIMEOUT" default:"10s"`
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации: %w", err)
	}

	return &cfg, nil
}

func NewNotifierConfig() (*NotifierConfig, error) {
	loadEnvFile()

	var cfg NotifierConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации: %w", err)
	}
	if cfg.Log.File == "artha.log" {
		cfg.Log.File = "notifier.log"
	}

	return &cfg, nil
}

func loadEnvFile() {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("warning: не удалось загрузить файл %s, используются только системные переменные окружения: %v", envFile, err)
	}
}

func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (d *DBConfig) MigrationURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}
