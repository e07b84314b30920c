package app

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix — общий префикс переменных окружения приложения.
const envPrefix = "TORTHOUSE"

// Config описывает настройки запуска приложения.
// Заполняется из окружения: TORTHOUSE_DATABASE_DSN, TORTHOUSE_ADMIN_IDS и т.д.
type Config struct {
	// DatabaseDSN — PostgreSQL DSN; пустое значение включает in-memory хранилище.
	DatabaseDSN string `envconfig:"DATABASE_DSN"`

	// AdminIDs — allow-list администраторов, через запятую.
	AdminIDs []string `envconfig:"ADMIN_IDS"`

	// OrderChannelID — необязательный канал заказов.
	OrderChannelID string `envconfig:"ORDER_CHANNEL_ID"`

	// KafkaBrokers — брокеры для публикации событий заказов; пусто = без Kafka.
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`

	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// ReadConfig читает конфигурацию из окружения.
func ReadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}
