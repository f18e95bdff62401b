package app

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	CatalogMongo    = "mongo"
	CatalogPostgres = "postgres"
)

type Config struct {
	Port          string
	Env           string
	CatalogDriver string

	MongoURI string
	MongoDB  string
	DBURL    string

	RedisAddr     string
	RedisPassword string
	CartTTL       time.Duration

	KafkaBroker     string
	KafkaOrderTopic string
	KafkaGroupID    string

	JWTSecret string
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadConfig membaca konfigurasi dari environment (setelah godotenv.Load).
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:            getenv("PORT", "3000"),
		Env:             strings.ToLower(getenv("APP_ENV", "development")),
		CatalogDriver:   strings.ToLower(getenv("CATALOG_DRIVER", CatalogMongo)),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "storefront"),
		DBURL:           os.Getenv("DB_URL"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		KafkaBroker:     getenv("KAFKA_BROKER", "localhost:9092"),
		KafkaOrderTopic: getenv("KAFKA_ORDER_TOPIC", "order.events"),
		KafkaGroupID:    getenv("KAFKA_GROUP_ID", "cart-consumer-group"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
	}

	// 0: ledgers are kept until cleared
	ttl, err := time.ParseDuration(getenv("CART_TTL", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid CART_TTL: %w", err)
	}
	cfg.CartTTL = ttl

	switch cfg.CatalogDriver {
	case CatalogMongo:
	case CatalogPostgres:
		if cfg.DBURL == "" {
			return Config{}, fmt.Errorf("DB_URL is required when CATALOG_DRIVER=%s", CatalogPostgres)
		}
	default:
		return Config{}, fmt.Errorf("unknown CATALOG_DRIVER %q", cfg.CatalogDriver)
	}

	if cfg.JWTSecret == "" && cfg.IsProduction() {
		return Config{}, fmt.Errorf("JWT_SECRET is required in production")
	}
	return cfg, nil
}
