package config

import (
	"errors"
	"os"
	"strings"
)

type Config struct {
	Port        string
	DatabaseURL string

	// Queue sink
	QueueBrokers string
	QueueName    string

	// Delivery HTTP sink
	DeliveryBaseURL string
}

func Read() (Config, error) {
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if db == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}

	brokers := strings.TrimSpace(os.Getenv("QUEUE_BROKERS"))
	if brokers == "" {
		return Config{}, errors.New("QUEUE_BROKERS is required")
	}

	delivery := strings.TrimSpace(os.Getenv("DELIVERY_BASE_URL"))
	if delivery == "" {
		return Config{}, errors.New("DELIVERY_BASE_URL is required")
	}

	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     db,
		QueueBrokers:    brokers,
		QueueName:       getenv("QUEUE_NAME", "orders"),
		DeliveryBaseURL: delivery,
	}, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
