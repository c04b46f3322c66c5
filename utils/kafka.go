package utils

import (
	"log"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/matty-app/matty-backend/config"
)

var KafkaWriter *kafka.Writer

// InitializeKafka sets up the shared writer for the event-activity topic.
// When no brokers are configured the writer stays nil and publishing becomes
// a no-op, so local runs work without a broker.
func InitializeKafka(cfg *config.Config) {
	if cfg.KafkaBrokers == "" {
		log.Println("⚠️ Kafka not configured, activity publishing disabled")
		return
	}

	topic := cfg.KafkaActivityTopic
	if topic == "" {
		topic = "event-activity"
	}

	KafkaWriter = &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	log.Println("✅ Kafka writer initialized for topic:", topic)
}

// NewKafkaReader builds a consumer for the activity topic, nil when Kafka is
// not configured.
func NewKafkaReader(cfg *config.Config) *kafka.Reader {
	if cfg.KafkaBrokers == "" {
		return nil
	}

	topic := cfg.KafkaActivityTopic
	if topic == "" {
		topic = "event-activity"
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: strings.Split(cfg.KafkaBrokers, ","),
		Topic:   topic,
		GroupID: "matty-notifications",
	})
}
