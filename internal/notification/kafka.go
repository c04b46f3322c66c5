package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes activity messages to the event-activity topic.
// A nil writer makes publishing a no-op for broker-less local runs.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg ActivityMessage) error {
	if p.writer == nil {
		return nil
	}
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.EventID),
		Value: value,
	})
}

// DirectPublisher bypasses the broker and hands activity messages straight
// to the notification service. Used when Kafka is not configured.
type DirectPublisher struct {
	svc *Service
}

func NewDirectPublisher(svc *Service) *DirectPublisher {
	return &DirectPublisher{svc: svc}
}

func (p *DirectPublisher) Publish(ctx context.Context, msg ActivityMessage) error {
	return p.svc.HandleActivity(ctx, msg)
}

// StartKafkaConsumer drains the activity topic in a goroutine and hands each
// message to the notification service for fan-out.
func StartKafkaConsumer(reader *kafka.Reader, svc *Service) {
	if reader == nil {
		log.Println("⚠️ Kafka consumer disabled")
		return
	}

	go func() {
		ctx := context.Background()
		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				log.Printf("❌ Kafka read failed: %v", err)
				continue
			}

			var msg ActivityMessage
			if err := json.Unmarshal(m.Value, &msg); err != nil {
				log.Printf("⚠️ dropping malformed activity message: %v", err)
				continue
			}

			if err := svc.HandleActivity(ctx, msg); err != nil {
				log.Printf("⚠️ handling %s activity failed: %v", msg.Type, err)
			}
		}
	}()

	log.Println("✅ Kafka activity consumer started")
}
