package events

import (
	"context"
	"strconv"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

const DefaultTopic = "vales.lifecycle"

type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	logger   *zap.SugaredLogger
}

func NewKafkaPublisher(brokers, topic string, logger *zap.SugaredLogger) (*KafkaPublisher, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": brokers})
	if err != nil {
		return nil, err
	}
	if topic == "" {
		topic = DefaultTopic
	}

	p := &KafkaPublisher{producer: producer, topic: topic, logger: logger}
	go p.deliveryReports()
	return p, nil
}

func (p *KafkaPublisher) deliveryReports() {
	for e := range p.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				p.logger.Errorw("kafka delivery failed", "partition", ev.TopicPartition.String(), "error", ev.TopicPartition.Error)
			} else {
				p.logger.Debugw("kafka delivered", "partition", ev.TopicPartition.String())
			}
		}
	}
}

// Publish enqueues the event; delivery is reported asynchronously.
func (p *KafkaPublisher) Publish(_ context.Context, e Event) error {
	payload, err := Encode(e)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(strconv.FormatInt(e.VoucherID, 10)),
		Value:          payload,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(e.Type)},
			{Key: "producer", Value: []byte(Producer)},
			{Key: "eventVersion", Value: []byte(Version)},
		},
	}
	return p.producer.Produce(&msg, nil)
}

func (p *KafkaPublisher) Close() {
	p.producer.Flush(5000)
	p.producer.Close()
}
