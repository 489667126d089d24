// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/phenrril/codstore/internal/domain"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

type OrderEvent struct {
	Type           string             `json:"type"`
	OrderID        string             `json:"order_id"`
	OrderNumber    string             `json:"order_number"`
	Status         domain.OrderStatus `json:"status"`
	PreviousStatus domain.OrderStatus `json:"previous_status,omitempty"`
	Province       string             `json:"province"`
	Total          string             `json:"total"`
	Items          int                `json:"items"`
	TS             int64              `json:"ts"`
}

// kafkaMessageWriter abstracts kafka.Writer for testability.
type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements domain.OrderNotifier. Messages are keyed by order id
// so that all events of one order land on the same partition.
type Publisher struct {
	writer  kafkaMessageWriter
	timeout time.Duration
	now     func() time.Time
}

// NewPublisher creates a Kafka publisher.
// brokers can be a comma-separated list of host:port.
func NewPublisher(brokers, topic string) *Publisher {
	var addrs []string
	for _, a := range strings.Split(brokers, ",") {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}
	return NewPublisherWith(&kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	})
}

// NewPublisherWith is only for tests to inject a fake writer.
func NewPublisherWith(w kafkaMessageWriter) *Publisher {
	return &Publisher{writer: w, timeout: 5 * time.Second, now: time.Now}
}

func (p *Publisher) OrderCreated(ctx context.Context, o *domain.Order) error {
	return p.publish(ctx, TypeOrderCreated, o, "")
}

func (p *Publisher) OrderStatusChanged(ctx context.Context, o *domain.Order, prev domain.OrderStatus) error {
	return p.publish(ctx, TypeOrderStatusChanged, o, prev)
}

func (p *Publisher) publish(ctx context.Context, typ string, o *domain.Order, prev domain.OrderStatus) error {
	items := 0
	for _, it := range o.Items {
		items += it.Quantity
	}
	b, err := json.Marshal(OrderEvent{
		Type:           typ,
		OrderID:        o.ID.String(),
		OrderNumber:    o.OrderNumber,
		Status:         o.Status,
		PreviousStatus: prev,
		Province:       o.Province,
		Total:          o.Total.StringFixed(2),
		Items:          items,
		TS:             p.now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(o.ID.String()),
		Value:   b,
		Headers: []kafka.Header{{Key: "type", Value: []byte(typ)}},
	}); err != nil {
		return fmt.Errorf("kafka publish %s: %w", typ, err)
	}
	return nil
}

func (p *Publisher) Close() error { return p.writer.Close() }
