package catalog

import (
	"encoding/json"
	"time"

	kafkax "github.com/ariefcatur/go-realtime-catalog.git/internal/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

const (
	EventProductCreated = "ProductCreated"
	EventProductUpdated = "ProductUpdated"
	EventProductDeleted = "ProductDeleted"
)

const TopicCatalogEvents = "catalog.events"

// Partition key = product_id, supaya event untuk satu product tetap berurutan.
func PartitionKey(productID string) []byte { return []byte(productID) }

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // product_id
	Payload       json.RawMessage `json:"payload"`
}

type ProductCreatedPayload struct {
	Product Product `json:"product"`
}

type ProductUpdatedPayload struct {
	Product Product `json:"product"`
}

type ProductDeletedPayload struct {
	ProductID string `json:"product_id"`
}

// Feed mem-publish event mutasi catalog ke Kafka. Nil Feed berarti feed dimatikan.
type Feed struct {
	Producer *kafkax.Producer
	Service  string
}

func (f *Feed) ProductCreated(p Product, traceID string) {
	f.publish(EventProductCreated, p.ID, traceID, ProductCreatedPayload{Product: p})
}

func (f *Feed) ProductUpdated(p Product, traceID string) {
	f.publish(EventProductUpdated, p.ID, traceID, ProductUpdatedPayload{Product: p})
}

func (f *Feed) ProductDeleted(productID, traceID string) {
	f.publish(EventProductDeleted, productID, traceID, ProductDeletedPayload{ProductID: productID})
}

func (f *Feed) publish(eventType, productID, traceID string, payload any) {
	if f == nil || f.Producer == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      f.Service,
		TraceID:       traceID,
		CorrelationID: productID,
		Payload:       kafkax.MustMarshal(payload),
	}
	f.Producer.Publish(PartitionKey(productID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
