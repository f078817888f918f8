package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-pos/internal/application/checkout"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

var _ checkout.EventPublisher = (*SalePublisher)(nil)

// EventSaleCommitted tipo del evento publicado tras cada venta confirmada.
const EventSaleCommitted = "sale.committed"

// Envelope sobre común de eventos.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // sale_id
	Payload       json.RawMessage `json:"payload"`
}

// SaleItemPayload línea de la venta en el evento.
type SaleItemPayload struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleCommittedPayload contenido de sale.committed.
type SaleCommittedPayload struct {
	SaleID    string            `json:"sale_id"`
	SellerID  string            `json:"seller_id"`
	CreatedAt time.Time         `json:"created_at"`
	Total     decimal.Decimal   `json:"total"`
	Items     []SaleItemPayload `json:"items"`
}

// publisher lo que SalePublisher necesita del Producer.
type publisher interface {
	Publish(key, value []byte, headers ...kafka.Header) error
}

// SalePublisher implementa checkout.EventPublisher sobre el Producer asíncrono.
type SalePublisher struct {
	p        publisher
	producer string
	now      func() time.Time
}

// NewSalePublisher construye el publicador. producerName identifica al servicio en el sobre.
func NewSalePublisher(p *Producer, producerName string) *SalePublisher {
	return &SalePublisher{p: p, producer: producerName, now: time.Now}
}

// PublishSaleCommitted encola el evento con clave = sale_id.
func (s *SalePublisher) PublishSaleCommitted(_ context.Context, sale *entity.Sale) error {
	env, err := NewSaleCommittedEnvelope(sale, s.producer, s.now())
	if err != nil {
		return err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("kafka: marshal envelope: %w", err)
	}
	return s.p.Publish([]byte(sale.ID), value,
		kafka.Header{Key: "event_type", Value: []byte(EventSaleCommitted)},
	)
}

// NewSaleCommittedEnvelope construye el sobre de sale.committed.
func NewSaleCommittedEnvelope(sale *entity.Sale, producer string, at time.Time) (*Envelope, error) {
	payload := SaleCommittedPayload{
		SaleID:    sale.ID,
		SellerID:  sale.SellerID,
		CreatedAt: sale.CreatedAt,
		Total:     sale.Total,
		Items:     make([]SaleItemPayload, 0, len(sale.Items)),
	}
	for _, it := range sale.Items {
		payload.Items = append(payload.Items, SaleItemPayload{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("kafka: marshal payload: %w", err)
	}
	return &Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventSaleCommitted,
		EventVersion:  1,
		OccurredAt:    at.UTC(),
		Producer:      producer,
		CorrelationID: sale.ID,
		Payload:       raw,
	}, nil
}
