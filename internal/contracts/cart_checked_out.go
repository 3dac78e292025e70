package contracts

import (
	"time"

	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CartCheckedOutEventName    = "CartCheckedOut"
	CartCheckedOutEventVersion = 2
	CartCheckedOutSchemaPath   = "contracts/events/cart/CartCheckedOut.v2.enveloped.schema.json"
	CartServiceProducer        = "cart-pricing-service"
)

type EventEnvelope struct {
	EventName     string                `json:"eventName"`
	EventVersion  int                   `json:"eventVersion"`
	EventID       string                `json:"eventId"`
	CorrelationID string                `json:"correlationId,omitempty"`
	CausationID   string                `json:"causationId,omitempty"`
	Producer      string                `json:"producer"`
	PartitionKey  string                `json:"partitionKey"`
	Sequence      int64                 `json:"sequence"`
	OccurredAt    time.Time             `json:"occurredAt"`
	Schema        string                `json:"schema"`
	Payload       CartCheckedOutPayload `json:"payload"`
}

type CartCheckedOutPayload struct {
	CartID      string               `json:"cartId"`
	Items       []CartCheckedOutItem `json:"items"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
	Discounts   decimal.Decimal      `json:"discounts"`
	Tax         decimal.Decimal      `json:"tax"`
	TotalAmount decimal.Decimal      `json:"totalAmount"`
	Timestamp   time.Time            `json:"timestamp"`
}

type CartCheckedOutItem struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CheckedOutCart is the cart state at the moment of checkout.
type CheckedOutCart struct {
	CartID string
	Items  []cart.LineItem
	Totals pricing.Result
}

type EnvelopeOptions struct {
	PartitionKey  string
	Sequence      int64
	Producer      string
	SchemaPath    string
	CorrelationID string
	CausationID   string
	EventID       string
	OccurredAt    time.Time
}

func BuildCartCheckedOutEvent(c CheckedOutCart, opts EnvelopeOptions) EventEnvelope {
	eventID := opts.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	occurredAt := opts.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	schemaPath := opts.SchemaPath
	if schemaPath == "" {
		schemaPath = CartCheckedOutSchemaPath
	}

	producer := opts.Producer
	if producer == "" {
		producer = CartServiceProducer
	}

	partitionKey := opts.PartitionKey
	if partitionKey == "" {
		partitionKey = c.CartID
	}

	payload := CartCheckedOutPayload{
		CartID:      c.CartID,
		Items:       make([]CartCheckedOutItem, 0, len(c.Items)),
		Subtotal:    c.Totals.Subtotal,
		Discounts:   c.Totals.Discounts,
		Tax:         c.Totals.Tax,
		TotalAmount: c.Totals.Total,
		Timestamp:   occurredAt,
	}

	for _, it := range c.Items {
		payload.Items = append(payload.Items, CartCheckedOutItem{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			Price:     it.Product.Price,
		})
	}

	return EventEnvelope{
		EventName:     CartCheckedOutEventName,
		EventVersion:  CartCheckedOutEventVersion,
		EventID:       eventID,
		CorrelationID: opts.CorrelationID,
		CausationID:   opts.CausationID,
		Producer:      producer,
		PartitionKey:  partitionKey,
		Sequence:      opts.Sequence,
		OccurredAt:    occurredAt,
		Schema:        schemaPath,
		Payload:       payload,
	}
}
