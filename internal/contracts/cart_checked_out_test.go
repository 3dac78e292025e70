package contracts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkedOut() CheckedOutCart {
	return CheckedOutCart{
		CartID: "a9c9bf1d-32f2-46a0-9243-97c2cf8a6c4a",
		Items: []cart.LineItem{
			{Product: catalog.Product{ID: 1, Name: "phone", Price: decimal.NewFromInt(1000)}, Quantity: 2},
		},
		Totals: pricing.Result{
			Subtotal:  decimal.NewFromInt(2000),
			Discounts: decimal.NewFromInt(1100),
			Tax:       decimal.NewFromInt(180),
			Total:     decimal.NewFromInt(1080),
		},
	}
}

func TestBuildCartCheckedOutEvent(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	c := checkedOut()

	env := BuildCartCheckedOutEvent(c, EnvelopeOptions{
		PartitionKey:  c.CartID,
		Sequence:      42,
		CorrelationID: "53b0fd3e-8d6b-49af-8c1f-12cf4182c2f7",
		CausationID:   "63b0fd3e-8d6b-49af-8c1f-12cf4182c2f7",
		EventID:       "73b0fd3e-8d6b-49af-8c1f-12cf4182c2f7",
		OccurredAt:    now,
	})

	assert.Equal(t, CartCheckedOutEventName, env.EventName)
	assert.Equal(t, CartCheckedOutEventVersion, env.EventVersion)
	assert.Equal(t, "73b0fd3e-8d6b-49af-8c1f-12cf4182c2f7", env.EventID)
	assert.Equal(t, c.CartID, env.PartitionKey)
	assert.Equal(t, int64(42), env.Sequence)
	assert.Equal(t, "53b0fd3e-8d6b-49af-8c1f-12cf4182c2f7", env.CorrelationID)
	assert.Equal(t, "63b0fd3e-8d6b-49af-8c1f-12cf4182c2f7", env.CausationID)
	assert.Equal(t, CartServiceProducer, env.Producer)
	assert.Equal(t, CartCheckedOutSchemaPath, env.Schema)
	assert.Equal(t, now, env.Payload.Timestamp)

	require.Len(t, env.Payload.Items, 1)
	assert.Equal(t, 1, env.Payload.Items[0].ProductID)
	assert.Equal(t, 2, env.Payload.Items[0].Quantity)
	assert.True(t, env.Payload.TotalAmount.Equal(decimal.NewFromInt(1080)))
	assert.True(t, env.Payload.Discounts.Equal(decimal.NewFromInt(1100)))
}

func TestBuildCartCheckedOutEvent_Defaults(t *testing.T) {
	c := checkedOut()
	c.Items = nil

	env := BuildCartCheckedOutEvent(c, EnvelopeOptions{Sequence: 1})

	_, err := uuid.Parse(env.EventID)
	assert.NoError(t, err)
	assert.False(t, env.OccurredAt.IsZero())
	assert.Equal(t, c.CartID, env.PartitionKey)
	assert.NotNil(t, env.Payload.Items, "items encode as [] rather than null")
}

func TestCartCheckedOutEnvelopeJSON(t *testing.T) {
	env := BuildCartCheckedOutEvent(checkedOut(), EnvelopeOptions{Sequence: 3})

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	for _, field := range []string{"eventName", "eventVersion", "eventId", "producer", "partitionKey", "sequence", "occurredAt", "schema", "payload"} {
		assert.Contains(t, decoded, field)
	}
	assert.NotContains(t, decoded, "correlationId")

	payload := decoded["payload"].(map[string]any)
	assert.Equal(t, "1080", payload["totalAmount"])
	assert.Equal(t, "2000", payload["subtotal"])
}
