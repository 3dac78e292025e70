package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/contracts"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/pricing"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	published  []published
	declareErr error
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	if f.declareErr != nil {
		return f.declareErr
	}
	f.declared = append(f.declared, name+"/"+kind)
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func checkedOut() contracts.CheckedOutCart {
	return contracts.CheckedOutCart{
		CartID: "cart-1",
		Items: []cart.LineItem{
			{Product: catalog.Product{ID: 3, Name: "headphones", Price: decimal.NewFromInt(29990)}, Quantity: 1},
		},
		Totals: pricing.Result{Subtotal: decimal.NewFromInt(29990), Total: decimal.NewFromInt(35988)},
	}
}

func TestRabbitPublisher_PublishCartCheckedOut(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(ch, NewMemorySequence(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{EventsExchange + "/topic"}, ch.declared)

	meta := PublishMetadata{CorrelationID: "corr-1", CausationID: "cause-1"}
	require.NoError(t, p.PublishCartCheckedOut(context.Background(), checkedOut(), meta))
	require.NoError(t, p.PublishCartCheckedOut(context.Background(), checkedOut(), meta))

	require.Len(t, ch.published, 2)
	first := ch.published[0]
	assert.Equal(t, EventsExchange, first.exchange)
	assert.Equal(t, CartCheckedOutRoutingKey, first.key)
	assert.Equal(t, "application/json", first.msg.ContentType)
	assert.Equal(t, amqp.Persistent, first.msg.DeliveryMode)
	assert.Equal(t, "corr-1", first.msg.CorrelationId)

	var env contracts.EventEnvelope
	require.NoError(t, json.Unmarshal(first.msg.Body, &env))
	assert.Equal(t, contracts.CartCheckedOutEventName, env.EventName)
	assert.Equal(t, "cart-1", env.PartitionKey)
	assert.Equal(t, int64(1), env.Sequence)
	assert.Equal(t, "cause-1", env.CausationID)
	assert.Equal(t, first.msg.MessageId, env.EventID)
	assert.True(t, env.Payload.TotalAmount.Equal(decimal.NewFromInt(35988)))

	var second contracts.EventEnvelope
	require.NoError(t, json.Unmarshal(ch.published[1].msg.Body, &second))
	assert.Equal(t, int64(2), second.Sequence)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestRabbitPublisher_Errors(t *testing.T) {
	_, err := newPublisher(&fakeChannel{declareErr: errors.New("no exchange")}, NewMemorySequence(), zap.NewNop())
	assert.Error(t, err)

	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := newPublisher(ch, NewMemorySequence(), zap.NewNop())
	require.NoError(t, err)
	assert.Error(t, p.PublishCartCheckedOut(context.Background(), checkedOut(), PublishMetadata{}))

	c := checkedOut()
	c.CartID = ""
	assert.Error(t, p.PublishCartCheckedOut(context.Background(), c, PublishMetadata{}))
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher(NewMemorySequence(), zap.NewNop())
	assert.NoError(t, p.PublishCartCheckedOut(context.Background(), checkedOut(), PublishMetadata{}))
}
