package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-storefront-api/internal/checkout"
	mkafka "go-storefront-api/internal/messaging/kafka"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs chan kafka.Message
	// fetchErr is returned by every fetch while set
	fetchErr error

	mu        sync.Mutex
	fetches   int
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	r.fetches++
	err := r.fetchErr
	r.mu.Unlock()
	if err != nil {
		return kafka.Message{}, err
	}

	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case m := <-r.msgs:
		return m, nil
	}
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) offsets() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func (r *fakeReader) fetchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetches
}

// fakeCarts holds the current fingerprint per token.
type fakeCarts struct {
	mu       sync.Mutex
	current  map[string]string
	attempts int
	err      error
}

func (c *fakeCarts) ClearIfUnchanged(ctx context.Context, token, fingerprint string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts++
	if c.err != nil {
		return false, c.err
	}
	if c.current[token] != fingerprint {
		return false, nil
	}
	delete(c.current, token)
	return true, nil
}

func (c *fakeCarts) fingerprint(token string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current[token]
}

func (c *fakeCarts) attemptCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

func event(t *testing.T, offset int64, eventType string, payload any) kafka.Message {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return kafka.Message{
		Offset:  offset,
		Value:   body,
		Headers: []kafka.Header{{Key: mkafka.HeaderEventType, Value: []byte(eventType)}},
	}
}

func clearPending(t *testing.T, offset int64, token, fingerprint string) kafka.Message {
	return event(t, offset, checkout.EventCartClearPending, checkout.CartClearPayload{
		OrderNumber: "ORD-1", CartToken: token, Fingerprint: fingerprint,
	})
}

func run(t *testing.T, reader Reader, carts CartClearer) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ConsumeMessages(ctx, reader, carts, zap.NewNop())
	}()
	return func() {
		cancel()
		<-done
	}
}

func TestConsumeMessages_ClearPending(t *testing.T) {
	defer goleak.VerifyNone(t)

	reader := &fakeReader{msgs: make(chan kafka.Message, 8)}
	carts := &fakeCarts{current: map[string]string{
		"tok-1": "fp-ordered",
		// shopper added items after checkout
		"tok-2": "fp-new-cart",
	}}
	stop := run(t, reader, carts)

	reader.msgs <- event(t, 1, checkout.EventOrderPlaced, checkout.OrderPlacedPayload{OrderNumber: "ORD-1", CartToken: "tok-1"})
	reader.msgs <- clearPending(t, 2, "tok-1", "fp-ordered")
	reader.msgs <- clearPending(t, 3, "tok-2", "fp-ordered")
	reader.msgs <- kafka.Message{Offset: 4, Headers: []kafka.Header{{Key: mkafka.HeaderEventType, Value: []byte("SOMETHING_ELSE")}}}
	reader.msgs <- kafka.Message{Offset: 5, Value: []byte("{broken"), Headers: []kafka.Header{{Key: mkafka.HeaderEventType, Value: []byte(checkout.EventCartClearPending)}}}

	require.Eventually(t, func() bool { return len(reader.offsets()) == 5 }, time.Second, 5*time.Millisecond)
	stop()

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, reader.offsets())
	assert.Empty(t, carts.fingerprint("tok-1"))
	assert.Equal(t, "fp-new-cart", carts.fingerprint("tok-2"))
	assert.Equal(t, 2, carts.attemptCount(), "ORDER_PLACED never touches the cart")
}

func TestConsumeMessages_OrderPlacedRedeliveryKeepsNewCart(t *testing.T) {
	defer goleak.VerifyNone(t)

	reader := &fakeReader{msgs: make(chan kafka.Message, 2)}
	carts := &fakeCarts{current: map[string]string{"tok-1": "fp-after-checkout"}}
	stop := run(t, reader, carts)

	placed := event(t, 1, checkout.EventOrderPlaced, checkout.OrderPlacedPayload{OrderNumber: "ORD-1", CartToken: "tok-1"})
	reader.msgs <- placed
	reader.msgs <- placed

	require.Eventually(t, func() bool { return len(reader.offsets()) == 2 }, time.Second, 5*time.Millisecond)
	stop()

	assert.Equal(t, "fp-after-checkout", carts.fingerprint("tok-1"))
}

func TestConsumeMessages_FailedClearIsRetriedThenSkipped(t *testing.T) {
	defer goleak.VerifyNone(t)

	prev := RetryBackoff
	RetryBackoff = time.Millisecond
	defer func() { RetryBackoff = prev }()

	reader := &fakeReader{msgs: make(chan kafka.Message, 2)}
	carts := &fakeCarts{err: errors.New("redis down")}
	stop := run(t, reader, carts)

	reader.msgs <- clearPending(t, 7, "tok-7", "fp")

	require.Eventually(t, func() bool { return len(reader.offsets()) == 1 }, time.Second, 5*time.Millisecond)
	stop()

	assert.Equal(t, MaxAttempts, carts.attemptCount())
	assert.Equal(t, []int64{7}, reader.offsets())
}

func TestConsumeMessages_FetchErrorBacksOff(t *testing.T) {
	defer goleak.VerifyNone(t)

	prev := FetchBackoff
	FetchBackoff = 50 * time.Millisecond
	defer func() { FetchBackoff = prev }()

	reader := &fakeReader{msgs: make(chan kafka.Message), fetchErr: errors.New("broker unavailable")}
	stop := run(t, reader, &fakeCarts{})

	time.Sleep(120 * time.Millisecond)
	stop()

	assert.LessOrEqual(t, reader.fetchCount(), 4)
	assert.GreaterOrEqual(t, reader.fetchCount(), 2)
}
