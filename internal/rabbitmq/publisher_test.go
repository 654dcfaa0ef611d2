package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profile-service/internal/models"
)

type fakeChannel struct {
	mu        sync.Mutex
	published []amqp.Publishing
	keys      []string
	err       error
}

func (f *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	f.keys = append(f.keys, exchange+"/"+key)
	return nil
}

var testUser = models.PublicUser{
	ID:     "65f1c2a9e4b0a1b2c3d4e5f6",
	Name:   "Alice",
	Email:  "a@b.com",
	Mobile: "+15551234567",
}

func TestPublisher_PublishUserCreated(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, "users", "")
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	require.NoError(t, p.PublishUserCreated(context.Background(), testUser))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "users/user.created", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, EventUserCreated, msg.Type)
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)
	_, err := uuid.Parse(msg.MessageId)
	assert.NoError(t, err)

	var got UserCreated
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, UserCreated{
		ID:         testUser.ID,
		Name:       testUser.Name,
		Email:      testUser.Email,
		Mobile:     testUser.Mobile,
		OccurredAt: fixed,
	}, got)
	assert.NotContains(t, string(msg.Body), "password")
}

func TestPublisher_Errors(t *testing.T) {
	t.Run("channel failure", func(t *testing.T) {
		p := NewPublisher(&fakeChannel{err: amqp.ErrClosed}, "users", "user.created")
		err := p.PublishUserCreated(context.Background(), testUser)
		require.Error(t, err)
		assert.ErrorIs(t, err, amqp.ErrClosed)
		assert.Contains(t, err.Error(), "rabbitmq.PublishUserCreated")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ch := &fakeChannel{}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewPublisher(ch, "users", "user.created").PublishUserCreated(ctx, testUser)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Empty(t, ch.published)
	})
}

func TestPublisher_Concurrent(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, "users", "user.created")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.PublishUserCreated(context.Background(), testUser))
		}()
	}
	wg.Wait()

	assert.Len(t, ch.published, 20)
}
