package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConsumerDeliversCommittedNotification(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	consumer := NewConsumerService(f.pubSub, f.topic, f.factory, f.delivery)
	require.NoError(t, consumer.Consume(f.ctx))

	f.send(t, alice, bob, nil, "ping")

	require.Eventually(t, func() bool {
		sent := f.delivery.sentTo(bob.Id)
		return len(sent) == 1 && sent[0].Title == "New message from alice"
	}, 2*time.Second, 10*time.Millisecond)
}
