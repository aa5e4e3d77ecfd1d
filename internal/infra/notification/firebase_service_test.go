package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopicMessage(t *testing.T) {
	data := map[string]string{"event_id": "e1"}

	msg := newTopicMessage("events", "New event", "Go meetup", data)

	assert.Equal(t, "events", msg.Topic)
	assert.Empty(t, msg.Token)
	require.NotNil(t, msg.Notification)
	assert.Equal(t, "New event", msg.Notification.Title)
	assert.Equal(t, "Go meetup", msg.Notification.Body)
	assert.Equal(t, data, msg.Data)
}
