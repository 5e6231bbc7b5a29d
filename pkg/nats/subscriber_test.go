package nats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEventRoundTripsEnvelope(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	body, err := json.Marshal(map[string]interface{}{
		"type":        "IMAGE_GENERATED",
		"occurred_at": at,
		"data":        map[string]interface{}{"entity_id": "abc"},
	})
	require.NoError(t, err)

	event, err := DecodeEvent(body)
	require.NoError(t, err)
	assert.Equal(t, "IMAGE_GENERATED", event.EventType())
	assert.True(t, at.Equal(event.Timestamp()))
	assert.Equal(t, "abc", event.Payload()["entity_id"])
	assert.Equal(t, "events.IMAGE_GENERATED", Subject("IMAGE_GENERATED"))

	_, err = DecodeEvent([]byte("not json"))
	assert.Error(t, err)
}
