package agent

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProgressAndErrorEventsOmitConversationID(t *testing.T) {
	for _, ev := range []Event{
		{Type: EventProgress, Status: "Researching keywords..."},
		{Type: EventError, Error: "assistant is unavailable right now"},
	} {
		data, err := json.Marshal(ev)
		assert.NoError(t, err)
		assert.NotContains(t, string(data), "conversation_id")
	}
}

func TestMessageEventCarriesConversationID(t *testing.T) {
	id := uuid.New()
	data, err := json.Marshal(Event{Type: EventMessage, Text: "All set.", ConversationID: &id})

	assert.NoError(t, err)
	assert.Contains(t, string(data), id.String())
}
