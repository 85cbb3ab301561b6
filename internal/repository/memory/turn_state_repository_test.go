package memory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBeginTurnBlocksSecondTurn(t *testing.T) {
	repo := NewTurnStateRepository()
	conversationID := uuid.New()

	assert.True(t, repo.BeginTurn(conversationID))
	assert.False(t, repo.BeginTurn(conversationID), "second turn on the same conversation must be rejected")

	other := uuid.New()
	assert.True(t, repo.BeginTurn(other), "other conversations are unaffected")
}

func TestEndTurnReleasesConversation(t *testing.T) {
	repo := NewTurnStateRepository()
	conversationID := uuid.New()

	assert.True(t, repo.BeginTurn(conversationID))
	repo.EndTurn(conversationID)
	assert.True(t, repo.BeginTurn(conversationID), "conversation must accept a new turn after EndTurn")
}

func TestEndTurnOnIdleConversationIsNoop(t *testing.T) {
	repo := NewTurnStateRepository()
	repo.EndTurn(uuid.New())
}
