package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// TurnStateRepository guards conversations against concurrent turns. A stale
// entry expires on its own so a crashed turn never wedges the conversation.
type TurnStateRepository struct {
	cache *cache.Cache
}

func NewTurnStateRepository() *TurnStateRepository {
	// entries expire after 5 minutes, purged every minute
	c := cache.New(5*time.Minute, 1*time.Minute)
	return &TurnStateRepository{
		cache: c,
	}
}

// BeginTurn marks the conversation busy. Returns false when a turn is
// already in flight.
func (r *TurnStateRepository) BeginTurn(conversationID uuid.UUID) bool {
	err := r.cache.Add(conversationID.String(), time.Now(), cache.DefaultExpiration)
	return err == nil
}

func (r *TurnStateRepository) EndTurn(conversationID uuid.UUID) {
	r.cache.Delete(conversationID.String())
}
