package services

import (
	"sync"

	"github.com/malaleche/gameserver/persistence"
)

// playerCache is a read-through cache of a room's player rows, invalidated
// by change-feed events instead of re-fetching on every notification.
type playerCache struct {
	mutex   sync.RWMutex
	entries map[string][]persistence.RoomPlayer
}

func newPlayerCache() *playerCache {
	return &playerCache{
		entries: make(map[string][]persistence.RoomPlayer),
	}
}

func (c *playerCache) get(roomID string) ([]persistence.RoomPlayer, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	players, ok := c.entries[roomID]
	return players, ok
}

func (c *playerCache) put(roomID string, players []persistence.RoomPlayer) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[roomID] = players
}

func (c *playerCache) invalidate(roomID string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.entries, roomID)
}
