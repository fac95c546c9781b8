// persistence/notify.go
package persistence

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/malaleche/gameserver/logger"
)

const changeChannel = "room_changes"

// ChangeEvent is one row-level change on a room or player record. Clients
// re-derive room state by reloading the room and player rows on any event;
// hands are never part of the feed.
type ChangeEvent struct {
	Table    string `json:"table"`
	RoomCode string `json:"room_code"`
	Op       string `json:"op"`
}

// installNotifyTriggers wires pg_notify onto the room and player tables so
// every committed row change fans out over the listen channel.
func installNotifyTriggers(db *gorm.DB) error {
	stmts := []string{
		`CREATE OR REPLACE FUNCTION notify_game_room_change() RETURNS trigger AS $$
         BEGIN
             PERFORM pg_notify('` + changeChannel + `', json_build_object(
                 'table', TG_TABLE_NAME,
                 'room_code', COALESCE(NEW.code, OLD.code),
                 'op', TG_OP)::text);
             RETURN NEW;
         END; $$ LANGUAGE plpgsql`,
		`CREATE OR REPLACE FUNCTION notify_room_player_change() RETURNS trigger AS $$
         BEGIN
             PERFORM pg_notify('` + changeChannel + `', json_build_object(
                 'table', TG_TABLE_NAME,
                 'room_code', COALESCE(NEW.room_code, OLD.room_code),
                 'op', TG_OP)::text);
             RETURN NEW;
         END; $$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS game_rooms_notify ON game_rooms`,
		`CREATE TRIGGER game_rooms_notify AFTER INSERT OR UPDATE OR DELETE ON game_rooms
         FOR EACH ROW EXECUTE FUNCTION notify_game_room_change()`,
		`DROP TRIGGER IF EXISTS room_players_notify ON room_players`,
		`CREATE TRIGGER room_players_notify AFTER INSERT OR UPDATE OR DELETE ON room_players
         FOR EACH ROW EXECUTE FUNCTION notify_room_player_change()`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Notifier turns postgres LISTEN/NOTIFY traffic into per-room event
// channels. It must be constructed explicitly and closed on shutdown.
type Notifier struct {
	listener *pq.Listener
	mutex    sync.RWMutex
	subs     map[string][]chan ChangeEvent
	done     chan struct{}
}

// NewNotifier connects a dedicated listening connection.
func NewNotifier(dsn string) (*Notifier, error) {
	listener := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Log.Errorf("change feed listener event %d: %v", ev, err)
		}
	})
	if err := listener.Listen(changeChannel); err != nil {
		listener.Close()
		return nil, err
	}

	n := &Notifier{
		listener: listener,
		subs:     make(map[string][]chan ChangeEvent),
		done:     make(chan struct{}),
	}
	go n.dispatch()
	return n, nil
}

// Subscribe returns a channel of change events for one room and a cancel
// function. Events are dropped rather than blocking a slow subscriber.
func (n *Notifier) Subscribe(roomCode string) (<-chan ChangeEvent, func()) {
	ch := make(chan ChangeEvent, 16)

	n.mutex.Lock()
	n.subs[roomCode] = append(n.subs[roomCode], ch)
	n.mutex.Unlock()

	cancel := func() {
		n.mutex.Lock()
		defer n.mutex.Unlock()
		chans := n.subs[roomCode]
		for i, c := range chans {
			if c == ch {
				n.subs[roomCode] = append(chans[:i], chans[i+1:]...)
				close(ch)
				break
			}
		}
		if len(n.subs[roomCode]) == 0 {
			delete(n.subs, roomCode)
		}
	}
	return ch, cancel
}

func (n *Notifier) dispatch() {
	for {
		select {
		case <-n.done:
			return
		case notification := <-n.listener.Notify:
			if notification == nil {
				// connection reset; pq re-establishes LISTEN itself
				continue
			}
			var ev ChangeEvent
			if err := json.Unmarshal([]byte(notification.Extra), &ev); err != nil {
				logger.Log.Warnf("malformed change payload: %v", err)
				continue
			}
			n.fanOut(ev)
		case <-time.After(90 * time.Second):
			go n.listener.Ping()
		}
	}
}

func (n *Notifier) fanOut(ev ChangeEvent) {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	for _, ch := range n.subs[ev.RoomCode] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close tears the listening connection down.
func (n *Notifier) Close() error {
	close(n.done)
	return n.listener.Close()
}
