package session

import (
	"net"
	"testing"
	"time"

	"github.com/malaleche/gameserver/network"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct{}

func (m *MockConnection) Send(msgID uint16, data []byte) error        { return nil }
func (m *MockConnection) SendJSON(msgID uint16, v interface{}) error  { return nil }
func (m *MockConnection) Close() error                                { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                        { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)         {}
func (m *MockConnection) ReadPacket() (*network.Packet, error)        { return nil, nil }

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager should not return nil")
	}
	if manager.sessions == nil {
		t.Fatal("NewManager should initialize the sessions map")
	}
}

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sessionID := "test_session_1"
	sess := NewSession(sessionID, &MockConnection{})

	// Test Add
	manager.Add(sess)
	if manager.Count() != 1 {
		t.Fatalf("Expected session count to be 1, got %d", manager.Count())
	}

	// Test Get
	retrievedSess, exists := manager.Get(sessionID)
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if retrievedSess != sess {
		t.Fatal("Get should return the same session instance")
	}

	// Test Remove
	manager.Remove(sessionID)
	if manager.Count() != 0 {
		t.Fatalf("Expected session count to be 0 after removal, got %d", manager.Count())
	}

	_, exists = manager.Get(sessionID)
	if exists {
		t.Fatal("Get should not find the removed session")
	}
}

func TestSession_Bind_Identity(t *testing.T) {
	sess := NewSession("s1", &MockConnection{})

	roomID, playerID := sess.Identity()
	if roomID != "" || playerID != "" {
		t.Fatalf("fresh session should have no identity, got %q/%q", roomID, playerID)
	}

	sess.Bind("ABC123", "player-1")
	roomID, playerID = sess.Identity()
	if roomID != "ABC123" {
		t.Errorf("Expected room ABC123, got %q", roomID)
	}
	if playerID != "player-1" {
		t.Errorf("Expected player-1, got %q", playerID)
	}
}

func TestManager_GetByPlayerID(t *testing.T) {
	manager := NewManager()

	sess1 := NewSession("session1", &MockConnection{})
	sess1.Bind("ROOM01", "alice")

	sess2 := NewSession("session2", &MockConnection{})
	sess2.Bind("ROOM01", "bob")

	// same player from a second tab
	sess3 := NewSession("session3", &MockConnection{})
	sess3.Bind("ROOM01", "alice")

	manager.Add(sess1)
	manager.Add(sess2)
	manager.Add(sess3)

	aliceSessions := manager.GetByPlayerID("alice")
	if len(aliceSessions) != 2 {
		t.Errorf("Expected 2 sessions for alice, got %d", len(aliceSessions))
	}

	bobSessions := manager.GetByPlayerID("bob")
	if len(bobSessions) != 1 {
		t.Errorf("Expected 1 session for bob, got %d", len(bobSessions))
	}

	ghostSessions := manager.GetByPlayerID("nobody")
	if len(ghostSessions) != 0 {
		t.Errorf("Expected 0 sessions for nobody, got %d", len(ghostSessions))
	}
}

func TestManager_GetByRoomID(t *testing.T) {
	manager := NewManager()

	sess1 := NewSession("session1", &MockConnection{})
	sess1.Bind("ROOM01", "alice")

	sess2 := NewSession("session2", &MockConnection{})
	sess2.Bind("ROOM02", "bob")

	sess3 := NewSession("session3", &MockConnection{})
	sess3.Bind("ROOM01", "carol")

	manager.Add(sess1)
	manager.Add(sess2)
	manager.Add(sess3)

	if got := manager.GetByRoomID("ROOM01"); len(got) != 2 {
		t.Errorf("Expected 2 sessions in ROOM01, got %d", len(got))
	}
	if got := manager.GetByRoomID("ROOM02"); len(got) != 1 {
		t.Errorf("Expected 1 session in ROOM02, got %d", len(got))
	}
	if got := manager.GetByRoomID("ROOM99"); len(got) != 0 {
		t.Errorf("Expected 0 sessions in ROOM99, got %d", len(got))
	}
}
