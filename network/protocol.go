package network

// Wire message ids. Commands are client→server, states are server→client.
const (
	MsgTypeHeartbeat = 1
	MsgTypeError     = 2

	MsgTypeCreateRoom   = 101
	MsgTypeJoinRoom     = 102
	MsgTypeLeaveRoom    = 103
	MsgTypeCloseRoom    = 104
	MsgTypeStartRound   = 201
	MsgTypePlayCard     = 202
	MsgTypeResolveRound = 203
	MsgTypeHistory      = 204

	MsgTypeRoomState   = 301
	MsgTypeHandState   = 302
	MsgTypeRoundResult = 303
)
