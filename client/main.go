// Interactive test client. Type "help" for the command list.
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
)

const (
	MsgTypeError        = 2
	MsgTypeCreateRoom   = 101
	MsgTypeJoinRoom     = 102
	MsgTypeStartRound   = 201
	MsgTypePlayCard     = 202
	MsgTypeResolveRound = 203
	MsgTypeHistory      = 204
	MsgTypeRoomState    = 301
	MsgTypeHandState    = 302
	MsgTypeRoundResult  = 303
)

var msgNames = map[uint16]string{
	MsgTypeError:       "ERROR",
	MsgTypeCreateRoom:  "CREATED",
	MsgTypeJoinRoom:    "JOINED",
	MsgTypeHistory:     "HISTORY",
	MsgTypeRoomState:   "STATE",
	MsgTypeHandState:   "HAND",
	MsgTypeRoundResult: "RESULT",
}

func send(c *websocket.Conn, msgID uint16, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func readLoop(c *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			log.Printf("Read error: %v", err)
			return
		}
		if len(data) < 4 {
			continue
		}
		msgID := binary.BigEndian.Uint16(data[0:2])
		name := msgNames[msgID]
		if name == "" {
			name = fmt.Sprintf("MSG-%d", msgID)
		}
		fmt.Printf("\n<< %s %s\n> ", name, data[4:])
	}
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	addr := "localhost:8080"
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})
	go readLoop(c, done)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		fmt.Print("> ")
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				fmt.Print("> ")
				continue
			}
			var err error
			switch fields[0] {
			case "help":
				fmt.Println("create <name> <mode> | join <room> <name> | start | play <cardId> <round> | resolve <winnerId> <loserId> | history | quit")
			case "create":
				if len(fields) == 3 {
					err = send(c, MsgTypeCreateRoom, map[string]string{"name": fields[1], "mode": fields[2]})
				}
			case "join":
				if len(fields) == 3 {
					err = send(c, MsgTypeJoinRoom, map[string]string{"room_id": fields[1], "name": fields[2]})
				}
			case "start":
				err = send(c, MsgTypeStartRound, map[string]string{})
			case "play":
				if len(fields) == 3 {
					round, _ := strconv.Atoi(fields[2])
					err = send(c, MsgTypePlayCard, map[string]interface{}{"card_id": fields[1], "round_number": round})
				}
			case "resolve":
				if len(fields) == 3 {
					err = send(c, MsgTypeResolveRound, map[string]string{"winner_id": fields[1], "loser_id": fields[2]})
				}
			case "history":
				err = send(c, MsgTypeHistory, map[string]string{})
			case "quit":
				os.Exit(0)
			default:
				fmt.Println("Unknown command, try 'help'")
			}
			if err != nil {
				log.Printf("Send error: %v", err)
			}
			fmt.Print("> ")
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Println("Interrupted")
		c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}
