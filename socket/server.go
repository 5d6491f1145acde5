package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the Socket.IO server used for live inbox
// updates. Clients join conversation rooms and relay newMessage events to
// the other participants; the HTTP API remains the source of truth.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, data map[string]string) {
		conversationID := data["conversationId"]
		if conversationID == "" {
			log.Println("❌ Invalid conversationId in join request")
			return
		}
		c.Join(conversationID)
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, data map[string]string) {
		if conversationID := data["conversationId"]; conversationID != "" {
			c.Leave(conversationID)
		}
	})

	server.OnEvent("/", "sendMessage", func(c socketio.Conn, message map[string]interface{}) {
		conversationID, _ := message["conversationId"].(string)
		if conversationID == "" {
			return
		}
		server.BroadcastToRoom("/", conversationID, "newMessage", message)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	return server
}
