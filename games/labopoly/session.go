/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/sync/errgroup"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 8 << 10
	sendBuffer     = 32
)

var errRoomClosed = errors.New("room closed")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one websocket connection. Until it joins a room only its own
// pumps touch send; afterwards the room owns and closes it.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	room *Room
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// ServeWS upgrades the request and runs the client until it disconnects.
func ServeWS(reg *Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			reg.opts.Logf("GAMES: Websocket upgrade failed: %v", err)

			return
		}

		c := newClient(conn)

		err = c.serve(r.Context(), reg)
		if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			reg.opts.Logf("GAMES: Session %s ended: %v", c.id, err)
		}
	}
}

func (c *Client) serve(ctx context.Context, reg *Registry) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.readPump(reg)
	})

	g.Go(func() error {
		return c.writePump(ctx)
	})

	return g.Wait()
}

// readPump always returns a non-nil error so the write pump is cancelled.
func (c *Client) readPump(reg *Registry) error {
	defer func() {
		if c.room != nil {
			c.room.exit(c)
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return err
		}

		if c.room != nil {
			if !c.room.submit(c, msg) {
				return errRoomClosed
			}

			continue
		}

		if msg.Type == msgJoinRoom {
			c.joinRoom(reg, msg)
		}
	}
}

func (c *Client) joinRoom(reg *Registry, msg Message) {
	var args joinRoomArgs
	if err := decode(msg.Payload, &args); err != nil {
		c.direct(msgRejected, rejectedPayload{Type: msg.Type, Reason: err.Error()})

		return
	}

	room, ok := reg.Get(args.RoomID)
	if !ok || !room.enter(c) {
		c.direct(msgErrorNoRoom, noRoomPayload{RoomID: args.RoomID})

		return
	}

	c.room = room
}

// direct queues a message before the client belongs to a room.
func (c *Client) direct(typ string, payload any) {
	data, err := encode(typ, payload)
	if err != nil {
		return
	}

	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) writePump(ctx context.Context) error {
	defer c.conn.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})

				return nil
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return err
			}
		}
	}
}
