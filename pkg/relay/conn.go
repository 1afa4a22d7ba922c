// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package relay

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Kind is the type of a message exchanged with a client.
type Kind int

const (
	Text Kind = iota
	Binary
	Ping
	Pong
	Close
)

func (kind Kind) String() string {
	switch kind {
	case Text:
		return "text"
	case Binary:
		return "binary"
	case Ping:
		return "ping"
	case Pong:
		return "pong"
	case Close:
		return "close"
	default:
		return "unknown"
	}
}

// Message is a single transport message. The Data of a Close message is
// the raw close frame payload.
type Message struct {
	Kind Kind
	Data []byte
}

// TextMessage is a shorthand for a Text message containing text.
func TextMessage(text string) Message {
	return Message{Kind: Text, Data: []byte(text)}
}

// Conn is a message oriented connection to a client. ReadMessage is only
// called from one goroutine, and so is WriteMessage. Close may be called
// concurrently with both and must unblock them.
type Conn interface {
	ReadMessage() (Message, error)
	WriteMessage(Message) error
	Close() error
}

// writeWait is the time allowed to write a single message.
const writeWait = 10 * time.Second

// socket adapts a websocket connection to a Conn. Control frames are
// delivered as messages instead of being answered automatically.
type socket struct {
	conn *websocket.Conn

	incoming chan Message
	err      error

	done      chan struct{}
	closeOnce sync.Once
}

var _ Conn = (*socket)(nil)

// NewConn wraps an established websocket connection.
func NewConn(conn *websocket.Conn) Conn {
	socket := &socket{
		conn:     conn,
		incoming: make(chan Message),
		done:     make(chan struct{}),
	}

	// control handlers run inside conn.ReadMessage on the read goroutine
	conn.SetPingHandler(func(data string) error {
		socket.deliver(Message{Kind: Ping, Data: []byte(data)})
		return nil
	})

	conn.SetPongHandler(func(data string) error {
		socket.deliver(Message{Kind: Pong, Data: []byte(data)})
		return nil
	})

	conn.SetCloseHandler(func(code int, text string) error {
		socket.deliver(Message{Kind: Close, Data: websocket.FormatCloseMessage(code, text)})
		return nil
	})

	go socket.read()
	return socket
}

func (socket *socket) read() {
	defer close(socket.incoming)

	for {
		kind, data, err := socket.conn.ReadMessage()
		if err != nil {
			socket.err = err
			return
		}

		switch kind {
		case websocket.TextMessage:
			socket.deliver(Message{Kind: Text, Data: data})
		case websocket.BinaryMessage:
			socket.deliver(Message{Kind: Binary, Data: data})
		}
	}
}

func (socket *socket) deliver(message Message) {
	select {
	case socket.incoming <- message:
	case <-socket.done:
	}
}

func (socket *socket) ReadMessage() (Message, error) {
	select {
	case message, ok := <-socket.incoming:
		if !ok {
			return Message{}, socket.err
		}

		return message, nil
	case <-socket.done:
		return Message{}, errConnClosed
	}
}

func (socket *socket) WriteMessage(message Message) error {
	deadline := time.Now().Add(writeWait)

	switch message.Kind {
	case Text, Binary:
		if err := socket.conn.SetWriteDeadline(deadline); err != nil {
			return err
		}

		kind := websocket.TextMessage
		if message.Kind == Binary {
			kind = websocket.BinaryMessage
		}

		return socket.conn.WriteMessage(kind, message.Data)
	case Ping:
		return socket.conn.WriteControl(websocket.PingMessage, message.Data, deadline)
	case Pong:
		return socket.conn.WriteControl(websocket.PongMessage, message.Data, deadline)
	case Close:
		return socket.conn.WriteControl(websocket.CloseMessage, message.Data, deadline)
	default:
		return errors.New("relay: unknown message kind " + message.Kind.String())
	}
}

func (socket *socket) Close() error {
	err := errConnClosed
	socket.closeOnce.Do(func() {
		close(socket.done)
		err = socket.conn.Close()
	})

	return err
}

var errConnClosed = errors.New("relay: connection closed")
