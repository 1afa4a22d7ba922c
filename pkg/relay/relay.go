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

// Package relay connects remote clients to a chess engine. Every client
// session owns one engine adapter, which asks the engine for a single move
// from the starting position, forwards the result, and then keeps the
// engine alive until the session ends.
package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/chessbridge/pkg/config"
	"laptudirm.com/x/chessbridge/pkg/oracle"
	"laptudirm.com/x/chessbridge/pkg/uci"
)

// ErrSessionClosed is the cause of a session ended by its client.
var ErrSessionClosed = errors.New("relay: session closed by client")

const (
	// DefaultKeepalive is used when a Relay has no Keepalive interval.
	DefaultKeepalive = 5 * time.Second

	// outboxSize is the number of messages queued for a slow client
	// before senders block.
	outboxSize = 16

	// flushWait bounds how long teardown waits for queued messages to be
	// written before dropping the connection.
	flushWait = time.Second
)

type Relay struct {
	// Engine started for every session.
	Engine uci.EngineConfig

	// Interval between liveness checks once the move is delivered.
	// DefaultKeepalive is used when it is not positive.
	Keepalive time.Duration

	// Upgrader used by ServeHTTP.
	Upgrader websocket.Upgrader

	sessions atomic.Int64
}

// New returns a relay running the engine configured in config.
func New(config config.Config) *Relay {
	return &Relay{
		Engine:    config.Engine,
		Keepalive: config.Keepalive,
	}
}

// Serve runs one session over conn until the client closes it, the
// connection fails, the engine fails, or ctx is done. The engine is always
// stopped and conn always closed before Serve returns. A session closed
// by the client returns nil.
func (relay *Relay) Serve(ctx context.Context, conn Conn) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	session := &session{
		relay:  relay,
		conn:   conn,
		cancel: cancel,
		outbox: newOutbox(),
		log:    logrus.WithField("session", relay.sessions.Add(1)),
	}

	session.log.Info("Session started")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		session.write()
	}()

	session.send(TextMessage("connected"))

	engineDone := make(chan struct{})
	go func() {
		defer close(engineDone)
		session.runEngine(ctx)
	}()

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		session.read(ctx)
	}()

	<-ctx.Done()

	// teardown: stop queueing, give the writer a moment to flush, then drop
	// the connection, which releases a stuck writer and the reader
	session.outbox.close()
	select {
	case <-writerDone:
	case <-time.After(flushWait):
		session.log.Warn("Client is not reading, dropping queued messages")
	}

	_ = conn.Close()
	<-writerDone
	<-engineDone
	<-readerDone

	err := context.Cause(ctx)
	session.log.WithError(err).Info("Session ended")

	if errors.Is(err, ErrSessionClosed) {
		return nil
	}

	return err
}

type session struct {
	relay  *Relay
	conn   Conn
	cancel context.CancelCauseFunc
	outbox *outbox
	log    *logrus.Entry

	// set by the writer after its first failed write
	failed bool
}

func (relay *Relay) keepalive() time.Duration {
	if relay.Keepalive <= 0 {
		return DefaultKeepalive
	}

	return relay.Keepalive
}

// runEngine owns the session's adapter from start to stop.
func (session *session) runEngine(ctx context.Context) {
	adapter, err := uci.Start(session.relay.Engine, uci.WithObserver(func(state uci.State) {
		session.log.Debugf("Engine is %s", state)
	}))
	if err != nil {
		session.fail(err)
		return
	}

	defer func() {
		if err := adapter.Stop(); err != nil {
			session.log.WithError(err).Error("Stopping engine")
		}
	}()

	// cancellation kills the engine, which unblocks any pending read
	stop := context.AfterFunc(ctx, func() { _ = adapter.Stop() })
	defer stop()

	result, err := adapter.RunOneGame()
	if err != nil {
		if ctx.Err() == nil {
			session.fail(err)
		}

		return
	}

	session.send(TextMessage(result))
	session.send(TextMessage(oracle.Verdict(result)))

	err = adapter.Keepalive(ctx, session.relay.keepalive())
	if ctx.Err() == nil {
		session.fail(err)
	}
}

// read dispatches the client's messages until the connection fails, the
// client closes it, or ctx is done.
func (session *session) read(ctx context.Context) {
	for ctx.Err() == nil {
		message, err := session.conn.ReadMessage()
		if err != nil {
			session.cancel(fmt.Errorf("relay: read: %w", err))
			return
		}

		session.log.Tracef("Received %s message", message.Kind)

		switch message.Kind {
		case Text:
			session.send(TextMessage("Echo: " + string(message.Data)))
		case Binary:
			session.send(message)
		case Ping:
			session.send(Message{Kind: Pong, Data: message.Data})
		case Pong:
		case Close:
			session.send(Message{Kind: Close, Data: message.Data})
			session.cancel(ErrSessionClosed)
			return
		}
	}
}

// write drains the outbox into the connection until the outbox is closed,
// then flushes whatever was already queued.
func (session *session) write() {
	box := session.outbox
	for {
		select {
		case message := <-box.messages:
			session.deliver(message)
		case <-box.done:
			for {
				select {
				case message := <-box.messages:
					session.deliver(message)
				default:
					return
				}
			}
		}
	}
}

// deliver writes one message. After a failed write the remaining messages
// are discarded.
func (session *session) deliver(message Message) {
	if session.failed {
		return
	}

	if err := session.conn.WriteMessage(message); err != nil {
		session.failed = true
		session.cancel(fmt.Errorf("relay: write: %w", err))
	}
}

func (session *session) send(message Message) {
	session.outbox.send(message)
}

// fail reports err to the client and ends the session.
func (session *session) fail(err error) {
	session.log.WithError(err).Error("Engine failed")
	session.send(TextMessage("error: " + err.Error()))
	session.cancel(err)
}

// outbox is the queue of messages for the session's single writer. Sends
// after close are dropped, and a send blocked on a full queue is released
// by close.
type outbox struct {
	messages chan Message
	done     chan struct{}
	once     sync.Once
}

func newOutbox() *outbox {
	return &outbox{
		messages: make(chan Message, outboxSize),
		done:     make(chan struct{}),
	}
}

func (box *outbox) send(message Message) {
	select {
	case <-box.done:
		return
	default:
	}

	select {
	case box.messages <- message:
	case <-box.done:
	}
}

func (box *outbox) close() {
	box.once.Do(func() { close(box.done) })
}
