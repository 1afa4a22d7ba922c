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

package uci

import (
	"errors"
	"fmt"
)

var (
	// ErrStopped is returned by operations on an adapter whose engine
	// process has been killed.
	ErrStopped = errors.New("uci: adapter stopped")

	// ErrNotReady is returned when an operation is attempted in a state
	// which does not allow it, like running a game before the handshake.
	ErrNotReady = errors.New("uci: adapter not ready")

	// ErrNoCommand is returned by Start when the config names no command.
	ErrNoCommand = errors.New("uci: no engine command")
)

// SpawnError is returned when the engine executable can't be started.
type SpawnError struct {
	Cmd string
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("uci: spawn %s: %v", e.Cmd, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// HandshakeError is returned when the engine's pipes fail before the
// handshake is complete. The protocol state is unrecoverable afterwards.
type HandshakeError struct {
	Expect string // token which was being waited for
	Err    error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("uci: handshake awaiting %s: %v", e.Expect, e.Err)
}

func (e *HandshakeError) Unwrap() error { return e.Err }

// IOError is a read or write failure on the engine's pipes.
type IOError struct {
	Op   string // "read" or "write"
	Line string // command written, or token awaited
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("uci: %s %q: %v", e.Op, e.Line, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
