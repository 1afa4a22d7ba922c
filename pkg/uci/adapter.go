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

// Package uci speaks the Universal Chess Interface from both ends. Adapter
// drives an engine running as a child process; Server answers the protocol
// on behalf of the built-in engine.
//
// An Adapter does no request/response correlation of its own: every write
// and its matching blocking read must come from a single owning goroutine.
// Reads have no timeout, so a stalled engine blocks its owner until Stop
// kills the process.
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultDepth is the search depth sent with go when the config has none.
const DefaultDepth = 2

type EngineConfig struct {
	Name string `yaml:"name"`
	Cmd  string `yaml:"cmd"`
	Dir  string `yaml:"dir"`
	Arg  string `yaml:"arg"`

	// File the engine's standard error is appended to. The adapter's own
	// standard error is inherited when empty.
	Stderr string `yaml:"stderr"`

	InitStr string `yaml:"init-string"`

	Options map[string]string `yaml:"options"`

	Depth int `yaml:"depth"`
}

// Option configures an Adapter at Start.
type Option func(*Adapter)

// WithObserver registers fn to be called with every state the adapter
// enters, starting with Spawned. fn runs on the goroutine causing the
// transition and must not call back into the adapter.
func WithObserver(fn func(State)) Option {
	return func(adapter *Adapter) {
		adapter.observer = fn
	}
}

type Adapter struct {
	config EngineConfig

	process *exec.Cmd
	stderr  *os.File

	writer *bufio.Writer

	readMu sync.Mutex
	reader *bufio.Reader

	mu        sync.Mutex
	state     State
	handshake HandshakeState
	observer  func(State)
}

// Start launches the engine described by config with piped standard input
// and output. The returned adapter is in the Spawned state; the handshake
// is left to Handshake or RunOneGame.
func Start(config EngineConfig, options ...Option) (*Adapter, error) {
	if config.Cmd == "" {
		return nil, &SpawnError{Cmd: config.Name, Err: ErrNoCommand}
	}

	if config.Name == "" {
		config.Name = filepath.Base(config.Cmd)
	}

	if config.Depth <= 0 {
		config.Depth = DefaultDepth
	}

	adapter := &Adapter{config: config}
	for _, option := range options {
		option(adapter)
	}

	process := exec.Command(config.Cmd, strings.Fields(config.Arg)...)
	process.Dir = config.Dir
	process.Stderr = os.Stderr

	if config.Stderr != "" {
		file, err := os.OpenFile(config.Stderr, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, &SpawnError{Cmd: config.Cmd, Err: err}
		}

		adapter.stderr = file
		process.Stderr = file
	}

	stdin, err := process.StdinPipe()
	if err != nil {
		adapter.closeStderr()
		return nil, &SpawnError{Cmd: config.Cmd, Err: err}
	}

	stdout, err := process.StdoutPipe()
	if err != nil {
		adapter.closeStderr()
		return nil, &SpawnError{Cmd: config.Cmd, Err: err}
	}

	if err := process.Start(); err != nil {
		adapter.closeStderr()
		return nil, &SpawnError{Cmd: config.Cmd, Err: err}
	}

	adapter.process = process
	adapter.writer = bufio.NewWriter(stdin)
	adapter.reader = bufio.NewReader(stdout)

	logrus.WithFields(logrus.Fields{
		"engine": config.Name,
		"pid":    process.Process.Pid,
	}).Debug("Spawned engine process")

	adapter.transition(Spawned)
	return adapter, nil
}

// Name returns the display name of the engine.
func (adapter *Adapter) Name() string {
	return adapter.config.Name
}

// State returns the current lifecycle state.
func (adapter *Adapter) State() State {
	adapter.mu.Lock()
	defer adapter.mu.Unlock()
	return adapter.state
}

// HandshakeState returns how far the handshake has progressed.
func (adapter *Adapter) HandshakeState() HandshakeState {
	adapter.mu.Lock()
	defer adapter.mu.Unlock()
	return adapter.handshake
}

// Handshake negotiates the protocol: uci until uciok, the configured
// options, then isready until readyok. Any failure is fatal to the
// adapter, which should then be stopped.
func (adapter *Adapter) Handshake() error {
	if err := adapter.expect(Spawned); err != nil {
		return err
	}

	adapter.transition(Handshaking)

	if adapter.config.InitStr != "" {
		if err := adapter.Write("%s", adapter.config.InitStr); err != nil {
			return &HandshakeError{Expect: "uciok", Err: err}
		}
	}

	if err := adapter.Initialize(); err != nil {
		return &HandshakeError{Expect: "uciok", Err: err}
	}

	adapter.setHandshake(HandshakeUciNegotiated)

	names := make([]string, 0, len(adapter.config.Options))
	for name := range adapter.config.Options {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := adapter.Write("setoption name %s value %s", name, adapter.config.Options[name]); err != nil {
			return &HandshakeError{Expect: "readyok", Err: err}
		}
	}

	if err := adapter.Synchronize(); err != nil {
		return &HandshakeError{Expect: "readyok", Err: err}
	}

	adapter.setHandshake(HandshakeReady)
	adapter.transition(Ready)
	return nil
}

// RunOneGame asks the engine for a move from the starting position and
// returns every line it printed up to and including the bestmove line. A
// freshly spawned adapter is handshaken first.
func (adapter *Adapter) RunOneGame() (string, error) {
	if adapter.State() == Spawned {
		if err := adapter.Handshake(); err != nil {
			return "", err
		}
	}

	if err := adapter.expect(Ready); err != nil {
		return "", err
	}

	adapter.transition(Busy)

	if err := adapter.NewGame(); err != nil {
		return "", err
	}

	if err := adapter.Write("position startpos"); err != nil {
		return "", err
	}

	if err := adapter.Write("go depth %d", adapter.config.Depth); err != nil {
		return "", err
	}

	result, err := adapter.ReadUntil("bestmove")
	if err != nil {
		return result, err
	}

	adapter.transition(Ready)
	return result, nil
}

// Keepalive pings the engine with isready every interval until ctx is done
// or the engine stops answering. It never asks for another move.
func (adapter *Adapter) Keepalive(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("uci: keepalive interval must be positive, got %s", interval)
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		if err := adapter.expect(Ready); err != nil {
			return err
		}

		if err := adapter.Synchronize(); err != nil {
			if ctx.Err() != nil {
				// the pipes were closed by teardown
				return ctx.Err()
			}

			return err
		}

		timer.Reset(interval)
	}
}

// Initialize announces the protocol and waits for uciok.
func (adapter *Adapter) Initialize() error {
	if err := adapter.Write("uci"); err != nil {
		return err
	}

	_, err := adapter.ReadUntil("uciok")
	return err
}

// NewGame tells the engine that the next position is from a new game.
func (adapter *Adapter) NewGame() error {
	return adapter.Write("ucinewgame")
}

// Synchronize waits for the engine to complete some time consuming task
// and synchronizes the interface with it.
func (adapter *Adapter) Synchronize() error {
	if err := adapter.Write("isready"); err != nil {
		return err
	}

	_, err := adapter.ReadUntil("readyok")
	return err
}

// Write sends one command line to the engine and flushes it, so the engine
// sees the command before Write returns.
func (adapter *Adapter) Write(format string, a ...any) error {
	line := fmt.Sprintf(format, a...)
	if adapter.State() == Stopped {
		return &IOError{Op: "write", Line: line, Err: ErrStopped}
	}

	logrus.Debugf("(%s)< %s", adapter.config.Name, line)

	_, err := adapter.writer.WriteString(line + "\n")
	if err == nil {
		err = adapter.writer.Flush()
	}

	if err != nil {
		if adapter.State() == Stopped {
			err = ErrStopped
		}

		return &IOError{Op: "write", Line: line, Err: err}
	}

	return nil
}

// ReadUntil reads lines from the engine until one contains target, and
// returns all of the lines read, target line included. It blocks for as
// long as the engine stays silent.
func (adapter *Adapter) ReadUntil(target string) (string, error) {
	adapter.readMu.Lock()
	defer adapter.readMu.Unlock()

	var result strings.Builder
	for {
		line, err := adapter.reader.ReadString('\n')
		result.WriteString(line)
		if err != nil {
			// an engine may print its last line and exit without a newline
			if line != "" && strings.Contains(line, target) {
				logrus.Debugf("(%s)> %s", adapter.config.Name, strings.TrimSpace(line))
				return result.String(), nil
			}

			if adapter.State() == Stopped {
				err = ErrStopped
			}

			return result.String(), &IOError{Op: "read", Line: target, Err: err}
		}

		line = strings.TrimSpace(line)
		logrus.Debugf("(%s)> %s", adapter.config.Name, line)

		if strings.Contains(line, target) {
			return result.String(), nil
		}
	}
}

// Stop kills the engine process and reaps it. There is no graceful quit.
// A kill failure is returned and not retried. Stop may be called from any
// goroutine and more than once; only the first call does anything.
func (adapter *Adapter) Stop() error {
	adapter.mu.Lock()
	if adapter.state == Stopped {
		adapter.mu.Unlock()
		return nil
	}
	adapter.state = Stopped
	adapter.mu.Unlock()

	adapter.notify(Stopped)
	defer adapter.closeStderr()

	logrus.WithField("engine", adapter.config.Name).Debug("Killing engine process")

	if err := adapter.process.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("uci: kill %s: %w", adapter.config.Name, err)
	}

	// the exit status of a killed engine carries no information
	_ = adapter.process.Wait()
	return nil
}

func (adapter *Adapter) expect(state State) error {
	if current := adapter.State(); current != state {
		if current == Stopped {
			return ErrStopped
		}

		return fmt.Errorf("%w: in state %s, want %s", ErrNotReady, current, state)
	}

	return nil
}

// transition moves the adapter into state unless it has been stopped.
func (adapter *Adapter) transition(state State) {
	adapter.mu.Lock()
	if adapter.state == Stopped && state != Stopped {
		adapter.mu.Unlock()
		return
	}
	adapter.state = state
	adapter.mu.Unlock()

	adapter.notify(state)
}

func (adapter *Adapter) notify(state State) {
	logrus.WithField("engine", adapter.config.Name).Tracef("Adapter is %s", state)
	if adapter.observer != nil {
		adapter.observer(state)
	}
}

func (adapter *Adapter) setHandshake(state HandshakeState) {
	adapter.mu.Lock()
	adapter.handshake = state
	adapter.mu.Unlock()
}

func (adapter *Adapter) closeStderr() {
	if adapter.stderr != nil {
		_ = adapter.stderr.Close()
	}
}
