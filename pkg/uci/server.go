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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/chessbridge/pkg/board"
	"laptudirm.com/x/chessbridge/pkg/engine"
)

// Server is the engine side of the protocol. It plays the first
// pseudo-legal move of the side to move, so it is only useful as a
// stand-in opponent for testing the plumbing around real engines.
type Server struct {
	Name   string
	Author string

	engine *engine.Engine
}

// NewServer returns a server set up at the standard starting position.
func NewServer() *Server {
	return &Server{
		Name:   "chessbridge",
		Author: "the chessbridge authors",
		engine: engine.New(),
	}
}

// Engine returns the server's engine.
func (server *Server) Engine() *engine.Engine {
	return server.engine
}

// Serve reads commands from in, one per line, and writes responses to out
// until quit is received or in is exhausted.
func (server *Server) Serve(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		var reply []string
		switch tokens[0] {
		case "uci":
			reply = []string{
				"id name " + server.Name,
				"id author " + server.Author,
				"uciok",
			}
		case "isready":
			reply = []string{"readyok"}
		case "ucinewgame":
			server.engine.Reset()
		case "position":
			if err := server.position(tokens[1:]); err != nil {
				logrus.Warn(err)
				reply = []string{"info string " + err.Error()}
			}
		case "go":
			reply = []string{"bestmove " + server.bestMove()}
		case "quit":
			return nil
		default:
			logrus.Debugf("uci: unknown command %q", tokens[0])
		}

		for _, line := range reply {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
	}

	return scanner.Err()
}

// position handles the arguments of the position command:
//
//	position startpos [moves m1 m2 ...]
//	position fen <fen> [moves m1 m2 ...]
func (server *Server) position(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uci: position: missing argument")
	}

	setup, moves := args, []string(nil)
	for i, arg := range args {
		if arg == "moves" {
			setup, moves = args[:i], args[i+1:]
			break
		}
	}

	if len(setup) == 0 {
		return fmt.Errorf("uci: position: missing setup")
	}

	switch setup[0] {
	case "startpos":
		server.engine.Reset()
	case "fen":
		if err := server.engine.Load(strings.Join(setup[1:], " ")); err != nil {
			return err
		}
	default:
		return fmt.Errorf("uci: position: unknown setup %q", setup[0])
	}

	for _, text := range moves {
		m, err := board.ParseMove(text)
		if err != nil {
			return err
		}

		server.engine.Play(m)
	}

	return nil
}

func (server *Server) bestMove() string {
	m, ok := server.engine.BestMove()
	if !ok {
		return board.NullMove
	}

	return m.String()
}
