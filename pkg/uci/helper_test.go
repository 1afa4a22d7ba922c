package uci_test

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"testing"

	"laptudirm.com/x/chessbridge/pkg/uci"
)

const helperEnv = "CHESSBRIDGE_TEST_ENGINE"

// fakeEngine returns a config which runs this test binary as an engine
// behaving according to mode.
func fakeEngine(t *testing.T, mode string) uci.EngineConfig {
	t.Helper()
	t.Setenv(helperEnv, mode)

	return uci.EngineConfig{
		Name: "fake-" + mode,
		Cmd:  os.Args[0],
		Arg:  "-test.run=^TestHelperProcess$",
	}
}

// TestHelperProcess isn't a real test. It is the engine process started by
// fakeEngine.
func TestHelperProcess(t *testing.T) {
	mode := os.Getenv(helperEnv)
	if mode == "" {
		return
	}
	defer os.Exit(0)

	if mode == "builtin" {
		_ = uci.NewServer().Serve(os.Stdin, os.Stdout)
		return
	}

	var history []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		command := strings.TrimSpace(scanner.Text())
		history = append(history, command)

		switch {
		case command == "uci":
			fmt.Println("id name fake")
			fmt.Println("option name Hash type spin default 16 min 1 max 1024")
			fmt.Println("uciok")
			if mode == "exit-after-uciok" {
				return
			}
		case command == "isready":
			fmt.Println("readyok")
		case strings.HasPrefix(command, "go"):
			switch mode {
			case "hang":
				continue
			case "unterminated-bestmove":
				fmt.Print("bestmove e2e4")
				return
			}

			fmt.Println("info string history " + strings.Join(history, "|"))
			fmt.Println("info depth 1 score cp 20 pv e2e4")
			fmt.Println("bestmove e2e4 ponder e7e5")
			if mode == "exit-after-go" {
				return
			}
		case command == "quit":
			return
		}
	}
}
