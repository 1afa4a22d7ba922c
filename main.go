package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/chessbridge/internal/chessbridge/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := chessbridge(); err != nil {
		logrus.Fatal(err)
	}
}

func chessbridge() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
