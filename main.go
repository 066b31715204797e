package main

import (
	"os"

	"github.com/naka-gawa/github-profile/cmd"
)

func main() {
	if os.Getenv("LAMBDA_TASK_ROOT") != "" {
		cmd.StartLambda()
		return
	}
	cmd.Execute()
}
