package cmd

import (
	"fmt"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/naka-gawa/github-profile/internal/config"
	"github.com/naka-gawa/github-profile/internal/lambda"
	"github.com/naka-gawa/github-profile/internal/logger"
)

// StartLambda serves the profile query as an AWS Lambda function.
// Configuration comes from the environment only.
func StartLambda() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	l, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fetcher, err := newFetcher(cfg, l)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	awslambda.Start(lambda.NewHandler(newAggregator(fetcher, cfg, l), l))
}
