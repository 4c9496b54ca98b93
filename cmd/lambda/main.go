package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/aliskhannn/mcq-bank/internal/config"
	lambdaapi "github.com/aliskhannn/mcq-bank/internal/delivery/lambda"
	"github.com/aliskhannn/mcq-bank/internal/logger"
	"github.com/aliskhannn/mcq-bank/internal/service"
	"github.com/aliskhannn/mcq-bank/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg, "lambda")
	if err != nil {
		log.Fatal(err)
	}

	// Connections are opened once per container and reused across invocations.
	backend, err := storage.Open(context.Background(), cfg, lg)
	if err != nil {
		log.Fatal(err)
	}

	selector := service.NewQuestionSelector(backend.Repository, backend.Name, cfg.Selector.Seed, lg)
	handler := lambdaapi.NewHandler(selector, cfg.Selector.DefaultCount, lg)

	lambda.Start(handler.Handle)
}
