package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/avolkov/marketpay/internal/config"
	"github.com/avolkov/marketpay/internal/deps"
	"github.com/avolkov/marketpay/internal/recon"
	"github.com/avolkov/marketpay/internal/server"
	"github.com/avolkov/marketpay/internal/storage"
	"github.com/shopspring/decimal"
)

func main() {
	// money amounts in JSON as plain numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := config.NewConfig()
	storage, err := storage.NewPostgresStorage(ctx, config.DatabaseURI)
	if err != nil {
		config.Logger.Fatal(err)
	}

	engine := recon.NewEngine(storage, config.Logger, config.HomeCurrency)
	deps := deps.NewDependencies(config.AuthSecret)

	srv := server.NewServer(storage, engine, config, deps)
	if err := srv.Run(ctx); err != nil {
		config.Logger.Fatal(err)
	}
}
