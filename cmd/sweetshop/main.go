package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jalpan25/sweetshop-management-system/internal/app"
	"github.com/Jalpan25/sweetshop-management-system/internal/config"
	"github.com/Jalpan25/sweetshop-management-system/internal/ux"
)

var application *app.App

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Создаём и настраиваем приложение через DI container
	application, err = app.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}
	defer application.Close(ctx)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ux.Errorf("%v", err)
		os.Exit(1)
	}
}
