package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"lettergen/database"
	"lettergen/internal/config"
	"lettergen/server"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════")
	log.Println("🚀 Запуск генератора претензионных писем...")

	// .env необязателен: в контейнере конфигурация приходит из окружения
	if err := godotenv.Load(); err == nil {
		log.Println("Конфигурация дополнена из .env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		log.Fatalf("Ошибка создания каталога загрузок: %v", err)
	}
	if err := os.MkdirAll(cfg.GeneratedDir, 0755); err != nil {
		log.Fatalf("Ошибка создания каталога выгрузки: %v", err)
	}

	db, err := database.NewLettersDB(cfg.DatabasePath, database.DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("Ошибка открытия базы истории: %v", err)
	}
	defer db.Close()

	logger := server.NewLogger(cfg.LogLevel)
	srv := server.NewServer(cfg, db, logger)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: Ошибка запуска сервера: %v", err)
		}
	}()

	log.Println("═══════════════════════════════════════════════════════")
	log.Printf("✓ Сервер успешно запущен на порту %s", cfg.Port)
	log.Printf("✓ API доступно: http://localhost:%s/api/letters", cfg.Port)
	log.Printf("✓ Каталог загрузок: %s", cfg.UploadsDir)
	log.Printf("✓ Каталог выгрузки: %s", cfg.GeneratedDir)
	log.Printf("✓ База истории: %s", cfg.DatabasePath)
	log.Println("  Для остановки нажмите Ctrl+C")
	log.Println("═══════════════════════════════════════════════════════")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("⏹  Получен сигнал завершения, останавливаю сервер...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("✗ Ошибка при остановке сервера: %v", err)
	} else {
		log.Println("✓ Сервер успешно остановлен")
	}
}
