// Relay Runner — выполняет jobs синхронизации.
//
// Runner:
//   - Получает jobs из RabbitMQ
//   - Загружает конфигурацию синхронизации по customer + config-name
//   - Прогоняет pipeline fetch → transform → deliver
//   - Публикует результат в jobs.completed
//
// Runners масштабируются горизонтально.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Relay/internal/client"
	"github.com/shaiso/Relay/internal/config"
	"github.com/shaiso/Relay/internal/mq"
	"github.com/shaiso/Relay/internal/repo"
	"github.com/shaiso/Relay/internal/runner"
	"github.com/shaiso/Relay/internal/telemetry"
	"github.com/shaiso/Relay/internal/transform"
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting relay-runner")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Источник конфигураций: БД по умолчанию, файлы через CONFIG_DIR
	var configs runner.ConfigSource
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		configs = config.NewFileLoader(dir)
		logger.Info("using file config source", "dir", dir)
	} else {
		pool, err := repo.NewPool(ctx)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("database connected")

		configs = repo.NewConfigRepo(pool)
	}

	// RabbitMQ
	mqURL := os.Getenv("RABBITMQ_URL")
	if mqURL == "" {
		mqURL = mq.DefaultURL()
	}

	mqConn, err := mq.NewConnection(mqURL, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer mqConn.Close()
	logger.Info("RabbitMQ connected")

	if err := mq.SetupTopology(mqConn); err != nil {
		logger.Warn("failed to setup topology", "error", err)
	}

	publisher := mq.NewPublisher(mqConn, logger)

	// Сетевые адаптеры pipeline
	clientCfg := client.Config{Logger: logger}
	source := client.NewSourceClient(clientCfg)
	destination := client.NewDestinationClient(clientCfg)
	engine := transform.NewEngine()

	// Создаём runner
	r := runner.New(runner.Config{
		Configs:     configs,
		Source:      source,
		Engine:      engine,
		Destination: destination,
		Publisher:   publisher,
		Conn:        mqConn,
		Logger:      logger,
	})

	// Запускаем runner
	if err := r.Start(ctx); err != nil {
		logger.Error("failed to start runner", "error", err)
		os.Exit(1)
	}

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	port := ":8082"
	if v := os.Getenv("RUNNER_PORT"); v != "" {
		port = ":" + v
	}

	go func() {
		logger.Info("listening", "addr", port)
		if err := http.ListenAndServe(port, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	// Останавливаем runner
	r.Stop()
	logger.Info("relay-runner stopped")
}
