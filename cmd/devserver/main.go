package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/streadway/amqp"

	"bazaar/internal/config"
	"bazaar/internal/devserver"
	"bazaar/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// RabbitMQ is optional for local development: without a broker the
	// devserver still serves the catalog and accepts orders.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()

		go func() {
			log.Println("Starting order-event consumer...")
			err := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
				log.Printf("order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			})
			if err != nil {
				log.Printf("Failed to start order-event consumer: %v", err)
			}
		}()
	}

	var publisher devserver.OrderEventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	app := devserver.New(publisher).App()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Dev backend listening on %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down dev backend...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Dev backend stopped")
}
