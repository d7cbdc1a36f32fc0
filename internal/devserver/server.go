// Package devserver is a small stand-in for the production backend: it serves
// the catalog and accepts orders in the same wire format, so the engine can be
// developed and integration-tested without network access to the real thing.
package devserver

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/google/uuid"

	"bazaar/internal/models"
)

// OrderEventPublisher announces accepted orders. Implemented by
// rabbitmq.Client; nil disables publication.
type OrderEventPublisher interface {
	PublishOrderCreated(event map[string]interface{}) error
}

// wireProduct matches the catalog wire format the app consumes: the product
// identity travels as "_id".
type wireProduct struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

// Server holds the in-memory product list and accepted orders.
type Server struct {
	publisher OrderEventPublisher

	mu       sync.Mutex
	products []wireProduct
	orders   []models.OrderRequest
}

// New creates a Server seeded with the default product list. publisher may be
// nil.
func New(publisher OrderEventPublisher) *Server {
	s := &Server{publisher: publisher}
	s.seed()
	return s
}

// seed populates the catalog with a handful of development products.
func (s *Server) seed() {
	names := []struct {
		name  string
		price float64
	}{
		{"ESP32 Dev Board", 450.00},
		{"Raspberry Pi 4 Model B", 4800.00},
		{"DHT22 Temperature Sensor", 280.00},
		{"HC-SR04 Ultrasonic Sensor", 120.00},
		{"Relay Module 4-Channel", 220.00},
		{"Breadboard Jumper Kit", 150.00},
	}
	for _, n := range names {
		s.products = append(s.products, wireProduct{
			ID:       uuid.New().String(),
			Name:     n.name,
			Price:    n.price,
			ImageURL: "https://img.bazaar.local/" + slugify(n.name) + ".jpg",
		})
	}
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// Orders returns the orders accepted so far.
func (s *Server) Orders() []models.OrderRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.OrderRequest, len(s.orders))
	copy(out, s.orders)
	return out
}

// App builds the Fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := app.Group("/api")
	api.Get("/products", s.handleGetProducts)
	api.Get("/orders", s.handleGetOrders)
	api.Post("/orders", s.handleCreateOrder)

	return app
}

func (s *Server) handleGetProducts(c *fiber.Ctx) error {
	s.mu.Lock()
	products := make([]wireProduct, len(s.products))
	copy(products, s.products)
	s.mu.Unlock()
	return c.JSON(products)
}

func (s *Server) handleGetOrders(c *fiber.Ctx) error {
	return c.JSON(s.Orders())
}

func (s *Server) handleCreateOrder(c *fiber.Ctx) error {
	var order models.OrderRequest
	if err := c.BodyParser(&order); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if order.OrderID == "" || order.Name == "" || order.Phone == "" || order.Address == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "orderId, name, phone and address are required",
		})
	}
	if len(order.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "at least one item is required",
		})
	}

	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.mu.Unlock()

	if s.publisher != nil {
		event := map[string]interface{}{
			"orderId":       order.OrderID,
			"totalAmount":   order.TotalAmount,
			"paymentMethod": order.PaymentMethod,
			"items":         len(order.Items),
		}
		if err := s.publisher.PublishOrderCreated(event); err != nil {
			// Intake succeeded; event delivery is best effort.
			log.Printf("failed to publish order event for %s: %v", order.OrderID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order received",
		"orderId": order.OrderID,
	})
}
