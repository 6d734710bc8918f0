package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"jemyeonso/interview-ai/internal/services"
)

type HealthHandler struct {
	objects services.ObjectStore
}

func NewHealthHandler(objects services.ObjectStore) *HealthHandler {
	return &HealthHandler{objects: objects}
}

// HandleHealth handles GET /health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "UP"})
}

// HandleStorageHealth handles GET /storage/health
func (h *HealthHandler) HandleStorageHealth(c *fiber.Ctx) error {
	if err := h.objects.HealthCheck(c.UserContext()); err != nil {
		log.Printf("❌ Object storage health check failed: %v\n", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "fail",
			"message": "스토리지 연결 또는 버킷 접근 실패",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "스토리지 연결 및 버킷 접근 성공",
		"bucket":  h.objects.Bucket(),
	})
}
