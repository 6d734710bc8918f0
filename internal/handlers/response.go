package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jemyeonso/interview-ai/internal/models"
)

// respond writes the {code, message, data} envelope with a matching HTTP status.
func respond(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(models.APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return respond(c, fiber.StatusBadRequest, message, nil)
}
