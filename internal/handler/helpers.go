package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func parseIDParam(c *fiber.Ctx, key string) (int64, error) {
	raw := strings.TrimSpace(c.Params(key))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return parsed, nil
}

func emailParam(c *fiber.Ctx) (string, error) {
	email := strings.ToLower(strings.TrimSpace(c.Params("email")))
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("invalid email")
	}
	return email, nil
}
