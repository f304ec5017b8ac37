package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func paramID(ctx *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" must be a positive integer")
	}
	return uint(id), nil
}

func parseBody(ctx *fiber.Ctx, payload interface{}) error {
	if err := ctx.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}
