package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"campus-chat-app/dto/res"
)

// AuthRateLimit throttles credential endpoints per client IP.
func (middleware *Middleware) AuthRateLimit() fiber.Handler {
	limit, window := middleware.GetAuthRateLimit()
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			middleware.Log.WithField("ip", c.IP()).Warn("Auth rate limit reached")
			return c.Status(fiber.StatusTooManyRequests).JSON(res.ErrorResponse{
				Status:     fiber.ErrTooManyRequests.Message,
				StatusCode: fiber.StatusTooManyRequests,
				Error:      "Too many requests, please try again later",
			})
		},
	})
}
