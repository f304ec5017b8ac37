package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"campus-chat-app/config/common"
	"campus-chat-app/dto/res"
	"campus-chat-app/security"
)

const (
	tokenContextKey = "jwt"
	UserIDKey       = "user_id"
)

type Middleware struct {
	*common.Config
	*security.JWT
	Log *logrus.Logger
}

func NewMiddleware(config *common.Config, jwt *security.JWT, logger *logrus.Logger) *Middleware {
	return &Middleware{Config: config, JWT: jwt, Log: logger}
}

func (middleware *Middleware) JWTProtected(c *fiber.Ctx) error {
	secretKey := middleware.GetJwtConfig()

	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: secretKey},
		ContextKey: tokenContextKey,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			middleware.Log.WithError(err).Error("Failed to validate JWT")
			return unauthorized(ctx, "Token is not valid")
		},
	})(c)
}

// ExtractUserID reads the user_id claim of the token JWTProtected stored
// and exposes it as c.Locals(UserIDKey).
func (middleware *Middleware) ExtractUserID(c *fiber.Ctx) error {
	token, ok := c.Locals(tokenContextKey).(*jwt.Token)
	if !ok {
		middleware.Log.Error("No token in request context")
		return unauthorized(c, "Missing token")
	}

	// jwtware checks signature and expiry only; issuer and audience are
	// verified here.
	userID, err := middleware.GetUserIdFromToken(token.Raw)
	if err != nil {
		middleware.Log.WithError(err).Error("Failed to extract user ID from token")
		return unauthorized(c, "Failed to extract user ID from token")
	}

	middleware.Log.WithField("userId", userID).Debug("User ID from token")
	c.Locals(UserIDKey, userID)
	return c.Next()
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(res.ErrorResponse{
		Status:     fiber.ErrUnauthorized.Message,
		StatusCode: fiber.StatusUnauthorized,
		Error:      message,
	})
}
