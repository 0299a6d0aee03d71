package middleware

import (
	"errors"

	"realtime-service/config"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWT guards the REST polling surface. Tokens arrive in the Authorization
// header or, matching the socket handshake convention, in a token query
// parameter.
func JWT() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS512",
			Key:    []byte(config.Config("JWT_ACCESS_KEY")),
		},
		TokenLookup: "header:Authorization,query:token",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusUnauthorized
			message := "invalid or expired token"
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				status = fiber.StatusBadRequest
				message = "missing or malformed token"
			}
			return c.Status(status).JSON(fiber.Map{
				"status":  "error",
				"message": message,
				"data":    nil,
			})
		},
	})
}
