package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// DefaultCORSOrigins - dev-серверы React клиента
const DefaultCORSOrigins = "http://localhost:3000,http://localhost:5173"

// CORS - origins через запятую, пустая строка даёт DefaultCORSOrigins
func CORS(origins string) fiber.Handler {
	if origins == "" {
		origins = DefaultCORSOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Accept,Accept-Language,Authorization",
		AllowCredentials: true,
	})
}
