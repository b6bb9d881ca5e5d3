package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Learnspoint11/moryastationery/internal/handlers"
	"github.com/Learnspoint11/moryastationery/internal/middleware"
	"github.com/Learnspoint11/moryastationery/internal/repository"
	"github.com/Learnspoint11/moryastationery/internal/services"
	"github.com/Learnspoint11/moryastationery/internal/session"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, sessions *session.Manager, auth *services.AuthService, orders *services.OrderService, users repository.UserRepository, products repository.ProductRepository) {
	authHandler := handlers.NewAuthHandler(auth, sessions)
	otpHandler := handlers.NewOTPHandler(auth)
	orderHandler := handlers.NewOrderHandler(orders)
	productHandler := handlers.NewProductHandler(products)

	api := app.Group("/api")

	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authHandler.Logout)
	api.Get("/check-auth", authHandler.CheckAuth)

	loggedIn := middleware.RequireLogin(sessions)
	api.Post("/send-otp", loggedIn, otpHandler.SendOTP)
	api.Post("/verify-otp", loggedIn, otpHandler.VerifyOTP)

	api.Get("/products", productHandler.ListProducts)

	// Order placement and history sit behind the full gate; tracking is
	// open to anyone holding the order id.
	verified := middleware.RequireVerified(users)
	api.Post("/order", loggedIn, verified, orderHandler.CreateOrder)
	api.Get("/orders", loggedIn, verified, orderHandler.ListOrders)
	api.Get("/track-order/:id", orderHandler.TrackOrder)
}
