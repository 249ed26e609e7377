package handlers

import (
	"github.com/gofiber/fiber/v2"

	"netwin-platform/middleware"
	"netwin-platform/models"
	"netwin-platform/services"
)

func SetupAuthRoutes(app *fiber.App, auth *services.AuthService) {
	// 🔓 Public authentication flow
	app.Post("/auth/otp/request", func(c *fiber.Ctx) error {
		var creds models.LoginCredentials
		if err := c.BodyParser(&creds); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		otp, err := auth.RequestOTP(creds)
		if err != nil {
			return fail(c, err)
		}
		// The code is returned in place of an SMS delivery.
		return c.JSON(fiber.Map{"sent": true, "otp": otp})
	})

	app.Post("/auth/signup", func(c *fiber.Ctx) error {
		var data models.SignupData
		if err := c.BodyParser(&data); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if data.Username == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username is required"})
		}
		otp, err := auth.Signup(data)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"sent": true, "otp": otp})
	})

	app.Post("/auth/otp/verify", func(c *fiber.Ctx) error {
		var verification models.OtpVerification
		if err := c.BodyParser(&verification); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		user, token, err := auth.VerifyOTP(verification)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user, "token": token})
	})

	// 🔐 Session routes. The middleware is attached per route: a "/" group
	// would mount it app-wide and close the public catalog behind a session.
	session := middleware.SessionMiddleware(auth)

	app.Post("/auth/logout", session, func(c *fiber.Ctx) error {
		if err := auth.Logout(); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"loggedOut": true})
	})

	app.Get("/users/me", session, func(c *fiber.Ctx) error {
		return c.JSON(middleware.CurrentUser(c))
	})

	app.Patch("/users/me", session, func(c *fiber.Ctx) error {
		var update services.UserUpdate
		if err := c.BodyParser(&update); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		user, err := auth.UpdateUser(update)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(user)
	})
}
