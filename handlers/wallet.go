package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"netwin-platform/middleware"
	"netwin-platform/models"
	"netwin-platform/services"
)

func SetupWalletRoutes(app *fiber.App, wallet *services.WalletService, auth *services.AuthService) {
	secured := app.Group("/wallet", middleware.SessionMiddleware(auth))

	secured.Post("/deposit", func(c *fiber.Ctx) error {
		var body struct {
			Amount        float64 `json:"amount"`
			PaymentMethod string  `json:"paymentMethod"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if body.PaymentMethod == "" {
			body.PaymentMethod = "Card"
		}
		tx, err := wallet.AddMoney(middleware.CurrentUser(c), body.Amount, body.PaymentMethod)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(tx)
	})

	secured.Post("/withdraw", func(c *fiber.Ctx) error {
		var req models.WithdrawalRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		tx, err := wallet.Withdraw(middleware.CurrentUser(c), req)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(tx)
	})

	secured.Get("/transactions", func(c *fiber.Ctx) error {
		list, err := wallet.TransactionsForUser(middleware.CurrentUser(c).ID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(list)
	})

	secured.Get("/convert", func(c *fiber.Ctx) error {
		amount, err := strconv.ParseFloat(c.Query("amount"), 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be a number"})
		}
		from := models.Currency(c.Query("from"))
		to := models.Currency(c.Query("to"))
		return c.JSON(fiber.Map{
			"amount":    amount,
			"from":      from,
			"to":        to,
			"converted": wallet.Convert(amount, from, to),
		})
	})

	// Ledger audit: replays signed effects and reports drift from the cached
	// balance.
	secured.Get("/balance/verify", func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		replayed, err := wallet.ReplayBalance(user.ID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{
			"cached":     user.WalletBalance,
			"replayed":   replayed,
			"consistent": replayed == user.WalletBalance,
		})
	})
}
