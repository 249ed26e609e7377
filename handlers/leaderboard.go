package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"netwin-platform/services"
)

func SetupLeaderboardRoutes(app *fiber.App, leaderboard *services.LeaderboardService) {
	// 🔓 Public ranking
	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		limit := 50
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be a positive number"})
			}
			limit = n
		}
		entries, err := leaderboard.Top(limit)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(entries)
	})

	app.Get("/leaderboard/rank/:userId", func(c *fiber.Ctx) error {
		userID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
		}
		rank, err := leaderboard.Rank(userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"userId": userID, "rank": rank})
	})
}
