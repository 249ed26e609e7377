package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"netwin-platform/middleware"
	"netwin-platform/models"
	"netwin-platform/services"
	"netwin-platform/utils"
)

func SetupTournamentRoutes(app *fiber.App, tournaments *services.TournamentService, wallet *services.WalletService, auth *services.AuthService) {
	// 🔓 Public catalog
	app.Get("/tournaments", func(c *fiber.Ctx) error {
		filters, err := parseFilters(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		list, err := tournaments.Filter(filters)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(list)
	})

	app.Get("/tournaments/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tournament id"})
		}
		t, ok, err := tournaments.GetByID(id)
		if err != nil {
			return fail(c, err)
		}
		if !ok {
			return fail(c, services.ErrTournamentNotFound)
		}
		return c.JSON(t)
	})

	// 🔐 Registration and matches. Per-route middleware keeps the catalog
	// routes above public.
	session := middleware.SessionMiddleware(auth)

	app.Post("/tournaments/:id/join", session, func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tournament id"})
		}
		var body struct {
			TeammateIDs []int64 `json:"teammateIds"`
		}
		if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		match, err := tournaments.JoinTournament(id, middleware.CurrentUser(c), body.TeammateIDs)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(match)
	})

	app.Get("/matches", session, func(c *fiber.Ctx) error {
		list, err := tournaments.MatchesForUser(middleware.CurrentUser(c).ID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(list)
	})

	app.Get("/matches/:id", session, func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match id"})
		}
		m, ok, err := tournaments.GetMatch(id)
		if err != nil {
			return fail(c, err)
		}
		if !ok {
			return fail(c, services.ErrMatchNotFound)
		}
		return c.JSON(m)
	})

	app.Post("/matches/:id/result", session, func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match id"})
		}
		screenshot, err := c.FormFile("screenshot")
		if err != nil || screenshot.Size == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "screenshot is required"})
		}
		url, err := utils.UploadFileToR2(screenshot, "results")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "file upload failed, please try again"})
		}
		if err := tournaments.SubmitResult(id, url); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"submitted": true, "screenshot": url})
	})

	// 🔒 Admin
	admin := app.Group("/admin", session, middleware.RequireAdmin())

	admin.Patch("/tournaments/:id/status", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tournament id"})
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := tournaments.UpdateStatus(id, body.Status); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"updated": true})
	})

	admin.Post("/matches/:id/approve", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match id"})
		}
		var body struct {
			Position int     `json:"position"`
			Kills    int     `json:"kills"`
			Prize    float64 `json:"prize"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		ownerID, err := tournaments.ApproveResult(id, body.Position, body.Kills, body.Prize)
		if err != nil {
			return fail(c, err)
		}
		// The store holds a single user profile, so a prize can only be
		// credited when the roster owner is that profile. Otherwise the
		// approval stands and prizeCredited reports the skipped credit.
		prizeCredited := false
		if body.Prize > 0 {
			if user, ok, _ := auth.CurrentUser(); ok && user.ID == ownerID {
				if _, err := wallet.AwardPrize(user, body.Prize, body.Kills, "Prize for match result"); err != nil {
					return fail(c, err)
				}
				prizeCredited = true
			}
		}
		return c.JSON(fiber.Map{"approved": true, "prizeCredited": prizeCredited})
	})
}

func parseFilters(c *fiber.Ctx) (models.TournamentFilters, error) {
	f := models.TournamentFilters{
		Status:   c.Query("status"),
		Mode:     c.Query("mode"),
		GameMode: c.Query("gameMode"),
		Map:      c.Query("map"),
		Search:   c.Query("q"),
	}
	if v := c.Query("minEntryFee"); v != "" {
		fee, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "minEntryFee must be a number")
		}
		f.MinEntryFee = &fee
	}
	if v := c.Query("maxEntryFee"); v != "" {
		fee, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "maxEntryFee must be a number")
		}
		f.MaxEntryFee = &fee
	}
	if v := c.Query("dateFrom"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "dateFrom must be RFC3339")
		}
		f.DateFrom = &t
	}
	if v := c.Query("dateTo"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "dateTo must be RFC3339")
		}
		f.DateTo = &t
	}
	return f, nil
}
