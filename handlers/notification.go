package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"netwin-platform/middleware"
	"netwin-platform/services"
)

func SetupNotificationRoutes(app *fiber.App, notifications *services.NotificationService, auth *services.AuthService) {
	secured := app.Group("/notifications", middleware.SessionMiddleware(auth))

	secured.Get("/", func(c *fiber.Ctx) error {
		list, err := notifications.ForUser(middleware.CurrentUser(c).ID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(list)
	})

	secured.Get("/unread-count", func(c *fiber.Ctx) error {
		count, err := notifications.UnreadCount(middleware.CurrentUser(c).ID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"unread": count})
	})

	secured.Patch("/:id/read", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification id"})
		}
		if err := notifications.MarkRead(middleware.CurrentUser(c).ID, id); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"read": true})
	})

	secured.Post("/read-all", func(c *fiber.Ctx) error {
		if err := notifications.MarkAllRead(middleware.CurrentUser(c).ID); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"read": true})
	})

	// Live stream of new notifications for the session user.
	secured.Get("/stream", func(c *fiber.Ctx) error {
		userID := middleware.CurrentUser(c).ID

		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no") // nginx

		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()

			var lastID int64
			if existing, err := notifications.ForUser(userID); err == nil && len(existing) > 0 {
				lastID = existing[len(existing)-1].ID
			}

			// Initial keepalive (comment event)
			w.WriteString(":\n\n")
			w.Flush()

			for {
				select {
				case <-ticker.C:
					list, err := notifications.ForUser(userID)
					if err != nil {
						continue
					}
					wrote := false
					for _, n := range list {
						if n.ID <= lastID {
							continue
						}
						lastID = n.ID
						payload, _ := json.Marshal(n)
						fmt.Fprintf(w, "event: notification\ndata: %s\n\n", payload)
						wrote = true
					}
					if !wrote {
						continue
					}
					if err := w.Flush(); err != nil {
						// Client disconnected
						return
					}
				case <-c.Context().Done():
					return
				}
			}
		})

		return nil
	})
}
