package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"netwin-platform/middleware"
	"netwin-platform/services"
	"netwin-platform/utils"
)

func SetupKycRoutes(app *fiber.App, kyc *services.KycService, auth *services.AuthService) {
	secured := app.Group("/kyc", middleware.SessionMiddleware(auth))

	secured.Get("/required", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"documents": kyc.RequiredDocuments(middleware.CurrentUser(c)),
		})
	})

	secured.Get("/documents", func(c *fiber.Ctx) error {
		docs, err := kyc.DocumentsForUser(middleware.CurrentUser(c).ID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(docs)
	})

	secured.Post("/documents", func(c *fiber.Ctx) error {
		docType := c.FormValue("type")
		documentNumber := c.FormValue("documentNumber")
		if docType == "" || documentNumber == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "type and documentNumber are required"})
		}

		front, err := c.FormFile("frontImage")
		if err != nil || front.Size == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "frontImage is required"})
		}
		frontURL, err := utils.UploadFileToR2(front, "kyc/front")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "file upload failed, please try again"})
		}

		var backURL, selfieURL string
		if back, err := c.FormFile("backImage"); err == nil && back.Size > 0 {
			if backURL, err = utils.UploadFileToR2(back, "kyc/back"); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "file upload failed, please try again"})
			}
		}
		if selfie, err := c.FormFile("selfie"); err == nil && selfie.Size > 0 {
			if selfieURL, err = utils.UploadFileToR2(selfie, "kyc/selfie"); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "file upload failed, please try again"})
			}
		}

		doc, err := kyc.SubmitDocument(middleware.CurrentUser(c), docType, documentNumber, frontURL, backURL, selfieURL)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	})

	// 🔒 Admin review
	admin := app.Group("/admin/kyc", middleware.SessionMiddleware(auth), middleware.RequireAdmin())

	admin.Post("/:userId/documents/:id/review", func(c *fiber.Ctx) error {
		userID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
		}
		docID, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid document id"})
		}
		var body struct {
			Approve bool   `json:"approve"`
			Reason  string `json:"reason"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := kyc.Review(userID, docID, body.Approve, body.Reason); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"reviewed": true})
	})
}
