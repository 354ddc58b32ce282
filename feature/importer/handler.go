package importer

import (
	"strconv"

	"dummy-importer/core/logger"
	"dummy-importer/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for imports and imported users.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the importer routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/import", h.HandleImport)
	app.Get("/stats", h.HandleStats)

	group := app.Group("/users")
	group.Get("/:dummyId", h.HandleGetUser)
	group.Delete("/:dummyId", h.HandleDeleteUser)
}

// HandleImport runs one import and returns its report.
// @Summary Run Import
// @Description Fetch one page of users from the upstream API and upsert them with their banks and posts.
// @Tags import
// @Produce json
// @Param limit query int false "Page size (default from config)"
// @Param skip query int false "Page offset (default from config)"
// @Param dry_run query bool false "Roll back every write"
// @Param continue_on_error query bool false "Skip failing users instead of aborting"
// @Success 200 {object} Report "Import report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]any "Import failed"
// @Router /import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	cfg := h.service.Config()

	limit, err := utils.ParseCount(c.Query("limit"), cfg.Limit)
	if err != nil {
		return badRequest(c, "limit", err)
	}
	skip, err := utils.ParseCount(c.Query("skip"), cfg.Skip)
	if err != nil {
		return badRequest(c, "skip", err)
	}

	report, err := h.service.Import(c.UserContext(), Request{
		Limit:           limit,
		Skip:            skip,
		DryRun:          c.QueryBool("dry_run", false),
		ContinueOnError: c.QueryBool("continue_on_error", cfg.ContinueOnError),
	})
	if err != nil {
		l.Error("Import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  err.Error(),
			"report": report,
		})
	}

	return c.JSON(report)
}

// HandleStats returns row counts of the imported tables.
// @Summary Import Stats
// @Tags import
// @Produce json
// @Success 200 {object} Counts "Row counts"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	counts, err := h.service.Stats(c.UserContext())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Stats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(counts)
}

// HandleGetUser returns an imported user with its bank and posts.
// @Summary Get User
// @Tags users
// @Produce json
// @Param dummyId path int true "Upstream user id"
// @Success 200 {object} models.User "User"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /users/{dummyId} [get]
func (h *Handler) HandleGetUser(c *fiber.Ctx) error {
	dummyID, err := strconv.Atoi(c.Params("dummyId"))
	if err != nil {
		return badRequest(c, "dummyId", err)
	}

	user, err := h.service.GetUser(c.UserContext(), dummyID)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("User lookup failed", zap.Int("dummy_id", dummyID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}
	return c.JSON(user)
}

// HandleDeleteUser deletes an imported user with its bank and posts.
// @Summary Delete User
// @Tags users
// @Param dummyId path int true "Upstream user id"
// @Success 204
// @Failure 404 {object} map[string]string "Not Found"
// @Router /users/{dummyId} [delete]
func (h *Handler) HandleDeleteUser(c *fiber.Ctx) error {
	dummyID, err := strconv.Atoi(c.Params("dummyId"))
	if err != nil {
		return badRequest(c, "dummyId", err)
	}

	deleted, err := h.service.DeleteUser(c.UserContext(), dummyID)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("User delete failed", zap.Int("dummy_id", dummyID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func badRequest(c *fiber.Ctx, param string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid " + param + ": " + err.Error(),
	})
}
