package circuits

import (
	"errors"
	"strconv"

	"circuit-manager/core/logger"
	"circuit-manager/core/provider"
	"circuit-manager/feature/circuits/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the circuit feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the circuit feature routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/providers/types", h.HandleProviderTypes)

	configs := app.Group("/configs")
	configs.Get("/", h.HandleListConfigs)
	configs.Post("/", h.HandleCreateConfig)
	configs.Get("/:id", h.HandleGetConfig)
	configs.Put("/:id", h.HandleUpdateConfig)
	configs.Delete("/:id", h.HandleDeleteConfig)
	configs.Post("/:id/test", h.HandleTestConfig)
	configs.Post("/:id/sync", h.HandleSyncConfig)

	app.Post("/sync", h.HandleSyncDue)

	circuits := app.Group("/circuits")
	circuits.Get("/:id/cost", h.HandleGetCost)
	circuits.Get("/:id/tickets", h.HandleGetTickets)
	circuits.Get("/:id/path", h.HandleGetPath)
	circuits.Get("/:id/contracts", h.HandleGetContracts)
	circuits.Post("/:id/contracts", h.HandleCreateContract)

	contracts := app.Group("/contracts")
	contracts.Delete("/:id", h.HandleDeleteContract)
	contracts.Post("/:id/document", h.HandleUploadContractDocument)
	contracts.Get("/:id/document", h.HandleDownloadContractDocument)
}

// HandleProviderTypes returns the registered provider adapter types.
// @Summary List Provider Types
// @Description List the provider types a configuration can use.
// @Tags providers
// @Produce json
// @Success 200 {array} string "Provider Types"
// @Router /providers/types [get]
func (h *Handler) HandleProviderTypes(c *fiber.Ctx) error {
	return c.JSON(h.service.ProviderTypes())
}

// HandleListConfigs lists all provider API configurations.
// @Summary List Configurations
// @Description List all provider API configurations. Credentials are omitted.
// @Tags configs
// @Produce json
// @Success 200 {array} models.ProviderAPIConfig "Configurations"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /configs [get]
func (h *Handler) HandleListConfigs(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	configs, err := h.service.Configs(c.Context())
	if err != nil {
		l.Error("Failed to list configs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(configs)
}

// HandleCreateConfig creates a provider API configuration.
// @Summary Create Configuration
// @Description Create a provider API configuration. Key and secret are write-only.
// @Tags configs
// @Accept json
// @Produce json
// @Param config body ConfigRequest true "Configuration"
// @Success 201 {object} models.ProviderAPIConfig "Created"
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 409 {object} map[string]string "Duplicate Configuration"
// @Router /configs [post]
func (h *Handler) HandleCreateConfig(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	cfg, err := h.service.CreateConfig(c.Context(), req)
	if err != nil {
		if errors.Is(err, ErrConfigExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		l.Warn("Config creation rejected", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(cfg)
}

// HandleGetConfig returns one configuration.
// @Summary Get Configuration
// @Description Get a provider API configuration. Credentials are omitted.
// @Tags configs
// @Produce json
// @Param id path int true "Configuration ID"
// @Success 200 {object} models.ProviderAPIConfig "Configuration"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /configs/{id} [get]
func (h *Handler) HandleGetConfig(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	cfg, err := h.service.Config(c.Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(cfg)
}

// HandleUpdateConfig applies a partial update to a configuration.
// @Summary Update Configuration
// @Description Update a provider API configuration. Omitted fields are left unchanged.
// @Tags configs
// @Accept json
// @Produce json
// @Param id path int true "Configuration ID"
// @Param config body ConfigRequest true "Fields to update"
// @Success 200 {object} models.ProviderAPIConfig "Updated"
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /configs/{id} [put]
func (h *Handler) HandleUpdateConfig(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var req ConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	cfg, err := h.service.UpdateConfig(c.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cfg)
}

// HandleDeleteConfig removes a configuration.
// @Summary Delete Configuration
// @Description Delete a provider API configuration.
// @Tags configs
// @Param id path int true "Configuration ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /configs/{id} [delete]
func (h *Handler) HandleDeleteConfig(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.service.DeleteConfig(c.Context(), id); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleTestConfig tests a configuration's carrier connection.
// @Summary Test Connection
// @Description Authenticate against the carrier API without syncing anything.
// @Tags sync
// @Produce json
// @Param id path int true "Configuration ID"
// @Success 200 {object} provider.TestResult "Test Result"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /configs/{id}/test [post]
func (h *Handler) HandleTestConfig(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	result, err := h.service.TestConnection(c.Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(result)
}

// HandleSyncConfig triggers a full synchronization run for one configuration.
// @Summary Sync Configuration
// @Description Run a full synchronization for one configuration, regardless of its schedule.
// @Tags sync
// @Produce json
// @Param id path int true "Configuration ID"
// @Success 200 {object} provider.RunSummary "Run Summary"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Run In Progress"
// @Router /configs/{id}/sync [post]
func (h *Handler) HandleSyncConfig(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.Sync(c.Context(), id)
	if err != nil {
		if errors.Is(err, provider.ErrRunInProgress) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Sync failed to start", zap.Error(err))
		return h.respondError(c, err)
	}
	return c.JSON(summary)
}

// HandleSyncDue runs every enabled configuration whose interval has elapsed.
// @Summary Sync Due Configurations
// @Description Run every enabled configuration whose sync interval has elapsed.
// @Tags sync
// @Produce json
// @Success 200 {array} provider.RunSummary "Run Summaries"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync [post]
func (h *Handler) HandleSyncDue(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summaries, err := h.service.SyncDue(c.Context())
	if err != nil {
		l.Error("Bulk sync failed to start", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summaries)
}

// HandleGetCost returns the synced cost data for a circuit.
// @Summary Get Circuit Cost
// @Description Get the synced cost data (NRC/MRC) for a circuit.
// @Tags circuits
// @Produce json
// @Param id path int true "Circuit ID"
// @Success 200 {object} models.CircuitCost "Cost"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /circuits/{id}/cost [get]
func (h *Handler) HandleGetCost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	cost, err := h.service.CircuitCost(c.Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(cost)
}

// HandleGetTickets returns the synced tickets for a circuit.
// @Summary Get Circuit Tickets
// @Description Get the synced support tickets for a circuit, newest first.
// @Tags circuits
// @Produce json
// @Param id path int true "Circuit ID"
// @Success 200 {array} models.CircuitTicket "Tickets"
// @Router /circuits/{id}/tickets [get]
func (h *Handler) HandleGetTickets(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	tickets, err := h.service.CircuitTickets(c.Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(tickets)
}

// HandleGetPath returns the path record for a circuit.
// @Summary Get Circuit Path
// @Description Get the stored path record for a circuit. The archive itself lives in object storage.
// @Tags circuits
// @Produce json
// @Param id path int true "Circuit ID"
// @Success 200 {object} models.CircuitPath "Path"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /circuits/{id}/path [get]
func (h *Handler) HandleGetPath(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	path, err := h.service.CircuitPath(c.Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(path)
}

// HandleGetContracts returns the contracts for a circuit.
// @Summary Get Circuit Contracts
// @Description Get the contracts for a circuit, newest first.
// @Tags circuits
// @Produce json
// @Param id path int true "Circuit ID"
// @Success 200 {array} models.CircuitContract "Contracts"
// @Router /circuits/{id}/contracts [get]
func (h *Handler) HandleGetContracts(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	contracts, err := h.service.CircuitContracts(c.Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(contracts)
}

// HandleCreateContract creates a contract for a circuit.
// @Summary Create Circuit Contract
// @Description Create a contract record for a circuit.
// @Tags circuits
// @Accept json
// @Produce json
// @Param id path int true "Circuit ID"
// @Param contract body models.CircuitContract true "Contract"
// @Success 201 {object} models.CircuitContract "Created"
// @Failure 400 {object} map[string]string "Validation Error"
// @Router /circuits/{id}/contracts [post]
func (h *Handler) HandleCreateContract(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var contract models.CircuitContract
	if err := c.BodyParser(&contract); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	contract.CircuitID = id

	if contract.ContractNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "contract_number is required"})
	}

	if err := h.service.CreateContract(c.Context(), &contract); err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contract)
}

// HandleDeleteContract removes a contract and its stored document.
// @Summary Delete Contract
// @Description Delete a contract and its stored document, if one was uploaded.
// @Tags circuits
// @Param id path int true "Contract ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /contracts/{id} [delete]
func (h *Handler) HandleDeleteContract(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.service.DeleteContract(c.Context(), id); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUploadContractDocument uploads a contract document.
// @Summary Upload Contract Document
// @Description Upload a contract PDF or document to object storage.
// @Tags circuits
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Contract ID"
// @Param document formData file true "Contract document"
// @Success 200 {object} map[string]string "Document Key"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /contracts/{id}/document [post]
func (h *Handler) HandleUploadContractDocument(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	l := logger.WithRayID(h.service.logger, c)

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "document file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to read document"})
	}
	defer file.Close()

	key, err := h.service.UploadContractDocument(c.Context(), id, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		l.Error("Contract document upload failed", zap.Error(err))
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"document_key": key})
}

// HandleDownloadContractDocument streams a stored contract document.
// @Summary Download Contract Document
// @Description Download the stored contract document.
// @Tags circuits
// @Produce octet-stream
// @Param id path int true "Contract ID"
// @Success 200 {file} binary "Document"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /contracts/{id}/document [get]
func (h *Handler) HandleDownloadContractDocument(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	reader, err := h.service.DownloadContractDocument(c.Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.SendStream(reader)
}

// respondError maps service errors to HTTP statuses.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, provider.ErrConfigNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrConfigExists), errors.Is(err, provider.ErrRunInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
