package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/application/usecase"
)

// PagoHandler maneja los pagos de honorarios y sus recibos.
type PagoHandler struct {
	uc *usecase.PagoUseCase
}

// NewPagoHandler construye el handler de pagos.
func NewPagoHandler(uc *usecase.PagoUseCase) *PagoHandler {
	return &PagoHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar pago
// @Description  Suma el monto a los honorarios pagados del expediente y genera el recibo PDF en segundo plano.
// @Tags         pagos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePagoRequest  true  "Datos del pago"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /api/pagos [post]
func (h *PagoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePagoRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "pago registrado", out)
}

// ListByExpediente godoc
// @Summary      Listar pagos de un expediente
// @Tags         pagos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del expediente"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/expedientes/{id}/pagos [get]
func (h *PagoHandler) ListByExpediente(c *fiber.Ctx) error {
	out, err := h.uc.ListByExpediente(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// DownloadRecibo godoc
// @Summary      Descargar recibo PDF del pago
// @Tags         pagos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pago"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.Response
// @Router       /api/pagos/{id}/recibo [get]
func (h *PagoHandler) DownloadRecibo(c *fiber.Ctx) error {
	ruta, nombre, err := h.uc.DownloadRecibo(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Download(ruta, nombre)
}
