package jornada

import (
	"fmt"
	"gestor-turnos/logger"
	"gestor-turnos/middleware"
	jornadaModel "gestor-turnos/models/jornada"
	jornadaService "gestor-turnos/services/jornada"
	"gestor-turnos/types"
	jornadaTypes "gestor-turnos/types/jornada"
	"gestor-turnos/utils"

	"github.com/gofiber/fiber/v2"
)

// JornadaController handles day closeout and snapshot requests
type JornadaController struct {
	Service *jornadaService.Service
}

func NewJornadaController(service *jornadaService.Service) *JornadaController {
	return &JornadaController{Service: service}
}

// Closeout archives the bookings of a day as the club's active snapshot
func (jc *JornadaController) Closeout(c *fiber.Ctx) error {
	clubID, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}

	var req jornadaTypes.CloseoutRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err)
	}
	if err := req.Validate(); err != nil {
		return utils.RespondError(c, err)
	}

	snap, err := jc.Service.Closeout(c.UserContext(), jornadaService.CloseoutInput{
		ClubID:        clubID,
		Fecha:         req.Fecha,
		Nombre:        req.Nombre,
		Observaciones: req.Observaciones,
		By:            middleware.Username(c),
	})
	if err != nil {
		return utils.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Jornada closed successfully",
		Status:  fiber.StatusCreated,
		Data:    snap,
	})
}

// Reconcile lists the differences between the ledger and a day's snapshot
func (jc *JornadaController) Reconcile(c *fiber.Ctx) error {
	clubID, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}
	fecha := c.Params("fecha")

	seq, err := jc.Service.Reconcile(c.UserContext(), clubID, fecha)
	if err != nil {
		return utils.RespondError(c, err)
	}

	discrepancies := []jornadaModel.Discrepancy{}
	for d := range seq {
		discrepancies = append(discrepancies, d)
	}
	if len(discrepancies) > 0 {
		logger.Warning(fmt.Sprintf("Jornada %s of club %d has %d discrepancies", fecha, clubID, len(discrepancies)))
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Reconciliation completed",
		Status:  fiber.StatusOK,
		Data: jornadaTypes.ReconcileResponse{
			ClubID:        clubID,
			Fecha:         fecha,
			Consistent:    len(discrepancies) == 0,
			Discrepancies: discrepancies,
		},
	})
}

// Index lists the snapshots of a club, newest first
func (jc *JornadaController) Index(c *fiber.Ctx) error {
	clubID, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}
	list, err := jc.Service.List(c.UserContext(), clubID)
	if err != nil {
		return utils.RespondError(c, err)
	}
	if list == nil {
		list = []jornadaModel.JornadaTurnos{}
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Jornadas retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    list,
	})
}

// Active returns the club's active snapshot
func (jc *JornadaController) Active(c *fiber.Ctx) error {
	clubID, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}
	snap, err := jc.Service.Active(c.UserContext(), clubID)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Active jornada retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    snap,
	})
}

func (jc *JornadaController) Show(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}
	snap, err := jc.Service.Get(c.UserContext(), id)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Jornada retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    snap,
	})
}
