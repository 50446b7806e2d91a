package turno

import (
	"gestor-turnos/middleware"
	turnoModel "gestor-turnos/models/turno"
	turnoService "gestor-turnos/services/turno"
	"gestor-turnos/types"
	turnoTypes "gestor-turnos/types/turno"
	"gestor-turnos/utils"

	"github.com/gofiber/fiber/v2"
)

// TurnoController handles booking ledger requests
type TurnoController struct {
	Service *turnoService.Service
}

func NewTurnoController(service *turnoService.Service) *TurnoController {
	return &TurnoController{Service: service}
}

// Store books a court for a client
func (tc *TurnoController) Store(c *fiber.Ctx) error {
	clubID, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}

	var req turnoTypes.StoreTurnoRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err)
	}
	if err := req.Validate(); err != nil {
		return utils.RespondError(c, err)
	}

	t, err := tc.Service.Create(c.UserContext(), turnoService.CreateInput{
		ClubID:        clubID,
		CanchaID:      req.CanchaID,
		NumeroCancha:  req.NumeroCancha,
		ClienteNombre: req.ClienteNombre,
		HoraInicio:    req.HoraInicio,
		HoraFin:       req.HoraFin,
		CaddieID:      req.CaddieID,
		BoleadorID:    req.BoleadorID,
		Observaciones: req.Observaciones,
		By:            middleware.Username(c),
	})
	if err != nil {
		return utils.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Turno created successfully",
		Status:  fiber.StatusCreated,
		Data:    t,
	})
}

// Index lists the turnos of a club for ?fecha=YYYY-MM-DD
func (tc *TurnoController) Index(c *fiber.Ctx) error {
	clubID, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}
	list, err := tc.Service.ListDay(c.UserContext(), clubID, c.Query("fecha"))
	if err != nil {
		return utils.RespondError(c, err)
	}
	if list == nil {
		list = []turnoModel.Turno{}
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Turnos retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    list,
	})
}

func (tc *TurnoController) Show(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}
	t, err := tc.Service.Get(c.UserContext(), id)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Turno retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    t,
	})
}

// UpdateCliente edits the client name and notes
func (tc *TurnoController) UpdateCliente(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}
	var req turnoTypes.UpdateClienteRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err)
	}
	if err := req.Validate(); err != nil {
		return utils.RespondError(c, err)
	}

	t, err := tc.Service.UpdateCliente(c.UserContext(), id, req.ClienteNombre, req.Observaciones, middleware.Username(c))
	return tc.respond(c, t, err, "Turno updated successfully")
}

// Transition changes the estado of a turno
func (tc *TurnoController) Transition(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}
	var req turnoTypes.TransitionRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err)
	}
	if err := req.Validate(); err != nil {
		return utils.RespondError(c, err)
	}

	t, err := tc.Service.Transition(c.UserContext(), id, turnoModel.Estado(req.Estado), middleware.Username(c))
	return tc.respond(c, t, err, "Turno estado updated successfully")
}

func (tc *TurnoController) AssignCaddie(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}
	var req turnoTypes.AssignStaffRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err)
	}

	t, err := tc.Service.AssignCaddie(c.UserContext(), id, req.ID, middleware.Username(c))
	return tc.respond(c, t, err, "Caddie updated successfully")
}

func (tc *TurnoController) AssignBoleador(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}
	var req turnoTypes.AssignStaffRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err)
	}

	t, err := tc.Service.AssignBoleador(c.UserContext(), id, req.ID, middleware.Username(c))
	return tc.respond(c, t, err, "Boleador updated successfully")
}

// ReassignCancha moves a turno to another court of the same club
func (tc *TurnoController) ReassignCancha(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}
	var req turnoTypes.ReassignCanchaRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err)
	}
	if err := req.Validate(); err != nil {
		return utils.RespondError(c, err)
	}

	t, err := tc.Service.ReassignCancha(c.UserContext(), id, req.CanchaID, req.NumeroCancha, middleware.Username(c))
	return tc.respond(c, t, err, "Cancha updated successfully")
}

func (tc *TurnoController) respond(c *fiber.Ctx, t *turnoModel.Turno, err error, msg string) error {
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: msg,
		Status:  fiber.StatusOK,
		Data:    t,
	})
}

// Estados lists the estados a turno can be in
func (tc *TurnoController) Estados(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Estados retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    turnoModel.GetAllEstados(),
	})
}
