package routes

import (
	"gestor-turnos/constants"
	"gestor-turnos/controllers/cancha"
	"gestor-turnos/controllers/club"
	"gestor-turnos/controllers/jornada"
	"gestor-turnos/controllers/staff"
	"gestor-turnos/controllers/turno"
	"gestor-turnos/middleware"
	"gestor-turnos/mq"
	"gestor-turnos/repository"
	jornadaService "gestor-turnos/services/jornada"
	turnoService "gestor-turnos/services/turno"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controllers groups the HTTP handlers of the API.
type Controllers struct {
	Club    *club.ClubController
	Cancha  *cancha.CanchaController
	Staff   *staff.StaffController
	Turno   *turno.TurnoController
	Jornada *jornada.JornadaController
}

// NewControllers wires the controllers against the gorm repositories.
func NewControllers(db *gorm.DB, loc *time.Location, events mq.EventPublisher) *Controllers {
	return &Controllers{
		Club:    club.NewClubController(db),
		Cancha:  cancha.NewCanchaController(db),
		Staff:   staff.NewStaffController(db),
		Turno:   turno.NewTurnoController(turnoService.NewService(repository.NewTurnoRepo(db), loc, events)),
		Jornada: jornada.NewJornadaController(jornadaService.NewService(repository.NewJornadaRepo(db), loc, events)),
	}
}

func SetupRoutes(app *fiber.App, auth *middleware.Auth, ctrl *Controllers) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	admin := auth.RequirePermissions(constants.AdminPermissions...)
	desk := auth.RequirePermissions(constants.DeskPermissions...)

	/*=============================================================================
	| Club Routes
	===============================================================================*/
	clubs := api.Group("/clubs")
	clubs.Post("/", admin, ctrl.Club.Store)
	clubs.Get("/", desk, ctrl.Club.Index)
	clubs.Get("/:clubId", desk, ctrl.Club.Show)
	clubs.Delete("/:clubId", auth.RequirePermissions(constants.PermSuperAdminFull), ctrl.Club.Destroy)

	/*=============================================================================
	| Cancha Routes
	===============================================================================*/
	clubs.Post("/:clubId/canchas", admin, ctrl.Cancha.Store)
	clubs.Get("/:clubId/canchas", desk, ctrl.Cancha.Index)
	clubs.Delete("/:clubId/canchas/:id", admin, ctrl.Cancha.Destroy)

	/*=============================================================================
	| Staff Routes (caddies, boleadores)
	===============================================================================*/
	clubs.Post("/:clubId/staff/:tipo", admin, ctrl.Staff.Store)
	clubs.Get("/:clubId/staff/:tipo", desk, ctrl.Staff.Index)
	clubs.Patch("/:clubId/staff/:tipo/:id", desk, ctrl.Staff.Update)
	clubs.Delete("/:clubId/staff/:tipo/:id", admin, ctrl.Staff.Destroy)

	/*=============================================================================
	| Turno Routes
	===============================================================================*/
	clubs.Post("/:clubId/turnos", desk, ctrl.Turno.Store)
	clubs.Get("/:clubId/turnos", desk, ctrl.Turno.Index)

	api.Get("/estados", auth.RequireAuthentication(), ctrl.Turno.Estados)

	turnos := api.Group("/turnos", desk)
	turnos.Get("/:id", ctrl.Turno.Show)
	turnos.Patch("/:id/cliente", ctrl.Turno.UpdateCliente)
	turnos.Post("/:id/estado", ctrl.Turno.Transition)
	turnos.Put("/:id/caddie", ctrl.Turno.AssignCaddie)
	turnos.Put("/:id/boleador", ctrl.Turno.AssignBoleador)
	turnos.Put("/:id/cancha", ctrl.Turno.ReassignCancha)

	/*=============================================================================
	| Jornada Routes
	===============================================================================*/
	clubs.Post("/:clubId/jornadas/closeout", admin, ctrl.Jornada.Closeout)
	clubs.Get("/:clubId/jornadas", desk, ctrl.Jornada.Index)
	clubs.Get("/:clubId/jornadas/activa", desk, ctrl.Jornada.Active)
	clubs.Get("/:clubId/jornadas/:fecha/reconcile", admin, ctrl.Jornada.Reconcile)
	api.Get("/jornadas/:id", desk, ctrl.Jornada.Show)
}
