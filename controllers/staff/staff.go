package staff

import (
	"fmt"
	"gestor-turnos/apperrors"
	"gestor-turnos/logger"
	clubModel "gestor-turnos/models/club"
	staffModel "gestor-turnos/models/staff"
	"gestor-turnos/repository"
	"gestor-turnos/types"
	staffTypes "gestor-turnos/types/staff"
	"gestor-turnos/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StaffController handles caddie and boleador requests. The :tipo route
// parameter selects the table.
type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

// table returns the table behind a :tipo value.
func table(c *fiber.Ctx) (string, error) {
	switch tipo := c.Params("tipo"); tipo {
	case "caddies":
		return staffModel.Caddie{}.TableName(), nil
	case "boleadores":
		return staffModel.Boleador{}.TableName(), nil
	default:
		return "", apperrors.Validation("tipo", "unknown staff tipo %q", tipo)
	}
}

func (sc *StaffController) Store(c *fiber.Ctx) error {
	tbl, err := table(c)
	if err != nil {
		return utils.RespondError(c, err)
	}
	clubID, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}
	var req staffTypes.StoreStaffRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err)
	}
	if err := req.Validate(); err != nil {
		return utils.RespondError(c, err)
	}

	db := sc.DB.WithContext(c.UserContext())
	if err := db.Select("id").First(&clubModel.Club{}, clubID).Error; err != nil {
		return utils.RespondError(c, repository.Translate("find club", err))
	}

	perfil := staffModel.Perfil{
		ClubID:           clubID,
		Nombre:           strings.TrimSpace(req.Nombre),
		Telefono:         req.Telefono,
		Email:            req.Email,
		ExperienciaAnios: req.ExperienciaAnios,
		Disponibilidad:   staffModel.DisponibilidadDisponible,
		Activo:           true,
	}
	if req.Nivel != nil {
		perfil.Nivel = *req.Nivel
	}
	if req.TarifaHora != nil {
		perfil.TarifaHora = *req.TarifaHora
	}
	if err := db.Table(tbl).Create(&perfil).Error; err != nil {
		return utils.RespondError(c, repository.Translate("create "+tbl, err))
	}

	logger.Success(fmt.Sprintf("Staff %d created in %s for club %d", perfil.ID, tbl, clubID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Staff created successfully",
		Status:  fiber.StatusCreated,
		Data:    perfil,
	})
}

func (sc *StaffController) Index(c *fiber.Ctx) error {
	tbl, err := table(c)
	if err != nil {
		return utils.RespondError(c, err)
	}
	clubID, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}

	query := sc.DB.WithContext(c.UserContext()).Table(tbl).Where("club_id = ?", clubID)
	if d := c.Query("disponibilidad"); d != "" {
		if !staffModel.Disponibilidad(d).IsValid() {
			return utils.RespondError(c, apperrors.Validation("disponibilidad", "unknown value %q", d))
		}
		query = query.Where("disponibilidad = ?", d)
	}

	list := []staffModel.Perfil{}
	if err := query.Order("nombre ASC").Find(&list).Error; err != nil {
		return utils.RespondError(c, repository.Translate("list "+tbl, err))
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Staff retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    list,
	})
}

// Update edits profile fields, availability and the active flag.
func (sc *StaffController) Update(c *fiber.Ctx) error {
	tbl, err := table(c)
	if err != nil {
		return utils.RespondError(c, err)
	}
	clubID, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}
	var req staffTypes.UpdateStaffRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err)
	}
	if err := req.Validate(); err != nil {
		return utils.RespondError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Nombre != nil {
		updates["nombre"] = strings.TrimSpace(*req.Nombre)
	}
	if req.Telefono != nil {
		updates["telefono"] = *req.Telefono
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Nivel != nil {
		updates["nivel"] = *req.Nivel
	}
	if req.TarifaHora != nil {
		updates["tarifa_hora"] = *req.TarifaHora
	}
	if req.Disponibilidad != nil {
		updates["disponibilidad"] = *req.Disponibilidad
	}
	if req.Activo != nil {
		updates["activo"] = *req.Activo
	}
	if len(updates) == 0 {
		return utils.RespondError(c, apperrors.Validation("", "no fields to update"))
	}

	var perfil staffModel.Perfil
	err = repository.Transaction(sc.DB.WithContext(c.UserContext()), func(tx *gorm.DB) error {
		res := tx.Table(tbl).Where("id = ? AND club_id = ?", id, clubID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Table(tbl).First(&perfil, id).Error
	})
	if err != nil {
		return utils.RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Staff updated successfully",
		Status:  fiber.StatusOK,
		Data:    perfil,
	})
}

// Destroy deletes a staff member. Turnos keep their history with the
// reference cleared by the ON DELETE SET NULL foreign key.
func (sc *StaffController) Destroy(c *fiber.Ctx) error {
	tbl, err := table(c)
	if err != nil {
		return utils.RespondError(c, err)
	}
	clubID, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}

	res := sc.DB.WithContext(c.UserContext()).Table(tbl).Where("id = ? AND club_id = ?", id, clubID).Delete(&staffModel.Perfil{})
	if res.Error != nil {
		return utils.RespondError(c, repository.Translate("delete "+tbl, res.Error))
	}
	if res.RowsAffected == 0 {
		return utils.RespondError(c, repository.Translate("delete "+tbl, gorm.ErrRecordNotFound))
	}

	logger.Info(fmt.Sprintf("Staff %d deleted from %s", id, tbl))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Staff deleted successfully",
		Status:  fiber.StatusOK,
	})
}
