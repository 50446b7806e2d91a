package club

import (
	"fmt"
	"gestor-turnos/logger"
	clubModel "gestor-turnos/models/club"
	"gestor-turnos/repository"
	"gestor-turnos/types"
	clubTypes "gestor-turnos/types/club"
	"gestor-turnos/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClubController handles club requests
type ClubController struct {
	DB *gorm.DB
}

func NewClubController(db *gorm.DB) *ClubController {
	return &ClubController{DB: db}
}

func (cc *ClubController) Store(c *fiber.Ctx) error {
	var req clubTypes.StoreClubRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err)
	}
	if err := req.Validate(); err != nil {
		return utils.RespondError(c, err)
	}

	club := clubModel.Club{
		Nombre:    strings.TrimSpace(req.Nombre),
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := cc.DB.WithContext(c.UserContext()).Create(&club).Error; err != nil {
		return utils.RespondError(c, repository.Translate("create club", err))
	}

	logger.Success(fmt.Sprintf("Club %d (%s) created", club.ID, club.Nombre))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Club created successfully",
		Status:  fiber.StatusCreated,
		Data:    club,
	})
}

func (cc *ClubController) Index(c *fiber.Ctx) error {
	clubs := []clubModel.Club{}
	if err := cc.DB.WithContext(c.UserContext()).Order("nombre ASC").Find(&clubs).Error; err != nil {
		return utils.RespondError(c, repository.Translate("list clubs", err))
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Clubs retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    clubs,
	})
}

func (cc *ClubController) Show(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}
	var club clubModel.Club
	if err := cc.DB.WithContext(c.UserContext()).First(&club, id).Error; err != nil {
		return utils.RespondError(c, repository.Translate("find club", err))
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Club retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    club,
	})
}

// Destroy deletes a club. Clubs still referenced by courts, staff, turnos
// or jornadas are rejected by the foreign keys with 409.
func (cc *ClubController) Destroy(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}
	res := cc.DB.WithContext(c.UserContext()).Delete(&clubModel.Club{}, id)
	if res.Error != nil {
		return utils.RespondError(c, repository.Translate("delete club", res.Error))
	}
	if res.RowsAffected == 0 {
		return utils.RespondError(c, repository.Translate("delete club", gorm.ErrRecordNotFound))
	}

	logger.Info(fmt.Sprintf("Club %d deleted", id))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Club deleted successfully",
		Status:  fiber.StatusOK,
	})
}
