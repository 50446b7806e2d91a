package cancha

import (
	"fmt"
	"gestor-turnos/logger"
	canchaModel "gestor-turnos/models/cancha"
	clubModel "gestor-turnos/models/club"
	"gestor-turnos/repository"
	"gestor-turnos/types"
	canchaTypes "gestor-turnos/types/cancha"
	"gestor-turnos/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CanchaController handles court requests
type CanchaController struct {
	DB *gorm.DB
}

func NewCanchaController(db *gorm.DB) *CanchaController {
	return &CanchaController{DB: db}
}

func (cc *CanchaController) Store(c *fiber.Ctx) error {
	clubID, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}
	var req canchaTypes.StoreCanchaRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.RespondError(c, err)
	}
	if err := req.Validate(); err != nil {
		return utils.RespondError(c, err)
	}

	db := cc.DB.WithContext(c.UserContext())
	if err := db.Select("id").First(&clubModel.Club{}, clubID).Error; err != nil {
		return utils.RespondError(c, repository.Translate("find club", err))
	}

	cancha := canchaModel.Cancha{
		ClubID: clubID,
		Numero: req.Numero,
		Nombre: strings.TrimSpace(req.Nombre),
		Tipo:   req.Tipo,
		Activa: true,
	}
	if err := db.Create(&cancha).Error; err != nil {
		return utils.RespondError(c, repository.Translate("create cancha", err))
	}

	logger.Success(fmt.Sprintf("Cancha %d (numero %d) created for club %d", cancha.ID, cancha.Numero, clubID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Cancha created successfully",
		Status:  fiber.StatusCreated,
		Data:    cancha,
	})
}

func (cc *CanchaController) Index(c *fiber.Ctx) error {
	clubID, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}
	canchas := []canchaModel.Cancha{}
	err = cc.DB.WithContext(c.UserContext()).
		Where("club_id = ?", clubID).
		Order("numero ASC").
		Find(&canchas).Error
	if err != nil {
		return utils.RespondError(c, repository.Translate("list canchas", err))
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Canchas retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    canchas,
	})
}

// Destroy deactivates a court. Courts are never deleted so that booked
// and archived turnos keep resolving.
func (cc *CanchaController) Destroy(c *fiber.Ctx) error {
	clubID, err := utils.ParamID(c, "clubId")
	if err != nil {
		return utils.RespondError(c, err)
	}
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}

	res := cc.DB.WithContext(c.UserContext()).
		Model(&canchaModel.Cancha{}).
		Where("id = ? AND club_id = ?", id, clubID).
		Update("activa", false)
	if res.Error != nil {
		return utils.RespondError(c, repository.Translate("deactivate cancha", res.Error))
	}
	if res.RowsAffected == 0 {
		return utils.RespondError(c, repository.Translate("deactivate cancha", gorm.ErrRecordNotFound))
	}

	logger.Info(fmt.Sprintf("Cancha %d of club %d deactivated", id, clubID))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Cancha deactivated successfully",
		Status:  fiber.StatusOK,
	})
}
