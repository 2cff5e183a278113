package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/njoroge256/aerodesk/database"
	"github.com/njoroge256/aerodesk/models"
	"github.com/njoroge256/aerodesk/notifications"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type PartnerRequest struct {
	BusinessName   string  `json:"business_name" validate:"required,min=2"`
	Email          string  `json:"email" validate:"required,email"`
	PhoneNumber    *string `json:"phone_number"`
	ContactPerson  *string `json:"contact_person"`
	Country        *string `json:"country"`
	CommissionRate float64 `json:"commission_rate" validate:"gte=0,lte=100"`
}

type partnerAdminView struct {
	models.Partner
	AvailableBalance float64 `json:"available_balance"`
	TotalEarnings    float64 `json:"total_earnings"`
}

func AdminListPartners(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := strings.TrimSpace(c.Query("search"))
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Partner{})
	countQuery := database.DB.Model(&models.Partner{})

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("business_name ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
		countQuery = countQuery.Where("business_name ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}

	var total int64
	var partners []models.Partner
	countQuery.Count(&total)
	query.Order("created_at desc").Offset(offset).Limit(limit).Find(&partners)

	views := make([]partnerAdminView, 0, len(partners))
	for _, p := range partners {
		views = append(views, partnerAdminView{Partner: p, AvailableBalance: p.AvailableBalance, TotalEarnings: p.TotalEarnings})
	}

	return c.JSON(fiber.Map{
		"data": views,
		"meta": fiber.Map{"total": total, "page": page, "last_page": int(math.Ceil(float64(total) / float64(limit)))},
	})
}

func AdminGetPartner(c *fiber.Ctx) error {
	partnerID := c.Params("partnerId")
	var partner models.Partner
	if err := database.DB.Preload("User").First(&partner, "id = ?", partnerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Partner not found"})
	}
	return c.JSON(partnerAdminView{Partner: partner, AvailableBalance: partner.AvailableBalance, TotalEarnings: partner.TotalEarnings})
}

// AdminCreatePartner provisions the partner record plus its login user, and
// emails the partner a temporary password.
func AdminCreatePartner(c *fiber.Ctx) error {
	var req PartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tempPassword := uuid.New().String()[:12]
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	var partner models.Partner
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		contactName := req.BusinessName
		if req.ContactPerson != nil && *req.ContactPerson != "" {
			contactName = *req.ContactPerson
		}

		user := models.User{
			FullName: contactName,
			Email:    req.Email,
			Password: string(hashedPassword),
			Role:     "partner",
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		partner = models.Partner{
			UserID:         user.ID,
			BusinessName:   req.BusinessName,
			Email:          req.Email,
			PhoneNumber:    req.PhoneNumber,
			ContactPerson:  req.ContactPerson,
			Country:        req.Country,
			Status:         "active",
			CommissionRate: req.CommissionRate,
		}
		return tx.Create(&partner).Error
	})
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Failed to create partner; the email may already be in use"})
	}

	go notifications.SendEmail(
		partner.BusinessName,
		partner.Email,
		"Your AeroDesk Partner Account",
		fmt.Sprintf("<h1>Welcome Aboard</h1><p>Your partner account has been created.</p><p><b>Temporary password:</b> %s</p><p>Please log in and change it immediately.</p>", tempPassword),
	)

	recordActivity(c, "partner.created", "partner", partner.ID.String(), partner.BusinessName)

	return c.Status(fiber.StatusCreated).JSON(partner)
}

func AdminUpdatePartner(c *fiber.Ctx) error {
	partnerID := c.Params("partnerId")
	var partner models.Partner
	if err := database.DB.First(&partner, "id = ?", partnerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Partner not found"})
	}

	var req PartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	partner.BusinessName = req.BusinessName
	partner.Email = req.Email
	partner.PhoneNumber = req.PhoneNumber
	partner.ContactPerson = req.ContactPerson
	partner.Country = req.Country
	partner.CommissionRate = req.CommissionRate
	if err := database.DB.Save(&partner).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update partner"})
	}

	recordActivity(c, "partner.updated", "partner", partner.ID.String(), partner.BusinessName)

	return c.JSON(partner)
}

func AdminTogglePartnerStatus(c *fiber.Ctx) error {
	partnerID := c.Params("partnerId")
	type Request struct {
		Status string `json:"status" validate:"required,oneof=active suspended"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := database.DB.Model(&models.Partner{}).Where("id = ?", partnerID).Update("status", req.Status)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update partner status"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Partner not found"})
	}

	recordActivity(c, "partner."+req.Status, "partner", partnerID, "")

	return c.JSON(fiber.Map{"message": "Partner status updated successfully."})
}
