package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skimonitor/api/database"
	"github.com/skimonitor/api/models"
	"github.com/skimonitor/api/notifications"
	"github.com/skimonitor/api/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InstructorRequest struct {
	Bio         string   `json:"bio"`
	Specialties []string `json:"specialties"`
	SkiLevels   []string `json:"ski_levels"`
	HourlyRate  float64  `json:"hourly_rate" validate:"omitempty,gt=0"`
	StationID   *string  `json:"station_id" validate:"omitempty,uuid"`
}

func containsFold(values []string, wanted string) bool {
	for _, v := range values {
		if strings.EqualFold(v, wanted) {
			return true
		}
	}
	return false
}

// ListInstructors is the public directory. Status defaults to approved;
// price and station filters run in SQL, specialty/level filters against the
// serialized list fields after the fetch.
func ListInstructors(c *fiber.Ctx) error {
	status := c.Query("status", "approved")

	query := database.DB.Preload("User").Preload("Station").Where("status = ?", status)

	if stationID := c.Query("station_id"); stationID != "" {
		query = query.Where("station_id = ?", stationID)
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		query = query.Where("hourly_rate >= ?", minPrice)
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		query = query.Where("hourly_rate <= ?", maxPrice)
	}

	var instructors []models.Instructor
	if err := query.Find(&instructors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve instructors"})
	}

	specialty := c.Query("specialty")
	level := c.Query("level")
	if specialty != "" || level != "" {
		filtered := make([]models.Instructor, 0, len(instructors))
		for _, instructor := range instructors {
			if specialty != "" && !containsFold(instructor.Specialties, specialty) {
				continue
			}
			if level != "" && !containsFold(instructor.SkiLevels, level) {
				continue
			}
			filtered = append(filtered, instructor)
		}
		instructors = filtered
	}

	return c.JSON(instructors)
}

// CreateInstructor registers the caller as an instructor with a pending
// profile. Approval is an admin decision.
func CreateInstructor(c *fiber.Ctx) error {
	userID := claimsUserID(c)

	var req InstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.Instructor
	err := database.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You are already registered as an instructor"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	hourlyRate := req.HourlyRate
	if hourlyRate == 0 {
		hourlyRate = 50.0
	}

	instructor := models.Instructor{
		UserID:      userID,
		Bio:         req.Bio,
		Specialties: req.Specialties,
		SkiLevels:   req.SkiLevels,
		HourlyRate:  hourlyRate,
		Status:      "pending",
	}
	if req.StationID != nil {
		stationID, _ := uuid.Parse(*req.StationID)
		var station models.Station
		if err := database.DB.First(&station, "id = ?", stationID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Station not found"})
		}
		instructor.StationID = &stationID
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&instructor).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("role", "instructor").Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create instructor profile"})
	}

	return c.Status(fiber.StatusCreated).JSON(instructor)
}

func GetInstructor(c *fiber.Ctx) error {
	instructorID := c.Params("instructorId")

	var instructor models.Instructor
	if err := database.DB.Preload("User").Preload("Station").First(&instructor, "id = ?", instructorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor not found"})
	}

	return c.JSON(instructor)
}

func UpdateInstructor(c *fiber.Ctx) error {
	userID := claimsUserID(c)
	instructorID := c.Params("instructorId")

	var req InstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var instructor models.Instructor
	if err := database.DB.First(&instructor, "id = ?", instructorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor not found"})
	}

	if instructor.UserID != userID && claimsRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	instructor.Bio = req.Bio
	instructor.Specialties = req.Specialties
	instructor.SkiLevels = req.SkiLevels
	if req.HourlyRate > 0 {
		instructor.HourlyRate = req.HourlyRate
	}
	if req.StationID != nil {
		stationID, _ := uuid.Parse(*req.StationID)
		var station models.Station
		if err := database.DB.First(&station, "id = ?", stationID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Station not found"})
		}
		instructor.StationID = &stationID
	}

	if err := database.DB.Save(&instructor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(instructor)
}

// UpdateInstructorStatus is the admin approval step; the only accepted
// transitions are approved and rejected.
func UpdateInstructorStatus(c *fiber.Ctx) error {
	instructorID := c.Params("instructorId")

	type StatusRequest struct {
		Status string `json:"status" validate:"required,oneof=approved rejected"`
	}
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var instructor models.Instructor
	if err := database.DB.Preload("User").First(&instructor, "id = ?", instructorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor not found"})
	}

	instructor.Status = req.Status
	if err := database.DB.Save(&instructor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update status"})
	}

	switch req.Status {
	case "approved":
		go notifications.SendEmail(instructor.User.Name, instructor.User.Email,
			"Your Instructor Application has been Approved!",
			"<h1>Congratulations!</h1><p>Your instructor profile is now live. You can create lessons and start receiving bookings.</p>")
	case "rejected":
		go notifications.SendEmail(instructor.User.Name, instructor.User.Email,
			"Update on Your Instructor Application",
			"<h1>Application Update</h1><p>After review, your instructor application was not approved at this time.</p>")
	}

	return c.JSON(fiber.Map{"message": fmt.Sprintf("Instructor %s", req.Status)})
}

// GetInstructorRating aggregates the review score for one instructor.
func GetInstructorRating(c *fiber.Ctx) error {
	instructorID := c.Params("instructorId")

	var instructor models.Instructor
	if err := database.DB.First(&instructor, "id = ?", instructorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor not found"})
	}

	var result struct {
		Avg   float64
		Count int64
	}
	database.DB.Model(&models.Review{}).
		Where("instructor_id = ?", instructorID).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Scan(&result)

	return c.JSON(fiber.Map{
		"instructor_id":  instructor.ID,
		"average_rating": result.Avg,
		"review_count":   result.Count,
	})
}

func GetInstructorEarnings(c *fiber.Ctx) error {
	userID := claimsUserID(c)

	var instructor models.Instructor
	if err := database.DB.First(&instructor, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor profile not found"})
	}

	return c.JSON(fiber.Map{"current_balance": instructor.CurrentBalance})
}

// ExportMyTransactions produces the instructor's accounting CSV: every paid
// transaction on their lessons with the net amounts credited to them.
func ExportMyTransactions(c *fiber.Ctx) error {
	userID := claimsUserID(c)

	var instructor models.Instructor
	if err := database.DB.Preload("User").First(&instructor, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor profile not found"})
	}

	var transactions []models.PaymentTransaction
	database.DB.
		Preload("Booking.Lesson").
		Preload("Booking.User").
		Joins("JOIN bookings ON bookings.id = payment_transactions.booking_id").
		Joins("JOIN lessons ON lessons.id = bookings.lesson_id").
		Where("payment_transactions.status = ? AND lessons.instructor_id = ?", "paid", instructor.ID).
		Order("payment_transactions.created_at asc").
		Find(&transactions)

	rows := make([]services.TransactionRow, 0, len(transactions))
	for _, txn := range transactions {
		rows = append(rows, services.TransactionRow{
			Reference:  txn.Booking.Reference,
			Date:       txn.CreatedAt.Format("2006-01-02 15:04"),
			Client:     txn.Booking.User.Name,
			Instructor: instructor.User.Name,
			Lesson:     txn.Booking.Lesson.Title,
			Amount:     txn.Amount,
			Commission: txn.Commission,
			Net:        txn.InstructorAmount,
		})
	}

	data, err := services.BuildTransactionCSV(rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build CSV export"})
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"earnings_%s.csv\"", time.Now().Format("2006-01-02")))
	return c.Send(data)
}
