package handlers

import (
	"errors"

	"github.com/skimonitor/api/database"
	"github.com/skimonitor/api/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	InstructorID string `json:"instructor_id" validate:"required,uuid"`
	Rating       int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment      string `json:"comment" validate:"omitempty,max=2000"`
}

// CreateReview records a rating for an instructor the caller has actually
// booked with, then recomputes the instructor's average in the same
// transaction so the rollup never drifts from the review rows.
func CreateReview(c *fiber.Ctx) error {
	userID := claimsUserID(c)

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	instructorID, _ := uuid.Parse(req.InstructorID)

	var instructor models.Instructor
	if err := database.DB.First(&instructor, "id = ?", instructorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor not found"})
	}

	var bookingCount int64
	database.DB.Model(&models.Booking{}).
		Joins("JOIN lessons ON lessons.id = bookings.lesson_id").
		Where("bookings.user_id = ? AND lessons.instructor_id = ? AND bookings.status <> ?",
			userID, instructorID, "cancelled").
		Count(&bookingCount)
	if bookingCount == 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only review instructors you have booked with"})
	}

	var existing models.Review
	err := database.DB.Where("instructor_id = ? AND user_id = ?", instructorID, userID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already reviewed this instructor"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}

	review := models.Review{
		InstructorID: instructorID,
		UserID:       userID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var avg float64
		if err := tx.Model(&models.Review{}).
			Where("instructor_id = ?", instructorID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&avg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Instructor{}).
			Where("id = ?", instructorID).
			Update("avg_rating", avg).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetInstructorReviews lists an instructor's reviews, newest first.
func GetInstructorReviews(c *fiber.Ctx) error {
	instructorID := c.Params("instructorId")

	var reviews []models.Review
	database.DB.
		Preload("User").
		Where("instructor_id = ?", instructorID).
		Order("created_at desc").
		Find(&reviews)

	return c.JSON(reviews)
}
