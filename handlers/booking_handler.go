package handlers

import (
	"errors"
	"fmt"

	"github.com/skimonitor/api/database"
	"github.com/skimonitor/api/models"
	"github.com/skimonitor/api/notifications"
	"github.com/skimonitor/api/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateBookingRequest struct {
	LessonID     string `json:"lesson_id" validate:"required,uuid"`
	Participants int    `json:"participants" validate:"omitempty,gte=1"`
}

var (
	errLessonUnavailable = errors.New("lesson is not available")
	errCapacityExceeded  = errors.New("not enough places left on this lesson")
	errDuplicateBooking  = errors.New("you already have a booking for this lesson")
)

// admitParticipants applies the capacity check and increment as one step.
// ok is false when admitting the request would overshoot capacity; full
// reports whether the new count has reached it.
func admitParticipants(current, capacity, requested int) (newCount int, full bool, ok bool) {
	if current+requested > capacity {
		return current, current >= capacity, false
	}
	newCount = current + requested
	return newCount, newCount >= capacity, true
}

// releaseParticipants reverses a booking's contribution, floored at zero.
func releaseParticipants(current, participants int) int {
	released := current - participants
	if released < 0 {
		return 0
	}
	return released
}

// CreateBooking admits a booking against the lesson's remaining capacity.
// The check and the counter increment happen under a row lock on the lesson
// so two concurrent requests cannot both pass the capacity check.
func CreateBooking(c *fiber.Ctx) error {
	userID := claimsUserID(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	lessonID, _ := uuid.Parse(req.LessonID)

	participants := req.Participants
	if participants < 1 {
		participants = 1
	}

	var lesson models.Lesson
	if err := database.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&lesson, "id = ?", lessonID).Error; err != nil {
			return err
		}

		if lesson.Status != "available" {
			return errLessonUnavailable
		}

		newCount, full, ok := admitParticipants(lesson.CurrentParticipants, lesson.Capacity, participants)
		if !ok {
			return errCapacityExceeded
		}

		var existing models.Booking
		if err := tx.Where("lesson_id = ? AND user_id = ? AND status <> ?", lessonID, userID, "cancelled").
			First(&existing).Error; err == nil {
			return errDuplicateBooking
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		reference, err := utils.GenerateBookingReference(tx)
		if err != nil {
			return err
		}

		booking = models.Booking{
			Reference:     reference,
			LessonID:      lessonID,
			UserID:        userID,
			Participants:  participants,
			Status:        "pending",
			PaymentStatus: "pending",
			Counted:       true,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		lesson.CurrentParticipants = newCount
		if full {
			lesson.Status = "full"
		}
		return tx.Save(&lesson).Error
	})

	switch {
	case errors.Is(err, errLessonUnavailable), errors.Is(err, errCapacityExceeded), errors.Is(err, errDuplicateBooking):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	go func() {
		var view models.Booking
		if err := database.DB.Preload("User").Preload("Lesson.Instructor.User").First(&view, "id = ?", booking.ID).Error; err != nil {
			return
		}
		notifications.SendEmail(view.User.Name, view.User.Email,
			"Your Booking Request",
			fmt.Sprintf("<h1>Booking Received</h1><p>Your booking %s for %s on %s is pending payment.</p>",
				view.Reference, view.Lesson.Title, view.Lesson.Date))
		instructorUser := view.Lesson.Instructor.User
		notifications.SendEmail(instructorUser.Name, instructorUser.Email,
			"New Booking Request",
			fmt.Sprintf("<h1>New Booking</h1><p>A client requested %d place(s) on your lesson %s on %s.</p>",
				view.Participants, view.Lesson.Title, view.Lesson.Date))
	}()

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetMyBookings returns the caller's bookings with the lesson, instructor and
// station views joined in.
func GetMyBookings(c *fiber.Ctx) error {
	userID := claimsUserID(c)

	var bookings []models.Booking
	database.DB.
		Preload("Lesson.Instructor.User").
		Preload("Lesson.Instructor.Station").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookings)

	return c.JSON(bookings)
}

// CancelBooking releases the booking's seats at most once, guarded by the
// booking's Counted flag, and reopens a full lesson. A lesson cancelled by
// its instructor stays cancelled.
func CancelBooking(c *fiber.Ctx) error {
	userID := claimsUserID(c)
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if booking.UserID != userID && claimsRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, "id = ?", bookingID).Error; err != nil {
			return err
		}

		wasCounted := booking.Counted
		booking.Status = "cancelled"
		booking.Counted = false
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		if !wasCounted {
			// Repeated cancel: the seats were already released.
			return nil
		}

		var lesson models.Lesson
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&lesson, "id = ?", booking.LessonID).Error; err != nil {
			return err
		}

		lesson.CurrentParticipants = releaseParticipants(lesson.CurrentParticipants, booking.Participants)
		if lesson.Status == "full" {
			lesson.Status = "available"
		}
		return tx.Save(&lesson).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}

	return c.JSON(fiber.Map{"message": "Booking cancelled"})
}
