package handlers

import (
	"time"

	"github.com/skimonitor/api/database"
	"github.com/skimonitor/api/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateLessonRequest struct {
	LessonType      string  `json:"lesson_type" validate:"required,oneof=private group"`
	Title           string  `json:"title" validate:"required"`
	Description     string  `json:"description"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string  `json:"end_time" validate:"required,datetime=15:04"`
	MaxParticipants int     `json:"max_participants" validate:"omitempty,gte=1"`
	Price           float64 `json:"price" validate:"required,gt=0"`

	Recurring         bool   `json:"recurring"`
	RecurrenceCadence string `json:"recurrence_cadence" validate:"omitempty,oneof=weekly biweekly"`
	RecurrenceEnd     string `json:"recurrence_end" validate:"omitempty,datetime=2006-01-02"`
}

// expandRecurrence returns the dates of generated occurrences: one per
// cadence step strictly after base, up to and including end. An end before
// base yields none.
func expandRecurrence(base time.Time, cadence string, end time.Time) []time.Time {
	step := 7
	if cadence == "biweekly" {
		step = 14
	}

	var dates []time.Time
	for d := base.AddDate(0, 0, step); !d.After(end); d = d.AddDate(0, 0, step) {
		dates = append(dates, d)
	}
	return dates
}

func ListLessons(c *fiber.Ctx) error {
	query := database.DB.
		Preload("Instructor.User").
		Preload("Instructor.Station").
		Where("status = ?", "available")

	if instructorID := c.Query("instructor_id"); instructorID != "" {
		query = query.Where("instructor_id = ?", instructorID)
	}
	if stationID := c.Query("station_id"); stationID != "" {
		query = query.Where("station_id = ?", stationID)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if lessonType := c.Query("lesson_type"); lessonType != "" {
		query = query.Where("lesson_type = ?", lessonType)
	}

	var lessons []models.Lesson
	if err := query.Order("date asc, start_time asc").Find(&lessons).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve lessons"})
	}

	return c.JSON(lessons)
}

func GetLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	var lesson models.Lesson
	if err := database.DB.
		Preload("Instructor.User").
		Preload("Instructor.Station").
		First(&lesson, "id = ?", lessonID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}

	return c.JSON(lesson)
}

// CreateLesson creates the base lesson and, for recurring series, one
// independent lesson per cadence step through the end date, each carrying a
// back-reference to the base.
func CreateLesson(c *fiber.Ctx) error {
	userID := claimsUserID(c)

	var req CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Recurring && (req.RecurrenceCadence == "" || req.RecurrenceEnd == "") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Recurring lessons need a cadence and an end date"})
	}

	var instructor models.Instructor
	if err := database.DB.First(&instructor, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor profile not found"})
	}
	if instructor.Status != "approved" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Your instructor profile must be approved first"})
	}

	// Private lessons always hold a single seat.
	capacity := 1
	if req.LessonType == "group" {
		capacity = req.MaxParticipants
		if capacity < 1 {
			capacity = 1
		}
	}

	base := models.Lesson{
		InstructorID: instructor.ID,
		StationID:    instructor.StationID,
		LessonType:   req.LessonType,
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Capacity:     capacity,
		Price:        req.Price,
		Status:       "available",
	}

	created := []models.Lesson{}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&base).Error; err != nil {
			return err
		}
		created = append(created, base)

		if !req.Recurring {
			return nil
		}

		baseDate, _ := time.Parse("2006-01-02", req.Date)
		endDate, _ := time.Parse("2006-01-02", req.RecurrenceEnd)

		for _, date := range expandRecurrence(baseDate, req.RecurrenceCadence, endDate) {
			baseID := base.ID
			occurrence := models.Lesson{
				InstructorID: instructor.ID,
				StationID:    instructor.StationID,
				LessonType:   req.LessonType,
				Title:        req.Title,
				Description:  req.Description,
				Date:         date.Format("2006-01-02"),
				StartTime:    req.StartTime,
				EndTime:      req.EndTime,
				Capacity:     capacity,
				Price:        req.Price,
				Status:       "available",
				RecurrenceOf: &baseID,
			}
			if err := tx.Create(&occurrence).Error; err != nil {
				return err
			}
			created = append(created, occurrence)
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create lesson"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"lesson":        created[0],
		"created_count": len(created),
		"lessons":       created,
	})
}

// CancelLesson soft-deletes: the lesson stays on record with status
// cancelled.
func CancelLesson(c *fiber.Ctx) error {
	userID := claimsUserID(c)
	lessonID := c.Params("lessonId")

	var lesson models.Lesson
	if err := database.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}

	var instructor models.Instructor
	database.DB.First(&instructor, "user_id = ?", userID)

	if lesson.InstructorID != instructor.ID && claimsRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	if err := database.DB.Model(&lesson).Update("status", "cancelled").Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel lesson"})
	}

	return c.JSON(fiber.Map{"message": "Lesson cancelled"})
}

// GetMyLessons returns the instructor's lessons with their active bookings
// and client details.
func GetMyLessons(c *fiber.Ctx) error {
	userID := claimsUserID(c)

	var instructor models.Instructor
	if err := database.DB.First(&instructor, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor profile not found"})
	}

	var lessons []models.Lesson
	database.DB.Where("instructor_id = ?", instructor.ID).Order("date asc, start_time asc").Find(&lessons)

	type lessonWithBookings struct {
		models.Lesson
		Bookings []models.Booking `json:"bookings"`
	}

	result := make([]lessonWithBookings, 0, len(lessons))
	for _, lesson := range lessons {
		var bookings []models.Booking
		database.DB.Preload("User").
			Where("lesson_id = ? AND status <> ?", lesson.ID, "cancelled").
			Find(&bookings)
		result = append(result, lessonWithBookings{Lesson: lesson, Bookings: bookings})
	}

	return c.JSON(result)
}
