package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/skimonitor/api/database"
	"github.com/skimonitor/api/models"
	"github.com/skimonitor/api/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAdminStats returns the platform-wide counters for the admin dashboard.
func GetAdminStats(c *fiber.Ctx) error {
	var (
		totalUsers          int64
		approvedInstructors int64
		pendingInstructors  int64
		availableLessons    int64
		activeBookings      int64
	)

	database.DB.Model(&models.User{}).Count(&totalUsers)
	database.DB.Model(&models.Instructor{}).Where("status = ?", "approved").Count(&approvedInstructors)
	database.DB.Model(&models.Instructor{}).Where("status = ?", "pending").Count(&pendingInstructors)
	database.DB.Model(&models.Lesson{}).Where("status = ?", "available").Count(&availableLessons)
	database.DB.Model(&models.Booking{}).Where("status IN ?", []string{"pending", "confirmed"}).Count(&activeBookings)

	var revenue struct {
		Total      float64
		Commission float64
	}
	database.DB.Model(&models.PaymentTransaction{}).
		Where("status = ?", "paid").
		Select("COALESCE(SUM(amount), 0) as total, COALESCE(SUM(commission), 0) as commission").
		Scan(&revenue)

	return c.JSON(fiber.Map{
		"total_users":          totalUsers,
		"approved_instructors": approvedInstructors,
		"pending_instructors":  pendingInstructors,
		"available_lessons":    availableLessons,
		"active_bookings":      activeBookings,
		"total_revenue":        revenue.Total,
		"total_commission":     revenue.Commission,
	})
}

// GetPendingInstructors lists applications waiting for a decision.
func GetPendingInstructors(c *fiber.Ctx) error {
	var instructors []models.Instructor
	database.DB.
		Preload("User").
		Preload("Station").
		Where("status = ?", "pending").
		Order("created_at asc").
		Find(&instructors)

	return c.JSON(instructors)
}

// filterDateRange narrows a transaction query to created_at within the
// inclusive [start, end] day range. Unparseable bounds are ignored.
func filterDateRange(query *gorm.DB, start, end string) *gorm.DB {
	if start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}
	return query
}

// GetTransactions lists payment transactions with optional status and date
// range filters, paginated.
func GetTransactions(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := database.DB.Model(&models.PaymentTransaction{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query = filterDateRange(query, c.Query("start_date"), c.Query("end_date"))

	var total int64
	query.Count(&total)

	var transactions []models.PaymentTransaction
	query.
		Preload("User").
		Preload("Booking.Lesson").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&transactions)

	return c.JSON(fiber.Map{
		"transactions": transactions,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// ExportTransactions streams the full paid-transaction ledger as a CSV
// attachment.
func ExportTransactions(c *fiber.Ctx) error {
	query := database.DB.Where("status = ?", "paid")
	query = filterDateRange(query, c.Query("start_date"), c.Query("end_date"))

	var transactions []models.PaymentTransaction
	query.
		Preload("User").
		Preload("Booking.Lesson.Instructor.User").
		Order("created_at asc").
		Find(&transactions)

	rows := make([]services.TransactionRow, 0, len(transactions))
	for _, txn := range transactions {
		rows = append(rows, services.TransactionRow{
			Reference:  txn.Booking.Reference,
			Date:       txn.CreatedAt.Format("2006-01-02"),
			Client:     txn.User.Name,
			Instructor: txn.Booking.Lesson.Instructor.User.Name,
			Lesson:     txn.Booking.Lesson.Title,
			Amount:     txn.Amount,
			Commission: txn.Commission,
			Net:        txn.InstructorAmount,
		})
	}

	data, err := services.BuildTransactionCSV(rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build export"})
	}

	filename := fmt.Sprintf("transactions-%s.csv", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
