package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/skimonitor/api/database"
	"github.com/skimonitor/api/models"
	"github.com/skimonitor/api/notifications"
)

// SendLessonReminders emails every client with a confirmed booking for
// tomorrow's lessons.
func SendLessonReminders() {
	log.Println("Running job: SendLessonReminders...")

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	var bookings []models.Booking
	err := database.DB.
		Preload("User").
		Preload("Lesson.Instructor.User").
		Preload("Lesson.Station").
		Joins("JOIN lessons ON lessons.id = bookings.lesson_id").
		Where("bookings.status = ? AND lessons.date = ?", "confirmed", tomorrow).
		Find(&bookings).Error
	if err != nil {
		log.Printf("🔥 Error checking for upcoming lessons: %v", err)
		return
	}

	if len(bookings) == 0 {
		return
	}

	for _, booking := range bookings {
		stationName := ""
		if booking.Lesson.Station != nil {
			stationName = " at " + booking.Lesson.Station.Name
		}
		body := fmt.Sprintf(
			"<h1>Lesson Reminder</h1><p>Hi %s,</p><p>Your lesson <b>%s</b> with %s%s starts tomorrow at %s. Reference: %s.</p>",
			booking.User.Name,
			booking.Lesson.Title,
			booking.Lesson.Instructor.User.Name,
			stationName,
			booking.Lesson.StartTime,
			booking.Reference,
		)
		go notifications.SendEmail(booking.User.Name, booking.User.Email,
			"Reminder: Your Ski Lesson is Tomorrow!", body)
	}

	log.Printf("Sent %d lesson reminder(s).", len(bookings))
}
