package utils

import (
	"math/rand"
	"time"

	"github.com/skimonitor/api/models"
	"gorm.io/gorm"
)

const referenceSuffixLength = 8
const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateBookingReference produces a unique human-readable booking code of
// the form SKI-XXXXXXXX, checked against existing bookings within tx.
func GenerateBookingReference(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, referenceSuffixLength)
		for i := range b {
			b[i] = referenceAlphabet[seededRand.Intn(len(referenceAlphabet))]
		}
		reference := "SKI-" + string(b)

		var booking models.Booking
		err := tx.Where("reference = ?", reference).First(&booking).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return reference, nil
			}
			return "", err
		}
	}
}
