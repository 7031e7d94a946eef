package handlers

import (
	"github.com/skimonitor/api/database"
	"github.com/skimonitor/api/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func claimsUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	return userID
}

func claimsRole(c *fiber.Ctx) string {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	return claims["role"].(string)
}

func currentUser(c *fiber.Ctx) (models.User, error) {
	var user models.User
	err := database.DB.First(&user, "id = ?", claimsUserID(c)).Error
	return user, err
}
