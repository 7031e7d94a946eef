package handlers

import (
	"github.com/skimonitor/api/database"
	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	Name    string `json:"name" validate:"omitempty,min=2,max=100"`
	Picture string `json:"picture" validate:"omitempty,url"`
}

// UpdateProfile changes the caller's display name and profile picture.
func UpdateProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Picture != "" {
		user.Picture = &req.Picture
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"id":      user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"picture": user.Picture,
		"role":    user.Role,
	})
}
