package handlers

import (
	"errors"
	"log"
	"time"

	config "github.com/skimonitor/api/configs"
	"github.com/skimonitor/api/database"
	"github.com/skimonitor/api/models"
	"github.com/skimonitor/api/notifications"
	"github.com/skimonitor/api/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

const sessionDuration = 7 * 24 * time.Hour

type SessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func issueSessionToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(sessionDuration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}

func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "session_token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionDuration.Seconds()),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
	})
}

// ProcessSession exchanges the opaque session id from the OAuth redirect for
// a user identity and issues the signed session token.
func ProcessSession(c *fiber.Ctx) error {
	var req SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	identity, err := services.ExchangeSession(req.SessionID)
	if err != nil {
		log.Printf("🔥 Session exchange failed: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var user models.User
	err = database.DB.Where("email = ?", identity.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email: identity.Email,
			Name:  identity.Name,
			Role:  "client",
		}
		if identity.Picture != "" {
			user.Picture = &identity.Picture
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
		}
		go notifications.SendEmail(user.Name, user.Email, "Welcome to SkiMonitor!",
			"<h1>Welcome!</h1><p>Your account is ready. Browse lessons at your favourite station and book your first session.</p>")
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	token, err := issueSessionToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session token"})
	}
	setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"id":      user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"picture": user.Picture,
		"role":    user.Role,
		"token":   token,
	})
}

// LoginUser authenticates password-backed accounts (the seeded admin).
func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if user.Password == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	token, err := issueSessionToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session token"})
	}
	setSessionCookie(c, token)

	return c.JSON(fiber.Map{"token": token})
}

// GetMe returns the authenticated user, with the instructor profile attached
// when one exists.
func GetMe(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}

	var instructor *models.Instructor
	if user.Role == "instructor" || user.Role == "admin" {
		var profile models.Instructor
		if err := database.DB.Preload("Station").Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			instructor = &profile
		}
	}

	return c.JSON(fiber.Map{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"picture":    user.Picture,
		"role":       user.Role,
		"instructor": instructor,
	})
}

func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "session_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
	})
	return c.JSON(fiber.Map{"message": "Logged out"})
}
