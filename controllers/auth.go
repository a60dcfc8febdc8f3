package controllers

import (
	"net/http"
	"time"

	dbpkg "dealdesk/db"
	"dealdesk/models"
	"dealdesk/tools"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// POST /api/login (public)
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(c, "email and password are required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondError(c, "invalid email or password", http.StatusUnauthorized)
		return
	}

	// same derivation as CreateUser
	if user.Password != hashUserPassword(user.Email, req.Password) {
		RespondError(c, "invalid email or password", http.StatusUnauthorized)
		return
	}

	if user.Status == models.USER_STATUS_BLOCKED {
		RespondError(c, "account blocked", http.StatusForbidden)
		return
	}

	signed, err := signHS256JWT(getJWTSecret(), map[string]any{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	if err != nil {
		RespondError(c, "failed to sign token", http.StatusInternalServerError)
		return
	}

	user.Password = ""
	RespondSuccess(c, LoginResponse{Token: signed, User: user})
}

// GET /api/me (auth)
func Me(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	user.Password = ""
	RespondSuccess(c, gin.H{"user": user})
}

func hashUserPassword(email, password string) string {
	encoded := tools.HashSHA512(password)
	encoded = email + ":" + encoded
	return tools.HashSHA512(encoded)
}
