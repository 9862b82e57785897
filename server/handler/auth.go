package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/plateful/plateful/model"
	"gorm.io/gorm"
)

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// Signup registers a new user. The user and its profile are created in one
// transaction: a user row without a profile row is an invariant violation.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respondError(c, errValidation("email and password required"))
		return
	}

	var existing model.User
	result := h.DB.Where("email = ?", req.Email).First(&existing)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		respondError(c, errInternal("Signup failed", result.Error))
		return
	}
	if result.RowsAffected != 0 {
		respondError(c, errConflict("Email already registered"))
		return
	}

	hash, err := h.Hasher.Hash(req.Password)
	if err != nil {
		respondError(c, errInternal("Signup failed", err))
		return
	}

	user := model.User{
		Id:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Profile:      &model.Profile{DisplayName: req.DisplayName},
	}
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	}); err != nil {
		// Two concurrent signups can both pass the existence check; the
		// unique index on email decides the winner.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, errConflict("Email already registered"))
			return
		}
		respondError(c, errInternal("Signup failed", err))
		return
	}

	token, err := h.Tokens.Issue(user.Id, user.Email)
	if err != nil {
		respondError(c, errInternal("Signup failed", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"user":    userSummary(&user),
		"profile": user.Profile,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates by email and password. Unknown email and wrong password
// produce byte-identical responses so the endpoint cannot be used to
// enumerate registered users.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respondError(c, errValidation("email and password required"))
		return
	}

	var user model.User
	result := h.DB.Where("email = ?", req.Email).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		respondError(c, errAuthentication("Invalid credentials"))
		return
	}
	if result.Error != nil {
		respondError(c, errInternal("Login failed", result.Error))
		return
	}

	if !h.Hasher.Verify(req.Password, user.PasswordHash) {
		respondError(c, errAuthentication("Invalid credentials"))
		return
	}

	token, err := h.Tokens.Issue(user.Id, user.Email)
	if err != nil {
		respondError(c, errInternal("Login failed", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userSummary(&user),
	})
}
