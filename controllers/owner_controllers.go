package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ju699/FlexFood/models"
	"github.com/ju699/FlexFood/utils"
)

type OwnerController struct {
	DB *gorm.DB
}

func NewOwnerController(db *gorm.DB) *OwnerController {
	return &OwnerController{DB: db}
}

// Register creates a new owner account.
func (oc *OwnerController) Register(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	owner := models.Owner{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := oc.DB.Create(&owner).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New owner registered: %s", owner.Email)

	utils.RespondJSON(c, http.StatusCreated, "Owner registered", gin.H{
		"owner_id": owner.ID,
	})
}

// Login -> JWT
func (oc *OwnerController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var owner models.Owner
	if err := oc.DB.Where("email = ?", input.Email).First(&owner).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(owner.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
	})
}

// GetProfile returns the authenticated owner.
func (oc *OwnerController) GetProfile(c *gin.Context) {
	id, err := ownerID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var owner models.Owner
	if err := oc.DB.First(&owner, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data", gin.H{
		"id":    owner.ID,
		"name":  owner.Name,
		"email": owner.Email,
	})
}
