package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/igorvsx/WalletControlAPI/internal/mailer"
	"github.com/igorvsx/WalletControlAPI/internal/models"
	"github.com/igorvsx/WalletControlAPI/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserHandler serves user registration, lookup and the password reset flow.
type UserHandler struct {
	DB         *gorm.DB
	Sender     mailer.CodeSender
	BcryptCost int
}

func NewUserHandler(db *gorm.DB, sender mailer.CodeSender, bcryptCost int) *UserHandler {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserHandler{
		DB:         db,
		Sender:     sender,
		BcryptCost: bcryptCost,
	}
}

type createUserReq struct {
	Name     string `json:"name" binding:"required,max=64"`
	Login    string `json:"login" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email,max=128"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

type updateUserReq struct {
	Name string `json:"name" binding:"required,max=64"`
}

type recoveryReq struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordReq struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

type userResp struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Login string `json:"login"`
	Email string `json:"email"`
}

func toUserResp(u *models.User) userResp {
	return userResp{
		ID:    u.ID,
		Name:  u.Name,
		Login: u.Login,
		Email: u.Email,
	}
}

// Create registers a user. Duplicate email or login is a conflict.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("email = ?", req.Email).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query users failed")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "user with this email already registered")
		return
	}

	if err := h.DB.Model(&models.User{}).
		Where("login = ?", req.Login).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query users failed")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "user with this login already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "hash password failed")
		return
	}

	user := models.User{
		Name:         req.Name,
		Login:        req.Login,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create user failed")
		return
	}

	util.Success(c, util.Response{
		"user": toUserResp(&user),
	})
}

// List returns all users.
func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query users failed")
		return
	}

	items := make([]userResp, 0, len(users))
	for i := range users {
		items = append(items, toUserResp(&users[i]))
	}
	util.Success(c, util.Response{
		"users": items,
	})
}

// GetByLogin returns one user by login.
func (h *UserHandler) GetByLogin(c *gin.Context) {
	login := c.Param("login")

	var user models.User
	if err := h.DB.Where("login = ?", login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "user with this login not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query user failed")
		}
		return
	}

	util.Success(c, util.Response{
		"user": toUserResp(&user),
	})
}

// GetByEmail returns one user by email.
func (h *UserHandler) GetByEmail(c *gin.Context) {
	email := c.Param("email")

	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "user with this email not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query user failed")
		}
		return
	}

	util.Success(c, util.Response{
		"user": toUserResp(&user),
	})
}

// Update changes a user's display name. Login, email and password have
// their own flows; balance-bearing data never lives on the user row.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "user_id")
	if !ok {
		return
	}

	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query user failed")
		}
		return
	}

	if err := h.DB.Model(&user).Update("name", req.Name).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update user failed")
		return
	}
	user.Name = req.Name

	util.Success(c, util.Response{
		"user": toUserResp(&user),
	})
}

// Delete removes a user; accounts, transactions, goals and budgets go
// with it through the declared cascades.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "user_id")
	if !ok {
		return
	}

	res := h.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete user failed")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		return
	}

	util.Success(c, util.Response{
		"message": "user deleted",
		"user_id": id,
	})
}

// RequestPasswordRecovery generates a 4-digit code, stores it on the user
// record and mails it.
func (h *UserHandler) RequestPasswordRecovery(c *gin.Context) {
	var req recoveryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "user with this email not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query user failed")
		}
		return
	}

	code := mailer.GenerateCode()
	if err := h.DB.Model(&user).Update("code", code).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "store verification code failed")
		return
	}

	if err := h.Sender.Send(user.Email, code); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "send verification code failed")
		return
	}

	util.Success(c, util.Response{
		"message": "verification code sent",
	})
}

// ResetPassword checks the submitted code against the stored one and
// overwrites the password hash.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "user with this email not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query user failed")
		}
		return
	}

	if user.Code == "" || req.Code != user.Code {
		util.Error(c, http.StatusBadRequest, util.CodeVerifyFailed, "verification code mismatch")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "hash password failed")
		return
	}

	// clear the code so it cannot be replayed
	if err := h.DB.Model(&user).Updates(map[string]interface{}{
		"password_hash": string(hash),
		"code":          "",
	}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update password failed")
		return
	}

	util.Success(c, util.Response{
		"message": "password changed",
	})
}
