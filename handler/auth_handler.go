package handler

import (
	"notebook/dto"
	"notebook/middleware"
	"notebook/usecase"
	"notebook/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	accounts *usecase.AccountService
}

func NewAuthHandler(accounts *usecase.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.accounts.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Created(c, "User registered successfully", gin.H{
		"user":  dto.ToAccountResponse(res.Account),
		"token": res.Token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"user":  dto.ToAccountResponse(res.Account),
		"token": res.Token,
	})
}

// Verify re-establishes identity for a client holding a token.
func (h *AuthHandler) Verify(c *gin.Context) {
	account, err := h.accounts.Profile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "", gin.H{"user": dto.ToAccountResponse(account)})
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.accounts.UpdatePassword(c.Request.Context(), middleware.CurrentUserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "Password updated successfully", gin.H{
		"user":  dto.ToAccountResponse(res.Account),
		"token": res.Token,
	})
}
