package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/VenkataVardineni/careerbuildai/internal/repository"
	"github.com/VenkataVardineni/careerbuildai/pkg"
	"github.com/VenkataVardineni/careerbuildai/pkg/model"
	"github.com/VenkataVardineni/careerbuildai/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Register creates a new user account
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	pwHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		h.Logger.Error("failed to hash password", zap.Error(err))
		response.InternalError(c, "")
		return
	}

	user, err := h.Store.CreateUser(ctx, &model.User{
		Email:          req.Email,
		Username:       req.Username,
		FullName:       req.FullName,
		HashedPassword: pwHash,
		IsActive:       true,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.Conflict(c, "email or username already registered")
			return
		}
		h.Logger.Error("user create failed", zap.String("email", req.Email), zap.Error(err))
		response.InternalError(c, "could not create user")
		return
	}

	response.Created(c, user.ToRes())
}

// Login verifies credentials and returns access + refresh tokens
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.Store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		response.Unauthorized(c, "incorrect email or password")
		return
	}
	if err := pkg.ComparePassword(user.HashedPassword, req.Password); err != nil {
		response.Unauthorized(c, "incorrect email or password")
		return
	}

	h.issueTokens(c, user)
}

// Guest creates a throwaway guest account and logs it in
func (h *Handler) Guest(c *gin.Context) {
	ctx := c.Request.Context()

	count, err := h.Store.CountUsers(ctx)
	if err != nil {
		h.Logger.Error("count users failed", zap.Error(err))
		response.InternalError(c, "")
		return
	}

	n := count + 1
	user, err := h.Store.CreateUser(ctx, &model.User{
		Email:          fmt.Sprintf("guest_%d@guest.cbai", n),
		Username:       fmt.Sprintf("guest_%d", n),
		FullName:       "Guest User",
		HashedPassword: "",
		IsActive:       true,
		IsGuest:        true,
	})
	if err != nil {
		h.Logger.Error("guest create failed", zap.Error(err))
		response.InternalError(c, "could not create guest user")
		return
	}

	h.issueTokens(c, user)
}

func (h *Handler) issueTokens(c *gin.Context, user *model.User) {
	accessToken, accessClaims, err := h.TokenMaker.GenerateToken(user.UserID, user.Email, user.IsGuest, h.AccessTTL)
	if err != nil {
		h.Logger.Error("error creating access token", zap.Error(err))
		response.InternalError(c, "could not generate token")
		return
	}

	refreshToken, refreshClaims, err := h.TokenMaker.GenerateToken(user.UserID, user.Email, user.IsGuest, h.RefreshTTL)
	if err != nil {
		h.Logger.Error("error creating refresh token", zap.Error(err))
		response.InternalError(c, "could not generate token")
		return
	}

	session, err := h.Store.CreateUserSession(c.Request.Context(), &model.UserSession{
		SessionID:    refreshClaims.RegisteredClaims.ID,
		UserID:       user.UserID,
		RefreshToken: refreshToken,
		IsRevoked:    false,
		ExpiresAt:    refreshClaims.RegisteredClaims.ExpiresAt.Time,
	})
	if err != nil {
		h.Logger.Error("error creating session", zap.Error(err))
		response.InternalError(c, "could not create session")
		return
	}

	response.OK(c, model.LoginRes{
		SessionID:             session.SessionID,
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessClaims.RegisteredClaims.ExpiresAt.Time,
		RefreshTokenExpiresAt: refreshClaims.RegisteredClaims.ExpiresAt.Time,
		User:                  user.ToRes(),
	})
}

// Me returns the current user profile
func (h *Handler) Me(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.Store.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Unauthorized(c, "")
		return
	}

	response.OK(c, user.ToRes())
}

// Logout revokes the current access token and removes the refresh session
func (h *Handler) Logout(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	ttl := time.Until(claims.RegisteredClaims.ExpiresAt.Time)
	if err := h.Sessions.Revoke(c.Request.Context(), claims.RegisteredClaims.ID, ttl); err != nil {
		h.Logger.Warn("could not revoke access token", zap.Error(err))
	}

	if err := h.Store.DeleteUserSession(c.Request.Context(), claims.RegisteredClaims.ID); err != nil {
		h.Logger.Warn("could not delete session", zap.Error(err))
	}

	response.Message(c, "user logged out successfully")
}

// RenewAccessToken exchanges a valid refresh token for a fresh access token
func (h *Handler) RenewAccessToken(c *gin.Context) {
	var req model.RenewAccessTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	refreshClaims, err := h.TokenMaker.VerifyToken(req.RefreshToken)
	if err != nil {
		response.Unauthorized(c, "invalid refresh token")
		return
	}

	session, err := h.Store.GetUserSession(c.Request.Context(), refreshClaims.RegisteredClaims.ID)
	if err != nil {
		response.Unauthorized(c, "unknown session")
		return
	}

	if session.IsRevoked {
		response.Unauthorized(c, "session revoked")
		return
	}
	if session.UserID != refreshClaims.UserID {
		response.Unauthorized(c, "incorrect session user")
		return
	}
	if time.Now().After(session.ExpiresAt) {
		response.Unauthorized(c, "expired session")
		return
	}

	accessToken, accessClaims, err := h.TokenMaker.GenerateToken(refreshClaims.UserID, refreshClaims.Email, refreshClaims.IsGuest, h.AccessTTL)
	if err != nil {
		response.InternalError(c, "could not generate access token")
		return
	}

	response.OK(c, model.RenewAccessTokenRes{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessClaims.RegisteredClaims.ExpiresAt.Time,
	})
}

// RevokeSession marks the current refresh session revoked
func (h *Handler) RevokeSession(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	if err := h.Store.RevokeUserSession(c.Request.Context(), claims.RegisteredClaims.ID); err != nil {
		response.InternalError(c, "could not revoke session")
		return
	}
	response.Message(c, "session revoked successfully")
}

// ListUsers returns all user accounts
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		h.Logger.Error("list users failed", zap.Error(err))
		response.InternalError(c, "")
		return
	}

	out := make([]model.UserRes, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToRes())
	}
	response.OK(c, out)
}

// GetUser returns one user by id
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return
	}

	user, err := h.Store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, user.ToRes())
}
