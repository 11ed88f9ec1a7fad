package handler

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/VenkataVardineni/careerbuildai/internal/resume"
	"github.com/VenkataVardineni/careerbuildai/pkg/model"
	"github.com/VenkataVardineni/careerbuildai/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProfile creates a candidate profile for the current user
func (h *Handler) CreateProfile(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req model.CreateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.Store.CreateProfile(c.Request.Context(), &model.Profile{
		UserID:         claims.UserID,
		FullName:       req.FullName,
		CareerRole:     req.CareerRole,
		Skills:         req.Skills,
		ResumeContent:  req.ResumeContent,
		ResumeFilePath: req.ResumeFilePath,
		ResumeFileName: req.ResumeFileName,
	})
	if err != nil {
		h.Logger.Error("create profile failed", zap.Int64("user_id", claims.UserID), zap.Error(err))
		response.InternalError(c, "failed to create profile")
		return
	}

	response.Created(c, profile)
}

// ListProfiles returns the current user's profiles
func (h *Handler) ListProfiles(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	profiles, err := h.Store.ListProfilesByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Error("list profiles failed", zap.Int64("user_id", claims.UserID), zap.Error(err))
		response.InternalError(c, "failed to fetch profiles")
		return
	}
	response.OK(c, profiles)
}

// GetProfile returns one profile owned by the current user
func (h *Handler) GetProfile(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return
	}

	profile, err := h.Store.GetProfileForUser(c.Request.Context(), profileID, claims.UserID)
	if err != nil {
		response.NotFound(c, "profile not found")
		return
	}
	response.OK(c, profile)
}

// UpdateProfile applies a partial update to an owned profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return
	}

	var req model.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.Store.UpdateProfileForUser(c.Request.Context(), profileID, claims.UserID, &req)
	if err != nil {
		response.NotFound(c, "profile not found")
		return
	}
	response.OK(c, profile)
}

// DeleteProfile removes an owned profile
func (h *Handler) DeleteProfile(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return
	}

	if err := h.Store.DeleteProfileForUser(c.Request.Context(), profileID, claims.UserID); err != nil {
		response.NotFound(c, "profile not found")
		return
	}
	response.Message(c, "profile deleted successfully")
}

// UploadResume accepts a multipart resume file, extracts its text, and stores
// the original file on disk. The extension is validated before any bytes are
// parsed.
func (h *Handler) UploadResume(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "no file provided")
		return
	}

	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".pdf", ".docx", ".doc":
	default:
		response.BadRequest(c, "file type not supported. Allowed: .pdf, .docx, .doc")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "could not read file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.BadRequest(c, "could not read file")
		return
	}

	content, err := h.Resume.Parse(fileHeader.Filename, data)
	if err != nil {
		var unsupported *resume.ErrUnsupportedType
		if errors.As(err, &unsupported) {
			response.BadRequest(c, unsupported.Error())
			return
		}
		h.Logger.Error("resume parse failed", zap.String("filename", fileHeader.Filename), zap.Error(err))
		response.InternalError(c, "error parsing resume: "+err.Error())
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		h.Logger.Error("could not create upload dir", zap.Error(err))
		response.InternalError(c, "")
		return
	}
	location := filepath.Join(h.UploadDir, uuid.NewString()+"_"+filepath.Base(fileHeader.Filename))
	if err := os.WriteFile(location, data, 0o644); err != nil {
		h.Logger.Error("could not save resume file", zap.Error(err))
		response.InternalError(c, "")
		return
	}

	response.OK(c, model.UploadResumeRes{
		Message:       "Resume uploaded and parsed successfully",
		ResumeContent: content,
		Filename:      fileHeader.Filename,
		Skills:        resume.ExtractSkills(content),
	})
}
