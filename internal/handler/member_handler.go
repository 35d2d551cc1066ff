package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"membership-recon/internal/domain"
	"membership-recon/internal/service"
	"membership-recon/pkg/logger"
	"membership-recon/pkg/response"
)

type MemberHandler struct {
	service   service.MemberService
	uploadDir string
}

func NewMemberHandler(service service.MemberService, uploadDir string) *MemberHandler {
	return &MemberHandler{service: service, uploadDir: uploadDir}
}

type CreateMemberRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
	Team      string `json:"team"`
	Selected  bool   `json:"selected"`
}

// CreateMember godoc
// @Summary Create a roster member
// @Description Add a single member to the stored roster
// @Tags members
// @Accept json
// @Produce json
// @Param request body CreateMemberRequest true "Member"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	member := &domain.Member{
		StudentID: req.StudentID,
		FullName:  req.FullName,
		Team:      req.Team,
		Selected:  req.Selected,
	}

	if err := h.service.Create(member); err != nil {
		logger.GetLogger().WithError(err).Error("Failed to create member")
		response.InternalError(c, "Failed to create member", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, "Member created successfully", member)
}

// ImportRoster godoc
// @Summary Import a roster CSV
// @Description Upsert the stored roster from a CSV upload
// @Tags members
// @Accept multipart/form-data
// @Produce json
// @Param roster formData file true "Roster CSV"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/members/import [post]
func (h *MemberHandler) ImportRoster(c *gin.Context) {
	file, err := c.FormFile("roster")
	if err != nil {
		response.BadRequest(c, "Missing roster file", err.Error())
		return
	}

	path := filepath.Join(h.uploadDir, uuid.New().String()+"_"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		response.InternalError(c, "Failed to save upload", err.Error())
		return
	}

	count, err := h.service.ImportRoster(path)
	if err != nil {
		logger.GetLogger().WithError(err).Error("Roster import failed")
		response.BadRequest(c, "Roster import failed", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Roster imported successfully", gin.H{"imported": count})
}

// GetMember godoc
// @Summary Get a roster member
// @Tags members
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/members/{student_id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	studentID := c.Param("student_id")

	member, err := h.service.GetByStudentID(studentID)
	if err != nil {
		response.NotFound(c, "Member not found")
		return
	}

	response.Success(c, http.StatusOK, "Member retrieved successfully", member)
}

// ListMembers godoc
// @Summary List roster members
// @Description List the stored roster; pass selected=true for the official team only
// @Tags members
// @Produce json
// @Param selected query bool false "Only selected members"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	var (
		members []domain.Member
		err     error
	)

	if c.Query("selected") == "true" {
		members, err = h.service.GetSelected()
	} else {
		members, err = h.service.GetAll()
	}

	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to list members")
		response.InternalError(c, "Failed to list members", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Members retrieved successfully", members)
}
