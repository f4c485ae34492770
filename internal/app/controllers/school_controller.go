package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/app/models/dto"
	"github.com/yigit/eventsphere/internal/app/services"
	"github.com/yigit/eventsphere/internal/middleware"
)

// SchoolController handles teacher and subject links over REST
type SchoolController struct {
	subjectService services.SubjectService
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(subjectService services.SubjectService) *SchoolController {
	return &SchoolController{
		subjectService: subjectService,
	}
}

// AssignTeachers godoc
// @Summary Link teachers to a subject
// @Tags school
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param request body dto.SubjectTeachersRequest true "Teacher IDs"
// @Success 200 {object} dto.APIResponse{data=models.Subject}
// @Failure 404 {object} dto.APIResponse "Subject or teacher not found"
// @Router /school/subjects/{id}/teachers [post]
func (c *SchoolController) AssignTeachers(ctx *gin.Context) {
	c.changeTeachers(ctx, c.subjectService.AssignTeachers)
}

// RemoveTeachers godoc
// @Summary Unlink teachers from a subject
// @Tags school
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param request body dto.SubjectTeachersRequest true "Teacher IDs"
// @Success 200 {object} dto.APIResponse{data=models.Subject}
// @Failure 404 {object} dto.APIResponse "Subject not found"
// @Router /school/subjects/{id}/teachers [delete]
func (c *SchoolController) RemoveTeachers(ctx *gin.Context) {
	c.changeTeachers(ctx, c.subjectService.RemoveTeachers)
}

func (c *SchoolController) changeTeachers(ctx *gin.Context, apply func(ctx context.Context, subjectID int64, teacherIDs []int64) (*models.Subject, error)) {
	subjectID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SubjectTeachersRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	subject, err := apply(ctx.Request.Context(), subjectID, req.TeacherIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subject))
}
