package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/studenttrack/internal/app/models/dto"
	"github.com/campusworks/studenttrack/internal/app/repositories"
	"github.com/campusworks/studenttrack/internal/app/services"
	"github.com/campusworks/studenttrack/internal/middleware"
	"github.com/campusworks/studenttrack/internal/pkg/apperrors"
	"github.com/campusworks/studenttrack/internal/pkg/helpers"
)

// StudentController handles student CRUD and search endpoints
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new instance of StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// CreateStudent godoc
// @Summary Create a student
// @Description Creates a student together with its academic details
// @Tags students
// @Accept json
// @Produce json
// @Param student body dto.CreateStudentRequest true "Student to create"
// @Success 201 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewInvalidParameterError(err.Error()))
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(student))
}

// ListStudents godoc
// @Summary List students
// @Description Returns a page of students ordered by id
// @Tags students
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (1-100)" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	skip, limit, err := helpers.ParseSkipLimit(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	students, err := c.studentService.ListStudents(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      students,
		Pagination: dto.PageInfo{Skip: skip, Limit: limit, Count: len(students)},
	}))
}

// SearchStudents godoc
// @Summary Search students
// @Description Filters students by college, graduation year and department. Filters are combined with AND; students without academic details never match.
// @Tags students
// @Produce json
// @Param college query string false "College name substring, case-insensitive"
// @Param year query int false "Exact graduation year"
// @Param department query string false "Department substring, case-insensitive"
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size (1-100)" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /students/search [get]
func (c *StudentController) SearchStudents(ctx *gin.Context) {
	skip, limit, err := helpers.ParseSkipLimit(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SearchStudentsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewInvalidParameterError(err.Error()))
		return
	}

	filter := repositories.StudentSearchFilter{
		College:    req.College,
		Year:       req.Year,
		Department: req.Department,
	}

	students, err := c.studentService.SearchStudents(ctx, filter, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      students,
		Pagination: dto.PageInfo{Skip: skip, Limit: limit, Count: len(students)},
	}))
}

// GetStudent godoc
// @Summary Get a student
// @Description Returns a student with academic details and documents
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// UpdateStudent godoc
// @Summary Update a student
// @Description Applies a partial update; omitted fields are untouched. A present academicDetails object replaces the first academic row in full.
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param student body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewInvalidParameterError(err.Error()))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// DeleteStudent godoc
// @Summary Delete a student
// @Description Removes a student with its academic details, document rows and stored files
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Student deleted successfully"}))
}

func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewInvalidParameterError("invalid " + name + " parameter")
	}
	return id, nil
}
