package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sanwar/studentsvc/internal/app/models"
	"github.com/sanwar/studentsvc/internal/app/models/dto"
	"github.com/sanwar/studentsvc/internal/app/services"
	"github.com/sanwar/studentsvc/internal/middleware"
	"github.com/sanwar/studentsvc/internal/pkg/helpers"
	"github.com/sanwar/studentsvc/internal/pkg/logger"
)

const ndjsonContentType = "application/x-ndjson"

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// parseStudentID extracts the studentID path parameter. A malformed ID gets
// a 400 envelope and the second return value is false.
func (c *StudentController) parseStudentID(ctx *gin.Context) (int64, bool) {
	idStr := ctx.Param("studentID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure[*models.Student]("Student ID must be a valid number"))
		return 0, false
	}
	return id, true
}

// CreateStudent handles student creation
// @Summary Create a new student
// @Description Persists a new student; registration time and status are server-assigned
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} models.Student "Created student including assigned ID"
// @Failure 400 {object} dto.GeneralResponse[models.Student] "Invalid request body"
// @Failure 500 {object} dto.GeneralResponse[models.Student] "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure[*models.Student]("Invalid student data: name is required"))
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// GetStudent retrieves a student by ID
// @Summary Get a student
// @Description Retrieves a single student by its ID
// @Tags students
// @Produce json
// @Param studentID path int true "Student ID" Format(int64)
// @Success 200 {object} models.Student
// @Failure 400 {object} dto.GeneralResponse[models.Student] "Invalid student ID"
// @Failure 404 {object} dto.GeneralResponse[models.Student] "Student not found"
// @Router /students/{studentID} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := c.parseStudentID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// UpdateStudent handles the partial update of a student
// @Summary Update a student's name
// @Description Copies only the name from the body onto the stored student; all other fields are preserved
// @Tags students
// @Accept json
// @Produce json
// @Param studentID path int true "Student ID" Format(int64)
// @Param request body dto.UpdateStudentRequest true "New name"
// @Success 202 {object} dto.GeneralResponse[models.Student]
// @Failure 400 {object} dto.GeneralResponse[models.Student] "Invalid request"
// @Failure 404 {object} dto.GeneralResponse[models.Student] "Student not found"
// @Router /students/{studentID} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := c.parseStudentID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure[*models.Student]("Invalid student data: name is required"))
		return
	}

	student, err := c.studentService.UpdateStudentName(ctx.Request.Context(), id, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.Success("Student update successfully", map[string]*models.Student{
		"student": student,
	}))
}

// DeleteStudent handles the cascading delete of a student
// @Summary Delete a student
// @Description Removes the student and its coursework inside one transaction and returns the deleted snapshot
// @Tags students
// @Produce json
// @Param studentID path int true "Student ID" Format(int64)
// @Success 202 {object} dto.GeneralResponse[models.Student]
// @Failure 400 {object} dto.GeneralResponse[models.Student] "Invalid student ID"
// @Failure 404 {object} dto.GeneralResponse[models.Student] "Student not found"
// @Router /students/{studentID} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := c.parseStudentID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.DeleteStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.Success("Student deleted successfully", map[string]*models.Student{
		"student": student,
	}))
}

// ListStudents streams the filtered, paginated student list as NDJSON
// @Summary List students
// @Description Streams students as newline-delimited JSON, one object per row, filtered by optional status and name substring
// @Tags students
// @Produce json
// @Param page query int false "1-based page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param status query int false "Exact status filter"
// @Param name query string false "Name substring filter"
// @Success 200 {string} string "application/x-ndjson stream"
// @Failure 400 {object} dto.GeneralResponse[models.Student] "Invalid filter"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, limit := helpers.ParseListParams(ctx)

	var status, name *string
	if v, ok := ctx.GetQuery("status"); ok {
		status = &v
	}
	if v, ok := ctx.GetQuery("name"); ok {
		name = &v
	}

	// Headers go out with the first row, so filter errors detected before
	// any row can still produce a clean 400.
	streaming := false
	enc := json.NewEncoder(ctx.Writer)

	err := c.studentService.ListStudents(ctx.Request.Context(), page, limit, status, name, func(student models.Student) error {
		if !streaming {
			ctx.Header("Content-Type", ndjsonContentType)
			ctx.Status(http.StatusOK)
			streaming = true
		}
		if err := enc.Encode(student); err != nil {
			return err
		}
		ctx.Writer.Flush()
		return nil
	})
	if err != nil {
		if streaming {
			// Too late for a status change; drop the connection.
			logger.Error().Err(err).Msg("Student stream aborted")
			ctx.Abort()
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !streaming {
		ctx.Header("Content-Type", ndjsonContentType)
		ctx.Status(http.StatusOK)
	}
}

// GetStudentCourseWork lists the coursework rows of a student
// @Summary List a student's coursework
// @Description Retrieves all coursework rows referencing the student
// @Tags students
// @Produce json
// @Param studentID path int true "Student ID" Format(int64)
// @Success 200 {array} models.CourseWork
// @Failure 400 {object} dto.GeneralResponse[models.Student] "Invalid student ID"
// @Failure 404 {object} dto.GeneralResponse[models.Student] "Student not found"
// @Router /students/{studentID}/coursework [get]
func (c *StudentController) GetStudentCourseWork(ctx *gin.Context) {
	id, ok := c.parseStudentID(ctx)
	if !ok {
		return
	}

	courseWork, err := c.studentService.GetStudentCourseWork(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if courseWork == nil {
		courseWork = []*models.CourseWork{}
	}
	ctx.JSON(http.StatusOK, courseWork)
}
