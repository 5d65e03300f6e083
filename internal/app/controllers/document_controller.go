package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/studenttrack/internal/app/models"
	"github.com/campusworks/studenttrack/internal/app/models/dto"
	"github.com/campusworks/studenttrack/internal/app/services"
	"github.com/campusworks/studenttrack/internal/middleware"
	"github.com/campusworks/studenttrack/internal/pkg/apperrors"
)

// DocumentController handles document upload and retrieval endpoints
type DocumentController struct {
	documentService services.DocumentService
}

// NewDocumentController creates a new instance of DocumentController
func NewDocumentController(documentService services.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// UploadDocuments godoc
// @Summary Upload student documents
// @Description Accepts a multipart form with a required resume and an optional id_proof file
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Student ID"
// @Param resume formData file true "Resume file"
// @Param id_proof formData file false "ID proof file"
// @Success 201 {object} dto.APIResponse{data=dto.UploadDocumentsResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /students/{id}/upload [post]
func (c *DocumentController) UploadDocuments(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resume, err := ctx.FormFile("resume")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewInvalidParameterError("resume file is required"))
		return
	}

	uploads := []struct {
		docType string
		header  *multipart.FileHeader
	}{
		{models.DocTypeResume, resume},
	}

	if idProof, err := ctx.FormFile("id_proof"); err == nil {
		uploads = append(uploads, struct {
			docType string
			header  *multipart.FileHeader
		}{models.DocTypeIDProof, idProof})
	}

	var files []dto.UploadedFileInfo
	for _, u := range uploads {
		f, err := u.header.Open()
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewInvalidParameterError("could not read uploaded file"))
			return
		}

		doc, err := c.documentService.AttachDocument(ctx, studentID, u.docType, u.header.Filename, f)
		f.Close()
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}

		files = append(files, dto.UploadedFileInfo{
			DocumentID: doc.ID,
			DocType:    doc.DocType,
			Filename:   u.header.Filename,
		})
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.UploadDocumentsResponse{
		Message: "Documents uploaded successfully",
		Files:   files,
	}))
}

// DownloadDocument godoc
// @Summary Download a document
// @Description Streams the stored file for a document belonging to the student
// @Tags documents
// @Produce application/octet-stream
// @Param id path int true "Student ID"
// @Param docId path int true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /students/{id}/documents/{docId}/download [get]
func (c *DocumentController) DownloadDocument(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	docID, err := parseIDParam(ctx, "docId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	doc, data, err := c.documentService.GetDocument(ctx, studentID, docID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("%s_%d%s", doc.DocType, studentID, filepath.Ext(doc.FilePath))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/octet-stream", data)
}

// DeleteDocument godoc
// @Summary Delete a document
// @Description Removes a document row and its stored file
// @Tags documents
// @Produce json
// @Param id path int true "Student ID"
// @Param docId path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /students/{id}/documents/{docId} [delete]
func (c *DocumentController) DeleteDocument(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	docID, err := parseIDParam(ctx, "docId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.documentService.DeleteDocument(ctx, studentID, docID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Document deleted successfully"}))
}
