package handler

import (
	"github.com/deppfellow/person-api/internal/model"
	"github.com/deppfellow/person-api/internal/server"
	"github.com/deppfellow/person-api/internal/service"
	"github.com/labstack/echo/v4"
)

// UploadFormField is the multipart part carrying the image.
const UploadFormField = "image"

type UploadHandler struct {
	Handler
	uploadService *service.UploadService
}

func NewUploadHandler(s *server.Server, uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{
		Handler:       NewHandler(s),
		uploadService: uploadService,
	}
}

func (h *UploadHandler) PostImage(c echo.Context, req *model.UploadImageRequest) (model.ImageInfo, error) {
	return h.uploadService.Describe(req.Image)
}
