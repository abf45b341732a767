package service

import (
	"fmt"
	"io"
	"math"
	"mime/multipart"

	"github.com/deppfellow/person-api/internal/model"
	"github.com/deppfellow/person-api/internal/server"
)

type UploadService struct {
	server *server.Server
}

func NewUploadService(s *server.Server) *UploadService {
	return &UploadService{
		server: s,
	}
}

// Describe reads the whole uploaded file and reports its name, declared
// content type and size in KB rounded to two decimals.
func (us *UploadService) Describe(image *multipart.FileHeader) (model.ImageInfo, error) {
	file, err := image.Open()
	if err != nil {
		return model.ImageInfo{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return model.ImageInfo{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return model.ImageInfo{
		Filename: image.Filename,
		Format:   image.Header.Get("Content-Type"),
		SizeKB:   SizeInKB(len(data)),
	}, nil
}

// SizeInKB converts a byte count to kilobytes, rounded to two decimals.
func SizeInKB(n int) float64 {
	return math.Round(float64(n)/1024*100) / 100
}
