package exporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

// Sentinel errors to allow precise mapping in handlers
var (
	ErrStorageConfig = errors.New("storage_configuration")
	ErrUpload        = errors.New("upload_failed")
)

// Renderer produces the downloadable artifacts of a job's resume
type Renderer interface {
	RenderSource(ctx context.Context, jobID int64, userID, theme string) (string, string, error)
	RenderPDF(ctx context.Context, jobID int64, userID, theme string) (string, []byte, error)
}

// Uploader stores an object and returns its public URL
type Uploader interface {
	UploadArtifact(ctx context.Context, objectKey, contentType string, data []byte) (string, error)
}

// Exporter renders a resume and uploads the .tex and .pdf to the bucket
type Exporter struct {
	renderer Renderer
	uploader Uploader
	logger   logging.Logger
}

// New builds an exporter. A nil uploader makes every export fail with ErrStorageConfig.
func New(renderer Renderer, uploader Uploader) *Exporter {
	return &Exporter{
		renderer: renderer,
		uploader: uploader,
		logger:   logging.GetGlobalLogger().WithField("component", "exporter"),
	}
}

// Export renders both artifacts before uploading either, so a compile
// failure uploads nothing. Render errors are returned unchanged.
func (e *Exporter) Export(ctx context.Context, jobID int64, userID, theme string) (*models.ExportResponse, error) {
	if e.uploader == nil {
		return nil, fmt.Errorf("%w: bucket credentials are not configured", ErrStorageConfig)
	}

	texName, src, err := e.renderer.RenderSource(ctx, jobID, userID, theme)
	if err != nil {
		return nil, err
	}
	pdfName, pdf, err := e.renderer.RenderPDF(ctx, jobID, userID, theme)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("resumes/exports/%s/%d", userID, jobID)

	texURL, err := e.uploader.UploadArtifact(ctx, prefix+"/"+texName, "application/x-latex", []byte(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	pdfURL, err := e.uploader.UploadArtifact(ctx, prefix+"/"+pdfName, "application/pdf", pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	e.logger.Info("Resume exported", map[string]interface{}{
		"job_id":  jobID,
		"tex_url": texURL,
		"pdf_url": pdfURL,
	})
	return &models.ExportResponse{Status: "exported", TexURL: texURL, PDFURL: pdfURL}, nil
}
