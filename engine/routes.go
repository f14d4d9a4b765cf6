package engine

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"github.com/drummonds/pdfstitch/config"
	"github.com/drummonds/pdfstitch/engine/pdfrenderer"
)

// ServerHandler will inject the variables needed into routes
type ServerHandler struct {
	Engine       *Engine
	Echo         *echo.Echo
	ServerConfig config.ServerConfig
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ConvertResponse struct {
	JobID     string `json:"job_id,omitempty"`
	PageCount int    `json:"page_count,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Image     string `json:"image,omitempty"` // base64 encoded JPEG
	Error     string `json:"error,omitempty"`
}

type ExtractTextResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// RegisterRoutes attaches the API routes to the echo instance
func (serverHandler *ServerHandler) RegisterRoutes() {
	serverHandler.Echo.GET("/health", serverHandler.GetHealth)
	serverHandler.Echo.POST("/convert", serverHandler.ConvertDocument)
	serverHandler.Echo.POST("/extract-text", serverHandler.ExtractDocumentText)
}

// GetHealth reports service liveness
// @Summary Health check
// @Tags Service
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (serverHandler *ServerHandler) GetHealth(context echo.Context) error {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	}
	return context.JSON(http.StatusOK, response)
}

// ConvertDocument renders an uploaded PDF and returns the pages stitched
// into one vertical JPEG
// @Summary Convert a PDF to a single stitched image
// @Description Renders every page of the uploaded PDF at the requested scale and stacks them vertically
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param pdf formData file true "PDF document"
// @Param scale formData number false "Render scale factor (default from server config)"
// @Success 200 {object} ConvertResponse
// @Router /convert [post]
func (serverHandler *ServerHandler) ConvertDocument(context echo.Context) error {
	fileHeader, err := context.FormFile("pdf")
	if err != nil {
		return context.JSON(http.StatusBadRequest, ConvertResponse{Error: "no PDF file provided"})
	}

	scale := serverHandler.ServerConfig.RenderScale
	if scaleField := context.FormValue("scale"); scaleField != "" {
		parsed, err := strconv.ParseFloat(scaleField, 64)
		if err != nil || parsed <= 0 {
			return context.JSON(http.StatusBadRequest, ConvertResponse{Error: "invalid scale value"})
		}
		scale = parsed
	}

	jobID := ulid.Make().String()
	Logger.Info("Processing conversion request", "job", jobID, "filename", fileHeader.Filename, "scale", scale)

	uploadPath, err := serverHandler.storeUpload(fileHeader, jobID)
	if err != nil {
		Logger.Error("Failed to store upload", "job", jobID, "error", err)
		return context.JSON(http.StatusInternalServerError, ConvertResponse{JobID: jobID, Error: "failed to store upload"})
	}
	defer os.Remove(uploadPath)

	pages, err := serverHandler.Engine.Renderer.RenderPDF(uploadPath, scale)
	if err != nil {
		Logger.Error("Image conversion failed", "job", jobID, "error", err)
		return context.JSON(documentErrorStatus(err), ConvertResponse{JobID: jobID, Error: err.Error()})
	}

	combined, err := StackPages(pages)
	if err != nil {
		Logger.Error("Image conversion failed", "job", jobID, "error", err)
		return context.JSON(documentErrorStatus(err), ConvertResponse{JobID: jobID, Error: err.Error()})
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, combined, imaging.JPEG); err != nil {
		Logger.Error("Image encoding failed", "job", jobID, "error", err)
		return context.JSON(http.StatusInternalServerError, ConvertResponse{JobID: jobID, Error: err.Error()})
	}

	bounds := combined.Bounds()
	response := ConvertResponse{
		JobID:     jobID,
		PageCount: len(pages),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Image:     base64.StdEncoding.EncodeToString(buf.Bytes()),
	}
	return context.JSON(http.StatusOK, response)
}

// ExtractDocumentText returns the embedded text layer of an uploaded PDF
// @Summary Extract the text layer of a PDF
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param pdf formData file true "PDF document"
// @Success 200 {object} ExtractTextResponse
// @Router /extract-text [post]
func (serverHandler *ServerHandler) ExtractDocumentText(context echo.Context) error {
	fileHeader, err := context.FormFile("pdf")
	if err != nil {
		return context.JSON(http.StatusBadRequest, ExtractTextResponse{Error: "no PDF file provided"})
	}

	jobID := ulid.Make().String()
	Logger.Info("Processing text extraction request", "job", jobID, "filename", fileHeader.Filename)

	uploadPath, err := serverHandler.storeUpload(fileHeader, jobID)
	if err != nil {
		Logger.Error("Failed to store upload", "job", jobID, "error", err)
		return context.JSON(http.StatusInternalServerError, ExtractTextResponse{Error: "failed to store upload"})
	}
	defer os.Remove(uploadPath)

	text, err := extractTextFromFile(uploadPath)
	if err != nil {
		Logger.Error("Text extraction failed", "job", jobID, "error", err)
		return context.JSON(documentErrorStatus(err), ExtractTextResponse{Error: err.Error()})
	}

	return context.JSON(http.StatusOK, ExtractTextResponse{Text: text})
}

// storeUpload writes the uploaded form file under the job's name in the
// scratch directory. The caller removes it when the request finishes.
func (serverHandler *ServerHandler) storeUpload(fileHeader *multipart.FileHeader, jobID string) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(serverHandler.ServerConfig.ScratchPath, 0755); err != nil {
		return "", err
	}

	uploadPath := filepath.Join(serverHandler.ServerConfig.ScratchPath, jobID+".pdf")
	dst, err := os.Create(uploadPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(uploadPath)
		return "", err
	}
	return uploadPath, nil
}

// documentErrorStatus maps malformed-document failures to 422 and
// everything else to 500.
func documentErrorStatus(err error) int {
	var openErr *pdfrenderer.DocumentOpenError
	if errors.As(err, &openErr) || errors.Is(err, pdfrenderer.ErrEmptyDocument) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
