package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	apperrors "github.com/sasi433/log-report-automation/internal/errors"
	custommw "github.com/sasi433/log-report-automation/internal/middleware"
	"github.com/sasi433/log-report-automation/internal/service"
	v1 "github.com/sasi433/log-report-automation/pkg/contracts/api/v1"
)

const (
	// contentTypeXLSX is the MIME type for xlsx workbooks.
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// multipartMemoryLimit is how much of an upload is held in memory before
	// the multipart reader spills to disk.
	multipartMemoryLimit = 10 << 20
)

// ReportHandler handles report generation requests with RFC 7807 compliance.
// Uploads are staged in uploadsDir under random names and removed after the
// response is written.
type ReportHandler struct {
	service      ReportServiceInterface
	validation   *custommw.ValidationMiddleware
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
	uploadsDir   string
}

// NewReportHandler creates a new report handler with RFC 7807 error handling
func NewReportHandler(svc ReportServiceInterface, validation *custommw.ValidationMiddleware, logger *slog.Logger, errorHandler *apperrors.ErrorHandler, uploadsDir string) *ReportHandler {
	return &ReportHandler{
		service:      svc,
		validation:   validation,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
		uploadsDir:   uploadsDir,
	}
}

// Routes returns the report routes with proper Chi patterns
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(
		custommw.ContentTypeValidator("multipart/form-data"),
		h.validation.ValidateRequest,
	).Post("/", h.GenerateReport)

	return r
}

// GenerateReport handles POST /api/reports. The log export travels as the
// multipart "file" part; service and level filters come from form values or
// the query string. A matching run streams the workbook back as an
// attachment; a run where no rows survive the filters responds 204 with no
// body, mirroring the skip-the-file policy everywhere else.
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := chimiddleware.GetReqID(ctx)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			problem := apperrors.NewProblemDetails(
				http.StatusRequestEntityTooLarge,
				apperrors.TypePayloadTooLarge,
				"Payload Too Large",
				fmt.Sprintf("request body exceeds the %d byte upload limit", maxBytesErr.Limit),
				r.URL.Path,
			).WithExtension("max_size", maxBytesErr.Limit)
			render.Render(w, r, problem)
			return
		}
		h.errorHandler.HandleError(w, r,
			apperrors.NewParseError("request body is not valid multipart form data", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r,
			apperrors.NewValidationError(`the log export must be uploaded in the "file" form field`))
		return
	}
	defer file.Close()

	req := &v1.ReportGenerateRequest{
		Service:  r.FormValue("service"),
		Level:    r.FormValue("level"),
		Filename: header.Filename,
	}
	if err := h.validation.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "report upload received",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
		slog.String("service_filter", req.Service),
		slog.String("level_filter", req.Level),
	)

	inputPath, err := h.stageUpload(file, header.Filename)
	if err != nil {
		custommw.RecordSystemError(ctx, "upload_stage", "report_handler")
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer os.Remove(inputPath)

	outputPath := filepath.Join(h.uploadsDir, uuid.New().String()+".xlsx")
	defer os.Remove(outputPath)

	result, err := h.service.Generate(ctx, service.Request{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Service:    req.Service,
		Level:      req.Level,
		Source:     "http",
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) &&
			(appErr.Type == apperrors.ErrTypeOutput || appErr.Type == apperrors.ErrTypeInternal) {
			custommw.RecordSystemError(ctx, string(appErr.Type), "report_handler")
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if !result.Written {
		h.logger.InfoContext(ctx, "no rows matched the filters, responding without a workbook",
			slog.String("request_id", reqID),
			slog.Int("rows_loaded", result.RowsLoaded),
		)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", downloadFilename(header.Filename)))
	http.ServeFile(w, r, outputPath)
}

// stageUpload copies the uploaded part to a random name under uploadsDir.
// The original extension chain survives (".csv", ".jsonl.gz", ...) since the
// loader picks its decoder from it.
func (h *ReportHandler) stageUpload(file multipart.File, filename string) (string, error) {
	path := filepath.Join(h.uploadsDir, uuid.New().String()+uploadExtension(filename))

	dst, err := os.Create(path)
	if err != nil {
		return "", apperrors.NewInternalError("could not stage the uploaded file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", apperrors.NewInternalError("could not stage the uploaded file", err)
	}
	return path, nil
}

// uploadExtension extracts the extension chain from an uploaded filename,
// keeping the inner extension in front of a trailing ".gz".
func uploadExtension(filename string) string {
	ext := filepath.Ext(filename)
	if strings.EqualFold(ext, ".gz") {
		ext = filepath.Ext(strings.TrimSuffix(filename, ext)) + ext
	}
	return strings.ToLower(ext)
}

// downloadFilename derives the attachment name from the uploaded filename,
// falling back to a fixed name when the upload had none.
func downloadFilename(uploaded string) string {
	base := filepath.Base(strings.TrimSpace(uploaded))
	if strings.EqualFold(filepath.Ext(base), ".gz") {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "report.xlsx"
	}
	return base + "_report.xlsx"
}
