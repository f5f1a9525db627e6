package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Surajbalal/Animal-Guard/internal/api/metrics"
	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

// ReportHandler serves the public reporting endpoints.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Submit handles POST /api/reports.
//
// @Summary      Report an animal incident
// @Description  Accepts JSON or multipart/form-data with up to 5 "media" files of 10MB each. A repeated Idempotency-Key returns the original report with 200.
// @Tags         reports
// @Accept       json,mpfd
// @Produce      json
// @Param        Idempotency-Key  header    string               false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      submitReportRequest  true   "Incident details"
// @Success      201              {object}  submitReportResponse
// @Success      200              {object}  submitReportResponse
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/reports [post]
func (h *ReportHandler) Submit(c echo.Context) error {
	key := strings.TrimSpace(c.Request().Header.Get("Idempotency-Key"))

	var (
		in  ports.SubmitReportInput
		err error
	)
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		var release func()
		in, release, err = multipartSubmission(c, key)
		if release != nil {
			defer release()
		}
	} else {
		in, err = jsonSubmission(c, key)
	}
	if err != nil {
		return err
	}

	result, err := h.service.Submit(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.ReportsSubmittedTotal.WithLabelValues(in.Severity, strconv.FormatBool(result.AlreadyExisted)).Inc()
	status, message := http.StatusCreated, "report submitted"
	if result.AlreadyExisted {
		status, message = http.StatusOK, "report already submitted"
	} else {
		for _, m := range in.Media {
			metrics.MediaUploadedBytes.Add(float64(m.Size))
		}
	}

	return c.JSON(status, submitReportResponse{
		Success:  true,
		Message:  message,
		ReportID: result.Code,
		Status:   result.Status,
	})
}

func jsonSubmission(c echo.Context, key string) (ports.SubmitReportInput, error) {
	var req submitReportRequest
	if err := c.Bind(&req); err != nil {
		return ports.SubmitReportInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.SubmitReportInput{}, err
	}
	return toSubmitInput(req, key), nil
}

// multipartSubmission reads form fields and opens the attached media. The
// returned release func closes the opened files.
func multipartSubmission(c echo.Context, key string) (ports.SubmitReportInput, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return ports.SubmitReportInput{}, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	req := submitReportRequest{
		AnimalType:   c.FormValue("animalType"),
		IncidentType: c.FormValue("incidentType"),
		Severity:     c.FormValue("severity"),
		Description:  c.FormValue("description"),
		Address:      c.FormValue("address"),
		Reporter: &reporterRequest{
			Name:  c.FormValue("reporterName"),
			Phone: c.FormValue("reporterPhone"),
			Email: c.FormValue("reporterEmail"),
		},
	}
	if err := c.Validate(&req); err != nil {
		return ports.SubmitReportInput{}, nil, err
	}

	in := toSubmitInput(req, key)
	if in.Location, err = parseFormLocation(c.FormValue("longitude"), c.FormValue("latitude")); err != nil {
		return ports.SubmitReportInput{}, nil, err
	}

	files := form.File["media"]
	if len(files) > domain.MaxMediaFiles {
		return ports.SubmitReportInput{}, nil, domain.Invalid("at most %d media files are allowed", domain.MaxMediaFiles)
	}

	opened := make([]io.Closer, 0, len(files))
	release := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			release()
			return ports.SubmitReportInput{}, nil, fmt.Errorf("open media %q: %w", fh.Filename, err)
		}
		opened = append(opened, f)
		in.Media = append(in.Media, ports.MediaUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return in, release, nil
}

// Track handles GET /api/reports/track/:id.
//
// @Summary      Track a report
// @Tags         reports
// @Produce      json
// @Param        id   path      string  true  "Report ID (e.g. AG-7A8B9C2D)"
// @Success      200  {object}  domain.Report
// @Failure      404  {object}  errorResponse
// @Router       /api/reports/track/{id} [get]
func (h *ReportHandler) Track(c echo.Context) error {
	report, err := h.service.Track(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
