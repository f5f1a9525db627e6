package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

const validReportBody = `{
	"animalType": "Dog",
	"incidentType": "Injured Animal",
	"severity": "high",
	"description": "Dog with a badly injured leg near the station gate.",
	"location": {"type": "Point", "coordinates": [72.87, 19.07]},
	"reporter": {"name": "Asha"}
}`

func TestReportHandler_Submit_JSON(t *testing.T) {
	var got ports.SubmitReportInput
	stub := &stubReportService{
		submitFn: func(ctx context.Context, in ports.SubmitReportInput) (*ports.SubmitResult, error) {
			got = in
			return &ports.SubmitResult{Code: "AG-7A8B9C2D", Status: domain.StatusPending}, nil
		},
	}
	handler := NewReportHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/reports", jsonBody(validReportBody), echo.MIMEApplicationJSON, nil)
	c.Request().Header.Set("Idempotency-Key", " key-1 ")
	if err := handler.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.IdempotencyKey != "key-1" {
		t.Fatalf("idempotency key = %q", got.IdempotencyKey)
	}
	if got.Location == nil || got.Location.Longitude != 72.87 {
		t.Fatalf("location not mapped: %+v", got.Location)
	}
	if got.Reporter == nil || got.Reporter.Name != "Asha" {
		t.Fatalf("reporter not mapped: %+v", got.Reporter)
	}

	var resp submitReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.ReportID != "AG-7A8B9C2D" || resp.Status != domain.StatusPending {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestReportHandler_Submit_Replay(t *testing.T) {
	stub := &stubReportService{
		submitFn: func(ctx context.Context, in ports.SubmitReportInput) (*ports.SubmitResult, error) {
			return &ports.SubmitResult{Code: "AG-7A8B9C2D", Status: domain.StatusAccepted, AlreadyExisted: true}, nil
		},
	}
	handler := NewReportHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/reports", jsonBody(validReportBody), echo.MIMEApplicationJSON, nil)
	if err := handler.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
}

func TestReportHandler_Submit_Validation(t *testing.T) {
	stub := &stubReportService{
		submitFn: func(ctx context.Context, in ports.SubmitReportInput) (*ports.SubmitResult, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewReportHandler(stub)

	bodies := map[string]string{
		"unknown severity":  `{"animalType":"Dog","incidentType":"Neglect","severity":"urgent","description":"Dog left tied up on the roof all week."}`,
		"short description": `{"animalType":"Dog","incidentType":"Neglect","severity":"low","description":"tied up"}`,
		"missing fields":    `{}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, "/api/reports", jsonBody(body), echo.MIMEApplicationJSON, nil)
			if err := handler.Submit(c); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestReportHandler_Submit_Multipart(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fields := map[string]string{
		"animalType":    "Cat",
		"incidentType":  "Abandonment",
		"severity":      "medium",
		"description":   "Kittens left in a box outside the market.",
		"longitude":     "72.83",
		"latitude":      "18.94",
		"reporterPhone": "+91 90000 00000",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="media"; filename="kittens.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	_, _ = part.Write([]byte("jpeg-bytes"))
	_ = w.Close()

	var got ports.SubmitReportInput
	var media []byte
	stub := &stubReportService{
		submitFn: func(ctx context.Context, in ports.SubmitReportInput) (*ports.SubmitResult, error) {
			got = in
			if len(in.Media) == 1 {
				media, _ = io.ReadAll(in.Media[0].Body)
			}
			return &ports.SubmitResult{Code: "AG-00000001", Status: domain.StatusPending}, nil
		},
	}
	handler := NewReportHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/reports", &body, w.FormDataContentType(), nil)
	if err := handler.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.AnimalType != "Cat" || got.Location == nil || got.Location.Latitude != 18.94 {
		t.Fatalf("form not mapped: %+v", got)
	}
	if got.Reporter == nil || got.Reporter.Phone != "+91 90000 00000" {
		t.Fatalf("reporter not mapped: %+v", got.Reporter)
	}
	if len(got.Media) != 1 || got.Media[0].Filename != "kittens.jpg" || got.Media[0].ContentType != "image/jpeg" {
		t.Fatalf("media not mapped: %+v", got.Media)
	}
	if string(media) != "jpeg-bytes" {
		t.Fatalf("media body = %q", media)
	}
}

func TestReportHandler_Submit_MultipartBadCoordinates(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField("animalType", "Dog")
	_ = w.WriteField("incidentType", "Neglect")
	_ = w.WriteField("severity", "low")
	_ = w.WriteField("description", "Dog chained without water in the sun.")
	_ = w.WriteField("longitude", "east")
	_ = w.WriteField("latitude", "19.0")
	_ = w.Close()

	handler := NewReportHandler(&stubReportService{})
	c, _ := newTestContext(http.MethodPost, "/api/reports", &body, w.FormDataContentType(), nil)
	if err := handler.Submit(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestReportHandler_Submit_MultipartNonFiniteCoordinates(t *testing.T) {
	cases := []struct{ lng, lat string }{
		{"NaN", "19.0"},
		{"72.8", "nan"},
		{"+Inf", "19.0"},
		{"72.8", "-Infinity"},
	}
	for _, tc := range cases {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		_ = w.WriteField("animalType", "Dog")
		_ = w.WriteField("incidentType", "Neglect")
		_ = w.WriteField("severity", "low")
		_ = w.WriteField("description", "Dog chained without water in the sun.")
		_ = w.WriteField("longitude", tc.lng)
		_ = w.WriteField("latitude", tc.lat)
		_ = w.Close()

		handler := NewReportHandler(&stubReportService{})
		c, _ := newTestContext(http.MethodPost, "/api/reports", &body, w.FormDataContentType(), nil)
		if err := handler.Submit(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("lng=%q lat=%q: expected ErrValidation, got %v", tc.lng, tc.lat, err)
		}
	}
}

func TestReportHandler_Track(t *testing.T) {
	stub := &stubReportService{
		trackFn: func(ctx context.Context, code string) (*domain.Report, error) {
			if code != "AG-7A8B9C2D" {
				return nil, domain.ErrReportNotFound
			}
			return &domain.Report{Code: code, Status: domain.StatusInProgress}, nil
		},
	}
	handler := NewReportHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/reports/track/AG-7A8B9C2D", nil, "", nil)
	c.SetParamNames("id")
	c.SetParamValues("AG-7A8B9C2D")
	if err := handler.Track(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["reportId"] != "AG-7A8B9C2D" || resp["status"] != "in-progress" {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	c, _ = newTestContext(http.MethodGet, "/api/reports/track/AG-MISSING", nil, "", nil)
	c.SetParamNames("id")
	c.SetParamValues("AG-MISSING")
	if err := handler.Track(c); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}
