// Package intake accepts order submissions as text, email bodies, PDFs or
// scanned images and records them as received orders.
package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/estimator/internal/content"
	"github.com/JaimeStill/estimator/internal/orders"
	"github.com/JaimeStill/estimator/internal/validation"
	"github.com/JaimeStill/estimator/pkg/formatting"
	"github.com/JaimeStill/estimator/pkg/handlers"
	"github.com/JaimeStill/estimator/pkg/routes"
)

const minDPI = 300

// Reader recovers text and resolution from uploaded files.
type Reader interface {
	Text(ctx context.Context, contentType string, data []byte) string
	ImageDPI(data []byte) (int, int)
}

// Orders creates received orders.
type Orders interface {
	Create(ctx context.Context, cmd orders.CreateCommand) (*orders.Order, error)
}

// Response reports the created order and any issues found in the upload.
type Response struct {
	OrderID int64    `json:"order_id"`
	Issues  []string `json:"issues"`
	RawText string   `json:"raw_text"`
	Email   *string  `json:"email"`
}

// Handler serves order intake.
type Handler struct {
	orders        Orders
	reader        Reader
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates an intake Handler.
func NewHandler(o Orders, reader Reader, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		orders:        o,
		reader:        reader,
		logger:        logger.With("handler", "intake"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the intake route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/intake",
		Tags:   []string{"Intake"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/order", Handler: h.Order, OpenAPI: Spec.Order},
		},
	}
}

// Order records a submission. The form fields text and email_body supply the
// order text, file an optional PDF or image, and email the customer address.
func (h *Handler) Order(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge,
				fmt.Errorf("%w of %s", ErrFileTooLarge, formatting.FormatBytes(h.maxUploadSize)))
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	text := r.FormValue("text")
	emailBody := r.FormValue("email_body")
	file, header, fileErr := r.FormFile("file")
	hasFile := fileErr == nil
	if hasFile {
		defer file.Close()
	}

	if text == "" && emailBody == "" && !hasFile {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoInput)
		return
	}

	rawText := text
	if rawText == "" {
		rawText = emailBody
	}
	issues := []string{}

	if hasFile {
		data, err := io.ReadAll(file)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
			return
		}

		contentType := content.DetectContentType(header.Header.Get("Content-Type"), data)
		switch {
		case content.IsPDF(contentType):
			rawText += "\n" + h.reader.Text(r.Context(), contentType, data)
		case content.IsImage(contentType):
			rawText += "\n" + h.reader.Text(r.Context(), contentType, data)
			x, y := h.reader.ImageDPI(data)
			h.logger.Debug("image resolution", "filename", header.Filename, "dpi_x", x, "dpi_y", y)
			if min(x, y) < minDPI {
				issues = append(issues, validation.IssueLowResolution)
			}
		default:
			err := fmt.Errorf("%w: %s", ErrUnsupportedFile, contentType)
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
	}

	var email *string
	if v := r.FormValue("email"); v != "" {
		email = &v
	}

	o, err := h.orders.Create(r.Context(), orders.CreateCommand{
		RawText: rawText,
		Email:   email,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, orders.MapHTTPStatus(err), err)
		return
	}

	h.logger.Info("order received", "order_id", o.ID, "issues", issues, "has_file", hasFile)
	handlers.RespondJSON(w, http.StatusCreated, Response{
		OrderID: o.ID,
		Issues:  issues,
		RawText: rawText,
		Email:   email,
	})
}
