package reconcile

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/rpattn/leadrecon/internal/aggregate"
	"github.com/rpattn/leadrecon/internal/domain"
	"github.com/rpattn/leadrecon/internal/export"
	"github.com/rpattn/leadrecon/internal/logging"
	"github.com/rpattn/leadrecon/internal/matching"

	"github.com/shopspring/decimal"
)

// DefaultMaxUploadBytes bounds the multipart form kept in memory.
const DefaultMaxUploadBytes = 32 << 20

// Handler exposes reconciliation as an HTTP endpoint.
type Handler struct {
	service        *Service
	aggregator     *aggregate.Aggregator
	maxUploadBytes int64
}

// NewHTTPHandler wraps the service with a POST endpoint accepting a multipart
// upload. maxUploadBytes <= 0 selects DefaultMaxUploadBytes.
func NewHTTPHandler(service *Service, maxUploadBytes int64) http.Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		service:        service,
		aggregator:     aggregate.NewAggregator(),
		maxUploadBytes: maxUploadBytes,
	}
}

type errorResponse struct {
	Error   string              `json:"error"`
	Skipped []domain.SkipNotice `json:"skipped,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	req, err := h.readRequest(r.MultipartForm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query, err := readQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil || format == export.FormatTable {
		http.Error(w, fmt.Sprintf("unsupported format %q", r.URL.Query().Get("format")), http.StatusBadRequest)
		return
	}
	includeRecords, _ := strconv.ParseBool(formValue(r, "records"))

	result, err := h.service.Run(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInsufficientInput) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Skipped: result.Skipped})
			return
		}
		logging.FromContext(r.Context()).Error().Err(err).Msg("reconciliation failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	report := NewReport(h.aggregator, result, query, includeRecords)
	switch format {
	case export.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "leadrecon-"+result.RunID.String()+".csv"))
		w.WriteHeader(http.StatusOK)
		if err := export.Write(w, format, report); err != nil {
			logging.FromContext(r.Context()).Error().Err(err).Msg("write csv response")
		}
	case export.FormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		if err := export.WriteYAML(w, report); err != nil {
			logging.FromContext(r.Context()).Error().Err(err).Msg("write yaml response")
		}
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

func (h *Handler) readRequest(form *multipart.Form) (Request, error) {
	var req Request
	for _, header := range form.File["leads"] {
		file, err := readUpload(header)
		if err != nil {
			return Request{}, err
		}
		req.Leads = append(req.Leads, file)
	}

	if headers := form.File["sales"]; len(headers) > 0 {
		file, err := readUpload(headers[0])
		if err != nil {
			return Request{}, err
		}
		req.Sales = &file
	}
	if headers := form.File["dispositions"]; len(headers) > 0 {
		file, err := readUpload(headers[0])
		if err != nil {
			return Request{}, err
		}
		req.Dispositions = &file
	}

	req.PooledSpend = decimal.Zero
	if raw := firstValue(form, "pooledSpend"); raw != "" {
		spend, err := decimal.NewFromString(raw)
		if err != nil {
			return Request{}, fmt.Errorf("invalid pooledSpend %q", raw)
		}
		req.PooledSpend = spend
	}

	if raw := firstValue(form, "join"); raw != "" {
		strategy, err := matching.ParseJoinStrategy(raw)
		if err != nil {
			return Request{}, err
		}
		req.JoinStrategy = strategy
	}
	return req, nil
}

func readUpload(header *multipart.FileHeader) (File, error) {
	file, err := header.Open()
	if err != nil {
		return File{}, fmt.Errorf("open %s: %w", header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return File{}, fmt.Errorf("failed to read file %s: %w", header.Filename, err)
	}
	return File{Name: header.Filename, Data: data}, nil
}

func readQuery(r *http.Request) (aggregate.Query, error) {
	dimension, ok := domain.ParseDimension(strings.ToLower(formValue(r, "dimension")))
	if !ok {
		return aggregate.Query{}, fmt.Errorf("invalid dimension %q", formValue(r, "dimension"))
	}
	sort, ok := domain.ParseSummarySort(formValue(r, "sortBy"))
	if !ok {
		return aggregate.Query{}, fmt.Errorf("invalid sortBy %q", formValue(r, "sortBy"))
	}
	return aggregate.Query{
		Dimension: dimension,
		Month:     formValue(r, "month"),
		Campaign:  formValue(r, "campaign"),
		Sort:      sort,
	}, nil
}

func firstValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = export.WriteJSON(w, payload)
}
