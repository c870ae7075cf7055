package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/benoitkugler/svgcut/cutting"
	"github.com/benoitkugler/svgcut/internal/typeid"
	"github.com/benoitkugler/svgcut/svgdoc"
	"github.com/benoitkugler/svgcut/svgpdf"
	"github.com/benoitkugler/svgcut/svgraster"
)

type Handler struct {
	smoothness    float64
	maxUploadSize int64
	preview       svgraster.Options
}

// NewHandler returns a handler flattening uploads with the given
// default smoothness; previews are rendered at dpmm dots per mm.
func NewHandler(smoothness float64, maxUploadSize int64, dpmm float64) *Handler {
	preview := svgraster.DefaultOptions
	preview.DotsPerMM = dpmm
	return &Handler{smoothness: smoothness, maxUploadSize: maxUploadSize, preview: preview}
}

// Routes registers the endpoints and the global middleware.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(Recovery)
	r.Use(RequestID)
	r.Use(Logger)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.HandleFunc("/flatten", h.Flatten).Methods("POST")
	r.HandleFunc("/preview", h.Preview).Methods("POST")
	r.HandleFunc("/preview.pdf", h.PreviewPDF).Methods("POST")
	return r
}

// FlattenResponse is the body returned by /flatten.
type FlattenResponse struct {
	RunID      string             `json:"runId"`
	Cuts       cutting.CutSet     `json:"cuts"` // millimeters
	Checkpoint cutting.Checkpoint `json:"checkpoint"`
	Points     int                `json:"points"`
	Warnings   []string           `json:"warnings"`
	Stopped    bool               `json:"stopped"`
}

type paramError struct {
	name, value string
}

func (e paramError) Error() string {
	return fmt.Sprintf("invalid query parameter %s=%q", e.name, e.value)
}

// options reads the run options from the query string.
func (h *Handler) options(q url.Values) (cutting.Options, error) {
	opts := cutting.DefaultOptions()
	opts.Smoothness = h.smoothness
	float := func(name string, dst *float64) error {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return paramError{name, v}
			}
			*dst = f
		}
		return nil
	}
	integer := func(name string, dst *int) (bool, error) {
		v := q.Get(name)
		if v == "" {
			return false, nil
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return false, paramError{name, v}
		}
		*dst = i
		return true, nil
	}
	for name, dst := range map[string]*float64{"smoothness": &opts.Smoothness, "xoff": &opts.XOffset, "yoff": &opts.YOffset} {
		if err := float(name, dst); err != nil {
			return opts, err
		}
	}
	var err error
	if opts.SelectLayer, err = integer("layer", &opts.Layer); err != nil {
		return opts, err
	}
	hasElement, err := integer("resume_element", &opts.Checkpoint.Element)
	if err != nil {
		return opts, err
	}
	hasNode, err := integer("resume_node", &opts.Checkpoint.Node)
	if err != nil {
		return opts, err
	}
	opts.Resume = hasElement || hasNode
	if v := q.Get("autocrop"); v != "" {
		if opts.Autocrop, err = strconv.ParseBool(v); err != nil {
			return opts, paramError{"autocrop", v}
		}
	}
	opts.IDs = q["id"]
	return opts, opts.Validate()
}

// run reads the uploaded document and flattens it. On failure,
// the error response is already written.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) (*cutting.Result, cutting.Options, bool) {
	opts, err := h.options(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return nil, opts, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	doc, err := svgdoc.ReadDocumentStream(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "document too large"})
		} else {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return nil, opts, false
	}
	res, err := cutting.Run(r.Context(), doc, opts)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return nil, opts, false
	}
	return res, opts, true
}

func (h *Handler) Flatten(w http.ResponseWriter, r *http.Request) {
	res, opts, ok := h.run(w, r)
	if !ok {
		return
	}
	cuts := opts.Export(res.Cuts)
	if cuts == nil {
		cuts = cutting.CutSet{}
	}
	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	resp := FlattenResponse{
		RunID:      typeid.NewRunID(),
		Cuts:       cuts,
		Checkpoint: res.Checkpoint,
		Points:     cuts.PointCount(),
		Warnings:   warnings,
		Stopped:    res.Stopped,
	}
	slog.Info("flattened", "run_id", resp.RunID, "points", resp.Points,
		"request_id", RequestIDFromContext(r.Context()))
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	res, opts, ok := h.run(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := svgraster.WritePNG(&buf, opts.Export(res.Cuts), h.preview); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// PreviewPDF responds with a 1:1 cut sheet of the upload.
func (h *Handler) PreviewPDF(w http.ResponseWriter, r *http.Request) {
	res, opts, ok := h.run(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := svgpdf.WritePDF(&buf, opts.Export(res.Cuts), svgpdf.DefaultOptions); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// writeJSON encodes data before writing the header, so that
// an encoding failure is still reported with a 500.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
