package submission

import (
	"bufio"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/libraryhall/hallbook-api/internal/middleware"
	"github.com/libraryhall/hallbook-api/internal/pkg/errorhandler"
	"github.com/libraryhall/hallbook-api/internal/pkg/logger"
	"github.com/libraryhall/hallbook-api/internal/pkg/response"
	"github.com/libraryhall/hallbook-api/internal/pkg/storage"
)

const (
	// request body allowance on top of the file limit for boundaries and other fields
	multipartSlack = 1 << 20
	// http.DetectContentType looks at no more than this
	sniffLen = 512
)

// Handler handles booking form HTTP requests
type Handler struct {
	service  *Service
	upgrader websocket.Upgrader
}

// NewHandler creates form handler
func NewHandler(service *Service, allowedOrigins []string) *Handler {
	return &Handler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Same-origin and non-browser clients send no Origin
				origin := r.Header.Get("Origin")
				if origin == "" || middleware.OriginAllowed(allowedOrigins, origin) {
					return true
				}
				logger.FromContext(r.Context()).Warn().Str("origin", origin).Msg("WebSocket origin rejected")
				return false
			},
		},
	}
}

// Create handles POST /forms
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	response.Created(w, h.service.Create(r.Context()))
}

// Get handles GET /forms/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, snap)
}

// Update handles PATCH /forms/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateFormRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	snap, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, snap)
}

// Delete handles DELETE /forms/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Discard(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, r, err)
		return
	}
	response.NoContent(w)
}

// Attach handles PUT /forms/{id}/attachment (multipart field "file")
func (h *Handler) Attach(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.service.Get(id); err != nil {
		h.handleError(w, r, err)
		return
	}

	maxSize := h.service.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartSlack)

	up, err := readUpload(r, maxSize)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	snap, err := h.service.Attach(r.Context(), id, up)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, snap)
}

// RemoveAttachment handles DELETE /forms/{id}/attachment
func (h *Handler) RemoveAttachment(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.RemoveAttachment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.OK(w, snap)
}

// Submit handles POST /forms/{id}/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Submit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.Accepted(w, snap)
}

// readUpload finds the "file" part and settles its content type before reading the body.
// Parts of other types come back without data so the form rejects them on type alone.
// At most maxSize+1 bytes are read, enough for the form to see an oversized file.
func readUpload(r *http.Request, maxSize int64) (FileUpload, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return FileUpload{}, ErrNoFile
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return FileUpload{}, ErrNoFile
		}
		if err != nil {
			return FileUpload{}, uploadError(err)
		}
		if part.FormName() != "file" || part.FileName() == "" {
			part.Close()
			continue
		}

		up, err := readFilePart(part, maxSize)
		part.Close()
		return up, err
	}
}

func readFilePart(part *multipart.Part, maxSize int64) (FileUpload, error) {
	body := bufio.NewReaderSize(part, sniffLen)

	up := FileUpload{
		FileName:    part.FileName(),
		ContentType: storage.NormalizeMimeType(part.Header.Get("Content-Type")),
	}
	if up.ContentType == "" || up.ContentType == "application/octet-stream" {
		head, err := body.Peek(sniffLen)
		if err != nil && err != io.EOF {
			return FileUpload{}, uploadError(err)
		}
		up.ContentType = storage.DetectMimeType(head)
	}

	if !storage.IsAllowedImage(up.ContentType) {
		return up, nil
	}

	data, err := io.ReadAll(io.LimitReader(body, maxSize+1))
	if err != nil {
		return FileUpload{}, uploadError(err)
	}
	up.Data = data
	up.Size = int64(len(data))
	return up, nil
}

func uploadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return storage.ErrFileTooLarge
	}
	return ErrNoFile
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *ValidationError

	switch {
	case errors.Is(err, ErrFormNotFound):
		response.NotFound(w, "Form not found")
	case errors.Is(err, ErrSubmissionInProgress):
		response.Conflict(w, "A submission is already in progress")
	case errors.Is(err, ErrNoFile):
		response.BadRequest(w, "No file provided")
	case errors.Is(err, storage.ErrInvalidMimeType):
		response.UnsupportedMediaType(w, "Please upload a valid image file (JPEG, PNG, or WebP)")
	case errors.Is(err, storage.ErrFileTooLarge):
		response.PayloadTooLarge(w, "File size should be less than 5MB")
	case errors.As(err, &validationErr):
		errorhandler.HandleValidation(r.Context(), w, validationErr.Fields)
	default:
		errorhandler.HandleInternal(r.Context(), w, err)
	}
}
