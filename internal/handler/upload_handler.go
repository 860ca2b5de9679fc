package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/service"
)

const maxUploadMemory = 32 << 20

type UploadHandler struct {
	base
	uploadService service.UploadService
}

func NewUploadHandler(uploadService service.UploadService, v *validator.Validate, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{base: newBase(v, logger), uploadService: uploadService}
}

// Avatar - POST /api/employees/{id}/avatar/, файл в поле "avatar"
func (h *UploadHandler) Avatar(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, service.UploadAvatar)
}

// Snapshot - POST /api/projects/{id}/snapshot/, файл в поле "snapshot"
func (h *UploadHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, service.UploadSnapshot)
}

// upload отвечает 304 без тела, если сущности нет, и 400, если нет поля файла
func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request, kind service.UploadKind) {
	id, ok := h.extractID(w, r, string(kind))
	if !ok {
		return
	}

	var file *service.UploadFile
	if err := r.ParseMultipartForm(maxUploadMemory); err == nil {
		f, header, err := r.FormFile(string(kind))
		if err == nil {
			defer f.Close()
			file = &service.UploadFile{
				Name:        header.Filename,
				Size:        header.Size,
				ContentType: header.Header.Get("Content-Type"),
				Body:        f,
			}
		}
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	url, err := h.uploadService.Upload(r.Context(), kind, id, file)
	switch {
	case err == nil:
		h.respondJSON(w, http.StatusOK, map[string]string{string(kind): url})
	case errors.Is(err, domain.ErrEmployeeNotFound), errors.Is(err, domain.ErrProjectNotFound):
		w.WriteHeader(http.StatusNotModified)
	case errors.Is(err, domain.ErrMissingUploadFile):
		h.respondError(w, http.StatusBadRequest, "no file uploaded", "multipart field \""+string(kind)+"\" is required")
	default:
		h.handleServiceError(w, err)
	}
}
