package share

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sharedrop/service/internal/response"
)

// Messages returned to clients.
const (
	msgFileNameRequired = "FileName is required."
	msgInvalidBody      = "Invalid request body."
	msgMissingFields    = "fileCode and fileS3Key are required."
	msgIntentMismatch   = "Upload intent does not match this file."
	msgNotFound         = "File not found."
	msgInvalidTimestamp = "Invalid file timestamp."
	msgExpired          = "File has expired."
)

// Handler holds HTTP handlers for the share lifecycle endpoints.
type Handler struct {
	issuer   *Issuer
	registry *Registry
}

// NewHandler creates a new share Handler.
func NewHandler(issuer *Issuer, registry *Registry) *Handler {
	return &Handler{issuer: issuer, registry: registry}
}

type uploadIntentData struct {
	Code        string `json:"code"        example:"a1b2c3d4e5f6"`
	StorageKey  string `json:"storageKey"  example:"a1b2c3d4e5f6_report.pdf"`
	UploadURL   string `json:"uploadUrl"   example:"http://localhost:9000/file-share-app-uploads/a1b2c3d4e5f6_report.pdf?X-Amz-Signature=..."`
	IntentToken string `json:"intentToken" example:"eyJhbGci..."`
	ExpiresAt   string `json:"expiresAt"   example:"2026-02-27T15:03:34Z"`
}

type uploadCompleteRequest struct {
	FileCode    string `json:"fileCode"    example:"a1b2c3d4e5f6"`
	FileS3Key   string `json:"fileS3Key"   example:"a1b2c3d4e5f6_report.pdf"`
	IntentToken string `json:"intentToken" example:"eyJhbGci..."`
}

type uploadCompleteData struct {
	FileCode string `json:"fileCode" example:"a1b2c3d4e5f6"`
}

type downloadData struct {
	DownloadURL string `json:"downloadUrl" example:"http://localhost:9000/file-share-app-uploads/a1b2c3d4e5f6_report.pdf?X-Amz-Signature=..."`
	ExpiresAt   string `json:"expiresAt"   example:"2026-02-27T15:03:34Z"`
}

// GenerateUploadURL godoc
//
//	@Summary		Request an upload URL
//	@Description	Mints a share code and a presigned PUT URL valid for 15 minutes. Nothing is stored until the upload is confirmed.
//	@Tags			shares
//	@Produce		json
//	@Param			FileName	query		string	true	"Original file name"
//	@Success		200			{object}	uploadIntentData
//	@Failure		400			{object}	response.ErrorBody
//	@Failure		500			{object}	response.ErrorBody
//	@Router			/generate-upload-url [get]
func (h *Handler) GenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	intent, err := h.issuer.Issue(r.Context(), r.URL.Query().Get("FileName"))
	if errors.Is(err, ErrInvalidFileName) {
		response.BadRequest(w, msgFileNameRequired)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "issue upload intent failed", slog.String("error", err.Error()))
		response.InternalError(w)
		return
	}

	response.OK(w, uploadIntentData{
		Code:        intent.Code,
		StorageKey:  intent.StorageKey,
		UploadURL:   intent.UploadURL,
		IntentToken: intent.IntentToken,
		ExpiresAt:   intent.ExpiresAt.Format(time.RFC3339),
	})
}

// UploadComplete godoc
//
//	@Summary		Confirm an upload
//	@Description	Registers the uploaded object under its share code. The expiry window starts now. Confirming twice overwrites the record.
//	@Tags			shares
//	@Accept			json
//	@Produce		json
//	@Param			request	body		uploadCompleteRequest	true	"Code, storage key and intent token from /generate-upload-url"
//	@Success		200		{object}	uploadCompleteData
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		403		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/upload-complete [post]
func (h *Handler) UploadComplete(w http.ResponseWriter, r *http.Request) {
	var req uploadCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, msgInvalidBody)
		return
	}

	code, err := h.registry.Confirm(r.Context(), ConfirmRequest{
		Code:        req.FileCode,
		StorageKey:  req.FileS3Key,
		IntentToken: req.IntentToken,
	})
	switch {
	case errors.Is(err, ErrMissingField):
		response.BadRequest(w, msgMissingFields)
		return
	case errors.Is(err, ErrIntentMismatch):
		slog.WarnContext(r.Context(), "upload confirmation rejected",
			slog.String("code", req.FileCode), slog.String("error", err.Error()))
		response.Forbidden(w, msgIntentMismatch)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "confirm upload failed", slog.String("error", err.Error()))
		response.InternalError(w)
		return
	}

	response.OK(w, uploadCompleteData{FileCode: code})
}

// DownloadURL godoc
//
//	@Summary		Resolve a share code
//	@Description	Returns a presigned GET URL valid for 15 minutes if the share exists and has not expired.
//	@Tags			shares
//	@Produce		json
//	@Param			fileCode	path		string	true	"Share code"
//	@Success		200			{object}	downloadData
//	@Failure		400			{object}	response.ErrorBody
//	@Failure		404			{object}	response.ErrorBody
//	@Failure		500			{object}	response.ErrorBody
//	@Router			/download-url/{fileCode} [get]
func (h *Handler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	d, err := h.registry.Resolve(r.Context(), chi.URLParam(r, "fileCode"))
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, msgNotFound)
		return
	case errors.Is(err, ErrInvalidTimestamp):
		response.BadRequest(w, msgInvalidTimestamp)
		return
	case errors.Is(err, ErrExpired):
		response.BadRequest(w, msgExpired)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "resolve share failed", slog.String("error", err.Error()))
		response.InternalError(w)
		return
	}

	response.OK(w, downloadData{
		DownloadURL: d.URL,
		ExpiresAt:   d.ExpiresAt.Format(time.RFC3339),
	})
}

// ListFiles godoc
//
//	@Summary		List all shares
//	@Description	Administrative full scan of the metadata store. Unpaginated and unordered.
//	@Tags			admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		map[string]string
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/files [get]
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	items, err := h.registry.ListAll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list shares failed", slog.String("error", err.Error()))
		response.InternalError(w)
		return
	}
	response.OK(w, items)
}
