package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sharedrop/service/internal/storage"
)

// ConfirmRequest registers an upload made against an issued intent.
type ConfirmRequest struct {
	Code        string
	StorageKey  string
	IntentToken string
	// CreatedAt overrides the confirmation time when non-empty.
	CreatedAt string
}

// Download is a resolved share.
type Download struct {
	URL       string
	ExpiresAt time.Time
}

// Registry persists confirmed shares and resolves codes to download URLs.
type Registry struct {
	store       Store
	signer      storage.Signer
	intents     *IntentSigner
	expiry      time.Duration
	downloadTTL time.Duration
	now         func() time.Time
}

// NewRegistry creates a Registry. expiry is the share validity window measured from confirmation.
func NewRegistry(store Store, signer storage.Signer, intents *IntentSigner, expiry, downloadTTL time.Duration) *Registry {
	return &Registry{
		store:       store,
		signer:      signer,
		intents:     intents,
		expiry:      expiry,
		downloadTTL: downloadTTL,
		now:         time.Now,
	}
}

// Confirm writes the record for an uploaded file and returns its code.
// The storage key must match the one signed into the intent token.
func (r *Registry) Confirm(ctx context.Context, req ConfirmRequest) (string, error) {
	// Fields are compared verbatim; file names may keep leading or
	// trailing whitespace.
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.StorageKey) == "" {
		return "", ErrMissingField
	}
	if !strings.HasPrefix(req.StorageKey, req.Code+"_") {
		return "", fmt.Errorf("%w: storage key does not belong to code", ErrIntentMismatch)
	}
	if err := r.intents.Verify(req.IntentToken, req.Code, req.StorageKey); err != nil {
		return "", err
	}

	createdAt := req.CreatedAt
	if createdAt == "" {
		createdAt = FormatTime(r.now())
	}
	rec := &Record{Code: req.Code, StorageKey: req.StorageKey, CreatedAt: createdAt}
	if err := r.store.Put(ctx, rec); err != nil {
		return "", err
	}

	sharesConfirmedTotal.Inc()
	slog.InfoContext(ctx, "share: confirmed", slog.String("code", rec.Code), slog.String("created_at", rec.CreatedAt))
	return rec.Code, nil
}

// Resolve returns a signed download URL for code. Gates, in order: ErrNotFound,
// ErrInvalidTimestamp, ErrExpired. Expired records are left untouched.
func (r *Registry) Resolve(ctx context.Context, code string) (*Download, error) {
	d, err := r.resolve(ctx, code)
	resolvesTotal.WithLabelValues(outcomeOf(err)).Inc()
	return d, err
}

func (r *Registry) resolve(ctx context.Context, code string) (*Download, error) {
	rec, err := r.store.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	created, err := rec.CreatedTime()
	if err != nil {
		slog.WarnContext(ctx, "share: unparsable created_at",
			slog.String("code", code), slog.String("created_at", rec.CreatedAt), slog.String("error", err.Error()))
		return nil, ErrInvalidTimestamp
	}

	now := r.now().UTC()
	if now.After(created.Add(r.expiry)) {
		return nil, ErrExpired
	}

	url, err := r.signer.SignDownload(ctx, rec.StorageKey, r.downloadTTL)
	if err != nil {
		return nil, fmt.Errorf("sign download url: %w", err)
	}
	return &Download{URL: url, ExpiresAt: now.Add(r.downloadTTL)}, nil
}

// ListAll returns every stored record as a flat attribute map.
func (r *Registry) ListAll(ctx context.Context) ([]map[string]string, error) {
	items, err := r.store.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []map[string]string{}
	}
	return items, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, ErrInvalidTimestamp):
		return outcomeInvalid
	case errors.Is(err, ErrExpired):
		return outcomeExpired
	default:
		return outcomeError
	}
}
