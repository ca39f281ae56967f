package share

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sharedrop/service/internal/storage"
)

// MaxCodeAttempts bounds the check-and-retry loop for unique codes.
const MaxCodeAttempts = 5

// Intent is what a client needs to upload a file and later confirm it.
type Intent struct {
	Code        string
	StorageKey  string
	UploadURL   string
	IntentToken string
	// ExpiresAt is when the upload URL stops working.
	ExpiresAt time.Time
}

// Issuer mints share codes and signed upload URLs. It persists nothing.
type Issuer struct {
	store     Store
	signer    storage.Signer
	codes     CodeGenerator
	intents   *IntentSigner
	uploadTTL time.Duration
	now       func() time.Time
}

// NewIssuer creates an Issuer. store is only read, to reject codes already taken.
func NewIssuer(store Store, signer storage.Signer, codes CodeGenerator, intents *IntentSigner, uploadTTL time.Duration) *Issuer {
	return &Issuer{
		store:     store,
		signer:    signer,
		codes:     codes,
		intents:   intents,
		uploadTTL: uploadTTL,
		now:       time.Now,
	}
}

// Issue reserves nothing: it draws an unused code, derives the storage key and signs an upload URL for it.
func (i *Issuer) Issue(ctx context.Context, fileName string) (*Intent, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, ErrInvalidFileName
	}

	code, err := i.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}
	key := StorageKeyFor(code, fileName)

	uploadURL, err := i.signer.SignUpload(ctx, key, i.uploadTTL)
	if err != nil {
		return nil, fmt.Errorf("sign upload url: %w", err)
	}
	token, _, err := i.intents.Sign(code, key)
	if err != nil {
		return nil, err
	}

	intentsIssuedTotal.Inc()
	slog.DebugContext(ctx, "share: intent issued", slog.String("code", code), slog.String("key", key))

	return &Intent{
		Code:        code,
		StorageKey:  key,
		UploadURL:   uploadURL,
		IntentToken: token,
		ExpiresAt:   i.now().UTC().Add(i.uploadTTL),
	}, nil
}

func (i *Issuer) uniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < MaxCodeAttempts; attempt++ {
		code := i.codes.Next()
		taken, err := i.store.Exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code: %w", err)
		}
		if !taken {
			return code, nil
		}
		codeCollisionsTotal.Inc()
		slog.WarnContext(ctx, "share: code collision", slog.String("code", code), slog.Int("attempt", attempt+1))
	}
	return "", ErrCodeSpaceExhausted
}
