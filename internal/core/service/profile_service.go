package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/core/ports"
	"github.com/apostaesportiva/bolao/internal/i18n"
)

const (
	// PhotoURLPrefix is the public route avatars are served from.
	PhotoURLPrefix = "/photos/"
	photoKeyPrefix = "uploads/"
	sniffLen       = 512

	defaultRecentLoginWindow = 5 * time.Minute
)

// ProfileService changes the signed-in user's display name, e-mail, password
// and avatar.
type ProfileService struct {
	accounts     ports.AccountRepository
	cache        ports.UserCache
	store        ports.ObjectStore
	cleanup      ports.CleanupQueue
	tokens       *TokenManager
	recentWindow time.Duration
	log          zerolog.Logger
	now          func() time.Time
}

func NewProfileService(
	accounts ports.AccountRepository,
	cache ports.UserCache,
	store ports.ObjectStore,
	cleanup ports.CleanupQueue,
	tokens *TokenManager,
	recentWindow time.Duration,
	log zerolog.Logger,
) *ProfileService {
	if recentWindow <= 0 {
		recentWindow = defaultRecentLoginWindow
	}
	return &ProfileService{
		accounts:     accounts,
		cache:        cache,
		store:        store,
		cleanup:      cleanup,
		tokens:       tokens,
		recentWindow: recentWindow,
		log:          log,
		now:          time.Now,
	}
}

func (s *ProfileService) UpdateDisplayName(ctx context.Context, uid, name string) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewMessageError(i18n.KeyValNameRequired, nil)
	}

	account, err := s.accounts.FindByUID(ctx, uid)
	if err != nil {
		return nil, s.lookupErr(err)
	}
	account.DisplayName = name
	account.UpdatedAt = s.now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("update display name: %w", err)
	}
	s.invalidate(ctx, uid)
	return account, nil
}

// UpdateEmail changes the account e-mail. Submitting the current address is a
// successful no-op; any real change needs a recent sign-in.
func (s *ProfileService) UpdateEmail(ctx context.Context, session *domain.Session, email string) (*domain.Account, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByUID(ctx, session.UID)
	if err != nil {
		return nil, s.lookupErr(err)
	}
	if account.Email == email {
		return account, nil
	}
	if err := s.requireRecentLogin(session); err != nil {
		return nil, err
	}

	other, err := s.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil && other.UID != account.UID:
		return nil, domain.NewAuthError(domain.CodeEmailAlreadyInUse, nil)
	case err != nil && !errors.Is(err, domain.ErrAccountNotFound):
		return nil, fmt.Errorf("update email: %w", err)
	}

	account.Email = email
	account.UpdatedAt = s.now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return nil, domain.NewAuthError(domain.CodeEmailAlreadyInUse, err)
		}
		return nil, fmt.Errorf("update email: %w", err)
	}
	s.invalidate(ctx, account.UID)
	return account, nil
}

// UpdatePassword sets a new password, revokes every token issued before now
// and returns a fresh token for the current session.
func (s *ProfileService) UpdatePassword(ctx context.Context, session *domain.Session, newPassword, confirmation string) (string, error) {
	if newPassword != confirmation {
		return "", domain.NewMessageError(i18n.KeyValConfirmMismatch, domain.ErrPasswordMismatch)
	}
	if len(newPassword) < minPasswordLength {
		return "", domain.NewAuthError(domain.CodeWeakPassword, nil)
	}
	if err := s.requireRecentLogin(session); err != nil {
		return "", err
	}

	account, err := s.accounts.FindByUID(ctx, session.UID)
	if err != nil {
		return "", s.lookupErr(err)
	}
	if err := setPassword(account, newPassword, s.now()); err != nil {
		return "", err
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return "", fmt.Errorf("update password: %w", err)
	}
	return s.tokens.Issue(account, session.AuthTime)
}

// UploadPhoto stores an image under uploads/<uid>/<unix ms>.<subtype> and
// points the account avatar at it. The previous avatar object is removed in
// the background.
func (s *ProfileService) UploadPhoto(ctx context.Context, uid, contentType string, size int64, reader io.Reader) (*domain.Account, error) {
	ext, err := imageSubtype(contentType)
	if err != nil {
		return nil, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewMessageError(i18n.KeyValPhotoRequired, domain.ErrInvalidPhoto)
		}
		return nil, fmt.Errorf("read photo: %w", err)
	}
	if sniffed := http.DetectContentType(head[:n]); !strings.HasPrefix(sniffed, "image/") {
		return nil, fmt.Errorf("%w: content looks like %s", domain.ErrInvalidPhoto, sniffed)
	}

	account, err := s.accounts.FindByUID(ctx, uid)
	if err != nil {
		return nil, s.lookupErr(err)
	}

	key := fmt.Sprintf("%s%s/%d.%s", photoKeyPrefix, uid, s.now().UnixMilli(), ext)
	body := io.MultiReader(bytes.NewReader(head[:n]), reader)
	if err := s.store.Upload(ctx, key, body, size, contentType, s.logProgress(uid, key)); err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}

	previous := PhotoPath(account.PhotoURL)
	account.PhotoURL = PhotoURLPrefix + key
	account.UpdatedAt = s.now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		s.enqueueCleanup(uid, key)
		return nil, fmt.Errorf("update photo: %w", err)
	}

	s.enqueueCleanup(uid, previous)
	return account, nil
}

// DeletePhoto clears the avatar and removes the stored object when it is one of ours.
func (s *ProfileService) DeletePhoto(ctx context.Context, uid string) (*domain.Account, error) {
	account, err := s.accounts.FindByUID(ctx, uid)
	if err != nil {
		return nil, s.lookupErr(err)
	}
	previous := PhotoPath(account.PhotoURL)

	account.PhotoURL = ""
	account.UpdatedAt = s.now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("delete photo: %w", err)
	}

	s.enqueueCleanup(uid, previous)
	return account, nil
}

func (s *ProfileService) OpenPhoto(ctx context.Context, key string) (*domain.Photo, error) {
	if !strings.HasPrefix(key, photoKeyPrefix) || strings.Contains(key, "..") {
		return nil, domain.ErrInvalidPhoto
	}
	return s.store.Open(ctx, key)
}

// PhotoPath extracts the object key from an avatar URL served by this
// application. External URLs (e.g. a Google picture) yield "".
func PhotoPath(photoURL string) string {
	rest, ok := strings.CutPrefix(photoURL, PhotoURLPrefix)
	if !ok || !strings.HasPrefix(rest, photoKeyPrefix) || len(rest) == len(photoKeyPrefix) {
		return ""
	}
	return rest
}

func imageSubtype(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidPhoto, err)
	}
	kind, subtype, ok := strings.Cut(mediaType, "/")
	if !ok || kind != "image" || subtype == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidPhoto, mediaType)
	}
	return subtype, nil
}

func (s *ProfileService) logProgress(uid, key string) ports.ProgressFunc {
	last := -1
	return func(uploaded, total int64) {
		if total <= 0 {
			s.log.Debug().Str("uid", uid).Str("key", key).Int64("bytes", uploaded).Msg("upload progress")
			return
		}
		pct := int(uploaded * 100 / total)
		if pct == last {
			return
		}
		last = pct
		s.log.Debug().Str("uid", uid).Str("key", key).Int("percent", pct).Msg("upload progress")
	}
}

func (s *ProfileService) requireRecentLogin(session *domain.Session) error {
	if s.now().Sub(session.AuthTime) > s.recentWindow {
		return domain.NewAuthError(domain.CodeRequiresRecentLogin, nil)
	}
	return nil
}

func (s *ProfileService) lookupErr(err error) error {
	if errors.Is(err, domain.ErrAccountNotFound) {
		return domain.NewAuthError(domain.CodeUserNotFound, err)
	}
	return fmt.Errorf("find account: %w", err)
}

func (s *ProfileService) enqueueCleanup(uid, key string) {
	if s.cleanup == nil {
		s.invalidate(context.Background(), uid)
		return
	}
	s.cleanup.Enqueue(domain.CleanupJob{UID: uid, ObjectKey: key})
}

func (s *ProfileService) invalidate(ctx context.Context, uid string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, uid); err != nil {
		s.log.Warn().Err(err).Str("uid", uid).Msg("user cache invalidation failed")
	}
}
