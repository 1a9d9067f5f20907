package service

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/core/ports"
)

type stubAccountRepo struct {
	accounts  map[string]*domain.Account
	updates   int
	createErr error
	findErr   error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	clone.Providers = append([]string(nil), a.Providers...)
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return domain.ErrEmailInUse
		}
	}
	r.accounts[account.UID] = cloneAccount(account)
	return nil
}

func (r *stubAccountRepo) FindByUID(_ context.Context, uid string) (*domain.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.accounts[uid]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByGoogleSubject(_ context.Context, subject string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if subject != "" && a.GoogleSubject == subject {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Update(_ context.Context, account *domain.Account) error {
	if _, ok := r.accounts[account.UID]; !ok {
		return domain.ErrAccountNotFound
	}
	r.updates++
	r.accounts[account.UID] = cloneAccount(account)
	return nil
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Set(_ context.Context, uid string, user *domain.User) error {
	clone := *user
	r.users[uid] = &clone
	return nil
}

func (r *stubUserRepo) FindByUID(_ context.Context, uid string) (*domain.User, error) {
	u, ok := r.users[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubCache struct {
	entries map[string]*domain.CachedUser
	deletes []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*domain.CachedUser)}
}

func (c *stubCache) Get(_ context.Context, uid string) (*domain.CachedUser, error) {
	return c.entries[uid], nil
}

func (c *stubCache) Set(_ context.Context, uid string, user *domain.CachedUser) error {
	c.entries[uid] = user
	return nil
}

func (c *stubCache) Delete(_ context.Context, uid string) error {
	delete(c.entries, uid)
	c.deletes = append(c.deletes, uid)
	return nil
}

type stubResetStore struct {
	tokens map[string]string
}

func (s *stubResetStore) Save(_ context.Context, token, uid string) error {
	s.tokens[token] = uid
	return nil
}

func (s *stubResetStore) Consume(_ context.Context, token string) (string, error) {
	uid, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrResetTokenNotFound
	}
	delete(s.tokens, token)
	return uid, nil
}

type stubMailer struct {
	to, link string
}

func (m *stubMailer) SendPasswordReset(_ context.Context, email, link string) error {
	m.to, m.link = email, link
	return nil
}

type stubGoogle struct {
	profile *domain.GoogleProfile
	err     error
}

func (g *stubGoogle) AuthCodeURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (g *stubGoogle) Exchange(_ context.Context, _ string) (*domain.GoogleProfile, error) {
	return g.profile, g.err
}

type stubStore struct {
	objects  map[string][]byte
	progress []int64
	err      error
}

func newStubStore() *stubStore {
	return &stubStore{objects: make(map[string][]byte)}
}

func (s *stubStore) Upload(_ context.Context, key string, reader io.Reader, size int64, _ string, progress ports.ProgressFunc) error {
	if s.err != nil {
		return s.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if progress != nil {
		progress(int64(len(data)), size)
		s.progress = append(s.progress, int64(len(data)))
	}
	s.objects[key] = data
	return nil
}

func (s *stubStore) Open(_ context.Context, key string) (*domain.Photo, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	return &domain.Photo{Body: io.NopCloser(bytes.NewReader(data)), Size: int64(len(data))}, nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

type stubQueue struct {
	mu   sync.Mutex
	jobs []domain.CleanupJob
}

func (q *stubQueue) Enqueue(job domain.CleanupJob) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
}
