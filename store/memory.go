package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nevta-digital/nevta-api/models"
)

// MemoryStore keeps everything in process memory. It backs local development
// (STORE_DRIVER=memory) and tests.
type MemoryStore struct {
	mu            sync.RWMutex
	seq           int64
	users         map[string]*models.User
	qrs           map[string]models.UPIQR
	sessions      map[string]*models.Session
	occasions     map[string]*models.Occasion
	contributions map[string]*models.Contribution
	order         map[string]int64 // insertion order, breaks timestamp ties
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]*models.User),
		qrs:           make(map[string]models.UPIQR),
		sessions:      make(map[string]*models.Session),
		occasions:     make(map[string]*models.Occasion),
		contributions: make(map[string]*models.Contribution),
		order:         make(map[string]int64),
	}
}

func (m *MemoryStore) next(id string) {
	m.seq++
	m.order[id] = m.seq
}

// ============================================================================
// USERS
// ============================================================================

func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Mobile == user.Mobile || u.LoginID == user.LoginID {
			return ErrConflict
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MemoryStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.userCopy(u), nil
}

func (m *MemoryStore) GetUserByLoginID(_ context.Context, loginID string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.LoginID == loginID {
			return m.userCopy(u), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) userCopy(u *models.User) *models.User {
	cp := *u
	_, cp.HasUPIQR = m.qrs[u.ID]
	return &cp
}

func (m *MemoryStore) updateUser(id string, fn func(u *models.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	fn(u)
	return nil
}

func (m *MemoryStore) UpdateUserName(_ context.Context, id, name string) error {
	return m.updateUser(id, func(u *models.User) { u.Name = name })
}

func (m *MemoryStore) UpdateUserLanguage(_ context.Context, id, language string) error {
	return m.updateUser(id, func(u *models.User) { u.PreferredLanguage = language })
}

func (m *MemoryStore) UpdatePasswordHash(_ context.Context, id, hash string) error {
	return m.updateUser(id, func(u *models.User) { u.PasswordHash = hash })
}

func (m *MemoryStore) SetTOTP(_ context.Context, id, secret string, enabled bool) error {
	return m.updateUser(id, func(u *models.User) {
		u.TOTPSecret = secret
		u.TOTPEnabled = enabled
	})
}

func (m *MemoryStore) SetUPIQR(_ context.Context, id string, qr *models.UPIQR) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	if qr == nil {
		delete(m.qrs, id)
		return nil
	}
	m.qrs[id] = *qr
	return nil
}

func (m *MemoryStore) GetUPIQR(_ context.Context, id string) (*models.UPIQR, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	qr, ok := m.qrs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &qr, nil
}

func (m *MemoryStore) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	for oid, o := range m.occasions {
		if o.OwnerID == id {
			m.deleteOccasionLocked(oid)
		}
	}
	for token, s := range m.sessions {
		if s.UserID == id {
			delete(m.sessions, token)
		}
	}
	delete(m.qrs, id)
	delete(m.users, id)
	return nil
}

// ============================================================================
// SESSIONS
// ============================================================================

func (m *MemoryStore) CreateSession(_ context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[session.RefreshToken]; ok {
		return ErrConflict
	}
	cp := *session
	m.sessions[session.RefreshToken] = &cp
	return nil
}

func (m *MemoryStore) GetSession(_ context.Context, refreshToken string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[refreshToken]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) DeleteUserSessions(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for token, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, token)
		}
	}
	return nil
}

func (m *MemoryStore) DeleteExpiredSessions(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for token, s := range m.sessions {
		if s.ExpiresAt.Before(before) {
			delete(m.sessions, token)
			n++
		}
	}
	return n, nil
}

// ============================================================================
// OCCASIONS
// ============================================================================

func (m *MemoryStore) CreateOccasion(_ context.Context, occasion *models.Occasion) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[occasion.OwnerID]; !ok {
		return ErrNotFound
	}
	cp := *occasion
	m.occasions[occasion.ID] = &cp
	m.next(occasion.ID)
	return nil
}

func (m *MemoryStore) GetOccasion(_ context.Context, ownerID, id string) (*models.Occasion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.occasions[id]
	if !ok || o.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *MemoryStore) ListOccasions(_ context.Context, ownerID string) ([]models.Occasion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	occasions := []models.Occasion{}
	for _, o := range m.occasions {
		if o.OwnerID == ownerID {
			occasions = append(occasions, *o)
		}
	}
	sort.Slice(occasions, func(i, j int) bool {
		a, b := occasions[i], occasions[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return m.order[a.ID] > m.order[b.ID]
	})
	return occasions, nil
}

func (m *MemoryStore) DeleteOccasion(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.occasions[id]
	if !ok || o.OwnerID != ownerID {
		return ErrNotFound
	}
	m.deleteOccasionLocked(id)
	return nil
}

func (m *MemoryStore) deleteOccasionLocked(id string) {
	for cid, c := range m.contributions {
		if c.OccasionID == id {
			delete(m.contributions, cid)
			delete(m.order, cid)
		}
	}
	delete(m.occasions, id)
	delete(m.order, id)
}

// ============================================================================
// CONTRIBUTIONS
// ============================================================================

func (m *MemoryStore) CreateContribution(_ context.Context, contribution *models.Contribution) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.occasions[contribution.OccasionID]; !ok {
		return ErrNotFound
	}
	cp := *contribution
	m.contributions[contribution.ID] = &cp
	m.next(contribution.ID)
	return nil
}

func (m *MemoryStore) ListContributions(_ context.Context, occasionID string) ([]models.Contribution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	contributions := []models.Contribution{}
	for _, c := range m.contributions {
		if c.OccasionID == occasionID {
			contributions = append(contributions, *c)
		}
	}
	sort.Slice(contributions, func(i, j int) bool {
		a, b := contributions[i], contributions[j]
		if !a.ContributedAt.Equal(b.ContributedAt) {
			return a.ContributedAt.After(b.ContributedAt)
		}
		return m.order[a.ID] > m.order[b.ID]
	})
	return contributions, nil
}

func (m *MemoryStore) DeleteContribution(_ context.Context, occasionID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contributions[id]
	if !ok || c.OccasionID != occasionID {
		return ErrNotFound
	}
	delete(m.contributions, id)
	delete(m.order, id)
	return nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }
