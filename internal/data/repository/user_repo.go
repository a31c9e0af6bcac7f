package repository

import (
	"sync"
	"time"

	"bus-booking/internal/data/entity"
)

type UserRepository interface {
	Save(user *entity.User)
	FindByID(userID string) (*entity.User, bool)
	FindByEmail(email string) (*entity.User, bool)
}

type userRepository struct {
	mu      sync.RWMutex
	users   map[string]*entity.User
	byEmail map[string]string
}

func NewUserRepository() UserRepository {
	return &userRepository{
		users:   make(map[string]*entity.User),
		byEmail: make(map[string]string),
	}
}

func (r *userRepository) Save(user *entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *user
	r.users[user.UserID] = &copied
	r.byEmail[user.Email] = user.UserID
}

func (r *userRepository) FindByID(userID string) (*entity.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, false
	}
	copied := *user
	return &copied, true
}

func (r *userRepository) FindByEmail(email string) (*entity.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.byEmail[email]
	if !ok {
		return nil, false
	}
	user, ok := r.users[userID]
	if !ok {
		return nil, false
	}
	copied := *user
	return &copied, true
}

type SessionRepository interface {
	Save(session *entity.Session)
	// FindValidSession returns the session for a token when it exists and
	// has not expired. Expired sessions are evicted on discovery.
	FindValidSession(token string) (*entity.Session, bool)
	Delete(token string)
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{sessions: make(map[string]*entity.Session)}
}

func (r *sessionRepository) Save(session *entity.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *session
	r.sessions[session.Token] = &copied
}

func (r *sessionRepository) FindValidSession(token string) (*entity.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[token]
	if !ok {
		return nil, false
	}
	if session.ExpiresAt.Before(time.Now()) {
		delete(r.sessions, token)
		return nil, false
	}
	copied := *session
	return &copied, true
}

func (r *sessionRepository) Delete(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)
}
