package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"social_chat_service/internal/member/domain"
)

// ErrMemberNotFound lookup miss
var ErrMemberNotFound = errors.New("member not found")

// MemberRepository persistence for registered accounts.
type MemberRepository interface {
	CreateUser(ctx context.Context, member domain.Member) error
	FindByMember(ctx context.Context, q domain.MemberQuery) (*domain.Member, error)
	// FindByLoginContact matches email, username or phone in one lookup.
	FindByLoginContact(ctx context.Context, contact string) (*domain.Member, error)
	SearchByUsername(ctx context.Context, query string) ([]domain.Member, error)
	UpdateMemberStatus(ctx context.Context, memberID string, status domain.MemberStatus) error
}

type memoryMemberRepository struct {
	mu      sync.RWMutex
	members []domain.Member
	nextID  int64
}

// NewMemoryMemberRepository create in-memory MemberRepository
func NewMemoryMemberRepository() MemberRepository {
	return &memoryMemberRepository{nextID: 1}
}

func (r *memoryMemberRepository) CreateUser(ctx context.Context, member domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	member.ID = r.nextID
	r.nextID++
	r.members = append(r.members, member)
	return nil
}

func matches(m domain.Member, q domain.MemberQuery) bool {
	if q.MemberID != nil && m.MemberID != *q.MemberID {
		return false
	}
	if q.Username != nil && m.Username != *q.Username {
		return false
	}
	if q.Email != nil && m.Email != *q.Email {
		return false
	}
	if q.Phone != nil && m.Phone != *q.Phone {
		return false
	}
	return true
}

func (r *memoryMemberRepository) FindByMember(ctx context.Context, q domain.MemberQuery) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.members {
		if matches(r.members[i], q) {
			m := r.members[i]
			return &m, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (r *memoryMemberRepository) FindByLoginContact(ctx context.Context, contact string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.members {
		m := r.members[i]
		if m.Email == contact || m.Username == contact || m.Phone == contact {
			return &m, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (r *memoryMemberRepository) SearchByUsername(ctx context.Context, query string) ([]domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	var out []domain.Member
	for i := range r.members {
		if strings.Contains(strings.ToLower(r.members[i].Username), needle) {
			out = append(out, r.members[i])
		}
	}
	return out, nil
}

func (r *memoryMemberRepository) UpdateMemberStatus(ctx context.Context, memberID string, status domain.MemberStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.members {
		if r.members[i].MemberID == memberID {
			r.members[i].Status = status
			return nil
		}
	}
	return ErrMemberNotFound
}
