package repository

import (
	"sort"
	"sync"
)

// FriendRepository confirmed friendships plus incoming pending requests.
// Invariants held under one mutex: friendship is symmetric, at most one
// pending edge per ordered pair, and no pending edge survives between
// accounts that are already friends.
type FriendRepository interface {
	// AddRequest adds the pending edge from->to. Returns false (silent
	// no-op) for duplicates, already-friends pairs and self requests.
	AddRequest(from, to string) bool
	// Accept converts the from->to request into a symmetric friendship and
	// removes pending edges in both directions. Lenient: no pending edge
	// is required to exist beforehand.
	Accept(from, to string)
	// Unfriend removes both friendship directions, idempotently.
	Unfriend(from, to string)
	// FriendsOf confirmed friends, sorted; empty for unknown accounts.
	FriendsOf(accountID string) []string
	// PendingFor requesters with a pending edge towards accountID, sorted.
	PendingFor(accountID string) []string
	// IsFriend symmetric friendship query.
	IsFriend(a, b string) bool
}

type memoryFriendRepository struct {
	mu      sync.RWMutex
	friends map[string]map[string]struct{}
	// target -> set of requesters
	requests map[string]map[string]struct{}
}

// NewMemoryFriendRepository create an in-memory FriendRepository
func NewMemoryFriendRepository() FriendRepository {
	return &memoryFriendRepository{
		friends:  make(map[string]map[string]struct{}),
		requests: make(map[string]map[string]struct{}),
	}
}

func (r *memoryFriendRepository) AddRequest(from, to string) bool {
	if from == to {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isFriendLocked(from, to) {
		return false
	}
	if _, ok := r.requests[to][from]; ok {
		return false
	}

	if r.requests[to] == nil {
		r.requests[to] = make(map[string]struct{})
	}
	r.requests[to][from] = struct{}{}
	return true
}

func (r *memoryFriendRepository) Accept(from, to string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.friends[to] == nil {
		r.friends[to] = make(map[string]struct{})
	}
	if r.friends[from] == nil {
		r.friends[from] = make(map[string]struct{})
	}
	r.friends[to][from] = struct{}{}
	r.friends[from][to] = struct{}{}

	// 兩個方向的 pending edge 都要清掉，朋友關係成立後不允許殘留
	delete(r.requests[to], from)
	delete(r.requests[from], to)
}

func (r *memoryFriendRepository) Unfriend(from, to string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.friends[from], to)
	delete(r.friends[to], from)
}

func (r *memoryFriendRepository) FriendsOf(accountID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.friends[accountID]))
	for friend := range r.friends[accountID] {
		out = append(out, friend)
	}
	sort.Strings(out)
	return out
}

func (r *memoryFriendRepository) PendingFor(accountID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.requests[accountID]))
	for requester := range r.requests[accountID] {
		out = append(out, requester)
	}
	sort.Strings(out)
	return out
}

func (r *memoryFriendRepository) IsFriend(a, b string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isFriendLocked(a, b)
}

func (r *memoryFriendRepository) isFriendLocked(a, b string) bool {
	if _, ok := r.friends[a][b]; ok {
		return true
	}
	_, ok := r.friends[b][a]
	return ok
}
