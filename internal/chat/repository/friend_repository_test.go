package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendRepository_AddRequest(t *testing.T) {
	repo := NewMemoryFriendRepository()

	t.Run("建立 pending edge", func(t *testing.T) {
		assert.True(t, repo.AddRequest("alice", "bob"))
		assert.Equal(t, []string{"alice"}, repo.PendingFor("bob"))
	})

	t.Run("重複請求是 no-op", func(t *testing.T) {
		assert.False(t, repo.AddRequest("alice", "bob"))
		assert.Equal(t, []string{"alice"}, repo.PendingFor("bob"))
	})

	t.Run("不能加自己", func(t *testing.T) {
		assert.False(t, repo.AddRequest("alice", "alice"))
	})

	t.Run("已經是朋友就拒絕", func(t *testing.T) {
		repo.Accept("alice", "bob")
		assert.False(t, repo.AddRequest("alice", "bob"))
		assert.False(t, repo.AddRequest("bob", "alice"))
	})
}

func TestFriendRepository_Accept(t *testing.T) {
	repo := NewMemoryFriendRepository()

	t.Run("朋友關係是雙向的", func(t *testing.T) {
		repo.AddRequest("alice", "bob")
		repo.Accept("alice", "bob")

		assert.True(t, repo.IsFriend("alice", "bob"))
		assert.True(t, repo.IsFriend("bob", "alice"))
		assert.Equal(t, []string{"bob"}, repo.FriendsOf("alice"))
		assert.Equal(t, []string{"alice"}, repo.FriendsOf("bob"))
	})

	t.Run("成立後兩個方向的 pending 都清掉", func(t *testing.T) {
		assert.Empty(t, repo.PendingFor("alice"))
		assert.Empty(t, repo.PendingFor("bob"))
	})

	t.Run("沒有 pending 也可以 accept", func(t *testing.T) {
		repo.Accept("carol", "dave")
		assert.True(t, repo.IsFriend("carol", "dave"))
	})

	t.Run("交叉的 pending 一起清掉", func(t *testing.T) {
		repo.AddRequest("eve", "frank")
		repo.AddRequest("frank", "eve")
		repo.Accept("eve", "frank")

		assert.Empty(t, repo.PendingFor("eve"))
		assert.Empty(t, repo.PendingFor("frank"))
	})
}

func TestFriendRepository_Unfriend(t *testing.T) {
	repo := NewMemoryFriendRepository()
	repo.Accept("alice", "bob")

	repo.Unfriend("alice", "bob")
	assert.False(t, repo.IsFriend("alice", "bob"))
	assert.False(t, repo.IsFriend("bob", "alice"))
	assert.Empty(t, repo.FriendsOf("alice"))

	// 再解除一次不會 panic
	repo.Unfriend("alice", "bob")
	repo.Unfriend("ghost", "nobody")
}

func TestFriendRepository_FriendsOfSorted(t *testing.T) {
	repo := NewMemoryFriendRepository()
	repo.Accept("carol", "alice")
	repo.Accept("bob", "alice")
	repo.Accept("dave", "alice")

	assert.Equal(t, []string{"bob", "carol", "dave"}, repo.FriendsOf("alice"))
}

func TestFriendRepository_UnknownAccount(t *testing.T) {
	repo := NewMemoryFriendRepository()
	assert.Empty(t, repo.FriendsOf("ghost"))
	assert.Empty(t, repo.PendingFor("ghost"))
	assert.False(t, repo.IsFriend("ghost", "nobody"))
}
