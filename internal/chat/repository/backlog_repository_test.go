package repository

import (
	"fmt"
	"sync"
	"testing"

	"social_chat_service/internal/chat/domain"

	"github.com/stretchr/testify/assert"
)

func TestBacklogRepository_DrainOnce(t *testing.T) {
	repo := NewMemoryBacklogRepository()

	repo.Append("bob", domain.ChatMessage{ID: "1", Content: "first"})
	repo.Append("bob", domain.ChatMessage{ID: "2", Content: "second"})

	t.Run("保留發送順序", func(t *testing.T) {
		queued := repo.Drain("bob")
		assert.Len(t, queued, 2)
		assert.Equal(t, "first", queued[0].Content)
		assert.Equal(t, "second", queued[1].Content)
	})

	t.Run("drain 之後清空", func(t *testing.T) {
		assert.Empty(t, repo.Drain("bob"))
	})
}

func TestBacklogRepository_PerAccount(t *testing.T) {
	repo := NewMemoryBacklogRepository()

	repo.Append("bob", domain.ChatMessage{ID: "1"})
	repo.Append("carol", domain.ChatMessage{ID: "2"})

	assert.Len(t, repo.Drain("bob"), 1)
	assert.Len(t, repo.Drain("carol"), 1)
}

// 路由和 drain 同時發生時訊息只能出現在其中一邊，不能不見
func TestBacklogRepository_ConcurrentAppendDrain(t *testing.T) {
	repo := NewMemoryBacklogRepository()

	const total = 100
	var wg sync.WaitGroup
	drained := make(chan []domain.ChatMessage, total)

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			repo.Append("bob", domain.ChatMessage{ID: fmt.Sprintf("%d", i)})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			drained <- repo.Drain("bob")
		}
	}()
	wg.Wait()
	close(drained)

	count := 0
	for batch := range drained {
		count += len(batch)
	}
	count += len(repo.Drain("bob"))

	assert.Equal(t, total, count)
}
