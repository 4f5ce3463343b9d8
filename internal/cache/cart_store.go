package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ice-club/storefront/internal/models"
)

// CartStore 购物车会话存储接口
type CartStore interface {
	Get(ctx context.Context, userID uint) (models.Cart, error)
	Save(ctx context.Context, userID uint, cart models.Cart) error
	Clear(ctx context.Context, userID uint) error
}

func cartKey(userID uint) string {
	return fmt.Sprintf("cart:%d", userID)
}

// RedisCartStore 基于 Redis 的购物车存储，每个用户一个 JSON blob
type RedisCartStore struct{}

// NewRedisCartStore 创建 Redis 购物车存储
func NewRedisCartStore() *RedisCartStore {
	return &RedisCartStore{}
}

// Get 读取购物车，条目结构异常时逐条跳过
func (s *RedisCartStore) Get(ctx context.Context, userID uint) (models.Cart, error) {
	var raw map[string]json.RawMessage
	found, err := GetJSON(ctx, cartKey(userID), &raw)
	if err != nil {
		return nil, err
	}
	if !found {
		return models.Cart{}, nil
	}
	cart := make(models.Cart, len(raw))
	for key, payload := range raw {
		var entry models.CartEntry
		if err := json.Unmarshal(payload, &entry); err != nil {
			continue
		}
		if entry.ProductID == 0 || entry.Quantity <= 0 {
			continue
		}
		cart[key] = entry
	}
	return cart, nil
}

// Save 整体覆盖写入购物车（last-write-wins）
func (s *RedisCartStore) Save(ctx context.Context, userID uint, cart models.Cart) error {
	if len(cart) == 0 {
		return Del(ctx, cartKey(userID))
	}
	return SetJSON(ctx, cartKey(userID), cart, 0)
}

// Clear 清空购物车
func (s *RedisCartStore) Clear(ctx context.Context, userID uint) error {
	return Del(ctx, cartKey(userID))
}

// MemoryCartStore 进程内购物车存储，Redis 未启用时使用
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[uint]models.Cart
}

// NewMemoryCartStore 创建内存购物车存储
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[uint]models.Cart)}
}

// Get 读取购物车副本
func (s *MemoryCartStore) Get(ctx context.Context, userID uint) (models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.carts[userID]
	if !ok {
		return models.Cart{}, nil
	}
	cart := make(models.Cart, len(stored))
	for key, entry := range stored {
		if entry.ProductID == 0 || entry.Quantity <= 0 {
			continue
		}
		cart[key] = entry
	}
	return cart, nil
}

// Save 整体覆盖写入购物车
func (s *MemoryCartStore) Save(ctx context.Context, userID uint, cart models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(cart) == 0 {
		delete(s.carts, userID)
		return nil
	}
	copied := make(models.Cart, len(cart))
	for key, entry := range cart {
		copied[key] = entry
	}
	s.carts[userID] = copied
	return nil
}

// Clear 清空购物车
func (s *MemoryCartStore) Clear(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

// NewCartStore 根据 Redis 启用状态选择购物车存储
func NewCartStore() CartStore {
	if Enabled() {
		return NewRedisCartStore()
	}
	return NewMemoryCartStore()
}
