package service

import (
	"context"
	"sort"
	"strings"

	"github.com/ice-club/storefront/internal/cache"
	"github.com/ice-club/storefront/internal/constants"
	"github.com/ice-club/storefront/internal/logger"
	"github.com/ice-club/storefront/internal/models"
	"github.com/ice-club/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService 购物车服务
type CartService struct {
	store       cache.CartStore
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(store cache.CartStore, productRepo repository.ProductRepository) *CartService {
	return &CartService{store: store, productRepo: productRepo}
}

// CartViewItem 购物车展示行
type CartViewItem struct {
	Key         string       `json:"key"`
	ProductID   uint         `json:"product_id"`
	ProductName string       `json:"product_name"`
	Image       string       `json:"image"`
	Color       string       `json:"color"`
	Size        string       `json:"size"`
	Quantity    int          `json:"quantity"`
	UnitPrice   models.Money `json:"unit_price"`
	Subtotal    models.Money `json:"subtotal"`
}

// CartView 购物车展示结果
type CartView struct {
	Items []CartViewItem `json:"items"`
	Total models.Money   `json:"total"`
	Count int            `json:"count"`
}

// Add 加入购物车：同键累加数量，新键数量为 1
func (s *CartService) Add(ctx context.Context, userID, productID uint, color, size string) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	color = strings.TrimSpace(color)
	if color == "" {
		color = constants.CartDefaultColor
	}
	size = strings.TrimSpace(size)
	if size == "" {
		size = constants.CartDefaultSize
	}

	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}

	key := models.CartItemKey(productID, color, size)
	if entry, ok := cart[key]; ok {
		entry.Quantity++
		cart[key] = entry
	} else {
		cart[key] = models.CartEntry{
			ProductID: productID,
			Quantity:  1,
			Color:     color,
			Size:      size,
		}
	}

	return s.store.Save(ctx, userID, cart)
}

// Update 调整数量：increase 加一，decrease 减一，数量归零即移除
func (s *CartService) Update(ctx context.Context, userID uint, key, action string) error {
	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	entry, ok := cart[key]
	if !ok {
		return ErrCartItemNotFound
	}

	switch action {
	case constants.CartActionIncrease:
		entry.Quantity++
		cart[key] = entry
	case constants.CartActionDecrease:
		entry.Quantity--
		if entry.Quantity <= 0 {
			delete(cart, key)
		} else {
			cart[key] = entry
		}
	default:
		return ErrInvalidCartAction
	}

	return s.store.Save(ctx, userID, cart)
}

// Remove 移除购物车条目
func (s *CartService) Remove(ctx context.Context, userID uint, key string) error {
	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if _, ok := cart[key]; !ok {
		return ErrCartItemNotFound
	}
	delete(cart, key)
	return s.store.Save(ctx, userID, cart)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.store.Clear(ctx, userID)
}

// View 购物车详情：关联商品计价，商品已删除的条目跳过并在回写时丢弃
func (s *CartService) View(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: []CartViewItem{}, Total: models.NewMoneyFromDecimal(decimal.Zero)}
	if len(cart) == 0 {
		return view, nil
	}

	ids := make([]uint, 0, len(cart))
	seen := make(map[uint]bool, len(cart))
	for _, entry := range cart {
		if !seen[entry.ProductID] {
			seen[entry.ProductID] = true
			ids = append(ids, entry.ProductID)
		}
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uint]*models.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	keys := make([]string, 0, len(cart))
	for key := range cart {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pruned := false
	total := decimal.Zero
	for _, key := range keys {
		entry := cart[key]
		product, ok := productMap[entry.ProductID]
		if !ok {
			delete(cart, key)
			pruned = true
			continue
		}
		unit := product.UnitPrice()
		subtotal := unit.Mul(decimal.NewFromInt(int64(entry.Quantity)))
		view.Items = append(view.Items, CartViewItem{
			Key:         key,
			ProductID:   product.ID,
			ProductName: product.Name,
			Image:       product.MainImage(),
			Color:       entry.Color,
			Size:        entry.Size,
			Quantity:    entry.Quantity,
			UnitPrice:   unit,
			Subtotal:    models.NewMoneyFromDecimal(subtotal),
		})
		view.Count += entry.Quantity
		total = total.Add(subtotal)
	}
	view.Total = models.NewMoneyFromDecimal(total)

	if pruned {
		if err := s.store.Save(ctx, userID, cart); err != nil {
			logger.Warnw("cart_prune_save_failed", "user_id", userID, "error", err)
		}
	}

	return view, nil
}

// Count 购物车内商品总件数
func (s *CartService) Count(ctx context.Context, userID uint) (int, error) {
	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range cart {
		count += entry.Quantity
	}
	return count, nil
}
