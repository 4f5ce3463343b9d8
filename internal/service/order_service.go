package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ice-club/storefront/internal/cache"
	"github.com/ice-club/storefront/internal/constants"
	"github.com/ice-club/storefront/internal/logger"
	"github.com/ice-club/storefront/internal/models"
	"github.com/ice-club/storefront/internal/queue"
	"github.com/ice-club/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// Mailer 订单邮件发送接口
type Mailer interface {
	SendOrderConfirmation(order *models.Order) error
	SendOrderStatusEmail(order *models.Order) error
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	sizeRepo    repository.SizeRepository
	cartStore   cache.CartStore
	queueClient *queue.Client
	mailer      Mailer
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	sizeRepo repository.SizeRepository,
	cartStore cache.CartStore,
	queueClient *queue.Client,
	mailer Mailer,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		sizeRepo:    sizeRepo,
		cartStore:   cartStore,
		queueClient: queueClient,
		mailer:      mailer,
	}
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	UserID      uint
	Name        string
	Email       string
	Phone       string
	Governorate string
	Address     string
}

// StockShortfallError 库存不足错误，携带可展示的行信息
type StockShortfallError struct {
	ProductName string
	Color       string
	Size        string
	Requested   int
	Available   int
}

// Error 返回面向用户的缺货提示
func (e *StockShortfallError) Error() string {
	label := e.ProductName
	if e.Color != "" && e.Color != constants.CartDefaultColor {
		label = fmt.Sprintf("%s (%s", label, e.Color)
		if e.Size != "" && e.Size != constants.CartDefaultSize {
			label = fmt.Sprintf("%s / %s", label, e.Size)
		}
		label += ")"
	} else if e.Size != "" && e.Size != constants.CartDefaultSize {
		label = fmt.Sprintf("%s (%s)", label, e.Size)
	}
	return fmt.Sprintf("only %d left in stock for %s, requested %d", e.Available, label, e.Requested)
}

// Unwrap 归入库存不足哨兵错误
func (e *StockShortfallError) Unwrap() error {
	return ErrInsufficientStock
}

// checkoutLine 结算中间行：购物车条目与定位到的库存行
type checkoutLine struct {
	key     string
	entry   models.CartEntry
	product *models.Product
	sizeRow *models.ProductSize
}

// Checkout 结算购物车：先整体校验库存，任一行不足则整单失败；
// 通过后创建订单快照、逐行扣减库存、发送确认邮件并清空购物车。
// 校验与扣减之间不在同一事务内，扣减本身是条件更新，库存不会为负。
func (s *OrderService) Checkout(ctx context.Context, input CheckoutInput) (*models.Order, error) {
	cart, err := s.cartStore.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, ErrCartEmpty
	}

	keys := make([]string, 0, len(cart))
	for key := range cart {
		keys = append(keys, key)
	}
	sort.Strings(keys)

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

	// 第一遍：逐行校验可售量，任一行不足直接终止
	lines := make([]checkoutLine, 0, len(cart))
	for _, key := range keys {
		entry := cart[key]
		product, ok := productMap[entry.ProductID]
		if !ok {
			// 商品已下架，条目随结算后清空一并丢弃
			continue
		}
		if entry.Quantity <= 0 {
			continue
		}
		sizeRow, err := s.sizeRepo.FindForPurchase(product.ID, entry.Color, entry.Size)
		if err != nil {
			return nil, err
		}
		if sizeRow != nil {
			if entry.Quantity > sizeRow.Stock {
				return nil, &StockShortfallError{
					ProductName: product.Name,
					Color:       entry.Color,
					Size:        entry.Size,
					Requested:   entry.Quantity,
					Available:   sizeRow.Stock,
				}
			}
		} else if entry.Quantity > product.Stock {
			return nil, &StockShortfallError{
				ProductName: product.Name,
				Color:       entry.Color,
				Size:        entry.Size,
				Requested:   entry.Quantity,
				Available:   product.Stock,
			}
		}
		lines = append(lines, checkoutLine{key: key, entry: entry, product: product, sizeRow: sizeRow})
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	// 创建订单与订单项快照
	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		unit := line.product.UnitPrice()
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.entry.Quantity))))
		productID := line.product.ID
		items = append(items, models.OrderItem{
			ProductID:       &productID,
			ProductName:     line.product.Name,
			Color:           line.entry.Color,
			Size:            line.entry.Size,
			Quantity:        line.entry.Quantity,
			PriceAtPurchase: unit,
		})
	}
	order := &models.Order{
		UserID:      input.UserID,
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Governorate: strings.TrimSpace(input.Governorate),
		Address:     strings.TrimSpace(input.Address),
		TotalPrice:  models.NewMoneyFromDecimal(total),
		Status:      constants.OrderStatusPending,
		Items:       items,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	// 第二遍：逐行扣减库存。条件更新在并发抢购时可能不生效，记录后继续。
	touched := make(map[uint]bool, len(lines))
	for _, line := range lines {
		if line.sizeRow != nil {
			affected, err := s.sizeRepo.DecrementStock(line.sizeRow.ID, line.entry.Quantity)
			if err != nil {
				return nil, err
			}
			if affected == 0 {
				logger.Warnw("checkout_size_decrement_noop",
					"order_id", order.ID,
					"size_id", line.sizeRow.ID,
					"quantity", line.entry.Quantity,
				)
			}
			touched[line.product.ID] = true
			continue
		}
		affected, err := s.productRepo.DecrementStock(line.product.ID, line.entry.Quantity)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			logger.Warnw("checkout_product_decrement_noop",
				"order_id", order.ID,
				"product_id", line.product.ID,
				"quantity", line.entry.Quantity,
			)
		}
	}
	for productID := range touched {
		if _, err := s.productRepo.RecomputeStock(productID); err != nil {
			logger.Warnw("checkout_stock_recompute_failed", "product_id", productID, "error", err)
		}
	}

	s.dispatchConfirmationEmail(order)

	// 结算成功后无条件清空购物车
	if err := s.cartStore.Clear(ctx, input.UserID); err != nil {
		logger.Warnw("checkout_cart_clear_failed", "user_id", input.UserID, "error", err)
	}

	return order, nil
}

// UpdateStatus 更新订单状态：状态发生变化时发送一次通知邮件，
// 签收（Delivered）同时标记订单完成。写入相同状态不触发通知。
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if !constants.IsValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.Status == status {
		return order, nil
	}

	fields := map[string]interface{}{"status": status}
	if status == constants.OrderStatusDelivered {
		fields["is_completed"] = true
	}
	if err := s.orderRepo.UpdateFields(orderID, fields); err != nil {
		return nil, err
	}
	order.Status = status
	if status == constants.OrderStatusDelivered {
		order.IsCompleted = true
	}

	s.dispatchStatusEmail(order)

	return order, nil
}

// GetByID 获取订单详情
func (s *OrderService) GetByID(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List 订单列表
func (s *OrderService) List(ctx context.Context, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

func (s *OrderService) dispatchConfirmationEmail(order *models.Order) {
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderConfirmationEmail(queue.OrderEmailPayload{OrderID: order.ID}); err != nil {
			logger.Warnw("order_confirmation_enqueue_failed", "order_id", order.ID, "error", err)
		}
		return
	}
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendOrderConfirmation(order); err != nil {
		logger.Warnw("order_confirmation_send_failed", "order_id", order.ID, "error", err)
	}
}

func (s *OrderService) dispatchStatusEmail(order *models.Order) {
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderEmailPayload{OrderID: order.ID}); err != nil {
			logger.Warnw("order_status_enqueue_failed", "order_id", order.ID, "error", err)
		}
		return
	}
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendOrderStatusEmail(order); err != nil {
		logger.Warnw("order_status_send_failed", "order_id", order.ID, "status", order.Status, "error", err)
	}
}
