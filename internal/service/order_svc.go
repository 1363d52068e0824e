package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"digistore_v1/internal/api/dto"
	"digistore_v1/internal/model"
	"digistore_v1/internal/repository"
)

// ==================== OrderService 订单服务 ====================

// OrderService 结算、支付与内容下发
type OrderService struct {
	uow       *repository.CheckoutUnitOfWork
	orderRepo repository.OrderRepository
	purchases repository.PurchaseRepository
}

// NewOrderService 创建订单服务
func NewOrderService(
	uow *repository.CheckoutUnitOfWork,
	orderRepo repository.OrderRepository,
	purchases repository.PurchaseRepository,
) *OrderService {
	return &OrderService{
		uow:       uow,
		orderRepo: orderRepo,
		purchases: purchases,
	}
}

// ==================== 结算 ====================

// Checkout 结算：购物车 → 订单
// 归属取当前用户与传入会话令牌的并集（登录前加购的匿名条目一并结算）。
// 订单、订单行、购买记录的写入和购物车清空在同一事务内提交，
// 任何一步失败整体回滚。行价格以事务内读到的当前价为快照。
func (s *OrderService) Checkout(ctx context.Context, userID int64, sessionID string) (*dto.OrderInfo, error) {
	owner := repository.CartOwner{UserID: userID, SessionID: sessionID}

	var orderID int64
	err := s.uow.Transaction(ctx, func(uow *repository.CheckoutUnitOfWork) error {
		cartItems, err := uow.Cart.ListByOwner(ctx, owner)
		if err != nil {
			return fmt.Errorf("读取购物车失败: %w", err)
		}
		if len(cartItems) == 0 {
			return ErrCartEmpty
		}

		// 逐行读当前价并累加，金额全程走精确小数
		total := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		for i := range cartItems {
			item := &cartItems[i]
			product, err := uow.Products.GetByID(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("读取商品失败: %w", err)
			}
			if product == nil {
				return ErrProductNotFound
			}
			if !product.IsActive {
				return fmt.Errorf("product %q is not available: %w", product.Title, ErrInvalidState)
			}

			qty := decimal.NewFromInt(int64(item.Quantity))
			total = total.Add(product.Price.Mul(qty))
			orderItems = append(orderItems, model.OrderItem{
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				PriceAtPurchase: product.Price,
			})
		}

		order := &model.Order{
			UserID:      userID,
			TotalAmount: total,
			Status:      model.OrderStatusPending,
		}
		if err := uow.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("创建订单失败: %w", err)
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := uow.Orders.CreateItems(ctx, orderItems); err != nil {
			return fmt.Errorf("创建订单行失败: %w", err)
		}

		purchases := make([]model.Purchase, len(orderItems))
		for i, item := range orderItems {
			purchases[i] = model.Purchase{
				UserID:    userID,
				OrderID:   order.ID,
				ProductID: item.ProductID,
			}
		}
		if err := uow.Purchases.CreateBatch(ctx, purchases); err != nil {
			return fmt.Errorf("创建购买记录失败: %w", err)
		}

		if err := uow.Cart.DeleteByOwner(ctx, owner); err != nil {
			return fmt.Errorf("清空购物车失败: %w", err)
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getOrderWithItems(ctx, orderID)
}

// ==================== 查询 ====================

// GetOrder 订单详情（仅本人）
func (s *OrderService) GetOrder(ctx context.Context, requesterID, orderID int64) (*dto.OrderInfo, error) {
	if _, err := s.ownedOrder(ctx, requesterID, orderID); err != nil {
		return nil, err
	}
	return s.getOrderWithItems(ctx, orderID)
}

// ListOrders 订单列表（仅本人）
func (s *OrderService) ListOrders(ctx context.Context, userID int64, skip, limit int) ([]dto.OrderInfo, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("查询订单列表失败: %w", err)
	}
	list := make([]dto.OrderInfo, len(orders))
	for i := range orders {
		list[i] = *toOrderInfo(&orders[i])
	}
	return list, nil
}

// ==================== 支付与取消 ====================

// Pay 模拟支付
// 状态守卫在单条 UPDATE 里完成：非 pending 的订单不会被改动，
// 重复支付不会换掉已有 payment_id
func (s *OrderService) Pay(ctx context.Context, requesterID, orderID int64) (*dto.OrderInfo, error) {
	order, err := s.ownedOrder(ctx, requesterID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPending {
		return nil, fmt.Errorf("order is already %s: %w", order.Status, ErrInvalidState)
	}

	paymentID := fmt.Sprintf("PAY_%d_%s", orderID, strings.ToUpper(uuid.NewString()[:8]))
	affected, err := s.orderRepo.MarkPaid(ctx, orderID, paymentID)
	if err != nil {
		return nil, fmt.Errorf("更新订单状态失败: %w", err)
	}
	if affected == 0 {
		// 与并发支付请求竞争失败，状态已离开 pending
		return nil, fmt.Errorf("order is no longer pending: %w", ErrInvalidState)
	}

	return s.getOrderWithItems(ctx, orderID)
}

// Cancel 取消订单，pending → cancelled
func (s *OrderService) Cancel(ctx context.Context, requesterID, orderID int64) (*dto.OrderInfo, error) {
	order, err := s.ownedOrder(ctx, requesterID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPending {
		return nil, fmt.Errorf("order is already %s: %w", order.Status, ErrInvalidState)
	}

	affected, err := s.orderRepo.MarkCancelled(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("更新订单状态失败: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("order is no longer pending: %w", ErrInvalidState)
	}

	return s.getOrderWithItems(ctx, orderID)
}

// ==================== 购买记录与内容 ====================

// ListPurchases 购买历史
func (s *OrderService) ListPurchases(ctx context.Context, userID int64, skip, limit int) ([]dto.PurchaseInfo, error) {
	purchases, err := s.purchases.ListByUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("查询购买记录失败: %w", err)
	}
	list := make([]dto.PurchaseInfo, len(purchases))
	for i, p := range purchases {
		list[i] = dto.PurchaseInfo{
			ID:          p.ID,
			OrderID:     p.OrderID,
			ProductID:   p.ProductID,
			PurchasedAt: p.PurchasedAt,
		}
	}
	return list, nil
}

// GetPurchaseContent 已支付订单的内容下发
func (s *OrderService) GetPurchaseContent(ctx context.Context, requesterID, orderID int64) ([]dto.PurchaseContentInfo, error) {
	order, err := s.ownedOrder(ctx, requesterID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPaid {
		return nil, ErrOrderNotPaid
	}

	purchases, err := s.purchases.ListByOrder(ctx, requesterID, orderID)
	if err != nil {
		return nil, fmt.Errorf("查询购买记录失败: %w", err)
	}

	list := make([]dto.PurchaseContentInfo, 0, len(purchases))
	for _, p := range purchases {
		if p.Product == nil {
			continue
		}
		list = append(list, dto.PurchaseContentInfo{
			ProductID:    p.ProductID,
			ProductTitle: p.Product.Title,
			ContentText:  p.Product.ContentText,
			PurchasedAt:  p.PurchasedAt,
		})
	}
	return list, nil
}

// ==================== 内部辅助 ====================

func (s *OrderService) ownedOrder(ctx context.Context, requesterID, orderID int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != requesterID {
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

func (s *OrderService) getOrderWithItems(ctx context.Context, orderID int64) (*dto.OrderInfo, error) {
	order, err := s.orderRepo.GetByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return toOrderInfo(order), nil
}

func toOrderInfo(order *model.Order) *dto.OrderInfo {
	info := &dto.OrderInfo{
		ID:          order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		PaymentID:   order.PaymentID,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	if len(order.Items) > 0 {
		info.Items = make([]dto.OrderItemInfo, len(order.Items))
		for i := range order.Items {
			item := &order.Items[i]
			itemInfo := dto.OrderItemInfo{
				ID:              item.ID,
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				PriceAtPurchase: item.PriceAtPurchase,
			}
			if item.Product != nil {
				itemInfo.Product = toProductInfo(item.Product)
			}
			info.Items[i] = itemInfo
		}
	}
	return info
}

// ==================== 错误定义 ====================

var (
	ErrCartEmpty     = fmt.Errorf("cart is empty: %w", ErrInvalidState)
	ErrOrderNotFound = fmt.Errorf("order not found: %w", ErrNotFound)
	ErrNotOrderOwner = fmt.Errorf("you can only access your own orders: %w", ErrForbidden)
	ErrOrderNotPaid  = fmt.Errorf("order must be paid to access content: %w", ErrInvalidState)
)
