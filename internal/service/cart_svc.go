package service

import (
	"context"
	"fmt"

	"digistore_v1/internal/api/dto"
	"digistore_v1/internal/model"
	"digistore_v1/internal/repository"
)

// ==================== CartService 购物车服务 ====================

// CartService 购物车服务
// 归属规则：登录用户优先于会话令牌，两者都给时条目记在用户名下
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// AddItem 加入购物车
// 同一 (归属, 商品) 已有条目时数量累加，并发加购由唯一索引合并
func (s *CartService) AddItem(ctx context.Context, owner repository.CartOwner, productID int64, quantity int) (*dto.CartItemInfo, error) {
	if owner.IsEmpty() {
		return nil, ErrOwnerRequired
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}

	// 归属轴二选一：登录用户优先
	item := &model.CartItem{
		ProductID: productID,
		Quantity:  quantity,
	}
	if owner.UserID > 0 {
		item.UserID = owner.UserID
	} else {
		item.SessionID = owner.SessionID
	}

	if err := s.cartRepo.Upsert(ctx, item); err != nil {
		return nil, fmt.Errorf("写入购物车失败: %w", err)
	}

	// 合并更新后的数量以落库结果为准
	merged, err := s.cartRepo.GetByOwnerAndProduct(ctx, repository.CartOwner{
		UserID:    item.UserID,
		SessionID: item.SessionID,
	}, productID)
	if err != nil {
		return nil, fmt.Errorf("读取购物车失败: %w", err)
	}
	if merged == nil {
		return nil, fmt.Errorf("购物车条目丢失: %w", ErrNotFound)
	}
	merged.Product = product
	return toCartItemInfo(merged), nil
}

// ListItems 购物车条目列表
func (s *CartService) ListItems(ctx context.Context, owner repository.CartOwner) ([]dto.CartItemInfo, error) {
	if owner.IsEmpty() {
		return nil, ErrOwnerRequired
	}
	items, err := s.cartRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("查询购物车失败: %w", err)
	}
	list := make([]dto.CartItemInfo, len(items))
	for i := range items {
		list[i] = *toCartItemInfo(&items[i])
	}
	return list, nil
}

// RemoveItem 删除单个条目，只能删自己的
func (s *CartService) RemoveItem(ctx context.Context, owner repository.CartOwner, itemID int64) error {
	if owner.IsEmpty() {
		return ErrOwnerRequired
	}
	item, err := s.cartRepo.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("查询购物车失败: %w", err)
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	if !ownsCartItem(owner, item) {
		return fmt.Errorf("只能删除自己的购物车条目: %w", ErrForbidden)
	}
	return s.cartRepo.DeleteByID(ctx, itemID)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, owner repository.CartOwner) error {
	if owner.IsEmpty() {
		return ErrOwnerRequired
	}
	return s.cartRepo.DeleteByOwner(ctx, owner)
}

func ownsCartItem(owner repository.CartOwner, item *model.CartItem) bool {
	if owner.UserID > 0 && item.UserID == owner.UserID {
		return true
	}
	return owner.SessionID != "" && item.SessionID == owner.SessionID
}

func toCartItemInfo(item *model.CartItem) *dto.CartItemInfo {
	info := &dto.CartItemInfo{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		SessionID: item.SessionID,
		CreatedAt: item.CreatedAt,
	}
	if item.Product != nil {
		info.Product = toProductInfo(item.Product)
	}
	return info
}

// ==================== 错误定义 ====================

var (
	ErrOwnerRequired    = fmt.Errorf("either authentication or session_id is required: %w", ErrInvalidArgument)
	ErrInvalidQuantity  = fmt.Errorf("quantity must be greater than zero: %w", ErrInvalidArgument)
	ErrProductInactive  = fmt.Errorf("product is not active: %w", ErrInvalidState)
	ErrCartItemNotFound = fmt.Errorf("cart item not found: %w", ErrNotFound)
)
