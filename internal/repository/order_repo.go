package repository

import (
	"context"
	"errors"

	"digistore_v1/internal/model"

	"gorm.io/gorm"
)

// ==================== OrderRepository 订单仓库 ====================

// OrderRepository 订单仓库接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByIDWithItems(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, skip, limit int) ([]model.Order, error)
	// MarkPaid 单条 UPDATE 带状态守卫，返回受影响行数
	// 只有 pending 订单会被更新，重复支付不会改动 payment_id
	MarkPaid(ctx context.Context, id int64, paymentID string) (int64, error)
	// MarkCancelled 同样的守卫逻辑，pending → cancelled
	MarkCancelled(ctx context.Context, id int64) (int64, error)
	CreateItems(ctx context.Context, items []model.OrderItem) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByIDWithItems(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]model.Order, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var orders []model.Order
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) MarkPaid(ctx context.Context, id int64, paymentID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":     model.OrderStatusPaid,
			"payment_id": paymentID,
		})
	return result.RowsAffected, result.Error
}

func (r *orderRepository) MarkCancelled(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusPending).
		Update("status", model.OrderStatusCancelled)
	return result.RowsAffected, result.Error
}

func (r *orderRepository) CreateItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// ==================== CheckoutUnitOfWork 结算工作单元 ====================

// CheckoutUnitOfWork 结算工作单元（事务）
// 订单、订单行、购买记录的写入和购物车清空必须同生共死
type CheckoutUnitOfWork struct {
	db        *gorm.DB
	Orders    OrderRepository
	Purchases PurchaseRepository
	Cart      CartRepository
	Products  ProductRepository
}

// NewCheckoutUnitOfWork 创建结算工作单元
func NewCheckoutUnitOfWork(db *gorm.DB) *CheckoutUnitOfWork {
	return &CheckoutUnitOfWork{
		db:        db,
		Orders:    NewOrderRepository(db),
		Purchases: NewPurchaseRepository(db),
		Cart:      NewCartRepository(db),
		Products:  NewProductRepository(db),
	}
}

// Transaction 在单个数据库事务内执行 fn，任何错误都会整体回滚
func (u *CheckoutUnitOfWork) Transaction(ctx context.Context, fn func(uow *CheckoutUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &CheckoutUnitOfWork{
			db:        tx,
			Orders:    NewOrderRepository(tx),
			Purchases: NewPurchaseRepository(tx),
			Cart:      NewCartRepository(tx),
			Products:  NewProductRepository(tx),
		}
		return fn(txUow)
	})
}
