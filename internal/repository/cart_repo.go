package repository

import (
	"context"
	"errors"
	"time"

	"digistore_v1/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ==================== CartOwner 归属轴 ====================

// CartOwner 购物车归属：登录用户 ID 或匿名会话令牌
// 两者都填时按并集查询（登录前后加购的条目在结算时合并处理）
type CartOwner struct {
	UserID    int64
	SessionID string
}

// IsEmpty 归属轴是否为空
func (o CartOwner) IsEmpty() bool {
	return o.UserID == 0 && o.SessionID == ""
}

func (o CartOwner) where(query *gorm.DB) *gorm.DB {
	switch {
	case o.UserID > 0 && o.SessionID != "":
		return query.Where("user_id = ? OR session_id = ?", o.UserID, o.SessionID)
	case o.UserID > 0:
		return query.Where("user_id = ?", o.UserID)
	default:
		return query.Where("session_id = ?", o.SessionID)
	}
}

// ==================== CartRepository 购物车仓库 ====================

// CartRepository 购物车仓库接口
type CartRepository interface {
	// Upsert 新增条目；(owner, product) 已存在时数量累加
	Upsert(ctx context.Context, item *model.CartItem) error
	GetByID(ctx context.Context, id int64) (*model.CartItem, error)
	GetByOwnerAndProduct(ctx context.Context, owner CartOwner, productID int64) (*model.CartItem, error)
	ListByOwner(ctx context.Context, owner CartOwner) ([]model.CartItem, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteByOwner(ctx context.Context, owner CartOwner) error
	// DeleteStaleSessions 清理过期的匿名会话条目
	DeleteStaleSessions(ctx context.Context, before time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Upsert(ctx context.Context, item *model.CartItem) error {
	// 依赖 (user_id, session_id, product_id) 唯一索引，
	// 并发加购同一商品时在数据库侧合并为数量累加
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "session_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", item.Quantity),
		}),
	}).Create(item).Error
}

func (r *cartRepository) GetByID(ctx context.Context, id int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) GetByOwnerAndProduct(ctx context.Context, owner CartOwner, productID int64) (*model.CartItem, error) {
	var item model.CartItem
	query := owner.where(r.db.WithContext(ctx)).Where("product_id = ?", productID)
	err := query.First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) ListByOwner(ctx context.Context, owner CartOwner) ([]model.CartItem, error) {
	if owner.IsEmpty() {
		return nil, nil
	}
	var items []model.CartItem
	query := owner.where(r.db.WithContext(ctx).Preload("Product"))
	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *cartRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.CartItem{}, id).Error
}

func (r *cartRepository) DeleteByOwner(ctx context.Context, owner CartOwner) error {
	if owner.IsEmpty() {
		return nil
	}
	return owner.where(r.db.WithContext(ctx)).Delete(&model.CartItem{}).Error
}

func (r *cartRepository) DeleteStaleSessions(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = 0 AND session_id <> '' AND created_at < ?", before).
		Delete(&model.CartItem{})
	return result.RowsAffected, result.Error
}
