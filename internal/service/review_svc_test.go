package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"digistore_v1/internal/api/dto"
	"digistore_v1/internal/middleware"
	"digistore_v1/internal/model"
	"digistore_v1/internal/repository"
)

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewProductRepository(db),
		repository.NewPurchaseRepository(db),
	)
}

// seedPurchase 直接落一条购买记录，绕过完整结算流程
func seedPurchase(t *testing.T, db *gorm.DB, userID, productID int64) {
	t.Helper()

	order := &model.Order{UserID: userID, Status: model.OrderStatusPaid}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("创建测试订单失败: %v", err)
	}
	purchase := &model.Purchase{UserID: userID, ProductID: productID, OrderID: order.ID}
	if err := db.Create(purchase).Error; err != nil {
		t.Fatalf("创建购买记录失败: %v", err)
	}
}

// ==================== 创建评价 ====================

func TestReviewService_Create(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newReviewService(db)

	buyer := seedUser(t, db, "buyer@example.com")
	seller := seedUser(t, db, "seller@example.com")
	product := seedProduct(t, db, seller.ID, "商品", "10.00")
	seedPurchase(t, db, buyer.ID, product.ID)

	review, err := svc.Create(testCtx(), buyer.ID, product.ID, &dto.CreateReviewRequest{
		Rating:  5,
		Comment: "很好",
	})
	if err != nil {
		t.Fatalf("创建评价失败: %v", err)
	}
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "很好", review.Comment)
	assert.Equal(t, buyer.ID, review.UserID)
}

func TestReviewService_Create_Guards(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newReviewService(db)

	buyer := seedUser(t, db, "buyer@example.com")
	stranger := seedUser(t, db, "stranger@example.com")
	seller := seedUser(t, db, "seller@example.com")
	product := seedProduct(t, db, seller.ID, "商品", "10.00")
	seedPurchase(t, db, buyer.ID, product.ID)

	// 商品不存在
	_, err := svc.Create(testCtx(), buyer.ID, product.ID+100, &dto.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrProductNotFound)

	// 评分越界
	_, err = svc.Create(testCtx(), buyer.ID, product.ID, &dto.CreateReviewRequest{Rating: 0})
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.Create(testCtx(), buyer.ID, product.ID, &dto.CreateReviewRequest{Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)

	// 未购买不可评价
	_, err = svc.Create(testCtx(), stranger.ID, product.ID, &dto.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, err, ErrNotPurchased)

	// 重复评价
	if _, err := svc.Create(testCtx(), buyer.ID, product.ID, &dto.CreateReviewRequest{Rating: 4}); err != nil {
		t.Fatalf("首次评价失败: %v", err)
	}
	_, err = svc.Create(testCtx(), buyer.ID, product.ID, &dto.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.ErrorIs(t, err, ErrConflict)
}

// ==================== 列表 ====================

func TestReviewService_ListByProduct(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newReviewService(db)

	b1 := seedUser(t, db, "b1@example.com")
	b2 := seedUser(t, db, "b2@example.com")
	seller := seedUser(t, db, "seller@example.com")
	product := seedProduct(t, db, seller.ID, "商品", "10.00")
	seedPurchase(t, db, b1.ID, product.ID)
	seedPurchase(t, db, b2.ID, product.ID)

	if _, err := svc.Create(testCtx(), b1.ID, product.ID, &dto.CreateReviewRequest{Rating: 5}); err != nil {
		t.Fatalf("创建评价失败: %v", err)
	}
	if _, err := svc.Create(testCtx(), b2.ID, product.ID, &dto.CreateReviewRequest{Rating: 3}); err != nil {
		t.Fatalf("创建评价失败: %v", err)
	}

	reviews, err := svc.ListByProduct(testCtx(), product.ID, 0, 100)
	if err != nil {
		t.Fatalf("查询评价列表失败: %v", err)
	}
	assert.Len(t, reviews, 2)

	_, err = svc.ListByProduct(testCtx(), product.ID+100, 0, 100)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// ==================== 更新与删除 ====================

func TestReviewService_UpdateAndDelete(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newReviewService(db)

	buyer := seedUser(t, db, "buyer@example.com")
	other := seedUser(t, db, "other@example.com")
	seller := seedUser(t, db, "seller@example.com")
	product := seedProduct(t, db, seller.ID, "商品", "10.00")
	seedPurchase(t, db, buyer.ID, product.ID)

	review, err := svc.Create(testCtx(), buyer.ID, product.ID, &dto.CreateReviewRequest{Rating: 4, Comment: "还行"})
	if err != nil {
		t.Fatalf("创建评价失败: %v", err)
	}

	owner := &middleware.AuthContext{UserID: buyer.ID}
	notOwner := &middleware.AuthContext{UserID: other.ID}
	staff := &middleware.AuthContext{UserID: other.ID, IsStaff: true}

	// 非作者改不了
	rating := 5
	_, err = svc.Update(testCtx(), notOwner, review.ID, &dto.UpdateReviewRequest{Rating: &rating})
	assert.ErrorIs(t, err, ErrNotReviewOwner)

	// 作者可改，未给的字段保持原值
	updated, err := svc.Update(testCtx(), owner, review.ID, &dto.UpdateReviewRequest{Rating: &rating})
	if err != nil {
		t.Fatalf("更新评价失败: %v", err)
	}
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "还行", updated.Comment)

	// 越界评分
	bad := 9
	_, err = svc.Update(testCtx(), owner, review.ID, &dto.UpdateReviewRequest{Rating: &bad})
	assert.ErrorIs(t, err, ErrInvalidRating)

	// 非作者删不了，管理员可以
	err = svc.Delete(testCtx(), notOwner, review.ID)
	assert.ErrorIs(t, err, ErrNotReviewOwner)
	if err := svc.Delete(testCtx(), staff, review.ID); err != nil {
		t.Fatalf("管理员删除失败: %v", err)
	}

	err = svc.Delete(testCtx(), owner, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
