package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"digistore_v1/internal/api/dto"
	"digistore_v1/internal/middleware"
	"digistore_v1/internal/model"
	"digistore_v1/internal/repository"
)

func newCatalogService(db *gorm.DB) *CatalogService {
	return NewCatalogService(repository.NewCategoryRepository(db), repository.NewProductRepository(db))
}

// ==================== 分类 ====================

func TestCatalogService_Categories(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newCatalogService(db)

	created, err := svc.CreateCategory(testCtx(), &dto.CreateCategoryRequest{
		Name:        "电子书",
		Description: "可下载内容",
	})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	assert.Equal(t, "电子书", created.Name)

	// 名称重复
	_, err = svc.CreateCategory(testCtx(), &dto.CreateCategoryRequest{Name: "电子书"})
	assert.ErrorIs(t, err, ErrCategoryExists)

	list, err := svc.ListCategories(testCtx())
	if err != nil {
		t.Fatalf("查询分类列表失败: %v", err)
	}
	assert.Len(t, list, 1)
}

// ==================== 商品 ====================

func TestCatalogService_CreateProduct(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newCatalogService(db)

	seller := seedUser(t, db, "seller@example.com")
	auth := &middleware.AuthContext{UserID: seller.ID}

	info, err := svc.CreateProduct(testCtx(), auth, &dto.CreateProductRequest{
		Title:       "Go 入门指南",
		Price:       decimal.RequireFromString("19.99"),
		ContentText: "第一章……",
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	assert.Equal(t, seller.ID, info.SellerID)
	assert.True(t, info.IsActive)
	assert.True(t, info.Price.Equal(decimal.RequireFromString("19.99")))

	// 价格必须为正
	_, err = svc.CreateProduct(testCtx(), auth, &dto.CreateProductRequest{
		Title:       "免费品",
		Price:       decimal.Zero,
		ContentText: "x",
	})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCatalogService_ListProducts_ActiveOnly(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newCatalogService(db)

	seller := seedUser(t, db, "seller@example.com")
	active := seedProduct(t, db, seller.ID, "在售", "10.00")
	hidden := seedProduct(t, db, seller.ID, "下架", "20.00")
	db.Model(&model.Product{}).Where("id = ?", hidden.ID).Update("is_active", false)

	list, err := svc.ListProducts(testCtx(), &dto.ListProductsRequest{Limit: 100})
	if err != nil {
		t.Fatalf("查询商品列表失败: %v", err)
	}
	if assert.Len(t, list, 1) {
		assert.Equal(t, active.ID, list[0].ID)
	}

	// 详情页下架商品仍可见
	got, err := svc.GetProduct(testCtx(), hidden.ID)
	if err != nil {
		t.Fatalf("查询商品失败: %v", err)
	}
	assert.False(t, got.IsActive)

	_, err = svc.GetProduct(testCtx(), hidden.ID+100)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_ListProducts_CategoryFilter(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newCatalogService(db)

	seller := seedUser(t, db, "seller@example.com")
	cat, err := svc.CreateCategory(testCtx(), &dto.CreateCategoryRequest{Name: "教程"})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}

	inCat := seedProduct(t, db, seller.ID, "分类内", "10.00")
	db.Model(&model.Product{}).Where("id = ?", inCat.ID).Update("category_id", cat.ID)
	seedProduct(t, db, seller.ID, "未分类", "20.00")

	list, err := svc.ListProducts(testCtx(), &dto.ListProductsRequest{CategoryID: cat.ID, Limit: 100})
	if err != nil {
		t.Fatalf("查询商品列表失败: %v", err)
	}
	if assert.Len(t, list, 1) {
		assert.Equal(t, inCat.ID, list[0].ID)
	}
}

func TestCatalogService_UpdateProduct_Ownership(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newCatalogService(db)

	seller := seedUser(t, db, "seller@example.com")
	other := seedUser(t, db, "other@example.com")
	product := seedProduct(t, db, seller.ID, "商品", "10.00")

	title := "改名"
	// 非卖家改不了
	_, err := svc.UpdateProduct(testCtx(), &middleware.AuthContext{UserID: other.ID}, product.ID, &dto.UpdateProductRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	// 卖家本人可改
	updated, err := svc.UpdateProduct(testCtx(), &middleware.AuthContext{UserID: seller.ID}, product.ID, &dto.UpdateProductRequest{Title: &title})
	if err != nil {
		t.Fatalf("更新商品失败: %v", err)
	}
	assert.Equal(t, "改名", updated.Title)

	// 管理员可代操作
	if err := svc.DeleteProduct(testCtx(), &middleware.AuthContext{UserID: other.ID, IsStaff: true}, product.ID); err != nil {
		t.Fatalf("管理员删除失败: %v", err)
	}
	_, err = svc.GetProduct(testCtx(), product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
