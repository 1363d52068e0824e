package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"digistore_v1/internal/api/dto"
	"digistore_v1/internal/middleware"
	"digistore_v1/internal/model"
	"digistore_v1/internal/repository"
)

func newUserService(db *gorm.DB) *UserService {
	tm := middleware.NewTokenManager(middleware.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenTTL: time.Hour,
		Issuer:         "digistore-test",
	})
	return NewUserService(repository.NewUserRepository(db), tm)
}

// ==================== 注册 ====================

func TestUserService_Register(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newUserService(db)

	info, err := svc.Register(testCtx(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	assert.Equal(t, "alice@example.com", info.Email)
	assert.True(t, info.IsActive)
	assert.False(t, info.IsStaff)

	// 明文密码不落库
	var user model.User
	db.First(&user, info.ID)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123"))
	assert.NoError(t, err)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newUserService(db)

	req := &dto.RegisterRequest{Email: "alice@example.com", Password: "secret123"}
	if _, err := svc.Register(testCtx(), req); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}

	_, err := svc.Register(testCtx(), req)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.ErrorIs(t, err, ErrConflict)
}

// ==================== 登录 ====================

func TestUserService_Login(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newUserService(db)

	if _, err := svc.Register(testCtx(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	resp, err := svc.Login(testCtx(), &dto.LoginRequest{
		Username: "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)

	// 密码错误
	_, err = svc.Login(testCtx(), &dto.LoginRequest{
		Username: "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 用户不存在与密码错误返回同一错误
	_, err = svc.Login(testCtx(), &dto.LoginRequest{
		Username: "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Login_DisabledUser(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newUserService(db)

	info, err := svc.Register(testCtx(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	db.Model(&model.User{}).Where("id = ?", info.ID).Update("is_active", false)

	_, err = svc.Login(testCtx(), &dto.LoginRequest{
		Username: "alice@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUserDisabled)
}

// ==================== 修改密码 ====================

func TestUserService_ChangePassword(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newUserService(db)

	info, err := svc.Register(testCtx(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 旧密码错误
	err = svc.ChangePassword(testCtx(), info.ID, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newpass456",
	})
	assert.ErrorIs(t, err, ErrInvalidOldPassword)

	err = svc.ChangePassword(testCtx(), info.ID, &dto.ChangePasswordRequest{
		OldPassword: "secret123",
		NewPassword: "newpass456",
	})
	if err != nil {
		t.Fatalf("修改密码失败: %v", err)
	}

	// 旧密码失效，新密码可登录
	_, err = svc.Login(testCtx(), &dto.LoginRequest{Username: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(testCtx(), &dto.LoginRequest{Username: "alice@example.com", Password: "newpass456"})
	assert.NoError(t, err)
}

// ==================== 用户管理 ====================

func TestUserService_UpdateAndDelete(t *testing.T) {
	db := setupStoreTestDB(t)
	svc := newUserService(db)

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	self := &middleware.AuthContext{UserID: alice.ID}
	staff := &middleware.AuthContext{UserID: bob.ID, IsStaff: true}

	// 本人可改邮箱，但无法给自己提权
	email := "alice2@example.com"
	yes := true
	info, err := svc.Patch(testCtx(), self, alice.ID, &dto.PatchUserRequest{
		Email:   &email,
		IsStaff: &yes,
	})
	if err != nil {
		t.Fatalf("更新用户失败: %v", err)
	}
	assert.Equal(t, "alice2@example.com", info.Email)
	assert.False(t, info.IsStaff)

	// 管理员可以提权
	info, err = svc.Patch(testCtx(), staff, alice.ID, &dto.PatchUserRequest{IsStaff: &yes})
	if err != nil {
		t.Fatalf("管理员更新失败: %v", err)
	}
	assert.True(t, info.IsStaff)

	// 非本人非管理员不可操作
	err = svc.Delete(testCtx(), &middleware.AuthContext{UserID: alice.ID}, bob.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// 改成已占用的邮箱
	taken := "bob@example.com"
	_, err = svc.Patch(testCtx(), self, alice.ID, &dto.PatchUserRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailExists)

	if err := svc.Delete(testCtx(), staff, alice.ID); err != nil {
		t.Fatalf("删除用户失败: %v", err)
	}
	_, err = svc.GetByID(testCtx(), alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
