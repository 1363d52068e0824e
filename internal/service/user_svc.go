package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"digistore_v1/internal/api/dto"
	"digistore_v1/internal/middleware"
	"digistore_v1/internal/model"
	"digistore_v1/internal/repository"

	"gorm.io/gorm"
)

// ==================== UserService 用户服务 ====================

// UserService 用户服务
type UserService struct {
	userRepo repository.UserRepository
	tokens   *middleware.TokenManager
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, tokens *middleware.TokenManager) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens}
}

// ==================== 认证相关 ====================

// Register 用户注册
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	return s.toUserInfo(user), nil
}

// Login 用户登录（username 字段填邮箱）
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// 检查状态
	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.IsStaff)
	if err != nil {
		return nil, fmt.Errorf("签发 Token 失败: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// ChangePassword 修改密码
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("查询用户失败: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrInvalidOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}
	return s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"password_hash": string(hash),
	})
}

// ==================== 用户管理 ====================

// GetByID 获取用户
func (s *UserService) GetByID(ctx context.Context, id int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.toUserInfo(user), nil
}

// List 用户列表
func (s *UserService) List(ctx context.Context) ([]dto.UserInfo, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询用户列表失败: %w", err)
	}
	list := make([]dto.UserInfo, len(users))
	for i := range users {
		list[i] = *s.toUserInfo(&users[i])
	}
	return list, nil
}

// Update 整体更新用户（仅管理员或本人）
func (s *UserService) Update(ctx context.Context, auth *middleware.AuthContext, id int64, req *dto.UpdateUserRequest) (*dto.UserInfo, error) {
	user, err := s.authorizeUserWrite(ctx, auth, id)
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	// 普通用户无权给自己提权
	if auth.IsStaff {
		user.IsActive = *req.IsActive
		user.IsStaff = *req.IsStaff
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("更新用户失败: %w", err)
	}
	return s.toUserInfo(user), nil
}

// Patch 局部更新用户
func (s *UserService) Patch(ctx context.Context, auth *middleware.AuthContext, id int64, req *dto.PatchUserRequest) (*dto.UserInfo, error) {
	user, err := s.authorizeUserWrite(ctx, auth, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if auth.IsStaff {
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
		if req.IsStaff != nil {
			user.IsStaff = *req.IsStaff
		}
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("更新用户失败: %w", err)
	}
	return s.toUserInfo(user), nil
}

// Delete 删除用户（仅管理员或本人）
func (s *UserService) Delete(ctx context.Context, auth *middleware.AuthContext, id int64) error {
	if _, err := s.authorizeUserWrite(ctx, auth, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) authorizeUserWrite(ctx context.Context, auth *middleware.AuthContext, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !auth.IsStaff && auth.UserID != id {
		return nil, fmt.Errorf("只能操作本人账号: %w", ErrForbidden)
	}
	return user, nil
}

func (s *UserService) toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		IsActive:  user.IsActive,
		IsStaff:   user.IsStaff,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ==================== 错误定义 ====================

var (
	ErrInvalidCredentials = fmt.Errorf("incorrect email or password: %w", ErrUnauthorized)
	ErrUserDisabled       = fmt.Errorf("user account is disabled: %w", ErrInvalidState)
	ErrUserNotFound       = fmt.Errorf("user not found: %w", ErrNotFound)
	ErrInvalidOldPassword = fmt.Errorf("old password is incorrect: %w", ErrInvalidArgument)
	ErrEmailExists        = fmt.Errorf("email already registered: %w", ErrConflict)
)
