package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/api/dto"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/middleware"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/repository"
)

// ==================== UserService 用户服务 ====================

// UserService 账号与角色分组服务
type UserService struct {
	userRepo repository.UserRepository
	authz    *AuthzService
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, authz *AuthzService) *UserService {
	return &UserService{userRepo: userRepo, authz: authz}
}

// ==================== 认证相关 ====================

// Register 注册，新账号默认为 customer 角色
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Password: string(hashed),
		Email:    req.Email,
		Role:     model.RoleCustomer,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.toUserInfo(user), nil
}

// Login 用户登录
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 生成 Token
	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	// 更新最后登录时间
	_ = s.userRepo.UpdateLastLogin(ctx, user.ID)

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
		User:         s.toUserInfo(user),
	}, nil
}

// RefreshToken 刷新 Token
func (s *UserService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// 只接受 Refresh Token
	if claims.Subject != "refresh" {
		return nil, ErrInvalidToken
	}

	// 角色可能在 Token 有效期内被改过，以库内为准
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrUserDisabled
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
	}, nil
}

// ==================== 角色分组 ====================

// groupAction 分组对应的鉴权动作
func groupAction(role model.UserRole) Action {
	if role == model.RoleManager {
		return ActionAssignManager
	}
	return ActionAssignDelivery
}

// AssignRole 把用户加入分组（manager / delivery_crew）
// 经理指派只有 admin 能做，配送员指派只有经理能做
func (s *UserService) AssignRole(ctx context.Context, actorRole model.UserRole, req *dto.AssignGroupRequest, target model.UserRole) (*dto.UserInfo, error) {
	if err := s.authz.Authorize(actorRole, groupAction(target)); err != nil {
		return nil, err
	}

	user, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	// 经理和配送员是互斥的操作角色
	if user.Role != model.RoleCustomer && user.Role != target {
		return nil, ErrRoleOccupied
	}

	if err := s.userRepo.UpdateRole(ctx, user.ID, target); err != nil {
		return nil, err
	}
	user.Role = target
	return s.toUserInfo(user), nil
}

// RemoveRole 把用户移出分组，角色回落为 customer
func (s *UserService) RemoveRole(ctx context.Context, actorRole model.UserRole, userID int64, target model.UserRole) error {
	if err := s.authz.Authorize(actorRole, groupAction(target)); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	// 不在该分组里一律按不存在处理
	if user == nil || user.Role != target {
		return ErrUserNotFound
	}

	return s.userRepo.UpdateRole(ctx, user.ID, model.RoleCustomer)
}

// ListGroupMembers 列出分组成员
func (s *UserService) ListGroupMembers(ctx context.Context, actorRole model.UserRole, target model.UserRole) ([]dto.GroupMemberItem, error) {
	if err := s.authz.Authorize(actorRole, groupAction(target)); err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListByRole(ctx, target)
	if err != nil {
		return nil, err
	}

	members := make([]dto.GroupMemberItem, len(users))
	for i, u := range users {
		members[i] = dto.GroupMemberItem{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
		}
	}
	return members, nil
}

// resolveTarget 按 user_id 或 username 找目标用户
func (s *UserService) resolveTarget(ctx context.Context, req *dto.AssignGroupRequest) (*model.User, error) {
	var user *model.User
	var err error

	switch {
	case req.UserID > 0:
		user, err = s.userRepo.GetByID(ctx, req.UserID)
	case req.Username != "":
		user, err = s.userRepo.GetByUsername(ctx, req.Username)
	default:
		return nil, validationErr("必须提供 user_id 或 username")
	}

	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// toUserInfo 转换为响应结构
func (s *UserService) toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
