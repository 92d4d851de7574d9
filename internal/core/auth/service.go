package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/propdesk/propdesk/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user with this email already exists")
	ErrCompanyExists      = errors.New("company with this slug already exists")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrAlreadySuperAdmin  = errors.New("user is already a super admin")
	ErrNotSuperAdmin      = errors.New("user is not a super admin")
	ErrLastSuperAdmin     = errors.New("cannot demote the last super admin")
)

type Service struct {
	repo   *Repository
	config *config.JWTConfig
}

func NewService(repo *Repository, cfg *config.JWTConfig) *Service {
	return &Service{repo: repo, config: cfg}
}

type JWTClaims struct {
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	IsSuperAdmin *bool     `json:"is_super_admin,omitempty"`
	jwt.RegisteredClaims
}

// User authentication
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Status:       "active",
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *Service) generateToken(user *User) (string, error) {
	claims := JWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		IsSuperAdmin: &user.IsSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.ExpirationDuration())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrUnauthorized
}

// Company management
func (s *Service) CreateCompany(ctx context.Context, userID uuid.UUID, req *CreateCompanyRequest) (*Company, error) {
	existing, err := s.repo.GetCompanyBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCompanyExists
	}

	company := &Company{
		ID:       uuid.New(),
		Name:     req.Name,
		Slug:     req.Slug,
		Settings: map[string]interface{}{},
	}

	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, err
	}

	// Default roles
	adminRole := &Role{
		ID:          uuid.New(),
		CompanyID:   company.ID,
		Name:        "admin",
		Permissions: AdminPermissions,
	}
	if err := s.repo.CreateRole(ctx, adminRole); err != nil {
		return nil, err
	}

	managerRole := &Role{
		ID:          uuid.New(),
		CompanyID:   company.ID,
		Name:        "manager",
		Permissions: ManagerPermissions,
	}
	if err := s.repo.CreateRole(ctx, managerRole); err != nil {
		return nil, err
	}

	viewerRole := &Role{
		ID:          uuid.New(),
		CompanyID:   company.ID,
		Name:        "viewer",
		Permissions: ViewerPermissions,
	}
	if err := s.repo.CreateRole(ctx, viewerRole); err != nil {
		return nil, err
	}

	// Creator becomes admin
	membership := &CompanyMembership{
		ID:        uuid.New(),
		CompanyID: company.ID,
		UserID:    userID,
		RoleID:    adminRole.ID,
	}
	if err := s.repo.CreateMembership(ctx, membership); err != nil {
		return nil, err
	}

	return company, nil
}

func (s *Service) GetCompany(ctx context.Context, id uuid.UUID) (*Company, error) {
	company, err := s.repo.GetCompanyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}
	return company, nil
}

func (s *Service) GetCompaniesByUser(ctx context.Context, userID uuid.UUID) ([]*Company, error) {
	return s.repo.GetCompaniesByUserID(ctx, userID)
}

func (s *Service) GetAllCompanies(ctx context.Context, limit, offset int) ([]*Company, error) {
	return s.repo.GetAllCompanies(ctx, limit, offset)
}

func (s *Service) UpdateCompany(ctx context.Context, company *Company) error {
	return s.repo.UpdateCompany(ctx, company)
}

func (s *Service) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCompany(ctx, id)
}

// Role management
func (s *Service) GetRoles(ctx context.Context, companyID uuid.UUID) ([]*Role, error) {
	return s.repo.GetRolesByCompanyID(ctx, companyID)
}

func (s *Service) GetRole(ctx context.Context, id uuid.UUID) (*Role, error) {
	role, err := s.repo.GetRoleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrNotFound
	}
	return role, nil
}

func (s *Service) CreateRole(ctx context.Context, companyID uuid.UUID, name string, permissions []string) (*Role, error) {
	role := &Role{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Name:        name,
		Permissions: permissions,
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Membership management
func (s *Service) GetMemberships(ctx context.Context, companyID uuid.UUID) ([]*CompanyMembership, error) {
	return s.repo.GetMembershipsByCompanyID(ctx, companyID)
}

func (s *Service) AddMember(ctx context.Context, companyID uuid.UUID, userEmail string, roleID uuid.UUID) (*CompanyMembership, error) {
	user, err := s.repo.GetUserByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	membership := &CompanyMembership{
		ID:        uuid.New(),
		CompanyID: companyID,
		UserID:    user.ID,
		RoleID:    roleID,
	}
	if err := s.repo.CreateMembership(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

func (s *Service) RemoveMember(ctx context.Context, companyID, userID uuid.UUID) error {
	return s.repo.DeleteMembership(ctx, companyID, userID)
}

func (s *Service) GetUserPermissions(ctx context.Context, companyID, userID uuid.UUID) ([]string, error) {
	membership, err := s.repo.GetMembership(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrForbidden
	}

	role, err := s.repo.GetRoleByID(ctx, membership.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrForbidden
	}

	return role.Permissions, nil
}

// Super admin management
func (s *Service) GetAllUsers(ctx context.Context, limit, offset int) ([]*User, error) {
	return s.repo.GetAllUsers(ctx, limit, offset)
}

func (s *Service) UpdateUser(ctx context.Context, user *User) error {
	return s.repo.UpdateUser(ctx, user)
}

func (s *Service) PromoteToSuperAdmin(ctx context.Context, actorID, targetID uuid.UUID) (*User, error) {
	actor, err := s.repo.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil || !actor.IsSuperAdmin {
		return nil, ErrUnauthorized
	}

	target, err := s.repo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotFound
	}
	if target.IsSuperAdmin {
		return nil, ErrAlreadySuperAdmin
	}

	now := time.Now()
	target.IsSuperAdmin = true
	target.SuperAdminPromotedAt = &now
	target.SuperAdminPromotedBy = &actorID

	if err := s.repo.UpdateUser(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *Service) DemoteFromSuperAdmin(ctx context.Context, actorID, targetID uuid.UUID) (*User, error) {
	actor, err := s.repo.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil || !actor.IsSuperAdmin {
		return nil, ErrUnauthorized
	}

	target, err := s.repo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotFound
	}
	if !target.IsSuperAdmin {
		return nil, ErrNotSuperAdmin
	}

	count, err := s.repo.CountSuperAdmins(ctx)
	if err != nil {
		return nil, err
	}
	if count <= 1 {
		return nil, ErrLastSuperAdmin
	}

	target.IsSuperAdmin = false
	target.SuperAdminPromotedAt = nil
	target.SuperAdminPromotedBy = nil

	if err := s.repo.UpdateUser(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// Audit logs
func (s *Service) RecordAuditLog(ctx context.Context, entry *AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return s.repo.CreateAuditLog(ctx, entry)
}

func (s *Service) GetAuditLogs(ctx context.Context, limit, offset int) ([]*AuditLog, error) {
	return s.repo.GetAuditLogs(ctx, limit, offset)
}

// API Key management
func (s *Service) CreateAPIKey(ctx context.Context, companyID uuid.UUID, userID *uuid.UUID, req *CreateAPIKeyRequest) (*CreateAPIKeyResponse, error) {
	rawKey := make([]byte, 32)
	if _, err := rand.Read(rawKey); err != nil {
		return nil, err
	}
	keyString := "pd_" + hex.EncodeToString(rawKey)

	hash := sha256.Sum256([]byte(keyString))
	keyHash := hex.EncodeToString(hash[:])

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("invalid expiration date format: %w", err)
		}
		expiresAt = &t
	}

	apiKey := &APIKey{
		ID:          uuid.New(),
		CompanyID:   companyID,
		UserID:      userID,
		Name:        req.Name,
		KeyHash:     keyHash,
		Permissions: req.Permissions,
		ExpiresAt:   expiresAt,
	}

	if err := s.repo.CreateAPIKey(ctx, apiKey); err != nil {
		return nil, err
	}

	return &CreateAPIKeyResponse{
		APIKey: apiKey,
		Key:    keyString,
	}, nil
}

func (s *Service) ValidateAPIKey(ctx context.Context, keyString string) (*APIKey, error) {
	hash := sha256.Sum256([]byte(keyString))
	keyHash := hex.EncodeToString(hash[:])

	apiKey, err := s.repo.GetAPIKeyByHash(ctx, keyHash)
	if err != nil {
		return nil, err
	}
	if apiKey == nil {
		return nil, ErrUnauthorized
	}

	if apiKey.ExpiresAt != nil && apiKey.ExpiresAt.Before(time.Now()) {
		return nil, ErrUnauthorized
	}

	go s.repo.UpdateAPIKeyLastUsed(context.Background(), apiKey.ID)

	return apiKey, nil
}

func (s *Service) GetAPIKeys(ctx context.Context, companyID uuid.UUID) ([]*APIKey, error) {
	return s.repo.GetAPIKeysByCompanyID(ctx, companyID)
}

func (s *Service) DeleteAPIKey(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteAPIKey(ctx, id)
}
