package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/auth/password"
	"github.com/RoyceAzure/lab/kitchenhub/internal/auth/token"
	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/util"
)

const DefaultAccessTokenDuration = time.Hour

const invalidCredentialMsg = "invalid email or password"

type RegisterCustomerParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type RegisterOwnerParams struct {
	Name            string
	KitchenName     string
	Email           string
	Password        string
	ConfirmPassword string
}

type RegisterAdminParams struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type LoginResult struct {
	AccessToken string         `json:"access_token"`
	ExpiresAt   time.Time      `json:"expires_at"`
	Identity    model.Identity `json:"identity"`
}

type IAccountService interface {
	RegisterCustomer(ctx context.Context, params RegisterCustomerParams) (*model.Identity, error)
	RegisterOwner(ctx context.Context, params RegisterOwnerParams) (*model.Identity, error)
	RegisterAdmin(ctx context.Context, params RegisterAdminParams) (*model.Identity, error)
	Login(ctx context.Context, role model.Role, email, pwd string) (*LoginResult, error)
	ResolveIdentity(ctx context.Context, payload *token.Payload) (*model.Identity, error)
}

type AccountService struct {
	customerRepo   db.ICustomerRepository
	ownerRepo      db.IOwnerRepository
	adminRepo      db.IAdminRepository
	tokenMaker     token.Maker
	accessDuration time.Duration
	newID          func() string
}

var _ IAccountService = (*AccountService)(nil)

func NewAccountService(customerRepo db.ICustomerRepository, ownerRepo db.IOwnerRepository, adminRepo db.IAdminRepository, tokenMaker token.Maker, accessDuration time.Duration) *AccountService {
	if customerRepo == nil || ownerRepo == nil || adminRepo == nil {
		panic("NewAccountService: repository cannot be nil")
	}
	if tokenMaker == nil {
		panic("NewAccountService: token maker cannot be nil")
	}
	if accessDuration <= 0 {
		accessDuration = DefaultAccessTokenDuration
	}
	return &AccountService{
		customerRepo:   customerRepo,
		ownerRepo:      ownerRepo,
		adminRepo:      adminRepo,
		tokenMaker:     tokenMaker,
		accessDuration: accessDuration,
		newID:          util.GenerateID,
	}
}

func (s *AccountService) RegisterCustomer(ctx context.Context, params RegisterCustomerParams) (*model.Identity, error) {
	const op = "RegisterCustomer"

	email := util.NormalizeEmail(params.Email)
	if err := validateAccount(op, email, params.Password, params.Password, params.FirstName, params.LastName); err != nil {
		return nil, err
	}

	_, err := s.customerRepo.GetCustomerByEmail(ctx, email)
	if err := checkEmailFree(op, err); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(op, params.Password)
	if err != nil {
		return nil, err
	}

	customer := &model.Customer{
		CustomerID:   s.newID(),
		FirstName:    strings.TrimSpace(params.FirstName),
		LastName:     strings.TrimSpace(params.LastName),
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.customerRepo.CreateCustomer(ctx, customer); err != nil {
		return nil, createAccountError(op, err)
	}
	identity := customer.Identity()
	return &identity, nil
}

func (s *AccountService) RegisterOwner(ctx context.Context, params RegisterOwnerParams) (*model.Identity, error) {
	const op = "RegisterOwner"

	email := util.NormalizeEmail(params.Email)
	if err := validateAccount(op, email, params.Password, params.ConfirmPassword, params.Name, params.KitchenName); err != nil {
		return nil, err
	}

	_, err := s.ownerRepo.GetOwnerByEmail(ctx, email)
	if err := checkEmailFree(op, err); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(op, params.Password)
	if err != nil {
		return nil, err
	}

	owner := &model.Owner{
		OwnerID:      s.newID(),
		Name:         strings.TrimSpace(params.Name),
		KitchenName:  strings.TrimSpace(params.KitchenName),
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.ownerRepo.CreateOwner(ctx, owner); err != nil {
		return nil, createAccountError(op, err)
	}
	identity := owner.Identity()
	return &identity, nil
}

func (s *AccountService) RegisterAdmin(ctx context.Context, params RegisterAdminParams) (*model.Identity, error) {
	const op = "RegisterAdmin"

	email := util.NormalizeEmail(params.Email)
	if err := validateAccount(op, email, params.Password, params.ConfirmPassword, params.Name); err != nil {
		return nil, err
	}

	_, err := s.adminRepo.GetAdminByEmail(ctx, email)
	if err := checkEmailFree(op, err); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(op, params.Password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		AdminID:      s.newID(),
		Name:         strings.TrimSpace(params.Name),
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.adminRepo.CreateAdmin(ctx, admin); err != nil {
		return nil, createAccountError(op, err)
	}
	identity := admin.Identity()
	return &identity, nil
}

// Login email 不存在與密碼錯誤回傳相同訊息
func (s *AccountService) Login(ctx context.Context, role model.Role, email, pwd string) (*LoginResult, error) {
	const op = "Login"

	email = util.NormalizeEmail(email)
	var (
		identity model.Identity
		hashed   string
		err      error
	)
	switch role {
	case model.RoleCustomer:
		var customer *model.Customer
		if customer, err = s.customerRepo.GetCustomerByEmail(ctx, email); err == nil {
			identity, hashed = customer.Identity(), customer.PasswordHash
		}
	case model.RoleOwner:
		var owner *model.Owner
		if owner, err = s.ownerRepo.GetOwnerByEmail(ctx, email); err == nil {
			identity, hashed = owner.Identity(), owner.PasswordHash
		}
	case model.RoleAdmin:
		var admin *model.Admin
		if admin, err = s.adminRepo.GetAdminByEmail(ctx, email); err == nil {
			identity, hashed = admin.Identity(), admin.PasswordHash
		}
	default:
		return nil, apperr.New(apperr.InvalidInput, op, "unknown role")
	}
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.Unauthenticated, op, invalidCredentialMsg)
		}
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to get account", err)
	}

	if err := password.CheckPassword(pwd, hashed); err != nil {
		return nil, apperr.New(apperr.Unauthenticated, op, invalidCredentialMsg)
	}

	accessToken, payload, err := s.tokenMaker.CreateToken(identity.ID, identity.Role, s.accessDuration)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, op, "failed to create access token", err)
	}
	return &LoginResult{
		AccessToken: accessToken,
		ExpiresAt:   payload.ExpiredAt,
		Identity:    identity,
	}, nil
}

// ResolveIdentity token 合法但帳號已刪除時回傳 NotFound
func (s *AccountService) ResolveIdentity(ctx context.Context, payload *token.Payload) (*model.Identity, error) {
	const op = "ResolveIdentity"

	if payload == nil {
		return nil, apperr.New(apperr.Unauthenticated, op, "missing access token")
	}

	var (
		identity model.Identity
		err      error
	)
	switch payload.Role {
	case model.RoleCustomer:
		var customer *model.Customer
		if customer, err = s.customerRepo.GetCustomerByID(ctx, payload.SubjectID); err == nil {
			identity = customer.Identity()
		}
	case model.RoleOwner:
		var owner *model.Owner
		if owner, err = s.ownerRepo.GetOwnerByID(ctx, payload.SubjectID); err == nil {
			identity = owner.Identity()
		}
	case model.RoleAdmin:
		var admin *model.Admin
		if admin, err = s.adminRepo.GetAdminByID(ctx, payload.SubjectID); err == nil {
			identity = admin.Identity()
		}
	default:
		return nil, apperr.New(apperr.Unauthenticated, op, "invalid access token")
	}
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.NotFound, op, "account not found")
		}
		return nil, apperr.Wrap(apperr.PersistenceFailure, op, "failed to get account", err)
	}
	return &identity, nil
}

func validateAccount(op, email, pwd, confirm string, names ...string) error {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return apperr.New(apperr.InvalidInput, op, "name fields are required")
		}
	}
	if email == "" || !strings.Contains(email, "@") {
		return apperr.New(apperr.InvalidInput, op, "a valid email is required")
	}
	if len(pwd) < password.MinLength {
		return apperr.New(apperr.InvalidInput, op, password.ErrTooShort.Error())
	}
	if pwd != confirm {
		return apperr.New(apperr.InvalidInput, op, "password and confirm password do not match")
	}
	return nil
}

// checkEmailFree 傳入以 email 查詢帳號的錯誤，查得到代表 email 已註冊
func checkEmailFree(op string, lookupErr error) error {
	if lookupErr == nil {
		return apperr.New(apperr.Conflict, op, "email already registered")
	}
	if !db.IsNotFound(lookupErr) {
		return apperr.Wrap(apperr.PersistenceFailure, op, "failed to check email", lookupErr)
	}
	return nil
}

func hashPassword(op, pwd string) (string, error) {
	hashed, err := password.HashPassword(pwd)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return "", apperr.New(apperr.InvalidInput, op, err.Error())
		}
		return "", apperr.Wrap(apperr.Internal, op, "failed to hash password", err)
	}
	return hashed, nil
}

func createAccountError(op string, err error) error {
	if db.IsDuplicated(err) {
		return apperr.Wrap(apperr.Conflict, op, "email already registered", err)
	}
	return apperr.Wrap(apperr.PersistenceFailure, op, "failed to create account", err)
}
