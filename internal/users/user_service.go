package users

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/khanghh/signup/model"
	"github.com/khanghh/signup/params"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const mysqlErrDuplicateEntry = 1062

type RegisterUserOptions struct {
	Name     string
	Email    string
	Password string
}

type UserService struct {
	userRepo        UserRepository
	pendingUserRepo PendingUserRepository
	transact        Transactor
	now             func() time.Time
}

func isDuplicateEmail(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) &&
		mysqlErr.Number == mysqlErrDuplicateEntry &&
		strings.Contains(mysqlErr.Message, model.IdxUserEmail)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.First(ctx, "id = ?", userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.First(ctx, "email = ?", normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) checkUserExist(ctx context.Context, email string) error {
	_, err := s.GetUserByEmail(ctx, email)
	if err == nil {
		return ErrEmailRegistered
	}
	if errors.Is(err, ErrUserNotFound) {
		return nil
	}
	return err
}

func (s *UserService) checkPendingUserExist(ctx context.Context, email string) error {
	_, err := s.pendingUserRepo.FirstActive(ctx, email, s.now().Add(-params.PendingUserExpiration))
	if err == nil {
		return ErrEmailRegistered
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (s *UserService) generateVerificationToken() string {
	b := make([]byte, params.VerificationTokenLength)
	_, err := rand.Read(b)
	if err != nil {
		panic(fmt.Errorf("failed to generate random bytes: %w", err))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// RegisterUser stores a pending user that becomes a real account once the
// email address is verified.
func (s *UserService) RegisterUser(ctx context.Context, opts RegisterUserOptions) (*model.PendingUser, error) {
	email := normalizeEmail(opts.Email)
	if err := s.checkUserExist(ctx, email); err != nil {
		return nil, err
	}
	if err := s.checkPendingUserExist(ctx, email); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	pending := model.PendingUser{
		Name:        strings.TrimSpace(opts.Name),
		Email:       email,
		Password:    string(passwordHash),
		ActiveToken: s.generateVerificationToken(),
	}
	if err := s.pendingUserRepo.Create(ctx, &pending); err != nil {
		return nil, err
	}
	return &pending, nil
}

func (s *UserService) ApprovePendingUser(ctx context.Context, email string, token string) (*model.User, error) {
	email = normalizeEmail(email)
	pending, err := s.pendingUserRepo.FirstActive(ctx, email, s.now().Add(-params.PendingUserExpiration))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPendingUserNotFound
	} else if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(pending.ActiveToken), []byte(token)) != 1 {
		return nil, ErrInvalidVerificationToken
	}

	user := model.User{
		Name:          pending.Name,
		Email:         pending.Email,
		EmailVerified: true,
		Password:      pending.Password,
	}
	err = s.transact(ctx, func(userRepo UserRepository, pendingUserRepo PendingUserRepository) error {
		affected, err := pendingUserRepo.Approve(ctx, pending.ID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrPendingUserNotFound
		}
		return userRepo.Create(ctx, &user)
	})
	if isDuplicateEmail(err) {
		return nil, ErrEmailRegistered
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

// CancelPendingUser drops the pending registrations of email, so the
// address can be registered again right away.
func (s *UserService) CancelPendingUser(ctx context.Context, email string) error {
	return s.pendingUserRepo.DeleteByEmail(ctx, normalizeEmail(email))
}

// Authenticate checks the password of the account registered with email.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email string, password string) (*model.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Disabled {
		return nil, ErrUserDisabled
	}

	loginTime := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, loginTime); err != nil {
		return nil, err
	}
	user.LastLoginAt = &loginTime
	return user, nil
}

func NewUserService(userRepo UserRepository, pendingUserRepo PendingUserRepository, transact Transactor) *UserService {
	return &UserService{
		userRepo:        userRepo,
		pendingUserRepo: pendingUserRepo,
		transact:        transact,
		now:             time.Now,
	}
}
