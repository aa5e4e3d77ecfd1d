// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "evently/internal/delivery/context"
	"evently/internal/domain/entity"
	domainerrors "evently/internal/domain/errors"
	"evently/internal/domain/repository"
	"evently/internal/domain/service"
	"evently/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bcrypt ignores everything past 72 bytes, so longer passwords would silently collide.
const maxPasswordBytes = 72

// dummyPasswordHash is checked against when the email is unknown so both
// login failures cost one bcrypt comparison.
const dummyPasswordHash = "$2a$10$abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0"

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the user registration process.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	if len(input.Password) > maxPasswordBytes {
		return nil, domainerrors.NewValidationError("password", "password must be at most 72 bytes long")
	}

	// Hash before opening the transaction; bcrypt must not hold a pooled connection.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        entity.NormalizeEmail(input.Email),
		PasswordHash: hashedPassword,
	}

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, newUser.Email)
		switch {
		case findErr == nil:
			return errors.Wrap(domainerrors.ErrDuplicateCredential, "email already registered")
		case !errors.Is(findErr, repository.ErrUserNotFound):
			return errors.Wrap(findErr, "failed to check existing user")
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		return nil
	}); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateCredential) {
			srv.log(ctx).Info("Registration rejected, email already registered")
		}

		return nil, err
	}

	srv.log(ctx).Info("User registered", slog.String("userID", newUser.ID.String()))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login orchestrates the user login process.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	loggedInUser, err := srv.userRepo.FindByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(err, "failed to find user by email")
		}

		srv.hasher.Check(input.Password, dummyPasswordHash)
		srv.log(ctx).Info("Login rejected", slog.String("reason", "unknown_email"))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, loggedInUser.PasswordHash) {
		srv.log(ctx).Info("Login rejected", slog.String("reason", "password_mismatch"), slog.String("userID", loggedInUser.ID.String()))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.Issue(loggedInUser.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.String("userID", loggedInUser.ID.String()), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	srv.log(ctx).Debug("User logged in successfully", slog.String("userID", loggedInUser.ID.String()))

	return &usecase.LoginOutput{
		Token:     token,
		ExpiresIn: srv.tokenService.TTL(),
		User:      loggedInUser,
	}, nil
}
