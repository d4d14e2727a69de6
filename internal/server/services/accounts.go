// Package services implements the account flows: registration, login and
// profile management.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/arondight/internal/common"
	"github.com/dmitrijs2005/arondight/internal/dbx"
	"github.com/dmitrijs2005/arondight/internal/logging"
	"github.com/dmitrijs2005/arondight/internal/server/auth"
	"github.com/dmitrijs2005/arondight/internal/server/metrics"
	"github.com/dmitrijs2005/arondight/internal/server/models"
	"github.com/dmitrijs2005/arondight/internal/server/repositories/repomanager"
	"github.com/samber/oops"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(claims auth.Claims) (string, error)
}

// AuthRecorder receives one event per registration or login attempt.
type AuthRecorder interface {
	RecordAuth(operation, outcome string)
}

type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.Hasher
	issuer      TokenIssuer
	logger      logging.Logger
	recorder    AuthRecorder
}

// NewAccountService wires the flows. logger and recorder may be nil.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.Hasher, issuer TokenIssuer,
	logger logging.Logger, recorder AuthRecorder) *AccountService {
	if logger == nil {
		logger = logging.Nop()
	}
	if recorder == nil {
		recorder = (*metrics.Metrics)(nil)
	}
	return &AccountService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
		logger:      logger.With("module", "services.accounts"),
		recorder:    recorder,
	}
}

// Register creates an account with a fresh cart and returns a session token.
// The account, the cart and the link between them are written in one
// transaction.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (string, error) {
	const op = "register"

	if err := in.Validate(); err != nil {
		s.recorder.RecordAuth(op, metrics.OutcomeInvalid)
		return "", common.NewValidationError(err)
	}

	email := common.NormalizeEmail(in.Email)

	_, err := s.repomanager.Accounts(s.db).FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.recorder.RecordAuth(op, metrics.OutcomeDuplicate)
		return "", common.ErrDuplicateResource
	case !errors.Is(err, common.ErrNotFound):
		s.recorder.RecordAuth(op, metrics.OutcomeError)
		return "", oops.Code("ACCOUNT_REGISTER_FAILED").With("operation", "lookup email").Wrap(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if common.IsValidationError(err) {
			s.recorder.RecordAuth(op, metrics.OutcomeInvalid)
			return "", err
		}
		s.recorder.RecordAuth(op, metrics.OutcomeError)
		return "", oops.Code("ACCOUNT_REGISTER_FAILED").With("operation", "hash password").Wrap(err)
	}

	account := &models.Account{Name: in.Name, Email: email, PasswordHash: hash}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Accounts(tx).Create(ctx, account)
		if err != nil {
			return err
		}

		cart, err := s.repomanager.Carts(tx).Create(ctx)
		if err != nil {
			return err
		}

		if err := s.repomanager.Accounts(tx).AttachCart(ctx, created.ID, cart.ID); err != nil {
			return err
		}
		created.CartID = cart.ID
		account = created
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateResource) {
			s.recorder.RecordAuth(op, metrics.OutcomeDuplicate)
			return "", common.ErrDuplicateResource
		}
		s.recorder.RecordAuth(op, metrics.OutcomeError)
		return "", oops.Code("ACCOUNT_REGISTER_FAILED").With("operation", "create account").Wrap(err)
	}

	token, err := s.issuer.Issue(auth.Claims{Name: account.Name, Email: account.Email, ID: account.ID})
	if err != nil {
		s.recorder.RecordAuth(op, metrics.OutcomeError)
		return "", oops.Code("TOKEN_ISSUE_FAILED").With("account_id", account.ID).Wrap(err)
	}

	s.recorder.RecordAuth(op, metrics.OutcomeSuccess)
	s.logger.Info(ctx, "account registered", "account_id", account.ID)
	return token, nil
}

// Login checks the credentials and returns a session token. An unknown
// email yields common.ErrNotFound and a wrong password
// common.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (string, error) {
	const op = "login"

	if err := in.Validate(); err != nil {
		s.recorder.RecordAuth(op, metrics.OutcomeInvalid)
		return "", common.NewValidationError(err)
	}

	account, err := s.repomanager.Accounts(s.db).FindByEmail(ctx, common.NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.recorder.RecordAuth(op, metrics.OutcomeNotFound)
			return "", common.ErrNotFound
		}
		s.recorder.RecordAuth(op, metrics.OutcomeError)
		return "", oops.Code("ACCOUNT_LOGIN_FAILED").With("operation", "lookup email").Wrap(err)
	}

	if !s.hasher.Verify(in.Password, account.PasswordHash) {
		s.recorder.RecordAuth(op, metrics.OutcomeRejected)
		s.logger.Warn(ctx, "password mismatch", "account_id", account.ID)
		return "", common.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(auth.Claims{Name: account.Name, Email: account.Email, ID: account.ID})
	if err != nil {
		s.recorder.RecordAuth(op, metrics.OutcomeError)
		return "", oops.Code("TOKEN_ISSUE_FAILED").With("account_id", account.ID).Wrap(err)
	}

	s.recorder.RecordAuth(op, metrics.OutcomeSuccess)
	return token, nil
}

// Get returns the account with its cart and orders expanded.
func (s *AccountService) Get(ctx context.Context, id string) (*models.AccountDetails, error) {
	account, err := s.repomanager.Accounts(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, oops.Code("ACCOUNT_GET_FAILED").With("account_id", id).Wrap(err)
	}

	cart, orders, err := s.related(ctx, account)
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_FAILED").With("account_id", id).Wrap(err)
	}

	return models.NewAccountDetails(account, cart, orders), nil
}

// related loads the cart and orders of account. A dangling cart reference
// is reported as no cart.
func (s *AccountService) related(ctx context.Context, account *models.Account) (*models.Cart, []models.Order, error) {
	var cart *models.Cart
	if account.CartID != "" {
		c, err := s.repomanager.Carts(s.db).FindByID(ctx, account.CartID)
		switch {
		case err == nil:
			cart = c
		case !errors.Is(err, common.ErrNotFound):
			return nil, nil, err
		}
	}

	orders, err := s.repomanager.Orders(s.db).ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, nil, err
	}

	return cart, orders, nil
}

// Update changes any of name, email and password, persists the account and
// returns a new token that also carries the order ids and cart id.
func (s *AccountService) Update(ctx context.Context, id string, in UpdateInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", common.NewValidationError(err)
	}

	repo := s.repomanager.Accounts(s.db)

	account, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrNotFound
		}
		return "", oops.Code("ACCOUNT_UPDATE_FAILED").With("account_id", id).Wrap(err)
	}

	if in.Name != nil {
		account.Name = *in.Name
	}

	if in.Email != nil {
		email := common.NormalizeEmail(*in.Email)
		if email != account.Email {
			other, err := repo.FindByEmail(ctx, email)
			switch {
			case err == nil && other.ID != account.ID:
				return "", common.ErrDuplicateResource
			case err != nil && !errors.Is(err, common.ErrNotFound):
				return "", oops.Code("ACCOUNT_UPDATE_FAILED").With("account_id", id).Wrap(err)
			}
		}
		account.Email = email
	}

	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			if common.IsValidationError(err) {
				return "", err
			}
			return "", oops.Code("ACCOUNT_UPDATE_FAILED").With("account_id", id).Wrap(err)
		}
		account.PasswordHash = hash
	}

	if !in.empty() {
		if err := repo.Save(ctx, account); err != nil {
			if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrDuplicateResource) {
				return "", err
			}
			return "", oops.Code("ACCOUNT_UPDATE_FAILED").With("account_id", id).Wrap(err)
		}
	}

	_, orders, err := s.related(ctx, account)
	if err != nil {
		return "", oops.Code("ACCOUNT_UPDATE_FAILED").With("account_id", id).Wrap(err)
	}

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	token, err := s.issuer.Issue(auth.Claims{
		Name:   account.Name,
		Email:  account.Email,
		ID:     account.ID,
		Orders: orderIDs,
		Cart:   account.CartID,
	})
	if err != nil {
		return "", oops.Code("TOKEN_ISSUE_FAILED").With("account_id", id).Wrap(err)
	}

	s.logger.Info(ctx, "account updated", "account_id", account.ID)
	return token, nil
}

// Delete removes the account. Its cart and orders are kept.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Accounts(s.db).DeleteByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return oops.Code("ACCOUNT_DELETE_FAILED").With("account_id", id).Wrap(err)
	}

	s.logger.Info(ctx, "account deleted", "account_id", id)
	return nil
}
