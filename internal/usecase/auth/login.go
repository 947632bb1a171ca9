package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Cri010101/toelettatura-system/internal/auth"
	domain "github.com/Cri010101/toelettatura-system/internal/domain/appointment"
	"github.com/Cri010101/toelettatura-system/internal/httperr"
	"github.com/Cri010101/toelettatura-system/internal/models"
)

const (
	MsgMissingCredentials = "Email e password sono obbligatori"
	MsgInvalidCredentials = "Credenziali non valide"
)

type userFinder interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type tokenIssuer interface {
	Issue(user *models.User) (string, error)
}

type UserView struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResult struct {
	Token string
	User  UserView
}

type Login struct {
	users  userFinder
	tokens tokenIssuer
}

func NewLogin(users userFinder, tokens tokenIssuer) *Login {
	return &Login{users: users, tokens: tokens}
}

// Execute checks the credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (uc *Login) Execute(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, httperr.BadRequest(MsgMissingCredentials)
	}

	user, err := uc.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.Unauthorized(MsgInvalidCredentials)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, httperr.Unauthorized(MsgInvalidCredentials)
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{
		Token: token,
		User: UserView{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}
