package auth

import (
	"context"
	"errors"
	"time"

	"kinbech/internal/domain/model"
	"kinbech/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Username string
	Password string
}

// OAuth2のtokenレスポンス形
type LoginOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// usernameまたはパスワードが違う
var ErrInvalidCredentials = errors.New("incorrect username or password")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(username string, roles model.RoleSet, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	user, err := u.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return out, err
	}
	if user == nil {
		return out, ErrInvalidCredentials
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//AccessToken発行
	token, _, err := u.issuer.Issue(user.Username, user.Roles, u.clock.Now())
	if err != nil {
		return out, err
	}

	out.AccessToken = token
	out.TokenType = "bearer"
	return out, nil
}
