package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"kinbech/internal/domain/model"
	"kinbech/internal/repository"
)

var (
	//トークンが存在しない・期限切れ
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// 再設定リンクを外部（WhatsAppゲートウェイ等）へ送る約束
type ResetLinkSender interface {
	SendResetLink(ctx context.Context, phone string, link string) error
}

// パスワード再設定（リンク要求→トークン消費）の処理。
type ResetPasswordUsecase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.ResetTokenRepository
	hasher    PasswordHasher
	sender    ResetLinkSender
	idGen     IDGenerator
	clock     Clock
	tokenTTL  time.Duration
	baseURL   string
}

func NewResetPasswordUsecase(
	userRepo repository.UserRepository,
	tokenRepo repository.ResetTokenRepository,
	hasher PasswordHasher,
	sender ResetLinkSender,
	idGen IDGenerator,
	clock Clock,
	tokenTTL time.Duration,
	baseURL string,
) *ResetPasswordUsecase {
	return &ResetPasswordUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		hasher:    hasher,
		sender:    sender,
		idGen:     idGen,
		clock:     clock,
		tokenTTL:  tokenTTL,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

type RequestResetInput struct {
	Username string
	Phone    string
}

// RequestはトークンをDBに作ってリンクを送る。
// アカウントの有無を探られないように、見つからなくてもエラーにしない。
func (u *ResetPasswordUsecase) Request(ctx context.Context, in RequestResetInput) error {
	var user *model.User
	var err error

	if strings.TrimSpace(in.Username) != "" {
		user, err = u.userRepo.FindByUsername(ctx, strings.TrimSpace(in.Username))
	} else if strings.TrimSpace(in.Phone) != "" {
		user, err = u.userRepo.FindByPhone(ctx, strings.TrimSpace(in.Phone))
	}
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	now := u.clock.Now()
	token := &model.ResetToken{
		ID:        u.idGen.NewID(),
		Username:  user.Username,
		ExpiresAt: now.Add(u.tokenTTL),
		CreatedAt: now,
	}
	if err := u.tokenRepo.Create(ctx, token); err != nil {
		return err
	}

	link := u.baseURL + "/reset-password/" + token.ID

	//宛先はユーザー登録の電話番号を優先する
	to := user.Phone
	if to == "" {
		to = in.Phone
	}
	return u.sender.SendResetLink(ctx, to, link)
}

type ConfirmResetInput struct {
	Token       string
	NewPassword string
}

// Confirmはトークンを検証して新しいパスワードを保存し、トークンを消す。
func (u *ResetPasswordUsecase) Confirm(ctx context.Context, in ConfirmResetInput) error {
	if len(in.NewPassword) < 8 {
		return ErrPasswordTooShort
	}

	token, err := u.tokenRepo.FindByID(ctx, strings.TrimSpace(in.Token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if u.clock.Now().After(token.ExpiresAt) {
		//期限切れは使えない。掃除はスイーパーに任せる。
		return ErrInvalidResetToken
	}

	user, err := u.userRepo.FindByUsername(ctx, token.Username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidResetToken
	}

	hashed, err := u.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashed
	user.UpdatedAt = u.clock.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}

	//1回使い切り
	return u.tokenRepo.Delete(ctx, token.ID)
}
