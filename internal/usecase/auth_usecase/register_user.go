package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kinbech/internal/domain/model"
	"kinbech/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	// 入力が不正
	ErrInvalidUsername  = errors.New("invalid username")
	ErrPasswordTooShort = errors.New("password too short")
	ErrInvalidRole      = errors.New("invalid role")

	// 競合
	ErrUsernameAlreadyExists = errors.New("username already registered")
)

// 会員登録の入力
type RegisterUserInput struct {
	Username string
	FullName string
	Password string
	Roles    []model.Role
	Address  string
	Phone    string
}

// 会員登録の出力。usernameが衝突した場合はSuggestionに代案を入れて返す。
type RegisterUserOutput struct {
	User       model.User
	Suggestion string
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	clock    Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		clock:    clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	username := strings.TrimSpace(in.Username)
	if username == "" || len(username) > 255 {
		return out, ErrInvalidUsername
	}

	if len(in.Password) < 8 {
		return out, ErrPasswordTooShort
	}

	//役割はbuyer/seller/adminのみ。未指定ならbuyer,seller。
	roles := in.Roles
	if len(roles) == 0 {
		roles = []model.Role{model.RoleBuyer, model.RoleSeller}
	}
	for _, r := range roles {
		switch r {
		case model.RoleBuyer, model.RoleSeller, model.RoleAdmin:
		default:
			return out, ErrInvalidRole
		}
	}

	//username重複チェック。衝突したら空いている代案を付けて返す。
	existing, err := u.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return out, err
	}
	if existing != nil {
		out.Suggestion = u.suggestUsername(ctx, username)
		return out, ErrUsernameAlreadyExists
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	user := &model.User{
		Username:     username,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: hashed,
		Roles:        model.JoinRoles(roles),
		Address:      strings.TrimSpace(in.Address),
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return out, err
	}

	out.User = *user
	return out, nil
}

// username_2, username_3, ... の順で空きを探す
func (u *RegisterUserUsecase) suggestUsername(ctx context.Context, base string) string {
	for i := 2; i <= 20; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		existing, err := u.userRepo.FindByUsername(ctx, candidate)
		if err == nil && existing == nil {
			return candidate
		}
	}
	return ""
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
