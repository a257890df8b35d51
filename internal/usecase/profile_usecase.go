package usecase

import (
	"context"
	"net/http"
	"strings"

	"kinbech/internal/domain/model"
	repo "kinbech/internal/repository"
)

// プロフィールと出店情報（屋号・住所・電話）の読み書き。
type ProfileUsecase struct {
	userRepo repo.UserRepository
}

// DI
func NewProfileUsecase(userRepo repo.UserRepository) *ProfileUsecase {
	return &ProfileUsecase{userRepo: userRepo}
}

type ProfileOutput struct {
	Username string       `json:"username"`
	FullName string       `json:"full_name"`
	Roles    []model.Role `json:"role"`
}

func (u *ProfileUsecase) Get(ctx context.Context, username string) (ProfileOutput, error) {
	user, err := u.find(ctx, username)
	if err != nil {
		return ProfileOutput{}, err
	}
	return ProfileOutput{
		Username: user.Username,
		FullName: user.FullName,
		Roles:    user.Roles.List(),
	}, nil
}

func (u *ProfileUsecase) GetShopName(ctx context.Context, username string) (string, error) {
	user, err := u.find(ctx, username)
	if err != nil {
		return "", err
	}
	return user.ShopName, nil
}

// SetShopNameは屋号を設定する。他のユーザーと同じ屋号は使えない。
func (u *ProfileUsecase) SetShopName(ctx context.Context, username string, name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", NewHTTPError(http.StatusBadRequest, "shop name is required")
	}

	user, err := u.find(ctx, username)
	if err != nil {
		return "", err
	}

	existing, err := u.userRepo.FindByShopName(ctx, trimmed)
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing != nil && existing.ID != user.ID {
		return "", NewHTTPError(http.StatusBadRequest, "shop name already taken")
	}

	user.ShopName = trimmed
	if err := u.userRepo.Update(ctx, user); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user.ShopName, nil
}

type SellerContactOutput struct {
	Address string `json:"address"`
	Phone   string `json:"phone_number"`
}

func (u *ProfileUsecase) GetSellerDetails(ctx context.Context, username string) (SellerContactOutput, error) {
	user, err := u.find(ctx, username)
	if err != nil {
		return SellerContactOutput{}, err
	}
	return SellerContactOutput{
		Address: user.Address,
		Phone:   user.Phone,
	}, nil
}

func (u *ProfileUsecase) SetSellerDetails(ctx context.Context, username string, address string, phone string) (SellerContactOutput, error) {
	user, err := u.find(ctx, username)
	if err != nil {
		return SellerContactOutput{}, err
	}

	user.Address = strings.TrimSpace(address)
	user.Phone = strings.TrimSpace(phone)
	if err := u.userRepo.Update(ctx, user); err != nil {
		return SellerContactOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SellerContactOutput{
		Address: user.Address,
		Phone:   user.Phone,
	}, nil
}

func (u *ProfileUsecase) find(ctx context.Context, username string) (*model.User, error) {
	user, err := u.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusNotFound, "user not found")
	}
	return user, nil
}
