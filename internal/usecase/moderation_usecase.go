package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"kinbech/internal/domain/model"
	repo "kinbech/internal/repository"
)

// 管理者向けの承認・削除・出品者ディレクトリ。
// 役割チェックはroutes側のguardで済ませてあり、ここでは操作だけを行う。
type ModerationUsecase struct {
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
	auditRepo   repo.AuditLogRepository
}

// DI
func NewModerationUsecase(
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
	auditRepo repo.AuditLogRepository,
) *ModerationUsecase {
	return &ModerationUsecase{
		productRepo: productRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
	}
}

// 承認待ち（validated=false）の商品一覧
func (u *ModerationUsecase) ListPending(ctx context.Context) ([]ProductOutput, error) {
	products, err := u.productRepo.ListPending(ctx)
	if err != nil {
		return []ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductOutputs(products), nil
}

// Validateは承認フラグを立てる。すでに承認済みでも成功（冪等）。
func (u *ModerationUsecase) Validate(ctx context.Context, actor string, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.productRepo.SetValidated(ctx, productID, true); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		Actor:       actor,
		Action:      model.AuditActionValidateProduct,
		ProductID:   productID,
		ProductName: p.Name,
		CreatedAt:   time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Deleteは所有者に関係なく商品を物理削除する。
func (u *ModerationUsecase) Delete(ctx context.Context, actor string, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		Actor:       actor,
		Action:      model.AuditActionDeleteProduct,
		ProductID:   productID,
		ProductName: p.Name,
		CreatedAt:   time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type SellerOutput struct {
	Username string `json:"username"`
	ShopName string `json:"shop_name"`
	Address  string `json:"address"`
	Phone    string `json:"phone_number"`
}

// seller役割を持つユーザーのディレクトリ
func (u *ModerationUsecase) ListSellers(ctx context.Context) ([]SellerOutput, error) {
	users, err := u.userRepo.ListSellers(ctx)
	if err != nil {
		return []SellerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]SellerOutput, 0, len(users))
	for _, s := range users {
		//LIKE検索の取りこぼし防止に役割を確認し直す
		if !s.Roles.Has(model.RoleSeller) {
			continue
		}
		outs = append(outs, SellerOutput{
			Username: s.Username,
			ShopName: s.ShopName,
			Address:  s.Address,
			Phone:    s.Phone,
		})
	}
	return outs, nil
}

type SellerDetailsOutput struct {
	SellerOutput
	Products []ProductOutput `json:"products"`
}

// 出品者ごとに商品一覧をぶら下げて返す
func (u *ModerationUsecase) ListSellerDetails(ctx context.Context) ([]SellerDetailsOutput, error) {
	sellers, err := u.ListSellers(ctx)
	if err != nil {
		return []SellerDetailsOutput{}, err
	}

	outs := make([]SellerDetailsOutput, 0, len(sellers))
	for _, s := range sellers {
		products, err := u.productRepo.ListBySeller(ctx, s.Username)
		if err != nil {
			return []SellerDetailsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, SellerDetailsOutput{
			SellerOutput: s,
			Products:     toProductOutputs(products),
		})
	}
	return outs, nil
}

// 直近の管理者操作ログ
func (u *ModerationUsecase) AuditLogs(ctx context.Context, limit int) ([]model.AuditLog, error) {
	logs, err := u.auditRepo.List(ctx, limit)
	if err != nil {
		return []model.AuditLog{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
