package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"kinbech/internal/domain/model"
	repo "kinbech/internal/repository"
)

type OrderUsecase struct {
	tx         repo.TransactionManager
	serviceFee float64
}

func NewOrderUsecase(tx repo.TransactionManager, serviceFee float64) *OrderUsecase {
	return &OrderUsecase{tx: tx, serviceFee: serviceFee}
}

type CheckoutItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CheckoutInput struct {
	Items          []CheckoutItem
	Address        string
	Phone          string
	Note           string
	SampleImageURL string
}

type OrderItemOutput struct {
	ProductID *int64 `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	ShopName  string `json:"shop_name"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID        int64             `json:"id"`
	Buyer     string            `json:"buyer"`
	Address   string            `json:"address"`
	Phone     string            `json:"phone"`
	Status    string            `json:"status"`
	Total     float64           `json:"total"`
	Note      string            `json:"note,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Items     []OrderItemOutput `json:"items"`
}

// Checkoutは注文と明細を1トランザクションで作る。
// どれか1つでも商品が見つからない・未承認なら全体を失敗させ、行は残さない。
func (u *OrderUsecase) Checkout(ctx context.Context, buyer string, in CheckoutInput) (OrderOutput, error) {
	if buyer == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	if strings.TrimSpace(in.Address) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "address is required")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid items")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		var total float64

		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.Validated {
				return NewHTTPError(http.StatusBadRequest, "product not validated")
			}

			//スナップショット（商品が後で消えても明細は読める）
			pid := p.ID
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           &pid,
				ProductNameSnapshot: p.Name,
				PriceSnapshot:       p.Price,
				ShopNameSnapshot:    p.ShopName,
				Quantity:            it.Quantity,
			})

			//範囲価格は下限、読めない価格は0で計上する
			total += model.PriceValue(p.Price) * float64(it.Quantity)
		}

		total += u.serviceFee

		now := time.Now()
		order := model.Order{
			Buyer:          buyer,
			Address:        strings.TrimSpace(in.Address),
			Phone:          strings.TrimSpace(in.Phone),
			Status:         model.OrderStatusPending,
			Total:          total,
			Note:           in.Note,
			SampleImageURL: in.SampleImageURL,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Buyは1商品・数量1の即時購入。買い手役割はhandler側のguardで確認済み。
// 未承認商品の購入は403（買い手一覧に出ないものは買えない）。
func (u *OrderUsecase) Buy(ctx context.Context, buyer string, productID int64, address string, phone string) (OrderOutput, error) {
	if productID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(address) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "address is required")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.Validated {
			return NewHTTPError(http.StatusForbidden, "product not validated")
		}

		now := time.Now()
		order := model.Order{
			Buyer:     buyer,
			Address:   strings.TrimSpace(address),
			Phone:     strings.TrimSpace(phone),
			Status:    model.OrderStatusPending,
			Total:     model.PriceValue(p.Price) + u.serviceFee,
			CreatedAt: now,
			UpdatedAt: now,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		pid := p.ID
		items := []model.OrderItem{{
			ProductID:           &pid,
			ProductNameSnapshot: p.Name,
			PriceSnapshot:       p.Price,
			ShopNameSnapshot:    p.ShopName,
			Quantity:            1,
		}}
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 売り手向け：自分の商品を含む注文一覧
func (u *OrderUsecase) ListForSeller(ctx context.Context, seller string) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListBySeller(ctx, seller)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// Fulfillは Pending→Fulfilled。
// 管理者か、注文の全明細の商品を持つ売り手だけが実行できる。
func (u *OrderUsecase) Fulfill(ctx context.Context, actor string, roles model.RoleSet, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !roles.Has(model.RoleAdmin) {
			items, err := r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//1つでも他人の（または消えた）商品が混じっていたら拒否
			for _, it := range items {
				if it.ProductID == nil {
					return NewHTTPError(http.StatusForbidden, "unauthorized")
				}
				p, err := r.Products().FindByID(ctx, *it.ProductID)
				if errors.Is(err, repo.ErrNotFound) {
					return NewHTTPError(http.StatusForbidden, "unauthorized")
				}
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if p.Seller != actor {
					return NewHTTPError(http.StatusForbidden, "unauthorized")
				}
			}
		}

		if o.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusBadRequest, "order is not pending")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusFulfilled); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// Completeは Fulfilled→Completed。管理者か元の買い手だけ。
// Fulfilled以外からの遷移は前提条件エラー（2回目の呼び出しも弾かれる）。
func (u *OrderUsecase) Complete(ctx context.Context, actor string, roles model.RoleSet, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !roles.Has(model.RoleAdmin) && o.Buyer != actor {
			return NewHTTPError(http.StatusForbidden, "unauthorized")
		}

		if o.Status != model.OrderStatusFulfilled {
			return NewHTTPError(http.StatusBadRequest, "order is not fulfilled")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCompleted); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

type NotificationOutput struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// 買い手向け：自分の注文の状態を新しい順で返す
func (u *OrderUsecase) BuyerNotifications(ctx context.Context, buyer string) ([]NotificationOutput, error) {
	var outs []NotificationOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByBuyer(ctx, buyer)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]NotificationOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, NotificationOutput{
				ID:        o.ID,
				Status:    string(o.Status),
				Timestamp: o.CreatedAt,
			})
		}
		return nil
	})

	if err != nil {
		return []NotificationOutput{}, err
	}
	return outs, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.PriceSnapshot,
			ShopName:  it.ShopNameSnapshot,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:        o.ID,
		Buyer:     o.Buyer,
		Address:   o.Address,
		Phone:     o.Phone,
		Status:    string(o.Status),
		Total:     o.Total,
		Note:      o.Note,
		CreatedAt: o.CreatedAt,
		Items:     outItems,
	}
}
