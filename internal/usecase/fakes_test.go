package usecase

import (
	"context"
	"sort"
	"time"

	"kinbech/internal/domain/model"
	repo "kinbech/internal/repository"
)

// テスト用のインメモリrepo一式。
// GORM実装と同じ約束（ErrNotFound等）だけを守る。

type memProducts struct {
	items  map[int64]model.Product
	nextID int64
}

func newMemProducts() *memProducts {
	return &memProducts{items: map[int64]model.Product{}, nextID: 1}
}

func (m *memProducts) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (m *memProducts) ListValidated(ctx context.Context) ([]model.Product, error) {
	return m.filter(func(p model.Product) bool { return p.Validated }), nil
}

func (m *memProducts) ListPending(ctx context.Context) ([]model.Product, error) {
	return m.filter(func(p model.Product) bool { return !p.Validated }), nil
}

func (m *memProducts) ListBySeller(ctx context.Context, seller string) ([]model.Product, error) {
	return m.filter(func(p model.Product) bool { return p.Seller == seller }), nil
}

func (m *memProducts) ListAll(ctx context.Context) ([]model.Product, error) {
	return m.filter(func(model.Product) bool { return true }), nil
}

func (m *memProducts) filter(keep func(model.Product) bool) []model.Product {
	out := []model.Product{}
	for _, p := range m.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memProducts) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.ID = m.nextID
	m.nextID++
	m.items[p.ID] = p
	return p, nil
}

func (m *memProducts) Update(ctx context.Context, p model.Product) error {
	existing, ok := m.items[p.ID]
	if !ok {
		return repo.ErrNotFound
	}
	existing.Name = p.Name
	existing.Description = p.Description
	existing.Price = p.Price
	existing.DeliveryRangeKM = p.DeliveryRangeKM
	existing.ExpiryDatetime = p.ExpiryDatetime
	m.items[p.ID] = existing
	return nil
}

func (m *memProducts) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memProducts) SetValidated(ctx context.Context, id int64, validated bool) error {
	p, ok := m.items[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.Validated = validated
	m.items[id] = p
	return nil
}

func (m *memProducts) IncrementLikes(ctx context.Context, id int64) error {
	p, ok := m.items[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.Likes++
	m.items[id] = p
	return nil
}

type memOrders struct {
	items    map[int64]model.Order
	nextID   int64
	itemRepo *memOrderItems
	products *memProducts
}

func newMemOrders(items *memOrderItems, products *memProducts) *memOrders {
	return &memOrders{items: map[int64]model.Order{}, nextID: 1, itemRepo: items, products: products}
}

func (m *memOrders) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := m.items[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (m *memOrders) ListByBuyer(ctx context.Context, buyer string) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range m.items {
		if o.Buyer == buyer {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memOrders) ListBySeller(ctx context.Context, seller string) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range m.items {
		items, _ := m.itemRepo.ListByOrderID(ctx, o.ID)
		for _, it := range items {
			if it.ProductID == nil {
				continue
			}
			p, err := m.products.FindByID(ctx, *it.ProductID)
			if err == nil && p.Seller == seller {
				out = append(out, o)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memOrders) Create(ctx context.Context, order model.Order) (int64, error) {
	order.ID = m.nextID
	m.nextID++
	m.items[order.ID] = order
	return order.ID, nil
}

func (m *memOrders) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	o, ok := m.items[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	m.items[orderID] = o
	return nil
}

type memOrderItems struct {
	items  map[int64]model.OrderItem
	nextID int64
}

func newMemOrderItems() *memOrderItems {
	return &memOrderItems{items: map[int64]model.OrderItem{}, nextID: 1}
}

func (m *memOrderItems) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	out := []model.OrderItem{}
	for _, it := range m.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memOrderItems) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	for _, it := range items {
		it.ID = m.nextID
		m.nextID++
		it.OrderID = orderID
		m.items[it.ID] = it
	}
	return nil
}

type memUsers struct {
	items  map[string]model.User
	nextID int64
}

func newMemUsers() *memUsers {
	return &memUsers{items: map[string]model.User{}, nextID: 1}
}

func (m *memUsers) Create(ctx context.Context, user *model.User) error {
	user.ID = m.nextID
	m.nextID++
	m.items[user.Username] = *user
	return nil
}

func (m *memUsers) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	u, ok := m.items[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) FindByShopName(ctx context.Context, shopName string) (*model.User, error) {
	for _, u := range m.items {
		if u.ShopName == shopName {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	for _, u := range m.items {
		if u.Phone == phone {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(ctx context.Context, user *model.User) error {
	m.items[user.Username] = *user
	return nil
}

func (m *memUsers) ListSellers(ctx context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range m.items {
		if u.Roles.Has(model.RoleSeller) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type memResetTokens struct {
	items map[string]model.ResetToken
}

func newMemResetTokens() *memResetTokens {
	return &memResetTokens{items: map[string]model.ResetToken{}}
}

func (m *memResetTokens) Create(ctx context.Context, token *model.ResetToken) error {
	m.items[token.ID] = *token
	return nil
}

func (m *memResetTokens) FindByID(ctx context.Context, id string) (model.ResetToken, error) {
	t, ok := m.items[id]
	if !ok {
		return model.ResetToken{}, repo.ErrNotFound
	}
	return t, nil
}

func (m *memResetTokens) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memResetTokens) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for id, t := range m.items {
		if t.ExpiresAt.Before(now) {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

type memAudit struct {
	logs []model.AuditLog
}

func (m *memAudit) Create(ctx context.Context, log model.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func (m *memAudit) List(ctx context.Context, limit int) ([]model.AuditLog, error) {
	out := append([]model.AuditLog{}, m.logs...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// TxRepos兼TransactionManager。テストではロールバックせず、
// 失敗前に書き込みが起きないことはusecase側の順序で保証される。
type memTx struct {
	products    *memProducts
	orders      *memOrders
	orderItems  *memOrderItems
	users       *memUsers
	resetTokens *memResetTokens
}

func newMemTx() *memTx {
	products := newMemProducts()
	orderItems := newMemOrderItems()
	return &memTx{
		products:    products,
		orders:      newMemOrders(orderItems, products),
		orderItems:  orderItems,
		users:       newMemUsers(),
		resetTokens: newMemResetTokens(),
	}
}

func (t *memTx) Orders() repo.OrderRepository           { return t.orders }
func (t *memTx) OrderItems() repo.OrderItemRepository   { return t.orderItems }
func (t *memTx) Products() repo.ProductRepository       { return t.products }
func (t *memTx) Users() repo.UserRepository             { return t.users }
func (t *memTx) ResetTokens() repo.ResetTokenRepository { return t.resetTokens }

func (t *memTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(t)
}
