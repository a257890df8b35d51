package auth

import (
	"context"
	"fmt"
	"sort"
	"time"

	"kinbech/internal/domain/model"
	"kinbech/internal/repository"
)

// テスト用のインメモリUserRepository
type fakeUserRepo struct {
	items  map[string]model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: map[string]model.User{}, nextID: 1}
}

func (m *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = m.nextID
	m.nextID++
	m.items[user.Username] = *user
	return nil
}

func (m *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	u, ok := m.items[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *fakeUserRepo) FindByShopName(ctx context.Context, shopName string) (*model.User, error) {
	for _, u := range m.items {
		if u.ShopName == shopName {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *fakeUserRepo) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	for _, u := range m.items {
		if u.Phone == phone {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	m.items[user.Username] = *user
	return nil
}

func (m *fakeUserRepo) ListSellers(ctx context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range m.items {
		if u.Roles.Has(model.RoleSeller) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// テスト用のインメモリResetTokenRepository
type fakeTokenRepo struct {
	items map[string]model.ResetToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{items: map[string]model.ResetToken{}}
}

func (m *fakeTokenRepo) Create(ctx context.Context, token *model.ResetToken) error {
	m.items[token.ID] = *token
	return nil
}

func (m *fakeTokenRepo) FindByID(ctx context.Context, id string) (model.ResetToken, error) {
	t, ok := m.items[id]
	if !ok {
		return model.ResetToken{}, repository.ErrNotFound
	}
	return t, nil
}

func (m *fakeTokenRepo) Delete(ctx context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *fakeTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for id, t := range m.items {
		if t.ExpiresAt.Before(now) {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

// bcryptの代わりに平文へ接頭辞を付けるだけのハッシュ
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type fakeVerifier struct{}

func (fakeVerifier) Verify(plain string, hashed string) bool { return "hashed:"+plain == hashed }

// 固定時刻
type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

// 連番ID
type fakeIDGen struct{ n int }

func (g *fakeIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("token-%d", g.n)
}

// 送信内容を覚えるだけのsender
type fakeSender struct {
	to    []string
	links []string
}

func (s *fakeSender) SendResetLink(ctx context.Context, phone string, link string) error {
	s.to = append(s.to, phone)
	s.links = append(s.links, link)
	return nil
}
