package service

import (
	"context"
	"errors"

	"greenfields/internal/model"
)

// Hand-rolled repository fakes shared by the service tests.

type stubUserRepo struct {
	byUsername map[string]*model.User
	byID       map[int]*model.User
	created    []*model.User
	newHash    string
}

func newStubUserRepo(users ...*model.User) *stubUserRepo {
	r := &stubUserRepo{byUsername: map[string]*model.User{}, byID: map[int]*model.User{}}
	for _, u := range users {
		r.byUsername[u.Username] = u
		r.byID[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = len(r.byUsername) + 1
	r.byUsername[user.Username] = user
	r.byID[user.ID] = user
	r.created = append(r.created, user)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return r.byUsername[username], nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int) (*model.User, error) {
	return r.byID[id], nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int, hash string) error {
	if _, ok := r.byID[id]; !ok {
		return errors.New("user not found for password update")
	}
	r.newHash = hash
	return nil
}

type stubProductRepo struct {
	byID    map[int64]*model.Product
	all     []model.ProductWithSeller
	deleted []int64
}

func newStubProductRepo(products ...*model.Product) *stubProductRepo {
	r := &stubProductRepo{byID: map[int64]*model.Product{}}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = int64(len(r.byID) + 1)
	r.byID[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*model.Product, error) {
	return r.byID[id], nil
}

func (r *stubProductRepo) FindAllWithSellers(_ context.Context) ([]model.ProductWithSeller, error) {
	return r.all, nil
}

func (r *stubProductRepo) FindBySeller(_ context.Context, sellerID int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.byID {
		if p.SellerID == sellerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return true, nil
}

type stubOrderRepo struct {
	created     *model.Order
	createErr   error
	byID        map[int64]*model.Order
	buyerOrders []model.OrderWithLive
	seller      []model.Order
	newStatus   string
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byID: map[int64]*model.Order{}}
}

func (r *stubOrderRepo) CreateWithStockDecrement(_ context.Context, o *model.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	o.ID = 1
	r.created = o
	r.byID[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id int64) (*model.Order, error) {
	return r.byID[id], nil
}

func (r *stubOrderRepo) FindByBuyer(_ context.Context, _ int) ([]model.OrderWithLive, error) {
	return r.buyerOrders, nil
}

func (r *stubOrderRepo) FindBySeller(_ context.Context, _ int) ([]model.Order, error) {
	return r.seller, nil
}

type stubProfileRepo struct {
	byUsername map[string]*model.Profile
	byID       map[int]*model.Profile
	farmers    []model.FarmerDirectoryEntry
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byUsername: map[string]*model.Profile{}, byID: map[int]*model.Profile{}}
}

func (r *stubProfileRepo) Upsert(_ context.Context, p *model.Profile) error {
	if existing, ok := r.byUsername[p.Username]; ok {
		p.ID = existing.ID
	} else {
		p.ID = len(r.byUsername) + 1
	}
	r.byUsername[p.Username] = p
	r.byID[p.ID] = p
	return nil
}

func (r *stubProfileRepo) FindByUsername(_ context.Context, username string) (*model.Profile, error) {
	return r.byUsername[username], nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id int) (*model.Profile, error) {
	return r.byID[id], nil
}

func (r *stubProfileRepo) FindFarmers(_ context.Context) ([]model.FarmerDirectoryEntry, error) {
	return r.farmers, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id int64, status string) (*model.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	updated := *o
	updated.Status = status
	r.newStatus = status
	return &updated, nil
}
