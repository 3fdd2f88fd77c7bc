package service

import (
	"context"
	"testing"

	"greenfields/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductForm() model.AddProductForm {
	return model.AddProductForm{
		Name:         "Wheat",
		Price:        20,
		Quantity:     100,
		Category:     "grains",
		Phone:        "111",
		ContactEmail: "f@x.com",
	}
}

func TestProductService_AddProduct(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, t.TempDir())

	product, err := svc.AddProduct(context.Background(), 2, validProductForm(), nil)

	require.NoError(t, err)
	assert.Equal(t, 2, product.SellerID)
	assert.Equal(t, "Grains", product.Category, "category is capitalized on write")
	assert.Nil(t, product.ImagePath)
	assert.NotZero(t, product.ID)
}

func TestProductService_AddProduct_DefaultCategory(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), t.TempDir())
	form := validProductForm()
	form.Category = ""

	product, err := svc.AddProduct(context.Background(), 2, form, nil)

	require.NoError(t, err)
	assert.Equal(t, model.DefaultCategory, product.Category)
}

func TestProductService_AddProduct_MissingFields(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), t.TempDir())

	for _, mutate := range []func(*model.AddProductForm){
		func(f *model.AddProductForm) { f.Name = "" },
		func(f *model.AddProductForm) { f.Phone = "" },
		func(f *model.AddProductForm) { f.ContactEmail = "" },
		func(f *model.AddProductForm) { f.Price = 0 },
		func(f *model.AddProductForm) { f.Quantity = 0 },
	} {
		form := validProductForm()
		mutate(&form)
		_, err := svc.AddProduct(context.Background(), 2, form, nil)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestProductService_AddProduct_NegativeValues(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), t.TempDir())
	form := validProductForm()
	form.Price = -1

	_, err := svc.AddProduct(context.Background(), 2, form, nil)
	assert.ErrorIs(t, err, ErrNegativeValues)
}

func TestProductService_ListProducts_Fallbacks(t *testing.T) {
	repo := newStubProductRepo()
	username := "farmer1"
	desc := "fresh"
	img := "/uploads/abc.png"
	repo.all = []model.ProductWithSeller{
		{
			Product: model.Product{
				ID: 1, Name: "Wheat", Price: 20, Quantity: 100, Category: "Grains",
				Phone: "111", ContactEmail: "f@x.com", Description: &desc, ImagePath: &img,
			},
			SellerUsername: &username,
		},
		{
			// owning account deleted and no contact fields on the listing
			Product: model.Product{ID: 2, Name: "Rice", Price: 30, Quantity: 50, Category: "Grains"},
		},
	}
	svc := NewProductService(repo, t.TempDir())

	listings, err := svc.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "farmer1", listings[0].SellerName)
	assert.Equal(t, "f@x.com", listings[0].SellerEmail)
	assert.Equal(t, "fresh", listings[0].Description)
	assert.Equal(t, "/uploads/abc.png", listings[0].Image)
	assert.Equal(t, "Unknown", listings[1].SellerName)
	assert.Equal(t, "Not Provided", listings[1].SellerEmail)
	assert.Equal(t, "Not Provided", listings[1].SellerPhone)
	assert.Equal(t, "", listings[1].Image)
}

func TestProductService_DeleteProduct(t *testing.T) {
	repo := newStubProductRepo(&model.Product{ID: 5, SellerID: 2, Name: "Wheat"})
	svc := NewProductService(repo, t.TempDir())

	require.NoError(t, svc.DeleteProduct(context.Background(), 5, 2))
	assert.Equal(t, []int64{5}, repo.deleted)
}

func TestProductService_DeleteProduct_NotOwner(t *testing.T) {
	repo := newStubProductRepo(&model.Product{ID: 5, SellerID: 2, Name: "Wheat"})
	svc := NewProductService(repo, t.TempDir())

	err := svc.DeleteProduct(context.Background(), 5, 3)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, repo.deleted, "listing must survive a rejected delete")
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), t.TempDir())

	err := svc.DeleteProduct(context.Background(), 99, 2)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
