package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"greenfields/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() *model.Order {
	productID := int64(5)
	sellerID := 2
	return &model.Order{
		ProductID:    &productID,
		ProductName:  "Wheat",
		ProductPrice: 20,
		SellerID:     &sellerID,
		SellerName:   "farmer1",
		SellerEmail:  "farmer1@example.com",
		SellerPhone:  "12345",
		BuyerID:      3,
		BuyerName:    "buyer1",
		BuyerEmail:   "buyer1@example.com",
		BuyerPhone:   "67890",
		BuyerAddress: "Village Road",
		Quantity:     30,
		PaymentMode:  "COD",
		Status:       model.OrderStatusPending,
		CreatedAt:    time.Now(),
	}
}

func TestOrderRepository_CreateWithStockDecrement(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	o := testOrder()
	createdAt := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs(o.ProductID, o.ProductName, o.ProductPrice,
			o.SellerID, o.SellerName, o.SellerEmail, o.SellerPhone,
			o.BuyerID, o.BuyerName, o.BuyerEmail, o.BuyerPhone, o.BuyerAddress,
			o.Quantity, o.PaymentMode, o.Status, o.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), createdAt))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET quantity = GREATEST(quantity - $1, 0) WHERE id = $2`)).
		WithArgs(o.Quantity, o.ProductID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	repo := NewOrderRepository(mock)
	err = repo.CreateWithStockDecrement(context.Background(), o)

	assert.NoError(t, err)
	assert.Equal(t, int64(11), o.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_CreateWithStockDecrement_InsertFailureRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	o := testOrder()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	repo := NewOrderRepository(mock)
	err = repo.CreateWithStockDecrement(context.Background(), o)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_CreateWithStockDecrement_DecrementFailureRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	o := testOrder()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs(o.ProductID, o.ProductName, o.ProductPrice,
			o.SellerID, o.SellerName, o.SellerEmail, o.SellerPhone,
			o.BuyerID, o.BuyerName, o.BuyerEmail, o.BuyerPhone, o.BuyerAddress,
			o.Quantity, o.PaymentMode, o.Status, o.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), time.Now()))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products`)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("update failed"))
	mock.ExpectRollback()

	repo := NewOrderRepository(mock)
	err = repo.CreateWithStockDecrement(context.Background(), o)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE orders SET status = $1 WHERE id = $2`)).
		WithArgs("Confirmed", int64(99)).
		WillReturnError(pgx.ErrNoRows)

	repo := NewOrderRepository(mock)
	order, err := repo.UpdateStatus(context.Background(), 99, "Confirmed")

	assert.NoError(t, err)
	assert.Nil(t, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_FindBySeller(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	productID := int64(5)
	sellerID := 2
	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "product_id", "product_name", "product_price", "seller_id", "seller_name", "seller_email", "seller_phone",
		"buyer_id", "buyer_name", "buyer_email", "buyer_phone", "buyer_address", "quantity", "payment_mode", "status", "created_at",
	}).AddRow(int64(1), &productID, "Wheat", 20.0, &sellerID, "farmer1", "f@x.com", "111",
		3, "buyer1", "b@x.com", "222", "addr", 30, "COD", "Pending", now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE seller_id = $1 ORDER BY created_at DESC`)).
		WithArgs(2).
		WillReturnRows(rows)

	repo := NewOrderRepository(mock)
	orders, err := repo.FindBySeller(context.Background(), 2)

	assert.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Wheat", orders[0].ProductName)
	assert.Equal(t, "buyer1", orders[0].BuyerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
