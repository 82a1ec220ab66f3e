package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"infocomm/internal/models"
)

func stringPtr(s string) *string { return &s }

type ProductRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ProductRepository
	context context.Context
}

func (suite *ProductRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewProductRepo(mock)
	suite.context = context.Background()
}

func (suite *ProductRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}

func (suite *ProductRepoTestSuite) TestCreate_Success() {
	product := &models.Product{
		ID:        uuid.New(),
		Reference: "ABC12345678",
		Name:      "Écran Samsung",
		Price:     125.99,
		Category:  "Écran",
		Quantity:  10,
		Supplier:  "Samsung",
		Model:     "SyncMaster 2243",
		Notes:     stringPtr("notes"),
	}

	suite.mock.ExpectExec(`INSERT INTO products`).
		WithArgs(product.ID, product.Reference, product.Name, product.Price, product.Category, product.Quantity, product.Supplier, product.Model, product.Notes).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, product)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ProductRepoTestSuite) TestGetByID_Found() {
	id := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "reference", "name", "price", "category", "quantity", "supplier", "model", "notes", "is_deleted", "created_at", "updated_at"}).
		AddRow(id, "ABC12345678", "Écran Samsung", 125.99, "Écran", 10, "Samsung", "SyncMaster 2243", (*string)(nil), false, now, now)

	suite.mock.ExpectQuery(`SELECT id, reference, name, price, category, quantity, supplier, model, notes, is_deleted, created_at, updated_at`).
		WithArgs(id).
		WillReturnRows(rows)

	product, err := suite.repo.GetByID(suite.context, id)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Écran Samsung", product.Name)
	assert.Equal(suite.T(), 10, product.Quantity)
}

func (suite *ProductRepoTestSuite) TestGetByReference_QueryError() {
	suite.mock.ExpectQuery(`SELECT id, reference, name, price`).
		WithArgs("ABC12345678").
		WillReturnError(errors.New("connection refused"))

	product, err := suite.repo.GetByReference(suite.context, "ABC12345678")
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), product)
}

func (suite *ProductRepoTestSuite) TestSoftDelete_Success() {
	id := uuid.New()

	suite.mock.ExpectExec(`UPDATE products`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.SoftDelete(suite.context, id)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ProductRepoTestSuite) TestListActive_ExcludesDeleted() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "reference", "name", "price", "category", "quantity", "supplier", "model", "notes", "is_deleted", "created_at", "updated_at"}).
		AddRow(uuid.New(), "ABC12345678", "Écran Samsung", 125.99, "Écran", 10, "Samsung", "SyncMaster 2243", (*string)(nil), false, now, now).
		AddRow(uuid.New(), "GHI12345678", "Clavier Logitech", 79.99, "Peripherique", 62, "Logitech", "K380", (*string)(nil), false, now, now)

	suite.mock.ExpectQuery(`SELECT id, reference, name, price, category, quantity, supplier, model, notes, is_deleted, created_at, updated_at`).
		WillReturnRows(rows)

	products, err := suite.repo.ListActive(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 2)
	assert.Equal(suite.T(), "Écran Samsung", products[0].Name)
}

func (suite *ProductRepoTestSuite) TestCategoryCounts() {
	rows := pgxmock.NewRows([]string{"category", "count"}).
		AddRow("Écran", 2).
		AddRow("Ordinateur", 1)

	suite.mock.ExpectQuery(`SELECT category, COUNT`).
		WillReturnRows(rows)

	counts, err := suite.repo.CategoryCounts(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, counts["Écran"])
	assert.Equal(suite.T(), 1, counts["Ordinateur"])
}
