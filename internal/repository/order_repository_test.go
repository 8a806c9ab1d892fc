package repository_test

import (
	"sort"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"

	"github.com/ecarthub/marketcore/internal/domain"
	"github.com/ecarthub/marketcore/internal/port"
	"github.com/ecarthub/marketcore/internal/repository"
)

type orderRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	repo      port.OrderRepository
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestOrderRepositorySuite(t *testing.T) {
	// Verifies no leaks after all tests in the suite run.
	defer goleak.VerifyNone(t)

	suite.Run(t, new(orderRepositorySuite))
}

// before all tests in the suite
func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.repo = repository.NewOrder(suite.pool)
}

// after all tests in the suite
func (suite *orderRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *orderRepositorySuite) TestInsertGetOrder() {
	t := suite.T()
	ctx := t.Context()
	defer suite.deleteAll()

	order := randomOrder(gofakeit.UUID(), gofakeit.UUID())

	orderID, err := suite.repo.InsertOrder(ctx, order)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, orderID)

	actual, err := suite.repo.GetOrder(ctx, orderID)
	require.NoError(t, err)
	assertOrder(t, order, actual)
	assert.Equal(t, domain.OrderStatusOrdered, actual.Status)
}

func (suite *orderRepositorySuite) TestGetOrderNotFound() {
	t := suite.T()

	_, err := suite.repo.GetOrder(t.Context(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *orderRepositorySuite) TestInsertOrderValidation() {
	t := suite.T()
	ctx := t.Context()

	noLines := randomOrder(gofakeit.UUID())
	noLines.Lines = nil
	_, err := suite.repo.InsertOrder(ctx, noLines)
	require.ErrorContains(t, err, "no lines in order")

	noOwner := randomOrder(gofakeit.UUID())
	noOwner.OwnerID = ""
	_, err = suite.repo.InsertOrder(ctx, noOwner)
	require.ErrorContains(t, err, "ownerID is empty")
}

func (suite *orderRepositorySuite) TestUpdateOrderStatus() {
	t := suite.T()
	ctx := t.Context()
	defer suite.deleteAll()

	orderID := suite.insertOrders(randomOrder(gofakeit.UUID()))[0]

	require.NoError(t, suite.repo.UpdateOrderStatus(ctx, orderID, domain.OrderStatusShipped))

	actual, err := suite.repo.GetOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, actual.Status)
	assert.True(t, actual.UpdatedAt.After(actual.CreatedAt) || actual.UpdatedAt.Equal(actual.CreatedAt))

	err = suite.repo.UpdateOrderStatus(ctx, uuid.New(), domain.OrderStatusShipped)
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = suite.repo.UpdateOrderStatus(ctx, uuid.Nil, domain.OrderStatusShipped)
	require.ErrorContains(t, err, "orderID is empty")
}

func (suite *orderRepositorySuite) TestSearchOrders() {
	t := suite.T()
	ctx := t.Context()
	defer suite.deleteAll()

	sellerA := gofakeit.UUID()
	sellerB := gofakeit.UUID()

	order1 := randomOrder(sellerA, sellerB)
	order2 := randomOrder(sellerB)
	orderIDs := suite.insertOrders(order1, order2)

	require.NoError(t, suite.repo.UpdateOrderStatus(ctx, orderIDs[1], domain.OrderStatusDelivered))
	order2.Status = domain.OrderStatusDelivered

	tests := []struct {
		name       string
		filter     domain.OrderFilter
		wantOrders []domain.Order
		wantError  string
	}{
		{
			name:      "empty filter: error",
			filter:    domain.OrderFilter{},
			wantError: "filter.Validate: all fields are empty",
		},
		{
			name: "search by ids: 1 found",
			filter: domain.OrderFilter{
				IDs: []uuid.UUID{orderIDs[0]},
			},
			wantOrders: []domain.Order{order1},
		},
		{
			name: "search by owner ids: 1 found",
			filter: domain.OrderFilter{
				OwnerIDs: []string{order1.OwnerID},
			},
			wantOrders: []domain.Order{order1},
		},
		{
			name: "search by seller ids: both found for shared seller",
			filter: domain.OrderFilter{
				SellerIDs: []string{sellerB},
			},
			wantOrders: []domain.Order{order1, order2},
		},
		{
			name: "search by seller ids: 1 found",
			filter: domain.OrderFilter{
				SellerIDs: []string{sellerA},
			},
			wantOrders: []domain.Order{order1},
		},
		{
			name: "search by seller ids: not found",
			filter: domain.OrderFilter{
				SellerIDs: []string{gofakeit.UUID()},
			},
		},
		{
			name: "search by statuses: 1 found",
			filter: domain.OrderFilter{
				Statuses: []domain.OrderStatus{domain.OrderStatusDelivered},
			},
			wantOrders: []domain.Order{order2},
		},
		{
			name: "search by owner and status: not found",
			filter: domain.OrderFilter{
				OwnerIDs: []string{order1.OwnerID},
				Statuses: []domain.OrderStatus{domain.OrderStatusDelivered},
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			actual, err := suite.repo.SearchOrders(t.Context(), tt.filter)
			if tt.wantError != "" {
				require.ErrorContains(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assertOrders(t, tt.wantOrders, actual)
		})
	}
}

func (suite *orderRepositorySuite) insertOrders(orders ...domain.Order) []uuid.UUID {
	t := suite.T()
	t.Helper()

	var ids []uuid.UUID
	for _, order := range orders {
		id, err := suite.repo.InsertOrder(t.Context(), order)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func (suite *orderRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE orders, order_lines CASCADE")
	suite.NoError(err)
}

func randomOrder(sellerIDs ...string) domain.Order {
	eur := currency.MustParseISO("EUR")

	var (
		lines []domain.OrderLine
		total = domain.Zero(eur)
	)

	for _, sellerID := range sellerIDs {
		line := domain.OrderLine{
			ProductID: uuid.New(),
			SellerID:  sellerID,
			Quantity:  int32(gofakeit.Number(1, 5)),
			UnitPrice: domain.Money{
				Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)),
				Currency: eur,
			},
		}
		lines = append(lines, line)

		total, _ = total.Add(line.UnitPrice.Mul(line.Quantity))
	}

	return domain.Order{
		OwnerID:         gofakeit.UUID(),
		Lines:           lines,
		Total:           total,
		Status:          domain.OrderStatusOrdered,
		ShippingAddress: gofakeit.Address().Address,
		Phone:           gofakeit.Phone(),
		Email:           gofakeit.Email(),
		PaymentMethod:   "cod",
	}
}

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	// Ignore generated fields and treat empty slices as equal to nil
	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.OrderLine{}, "CreatedAt"),
		cmpopts.IgnoreFields(domain.Order{}, "ID", "Status", "CreatedAt", "UpdatedAt"),
		cmpopts.SortSlices(func(a, b domain.OrderLine) bool {
			return a.ProductID.String() < b.ProductID.String()
		}),
		cmpopts.EquateEmpty(),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.NotEqual(t, uuid.Nil, actual.ID)
	assert.False(t, actual.CreatedAt.IsZero())
	assert.False(t, actual.UpdatedAt.IsZero())
}

func assertOrders(t *testing.T, expected, actual []domain.Order) {
	t.Helper()

	sortOrders := func(orders []domain.Order) {
		sort.Slice(orders, func(i, j int) bool {
			return orders[i].OwnerID < orders[j].OwnerID
		})
	}

	sortOrders(expected)
	sortOrders(actual)

	require.Equal(t, len(expected), len(actual))

	for i := range expected {
		assertOrder(t, expected[i], actual[i])
		assert.Equal(t, expected[i].Status, actual[i].Status)
	}
}
