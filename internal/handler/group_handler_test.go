package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShotaYmzk/onme-backend/internal/exchange"
	"github.com/ShotaYmzk/onme-backend/internal/money"
	"github.com/ShotaYmzk/onme-backend/internal/service"
	"github.com/ShotaYmzk/onme-backend/internal/storage"
)

type staticRates struct {
	snap *exchange.Snapshot
}

func (s staticRates) Rates(ctx context.Context) *exchange.Snapshot { return s.snap }

func testRates() staticRates {
	return staticRates{snap: &exchange.Snapshot{
		Base: money.USD,
		Date: "2026-08-01",
		Rates: map[money.Currency]decimal.Decimal{
			money.USD: decimal.RequireFromString("1"),
			money.JPY: decimal.RequireFromString("150"),
			money.EUR: decimal.RequireFromString("0.9"),
		},
	}}
}

type testHandlers struct {
	groups   *GroupHandler
	expenses *ExpenseHandler
}

func setupHandlers(t *testing.T) (*echo.Echo, testHandlers, storage.Store) {
	t.Helper()
	e := echo.New()
	store := setupStore(t)
	groupService := service.NewGroupService(store)
	h := testHandlers{
		groups:   NewGroupHandler(groupService, service.NewBalanceService(store, testRates())),
		expenses: NewExpenseHandler(service.NewExpenseService(store)),
	}
	return e, h, store
}

func createTestGroup(t *testing.T, e *echo.Echo, h testHandlers) GroupResponse {
	t.Helper()

	c, rec := postJSON(e, "/api/v1/groups", `{"name":"Kyoto 2026","member_names":["Shota","Yuki","Ren"]}`)
	require.NoError(t, h.groups.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var group GroupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &group))
	require.Len(t, group.Members, 3)
	return group
}

func addTestExpense(t *testing.T, e *echo.Echo, h testHandlers, groupID, body string) {
	t.Helper()

	c, rec := postJSON(e, "/api/v1/groups/"+groupID+"/expenses", body)
	c.SetParamNames("id")
	c.SetParamValues(groupID)
	require.NoError(t, h.expenses.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateGroupValidation(t *testing.T) {
	e, h, _ := setupHandlers(t)

	c, rec := postJSON(e, "/api/v1/groups", `{"member_names":["Shota"]}`)
	require.NoError(t, h.groups.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetGroupNotFound(t *testing.T) {
	e, h, _ := setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	require.NoError(t, h.groups.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBalancesEndpoint(t *testing.T) {
	e, h, _ := setupHandlers(t)
	group := createTestGroup(t, e, h)

	payer := group.Members[0].ID
	addTestExpense(t, e, h, group.ID,
		`{"title":"Dinner","currency":"JPY","split_equally":true,"payments":[{"member_id":"`+payer+`","amount":"3000"}]}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups/"+group.ID+"/balances?currency=jpy", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(group.ID)

	require.NoError(t, h.groups.Balances(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body BalancesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "JPY", body.Currency)
	assert.Equal(t, "2026-08-01", body.RatesDate)
	require.Len(t, body.Balances, 3)
	assert.True(t, body.Balances[0].Amount.Equal(decimal.RequireFromString("2000")))

	require.Len(t, body.Suggestions, 2)
	assert.Equal(t, payer, body.Suggestions[0].ToMemberID)
	assert.True(t, body.Suggestions[0].Amount.Equal(decimal.RequireFromString("1000")))
}

func TestBalancesRejectsUnknownCurrency(t *testing.T) {
	e, h, _ := setupHandlers(t)
	group := createTestGroup(t, e, h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups/"+group.ID+"/balances?currency=XXX", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(group.ID)

	require.NoError(t, h.groups.Balances(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArchiveMemberEndpoint(t *testing.T) {
	e, h, _ := setupHandlers(t)
	group := createTestGroup(t, e, h)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/groups/"+group.ID+"/members/"+group.Members[2].ID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "memberId")
	c.SetParamValues(group.ID, group.Members[2].ID)

	require.NoError(t, h.groups.ArchiveMember(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The archived member is gone from the roster view.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/groups/"+group.ID, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(group.ID)

	require.NoError(t, h.groups.Get(c))
	var got GroupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Members, 2)
}
