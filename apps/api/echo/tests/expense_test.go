package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/storage/database/storetest"
)

func Test_expenseApi_query(t *testing.T) {
	app := setup(t)
	may := storetest.CreateExpense(t, app.store, "Utilities", "Electricity", "1200", storetest.Date(2024, time.May, 31))
	juneStart := storetest.CreateExpense(t, app.store, "Supplies", "Chalk", "150", storetest.Date(2024, time.June, 1))
	juneEvening := storetest.CreateExpense(t, app.store, "Supplies", "Markers", "80.5", time.Date(2024, time.June, 10, 18, 30, 0, 0, time.UTC))
	july := storetest.CreateExpense(t, app.store, "Utilities", "Water", "300", storetest.Date(2024, time.July, 1))

	app.run(t, []httpTest{
		{
			name:     "all",
			method:   http.MethodGet,
			path:     "/api/expenses",
			wantCode: http.StatusOK,
			wantData: marchallList(t, may, juneStart, juneEvening, july),
		},
		{
			name:     "by category",
			method:   http.MethodGet,
			path:     "/api/expenses?category=Utilities",
			wantCode: http.StatusOK,
			wantData: marchallList(t, may, july),
		},
		{
			name:     "category takes precedence over dates",
			method:   http.MethodGet,
			path:     "/api/expenses?category=Supplies&start_date=2024-07-01&end_date=2024-07-31",
			wantCode: http.StatusOK,
			wantData: marchallList(t, juneStart, juneEvening),
		},
		{
			name:     "date range includes the whole end day",
			method:   http.MethodGet,
			path:     "/api/expenses?start_date=2024-06-01&end_date=2024-06-10",
			wantCode: http.StatusOK,
			wantData: marchallList(t, juneStart, juneEvening),
		},
		{
			name:     "date-time end bound is exact",
			method:   http.MethodGet,
			path:     "/api/expenses?start_date=2024-06-01&end_date=2024-06-10T12:00:00Z",
			wantCode: http.StatusOK,
			wantData: marchallList(t, juneStart),
		},
		{
			name:     "empty range",
			method:   http.MethodGet,
			path:     "/api/expenses?start_date=2025-01-01&end_date=2025-01-31",
			wantCode: http.StatusOK,
			wantData: marchallList(t),
		},
		{
			name:     "missing end date",
			method:   http.MethodGet,
			path:     "/api/expenses?start_date=2024-06-01",
			wantCode: http.StatusBadRequest,
			wantData: invalid(t, "Invalid expense filter", map[string]string{
				"end_date": "start_date and end_date go together",
			}),
		},
		{
			name:     "invalid date",
			method:   http.MethodGet,
			path:     "/api/expenses?start_date=01-06-2024&end_date=2024-06-30",
			wantCode: http.StatusBadRequest,
			wantData: invalid(t, "Invalid expense filter", map[string]string{
				"start_date": "must be an ISO date (YYYY-MM-DD) or date-time",
			}),
		},
	})
}

func Test_expenseApi_crud(t *testing.T) {
	app := setup(t)

	created := school.Expense{
		ID:          1,
		Category:    "Maintenance",
		Description: "Roof repair",
		Amount:      storetest.Amount(t, "25000"),
		Date:        storetest.Date(2024, time.June, 3),
	}
	created.Vendor.SetValid("BuildCo")

	updated := created
	updated.Amount = storetest.Amount(t, "24000")
	updated.ApprovedBy.SetValid("Principal")

	app.run(t, []httpTest{
		{
			name:     "create",
			method:   http.MethodPost,
			path:     "/api/expenses",
			body:     []byte(`{"category": "Maintenance", "description": "Roof repair", "amount": 25000, "date": "2024-06-03", "vendor": "BuildCo"}`),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, created),
		},
		{
			name:     "create without description",
			method:   http.MethodPost,
			path:     "/api/expenses",
			body:     []byte(`{"category": "Maintenance", "amount": 100, "date": "2024-06-03"}`),
			wantCode: http.StatusBadRequest,
			wantData: invalid(t, "Invalid expense data", map[string]string{"description": "this field is required"}),
		},
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     "/api/expenses/1",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, created),
		},
		{
			name:     "update",
			method:   http.MethodPut,
			path:     "/api/expenses/1",
			body:     []byte(`{"amount": "24000.00", "approvedBy": "Principal"}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, updated),
		},
		{
			name:     "delete",
			method:   http.MethodDelete,
			path:     "/api/expenses/1",
			wantCode: http.StatusOK,
			wantData: message(t, "Expense deleted successfully"),
		},
		{
			name:     "delete again",
			method:   http.MethodDelete,
			path:     "/api/expenses/1",
			wantCode: http.StatusNotFound,
			wantData: message(t, "Expense not found"),
		},
	})
}
