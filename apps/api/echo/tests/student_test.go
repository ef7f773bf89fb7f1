package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/storage/database/storetest"
)

func Test_home(t *testing.T) {
	app := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Shule API!", rec.Body.String())
}

func Test_studentApi_create(t *testing.T) {
	app := setup(t)
	storetest.CreateStudent(t, app.store, "STU001", "Asha", "Verma", "asha@school.test", "10-A", now)

	req, rec := newRequest(http.MethodPost, "/api/students", []byte(`{
		"registryNo": " STU002 ",
		"firstName": "Ravi",
		"lastName": "Kumar",
		"email": "Ravi@School.test",
		"class": "10-A",
		"dateOfBirth": "2009-03-14",
		"guardianName": "Mr. Kumar"
	}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got school.Student
	decode(t, rec, &got)
	assert.Equal(t, 2, got.ID)
	assert.Equal(t, "STU002", got.RegistryNo)
	assert.Equal(t, "ravi@school.test", got.Email)
	assert.Equal(t, school.StudentActive, got.Status)
	assert.Equal(t, now, got.AdmissionDate)
	assert.Equal(t, storetest.Date(2009, 3, 14), got.DateOfBirth.Time)
	assert.Equal(t, "Mr. Kumar", got.GuardianName.String)
	assert.False(t, got.Phone.Valid)

	app.run(t, []httpTest{
		{
			name:     "missing fields",
			method:   http.MethodPost,
			path:     "/api/students",
			body:     []byte(`{"email": "nope"}`),
			wantCode: http.StatusBadRequest,
			wantData: invalid(t, "Invalid student data", map[string]string{
				"registryNo": "this field is required",
				"firstName":  "this field is required",
				"lastName":   "this field is required",
				"email":      "email must be a valid email address",
				"class":      "this field is required",
			}),
		},
		{
			name:     "bad status",
			method:   http.MethodPost,
			path:     "/api/students",
			body:     []byte(`{"registryNo": "STU003", "firstName": "A", "lastName": "B", "email": "ab@school.test", "class": "9-A", "status": "expelled"}`),
			wantCode: http.StatusBadRequest,
			wantData: invalid(t, "Invalid student data", map[string]string{
				"status": "status must be one of [active inactive graduated]",
			}),
		},
		{
			name:     "duplicate registry number",
			method:   http.MethodPost,
			path:     "/api/students",
			body:     []byte(`{"registryNo": "STU001", "firstName": "A", "lastName": "B", "email": "ab@school.test", "class": "9-A"}`),
			wantCode: http.StatusBadRequest,
			wantData: invalid(t, "Invalid student data", map[string]string{"registryNo": school.ErrRegistryNoExists.Error()}),
		},
		{
			name:     "duplicate email",
			method:   http.MethodPost,
			path:     "/api/students",
			body:     []byte(`{"registryNo": "STU003", "firstName": "A", "lastName": "B", "email": "ASHA@school.test", "class": "9-A"}`),
			wantCode: http.StatusBadRequest,
			wantData: invalid(t, "Invalid student data", map[string]string{"email": school.ErrEmailExists.Error()}),
		},
		{
			name:     "malformed body",
			method:   http.MethodPost,
			path:     "/api/students",
			body:     []byte(`{"registryNo": `),
			wantCode: http.StatusBadRequest,
			wantData: message(t, "Invalid student data"),
		},
	})
}

func Test_studentApi_retrieve(t *testing.T) {
	app := setup(t)
	asha := storetest.CreateStudent(t, app.store, "STU001", "Asha", "Verma", "asha@school.test", "10-A", now)

	app.run(t, []httpTest{
		{
			name:     "found",
			method:   http.MethodGet,
			path:     "/api/students/1",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, asha),
		},
		{
			name:     "unknown id",
			method:   http.MethodGet,
			path:     "/api/students/99",
			wantCode: http.StatusNotFound,
			wantData: message(t, "Student not found"),
		},
		{
			name:     "non-numeric id",
			method:   http.MethodGet,
			path:     "/api/students/abc",
			wantCode: http.StatusNotFound,
			wantData: message(t, "Student not found"),
		},
	})
}

func Test_studentApi_update(t *testing.T) {
	app := setup(t)
	asha := storetest.CreateStudent(t, app.store, "STU001", "Asha", "Verma", "asha@school.test", "10-A", now)
	storetest.CreateStudent(t, app.store, "STU002", "Ravi", "Kumar", "ravi@school.test", "10-A", now)

	want := asha
	want.FirstName = "Ashwini"
	want.Class = "11-A"

	app.run(t, []httpTest{
		{
			name:     "partial update",
			method:   http.MethodPut,
			path:     "/api/students/1",
			body:     []byte(`{"firstName": "Ashwini", "class": "11-A"}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, want),
		},
		{
			name:     "keeping its own email",
			method:   http.MethodPut,
			path:     "/api/students/1",
			body:     []byte(`{"email": "asha@school.test"}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, want),
		},
		{
			name:     "taking another student's email",
			method:   http.MethodPut,
			path:     "/api/students/1",
			body:     []byte(`{"email": "ravi@school.test"}`),
			wantCode: http.StatusBadRequest,
			wantData: invalid(t, "Invalid student data", map[string]string{"email": school.ErrEmailExists.Error()}),
		},
		{
			name:     "invalid date of birth",
			method:   http.MethodPut,
			path:     "/api/students/1",
			body:     []byte(`{"dateOfBirth": "14/03/2009"}`),
			wantCode: http.StatusBadRequest,
			wantData: invalid(t, "Invalid student data", map[string]string{
				"dateOfBirth": "must be an ISO date (YYYY-MM-DD) or date-time",
			}),
		},
		{
			name:     "unknown id",
			method:   http.MethodPut,
			path:     "/api/students/99",
			body:     []byte(`{"firstName": "Ghost"}`),
			wantCode: http.StatusNotFound,
			wantData: message(t, "Student not found"),
		},
	})
}

func Test_studentApi_destroy(t *testing.T) {
	app := setup(t)
	asha := storetest.CreateStudent(t, app.store, "STU001", "Asha", "Verma", "asha@school.test", "10-A", now)
	fee := storetest.CreateFee(t, app.store, asha.ID, "1500", "0", school.FeePending, now.AddDate(0, 1, 0))

	app.run(t, []httpTest{
		{
			name:     "deleted",
			method:   http.MethodDelete,
			path:     "/api/students/1",
			wantCode: http.StatusOK,
			wantData: message(t, "Student deleted successfully"),
		},
		{
			name:     "already deleted",
			method:   http.MethodDelete,
			path:     "/api/students/1",
			wantCode: http.StatusNotFound,
			wantData: message(t, "Student not found"),
		},
		{
			name:     "fees are kept",
			method:   http.MethodGet,
			path:     "/api/fees/1",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, fee),
		},
	})
}

func Test_studentApi_query(t *testing.T) {
	app := setup(t)
	asha := storetest.CreateStudent(t, app.store, "STU001", "Asha", "Verma", "asha@school.test", "10-A", now)
	storetest.CreateStudent(t, app.store, "STU002", "Ravi", "Kumar", "ravi@school.test", "9-B", now)
	storetest.CreateStudent(t, app.store, "STU003", "Meera", "Iyer", "meera@school.test", "10-A", now)

	storetest.CreateFee(t, app.store, asha.ID, "1500", "1500", school.FeePaid, now.AddDate(0, -1, 0), now.AddDate(0, -1, 0))
	storetest.CreateFee(t, app.store, asha.ID, "500", "0", school.FeePending, now.AddDate(0, 0, -1))
	storetest.CreatePerformance(t, app.store, asha.ID, "Maths", 90)
	storetest.CreatePerformance(t, app.store, asha.ID, "Science", 81)

	ids := func(students []report.StudentWithFees) []int {
		res := make([]int, 0, len(students))
		for _, s := range students {
			res = append(res, s.ID)
		}
		return res
	}

	tests := []struct {
		name    string
		path    string
		wantIDs []int
	}{
		{name: "all", path: "/api/students", wantIDs: []int{1, 2, 3}},
		{name: "search by first name", path: "/api/students?search=ASH", wantIDs: []int{1}},
		{name: "search by registry number", path: "/api/students?search=stu002", wantIDs: []int{2}},
		{name: "search by email", path: "/api/students?search=meera@", wantIDs: []int{3}},
		{name: "search takes precedence over class", path: "/api/students?search=kumar&class=10-A", wantIDs: []int{2}},
		{name: "by class", path: "/api/students?class=10-A", wantIDs: []int{1, 3}},
		{name: "no match", path: "/api/students?search=zzz", wantIDs: []int{}},
		{name: "trailing slash", path: "/api/students/", wantIDs: []int{1, 2, 3}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var got []report.StudentWithFees
			decode(t, rec, &got)
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}

	t.Run("fee totals", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/students?class=10-A")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var got []map[string]interface{}
		decode(t, rec, &got)
		require.Len(t, got, 2)
		assert.Equal(t, "2000.00", got[0]["totalFees"])
		assert.Equal(t, "1500.00", got[0]["paidFees"])
		assert.Equal(t, "500.00", got[0]["pendingFees"])
		assert.Equal(t, "overdue", got[0]["feeStatus"])
		assert.EqualValues(t, 86, got[0]["averagePerformance"])
		assert.Equal(t, "0.00", got[1]["totalFees"])
		assert.Equal(t, "paid", got[1]["feeStatus"])
		assert.EqualValues(t, 0, got[1]["averagePerformance"])
	})
}

func Test_studentApi_subResources(t *testing.T) {
	app := setup(t)
	asha := storetest.CreateStudent(t, app.store, "STU001", "Asha", "Verma", "asha@school.test", "10-A", now)
	ravi := storetest.CreateStudent(t, app.store, "STU002", "Ravi", "Kumar", "ravi@school.test", "9-B", now)
	fee := storetest.CreateFee(t, app.store, asha.ID, "1500", "0", school.FeePending, now.AddDate(0, 1, 0))
	storetest.CreateFee(t, app.store, ravi.ID, "900", "0", school.FeePending, now.AddDate(0, 1, 0))
	perf := storetest.CreatePerformance(t, app.store, asha.ID, "Maths", 72)

	app.run(t, []httpTest{
		{
			name:     "fees",
			method:   http.MethodGet,
			path:     "/api/students/1/fees",
			wantCode: http.StatusOK,
			wantData: marchallList(t, fee),
		},
		{
			name:     "performances",
			method:   http.MethodGet,
			path:     "/api/students/1/performances",
			wantCode: http.StatusOK,
			wantData: marchallList(t, perf),
		},
		{
			name:     "no performances",
			method:   http.MethodGet,
			path:     "/api/students/2/performances",
			wantCode: http.StatusOK,
			wantData: marchallList(t),
		},
		{
			name:     "unknown student",
			method:   http.MethodGet,
			path:     "/api/students/99/fees",
			wantCode: http.StatusNotFound,
			wantData: message(t, "Student not found"),
		},
	})
}
