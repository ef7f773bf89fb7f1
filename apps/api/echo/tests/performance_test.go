package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/storage/database/storetest"
)

func Test_performanceApi(t *testing.T) {
	app := setup(t)
	asha := storetest.CreateStudent(t, app.store, "STU001", "Asha", "Verma", "asha@school.test", "10-A", now)
	ravi := storetest.CreateStudent(t, app.store, "STU002", "Ravi", "Kumar", "ravi@school.test", "9-B", now)
	maths := storetest.CreatePerformance(t, app.store, asha.ID, "Maths", 88)
	science := storetest.CreatePerformance(t, app.store, ravi.ID, "Science", 54)

	t.Run("create computes the percentage", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/performances", []byte(`{
			"studentId": 1,
			"subject": "English",
			"examType": "Mid-term",
			"academicYear": "2024-25",
			"term": "Term 1",
			"maxMarks": 80,
			"obtainedMarks": 67,
			"grade": "B+"
		}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got school.Performance
		decode(t, rec, &got)
		assert.Equal(t, 3, got.ID)
		assert.Equal(t, "83.75", got.Percentage.String())
		assert.Equal(t, "B+", got.Grade.String)
	})

	t.Run("update recomputes the percentage", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/api/performances/3", []byte(`{"obtainedMarks": 80}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got school.Performance
		decode(t, rec, &got)
		assert.Equal(t, "100.00", got.Percentage.String())
		assert.Equal(t, "English", got.Subject)
	})

	app.run(t, []httpTest{
		{
			name:     "by student",
			method:   http.MethodGet,
			path:     "/api/performances?student_id=2",
			wantCode: http.StatusOK,
			wantData: marchallList(t, science),
		},
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     "/api/performances/1",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, maths),
		},
		{
			name:     "obtained marks are required",
			method:   http.MethodPost,
			path:     "/api/performances",
			body:     []byte(`{"studentId": 1, "subject": "Art", "examType": "Final", "academicYear": "2024-25", "term": "Term 2", "maxMarks": 50}`),
			wantCode: http.StatusBadRequest,
			wantData: invalid(t, "Invalid performance data", map[string]string{"obtainedMarks": "this field is required"}),
		},
		{
			name:     "zero obtained marks",
			method:   http.MethodPost,
			path:     "/api/performances",
			body:     []byte(`{"studentId": 2, "subject": "Art", "examType": "Final", "academicYear": "2024-25", "term": "Term 2", "maxMarks": 50, "obtainedMarks": 0}`),
			wantCode: http.StatusCreated,
		},
		{
			name:     "unknown student",
			method:   http.MethodPost,
			path:     "/api/performances",
			body:     []byte(`{"studentId": 9, "subject": "Art", "examType": "Final", "academicYear": "2024-25", "term": "Term 2", "maxMarks": 50, "obtainedMarks": 10}`),
			wantCode: http.StatusBadRequest,
			wantData: invalid(t, "Invalid performance data", map[string]string{"studentId": school.ErrStudentNotFound.Error()}),
		},
		{
			name:     "delete",
			method:   http.MethodDelete,
			path:     "/api/performances/1",
			wantCode: http.StatusOK,
			wantData: message(t, "Performance record deleted successfully"),
		},
		{
			name:     "unknown id",
			method:   http.MethodGet,
			path:     "/api/performances/1",
			wantCode: http.StatusNotFound,
			wantData: message(t, "Performance record not found"),
		},
	})
}
