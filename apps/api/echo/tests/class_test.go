package tests

import (
	"net/http"
	"testing"

	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/storage/database/storetest"
)

func Test_classApi(t *testing.T) {
	app := setup(t)
	nineA := storetest.CreateClass(t, app.store, "9-A", 9, "A")

	tenA := school.Class{ID: 2, Name: "10-A", Standard: 10, Section: "A", Capacity: school.DefaultClassCapacity}
	tenA.ClassTeacher.SetValid("Mrs. Patel")

	renamed := tenA
	renamed.Room.SetValid("201")
	renamed.Capacity = 45

	app.run(t, []httpTest{
		{
			name:     "create with default capacity",
			method:   http.MethodPost,
			path:     "/api/classes",
			body:     []byte(`{"name": "10-A", "standard": 10, "section": "A", "classTeacher": "Mrs. Patel"}`),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, tenA),
		},
		{
			name:     "duplicate name",
			method:   http.MethodPost,
			path:     "/api/classes",
			body:     []byte(`{"name": "9-A", "standard": 9, "section": "A"}`),
			wantCode: http.StatusBadRequest,
			wantData: invalid(t, "Invalid class data", map[string]string{"name": school.ErrClassNameExists.Error()}),
		},
		{
			name:     "list",
			method:   http.MethodGet,
			path:     "/api/classes",
			wantCode: http.StatusOK,
			wantData: marchallList(t, nineA, tenA),
		},
		{
			name:     "update",
			method:   http.MethodPut,
			path:     "/api/classes/2",
			body:     []byte(`{"room": "201", "capacity": 45}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, renamed),
		},
		{
			name:     "rename to an existing name",
			method:   http.MethodPut,
			path:     "/api/classes/2",
			body:     []byte(`{"name": "9-A"}`),
			wantCode: http.StatusBadRequest,
			wantData: invalid(t, "Invalid class data", map[string]string{"name": school.ErrClassNameExists.Error()}),
		},
		{
			name:     "delete",
			method:   http.MethodDelete,
			path:     "/api/classes/1",
			wantCode: http.StatusOK,
			wantData: message(t, "Class deleted successfully"),
		},
		{
			name:     "unknown id",
			method:   http.MethodGet,
			path:     "/api/classes/1",
			wantCode: http.StatusNotFound,
			wantData: message(t, "Class not found"),
		},
	})
}
