package dig_container

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
)

func TestNew(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("TEST_STORAGE", core.StorageMemory)
	t.Setenv("TEST_DEBUG", "false")

	err := New().Invoke(func(conf *core.Config, server *echoapi.Server, closeStore CloseStoreFunc) {
		assert.True(t, conf.TestMode)

		req := httptest.NewRequest(http.MethodGet, "/api/classes", nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())

		assert.NoError(t, closeStore())
	})
	require.NoError(t, err)
}
