package routerhelper

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestRouteGroup(t *testing.T) {
	r := httprouter.New()
	api := NewRouteGroup(r, "/api")
	v1 := api.Group("/v1")

	ok := func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusNoContent)
	}
	api.GET("/networkRoutes", ok)
	v1.POST("/batch", ok)

	testCases := []struct {
		method string
		path   string
		want   int
	}{
		{method: http.MethodGet, path: "/api/networkRoutes", want: http.StatusNoContent},
		{method: http.MethodPost, path: "/api/v1/batch", want: http.StatusNoContent},
		{method: http.MethodGet, path: "/networkRoutes", want: http.StatusNotFound},
		{method: http.MethodPost, path: "/api/networkRoutes", want: http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
