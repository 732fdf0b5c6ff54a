package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestChannel(t *testing.T) {
	s := &server{color: RGB{R: 255, G: 128, B: 0}}
	e := echo.New()
	e.GET("/channel/:index", s.getChannel)
	e.PUT("/channel/:index", s.putChannel)

	tests := []struct {
		method, path, body string
		code               int
		want               string
	}{
		{http.MethodGet, "/channel/1", "", http.StatusOK, `{"index":1,"value":128}`},
		{http.MethodPut, "/channel/2", `{"value":64}`, http.StatusOK, `{"index":2,"value":64}`},
		{http.MethodGet, "/channel/2", "", http.StatusOK, `{"index":2,"value":64}`},
		{http.MethodGet, "/channel/3", "", http.StatusNotFound, `{"message":"no such channel"}`},
		{http.MethodGet, "/channel/-1", "", http.StatusNotFound, `{"message":"no such channel"}`},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != tt.code {
			t.Errorf("%s %s: code = %d, want %d", tt.method, tt.path, rec.Code, tt.code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != tt.want {
			t.Errorf("%s %s: body = %s, want %s", tt.method, tt.path, got, tt.want)
		}
	}
}
