package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"notesum/internal/pkg/id"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Recovery(), RequestID(), Logger(), CORS())
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})
	engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return engine
}

func TestCORS(t *testing.T) {
	Convey("CORS 放开所有来源", t, func() {
		engine := newTestEngine()

		Convey("预检请求返回 204", func() {
			req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
			req.Header.Set("Origin", "https://notes.example.com")
			req.Header.Set("Access-Control-Request-Method", "POST")
			req.Header.Set("Access-Control-Request-Headers", "content-type, x-custom")
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusNoContent)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "https://notes.example.com")
			So(w.Header().Get("Access-Control-Allow-Credentials"), ShouldEqual, "true")
			So(w.Header().Get("Access-Control-Allow-Methods"), ShouldContainSubstring, "POST")
			So(w.Header().Get("Access-Control-Allow-Headers"), ShouldEqual, "content-type, x-custom")
		})

		Convey("普通请求带上来源头", func() {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Origin", "http://localhost:5173")
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "http://localhost:5173")
		})

		Convey("无 Origin 时不加 CORS 头", func() {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("RequestID 生成或沿用请求ID", t, func() {
		engine := newTestEngine()

		Convey("生成新ID", func() {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

			rid := w.Header().Get(RequestIDHeader)
			So(id.IsValid(rid), ShouldBeTrue)
			So(w.Body.String(), ShouldEqual, rid)
		})

		Convey("沿用合法的客户端ID", func() {
			given := id.New()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(RequestIDHeader, given)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			So(w.Header().Get(RequestIDHeader), ShouldEqual, given)
		})

		Convey("替换非法的客户端ID", func() {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(RequestIDHeader, "not-a-uuid")
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			So(w.Header().Get(RequestIDHeader), ShouldNotEqual, "not-a-uuid")
		})
	})
}

func TestRecovery(t *testing.T) {
	Convey("Recovery 捕获 panic", t, func() {
		engine := newTestEngine()
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

		So(w.Code, ShouldEqual, http.StatusInternalServerError)
		So(w.Body.String(), ShouldContainSubstring, "Internal Server Error")
	})
}
