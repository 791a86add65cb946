package handler

import (
	"errors"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"notesum/internal/ai"
)

func TestErrorResponse(t *testing.T) {
	Convey("errorResponse 映射后端错误", t, func() {
		Convey("缺少凭证", func() {
			status, body := errorResponse(&ai.BackendError{
				Kind: ai.ErrMissingCredential, StatusCode: http.StatusInternalServerError,
				Message: "HF_API_TOKEN is not configured on the server.",
			})
			So(status, ShouldEqual, http.StatusInternalServerError)
			So(body.Code, ShouldEqual, 50001)
			So(body.Detail, ShouldContainSubstring, "HF_API_TOKEN")
		})

		Convey("传输失败", func() {
			status, body := errorResponse(&ai.BackendError{
				Kind: ai.ErrBackendTransport, StatusCode: http.StatusBadGateway,
				Message: "Error contacting summarization backend", Err: errors.New("dial tcp"),
			})
			So(status, ShouldEqual, http.StatusBadGateway)
			So(body.Code, ShouldEqual, 50201)
			So(body.Detail, ShouldEqual, "Error contacting summarization backend")
		})

		Convey("透传后端状态码", func() {
			status, body := errorResponse(&ai.BackendError{
				Kind: ai.ErrBackendStatus, StatusCode: http.StatusUnprocessableEntity, Message: "bad",
			})
			So(status, ShouldEqual, http.StatusUnprocessableEntity)
			So(body.Code, ShouldEqual, 42200)
		})

		Convey("非错误状态码按 502 处理", func() {
			status, _ := errorResponse(&ai.BackendError{Kind: ai.ErrBackendStatus, StatusCode: 302, Message: "redirect"})
			So(status, ShouldEqual, http.StatusBadGateway)
		})

		Convey("未知错误返回 500", func() {
			status, body := errorResponse(errors.New("boom"))
			So(status, ShouldEqual, http.StatusInternalServerError)
			So(body.Detail, ShouldNotContainSubstring, "boom")
		})
	})
}
