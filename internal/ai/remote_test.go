package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"notesum/internal/config"
)

func newInferenceServer(status int, body string, calls *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func remoteConfig(url, token string) *config.RemoteConfig {
	return &config.RemoteConfig{
		BaseURL:  url,
		Model:    "sshleifer/distilbart-cnn-12-6",
		APIToken: token,
		Timeout:  time.Second,
	}
}

func TestRemoteSummarizer_Summarize(t *testing.T) {
	in := &Input{Text: "some text", MaxLength: 50, MinLength: 20, Deterministic: true}

	Convey("RemoteSummarizer 映射后端结果", t, func() {
		var calls int32

		Convey("成功返回第一条摘要", func() {
			srv := newInferenceServer(http.StatusOK, `[{"summary_text":"  the gist "}]`, &calls)
			defer srv.Close()

			out, err := NewRemoteSummarizer(remoteConfig(srv.URL, "tok")).Summarize(context.Background(), in)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "  the gist ")
		})

		Convey("缺少凭证时不调用后端", func() {
			srv := newInferenceServer(http.StatusOK, `[]`, &calls)
			defer srv.Close()

			s := NewRemoteSummarizer(remoteConfig(srv.URL, ""))
			_, err := s.Summarize(context.Background(), in)
			So(errors.Is(err, ErrMissingCredential), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, TokenEnv)
			So(atomic.LoadInt32(&calls), ShouldEqual, int32(0))
			So(s.Ready(), ShouldNotBeNil)

			var be *BackendError
			So(errors.As(err, &be), ShouldBeTrue)
			So(be.StatusCode, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("后端 503 表示模型加载中", func() {
			srv := newInferenceServer(http.StatusServiceUnavailable, `{"error":"loading","estimated_time":20}`, &calls)
			defer srv.Close()

			_, err := NewRemoteSummarizer(remoteConfig(srv.URL, "tok")).Summarize(context.Background(), in)
			So(errors.Is(err, ErrBackendLoading), ShouldBeTrue)

			var be *BackendError
			So(errors.As(err, &be), ShouldBeTrue)
			So(be.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
			So(be.Message, ShouldContainSubstring, "still loading")
		})

		Convey("其他非 2xx 状态码透传", func() {
			srv := newInferenceServer(http.StatusTooManyRequests, `{"error":"rate limited"}`, &calls)
			defer srv.Close()

			_, err := NewRemoteSummarizer(remoteConfig(srv.URL, "tok")).Summarize(context.Background(), in)
			So(errors.Is(err, ErrBackendStatus), ShouldBeTrue)

			var be *BackendError
			So(errors.As(err, &be), ShouldBeTrue)
			So(be.StatusCode, ShouldEqual, http.StatusTooManyRequests)
			So(be.Message, ShouldContainSubstring, "rate limited")
		})

		Convey("响应结构异常", func() {
			srv := newInferenceServer(http.StatusOK, `{"unexpected":true}`, &calls)
			defer srv.Close()

			_, err := NewRemoteSummarizer(remoteConfig(srv.URL, "tok")).Summarize(context.Background(), in)
			So(errors.Is(err, ErrMalformedResponse), ShouldBeTrue)

			var be *BackendError
			So(errors.As(err, &be), ShouldBeTrue)
			So(be.StatusCode, ShouldEqual, http.StatusInternalServerError)
			So(be.Payload, ShouldEqual, `{"unexpected":true}`)
			So(be.Message, ShouldContainSubstring, `{"unexpected":true}`)
		})

		Convey("传输失败返回 502", func() {
			srv := newInferenceServer(http.StatusOK, `[]`, &calls)
			url := srv.URL
			srv.Close()

			_, err := NewRemoteSummarizer(remoteConfig(url, "tok")).Summarize(context.Background(), in)
			So(errors.Is(err, ErrBackendTransport), ShouldBeTrue)

			var be *BackendError
			So(errors.As(err, &be), ShouldBeTrue)
			So(be.StatusCode, ShouldEqual, http.StatusBadGateway)
		})
	})
}

func TestNewSummarizer(t *testing.T) {
	Convey("NewSummarizer 按配置选择后端", t, func() {
		cfg := &config.SummarizerConfig{Backend: config.BackendRemote}
		s, err := NewSummarizer(cfg)
		So(err, ShouldBeNil)
		So(s.Name(), ShouldEqual, config.BackendRemote)

		cfg.Backend = config.BackendLocal
		s, err = NewSummarizer(cfg)
		So(err, ShouldBeNil)
		So(s.Name(), ShouldEqual, config.BackendLocal)

		cfg.Backend = "mixed"
		_, err = NewSummarizer(cfg)
		So(err, ShouldNotBeNil)
	})
}
