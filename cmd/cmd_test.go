package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestReadInput(t *testing.T) {
	Convey("readInput 读取文件或标准输入", t, func() {
		Convey("无参数读取 stdin", func() {
			text, err := readInput(strings.NewReader("from stdin"), nil)
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "from stdin")
		})

		Convey("- 读取 stdin", func() {
			text, err := readInput(strings.NewReader("dash"), []string{"-"})
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "dash")
		})

		Convey("读取文件", func() {
			path := filepath.Join(t.TempDir(), "notes.txt")
			So(os.WriteFile(path, []byte("file notes"), 0o644), ShouldBeNil)

			text, err := readInput(nil, []string{path})
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "file notes")
		})

		Convey("文件不存在", func() {
			_, err := readInput(nil, []string{filepath.Join(t.TempDir(), "missing.txt")})
			So(err, ShouldNotBeNil)
		})
	})
}
