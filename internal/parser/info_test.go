package parser

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fullRecord 构造一条完整的 base info 记录
func fullRecord(unknown byte, rootSosa uint32, timestamp string) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x00, 0x20, 0xC5}) // nbPersons = 8389
	buf.Write([]byte{0x00, 0x00, 0x00, 0x01}) // sosa = 1
	buf.WriteByte(unknown)
	buf.Write([]byte{byte(rootSosa >> 24), byte(rootSosa >> 16), byte(rootSosa >> 8), byte(rootSosa)})
	n := uint32(len(timestamp))
	buf.Write([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	buf.WriteString(timestamp)
	return buf.Bytes()
}

func TestReadBaseInfo(t *testing.T) {
	Convey("ReadBaseInfo 解包完整记录", t, func() {
		Convey("正常记录", func() {
			info, err := ReadBaseInfo(bytes.NewReader(fullRecord(0x01, 0x2144, "1600000000")))
			So(err, ShouldBeNil)
			So(info.NbPersons, ShouldEqual, uint32(8389))
			So(info.Sosa, ShouldEqual, uint32(1))
			So(info.Unknown, ShouldEqual, byte(0x01))
			So(info.RootSosa, ShouldEqual, uint32(0x2144))
			So(info.Timestamp, ShouldEqual, int64(1600000000))
			So(info.Date().Equal(time.Date(2020, time.September, 13, 12, 26, 40, 0, time.UTC)), ShouldBeTrue)
			So(info.String(), ShouldEqual,
				"base info: NbPersons=8389, Sosa=1, RootSosa=8516, Date=2020-09-13 12:26:40 +0000 UTC")
		})

		Convey("完整记录中 offset 13 的字段就是时间戳长度", func() {
			data := fullRecord(0, 7, "1600000000")
			fields, err := NewFieldReader(context.Background(), nil).Read(bytes.NewReader(data))
			So(err, ShouldBeNil)
			info, err := ReadBaseInfo(bytes.NewReader(data))
			So(err, ShouldBeNil)
			So(fields[0].Value, ShouldEqual, info.NbPersons)
			So(fields[1].Value, ShouldEqual, info.Sosa)
			So(fields[2].Value, ShouldEqual, uint32(10))
		})

		Convey("头部不完整时报 TruncatedInput", func() {
			data := fullRecord(0, 1, "1600000000")
			for _, n := range []int{0, 5, 12, 16} {
				_, err := ReadBaseInfo(bytes.NewReader(data[:n]))
				So(errors.Is(err, ErrTruncatedInput), ShouldBeTrue)
			}
		})

		Convey("时间戳不完整时报 TruncatedInput", func() {
			data := fullRecord(0, 1, "1600000000")
			_, err := ReadBaseInfo(bytes.NewReader(data[:len(data)-3]))
			So(errors.Is(err, ErrTruncatedInput), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "timestamp")
		})

		Convey("时间戳不是数字时报 MalformedRecord", func() {
			_, err := ReadBaseInfo(bytes.NewReader(fullRecord(0, 1, "16OOOOOOOO")))
			So(errors.Is(err, ErrMalformedRecord), ShouldBeTrue)
		})

		Convey("时间戳长度异常时报 MalformedRecord", func() {
			data := fullRecord(0, 1, "")
			_, err := ReadBaseInfo(bytes.NewReader(data))
			So(errors.Is(err, ErrMalformedRecord), ShouldBeTrue)

			data = append(fullRecord(0, 1, "")[:13], 0xFF, 0xFF, 0xFF, 0xFF)
			_, err = ReadBaseInfo(bytes.NewReader(data))
			So(errors.Is(err, ErrMalformedRecord), ShouldBeTrue)
		})
	})
}

func TestReadBaseInfoFile(t *testing.T) {
	Convey("ReadBaseInfoFile", t, func() {
		Convey("文件不存在", func() {
			_, err := ReadBaseInfoFile(filepath.Join(t.TempDir(), "nope.dat"))
			So(errors.Is(err, ErrSourceUnavailable), ShouldBeTrue)
		})

		Convey("读取文件", func() {
			path := writeTemp(t, fullRecord(0, 3, "0"))
			info, err := ReadBaseInfoFile(path)
			So(err, ShouldBeNil)
			So(info.RootSosa, ShouldEqual, uint32(3))
			So(info.Timestamp, ShouldEqual, int64(0))
		})
	})
}
