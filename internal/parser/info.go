package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/lunixbochs/struc"
)

// maxTimestampLength 限制时间戳长度, 十进制 int64 最多 19 位
const maxTimestampLength = 19

// baseInfoHeader 是 pb_base_info.dat 的定长头部
type baseInfoHeader struct {
	NbPersons       uint32 `struc:"uint32,big"`
	Sosa            uint32 `struc:"uint32,big"`
	Unknown         byte   `struc:"byte"` // 含义未知
	RootSosa        uint32 `struc:"uint32,big"`
	TimestampLength uint32 `struc:"uint32,big"`
}

// BaseInfo 是完整解析后的 base info 记录
type BaseInfo struct {
	NbPersons uint32
	Sosa      uint32
	Unknown   byte
	RootSosa  uint32
	Timestamp int64
}

// Date returns the export date of the base.
func (b *BaseInfo) Date() time.Time {
	return time.Unix(b.Timestamp, 0).UTC()
}

func (b *BaseInfo) String() string {
	return fmt.Sprintf("base info: NbPersons=%d, Sosa=%d, RootSosa=%d, Date=%s",
		b.NbPersons, b.Sosa, b.RootSosa, b.Date())
}

// ReadBaseInfo unpacks the whole base info record: the fixed header followed
// by TimestampLength ASCII digits holding unix seconds.
func ReadBaseInfo(r io.Reader) (*BaseInfo, error) {
	var h baseInfoHeader
	if err := struc.Unpack(r, &h); err != nil {
		return nil, classifyReadErr("header", err)
	}

	if h.TimestampLength == 0 || h.TimestampLength > maxTimestampLength {
		return nil, fmt.Errorf("%w: timestamp length %d", ErrMalformedRecord, h.TimestampLength)
	}
	buf := make([]byte, h.TimestampLength)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, classifyReadErr("timestamp", err)
	}
	ts, err := strconv.ParseInt(string(buf), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp %q: %w", ErrMalformedRecord, buf, err)
	}

	return &BaseInfo{
		NbPersons: h.NbPersons,
		Sosa:      h.Sosa,
		Unknown:   h.Unknown,
		RootSosa:  h.RootSosa,
		Timestamp: ts,
	}, nil
}

// ReadBaseInfoFile 打开 path 并解析完整记录
func ReadBaseInfoFile(path string) (*BaseInfo, error) {
	src, err := OpenSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return ReadBaseInfo(src)
}

func classifyReadErr(part string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s", ErrTruncatedInput, part)
	}
	return fmt.Errorf("reading %s: %w", part, err)
}
