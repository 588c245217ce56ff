package parser

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"baseinfo/internal/pkg"

	"go.uber.org/zap"
)

// Field 是一个已解码的字段
type Field struct {
	Name   string
	Offset int64
	Raw    ByteField
	Value  uint32
}

// sizer 由知道自身长度的数据源实现, 例如 *bytes.Reader
type sizer interface {
	Size() int64
}

// Source 是打开的数据文件, 额外记录了文件长度, 用于在 seek 之前发现文件过短
type Source struct {
	*os.File
	size int64
}

func (f *Source) Size() int64 {
	return f.size
}

// OpenSource 以只读方式打开 path. 任何失败都归类为 ErrSourceUnavailable.
// 调用方负责 Close.
func OpenSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: unable to stat %s: %w", ErrSourceUnavailable, path, err)
	}
	if stat.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceUnavailable, path)
	}
	return &Source{File: f, size: stat.Size()}, nil
}

// FieldReader 按 Layout 从数据源中读取固定偏移的大端序字段
type FieldReader struct {
	layout Layout
	ctx    context.Context
}

func NewFieldReader(ctx context.Context, layout Layout) *FieldReader {
	if layout == nil {
		layout = DefaultLayout
	}
	return &FieldReader{
		layout: layout,
		ctx:    ctx,
	}
}

// ReadFile opens path, reads every field of the layout and closes the file on
// all paths. No field is returned unless all of them were read.
func (r *FieldReader) ReadFile(path string) ([]Field, error) {
	log := pkg.LoggerFromContext(r.ctx)

	src, err := OpenSource(path)
	if err != nil {
		log.Error("打开数据源失败", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			log.Warn("关闭数据源失败", zap.String("path", path), zap.Error(cerr))
		}
	}()

	log.Debug("数据源已打开", zap.String("path", path), zap.Int64("size", src.Size()))
	return r.Read(src)
}

// Read reads the layout from src, which must be positioned at offset 0. Fields
// are read sequentially and src is only repositioned when the next offset
// differs from the current cursor.
func (r *FieldReader) Read(src io.ReadSeeker) ([]Field, error) {
	log := pkg.LoggerFromContext(r.ctx)

	size := int64(-1)
	if s, ok := src.(sizer); ok {
		size = s.Size()
	}

	fields := make([]Field, 0, len(r.layout))
	var cursor int64
	for _, spec := range r.layout {
		if spec.Offset != cursor {
			if err := seekTo(src, spec, size); err != nil {
				log.Error("定位字段失败", zap.String("field", spec.Name), zap.Int64("offset", spec.Offset), zap.Error(err))
				return nil, err
			}
			cursor = spec.Offset
		}

		raw, err := readField(src, spec)
		if err != nil {
			log.Error("读取字段失败", zap.String("field", spec.Name), zap.Int64("offset", spec.Offset), zap.Error(err))
			return nil, err
		}
		cursor += FieldSize

		f := Field{
			Name:   spec.Name,
			Offset: spec.Offset,
			Raw:    raw,
			Value:  Bindec(raw),
		}
		log.Debug("字段已解码",
			zap.String("field", f.Name),
			zap.Int64("offset", f.Offset),
			zap.String("hex", hex.EncodeToString(raw[:])),
			zap.Uint32("value", f.Value))
		fields = append(fields, f)
	}
	return fields, nil
}

func seekTo(src io.Seeker, spec FieldSpec, size int64) error {
	if spec.Offset < 0 || (size >= 0 && spec.Offset > size) {
		return &FieldError{
			Field:  spec.Name,
			Offset: spec.Offset,
			Err:    fmt.Errorf("%w: source is %d bytes long", ErrSeekFailure, size),
		}
	}
	pos, err := src.Seek(spec.Offset, io.SeekStart)
	if err != nil {
		return &FieldError{Field: spec.Name, Offset: spec.Offset, Err: fmt.Errorf("%w: %w", ErrSeekFailure, err)}
	}
	if pos != spec.Offset {
		return &FieldError{Field: spec.Name, Offset: spec.Offset, Err: fmt.Errorf("%w: landed at %d", ErrSeekFailure, pos)}
	}
	return nil
}

func readField(src io.Reader, spec FieldSpec) (ByteField, error) {
	var raw ByteField
	n, err := io.ReadFull(src, raw[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = fmt.Errorf("%w: read %d of %d bytes", ErrTruncatedInput, n, FieldSize)
		} else {
			err = fmt.Errorf("%w: %w", ErrTruncatedInput, err)
		}
		return ByteField{}, &FieldError{Field: spec.Name, Offset: spec.Offset, Err: err}
	}
	return raw, nil
}
