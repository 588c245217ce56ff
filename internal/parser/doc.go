// Package parser 负责解析 Geneanet/Geneweb 导出的 pb_base_info.dat 元数据文件。
//
// 文件由外部工具生成，这里只读取其中固定偏移处的大端序字段：
//   - Bindec: 4 字节大端序解码
//   - FieldReader: 按 Layout 中的偏移量依次读取字段 (A@0, B@4, C@13)
//   - ReadBaseInfo: 使用 struc 解包完整的 base info 记录
//
// 所有 I/O 错误都会被归类为 ErrSourceUnavailable、ErrTruncatedInput 或
// ErrSeekFailure，调用方通过 errors.Is 判断。
package parser
