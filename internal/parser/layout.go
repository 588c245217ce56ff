package parser

// pb_base_info.dat 中的固定偏移量, 格式由外部工具定义
const (
	OffsetNbPersons       int64 = 0x0
	OffsetSosa            int64 = 0x4
	OffsetTimestampLength int64 = 0xd
)

// FieldSpec 描述一个待读取的字段
type FieldSpec struct {
	Name   string
	Offset int64
}

// Layout 是按读取顺序排列的字段列表
type Layout []FieldSpec

// DefaultLayout 对应 base info 文件的三个字段: A, B 以及 C.
// C 之前的 [8,13) 字节与本程序无关, 读取 C 时会直接 seek 过去.
var DefaultLayout = Layout{
	{Name: "nbPersons", Offset: OffsetNbPersons},
	{Name: "sosa", Offset: OffsetSosa},
	{Name: "timestampLength", Offset: OffsetTimestampLength},
}
