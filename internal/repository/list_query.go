package repository

// PageSize 列表页固定每页条数
const PageSize = 10

// ListQuery 列表请求的纯数据描述：页码 + 可选关键字。
// 翻译成 SQL 的逻辑只存在于 questionRepository.List 一处。
type ListQuery struct {
    Page    int    // 1 起始；小于 1 时按 1 处理
    Keyword string // 空串表示不过滤
}

// Normalize 返回修正后的副本（页码钳制到 >= 1）。
func (q ListQuery) Normalize() ListQuery {
    if q.Page < 1 {
        q.Page = 1
    }
    return q
}

// Offset 换算分页偏移。
func (q ListQuery) Offset() int {
    n := q.Normalize()
    return (n.Page - 1) * PageSize
}
