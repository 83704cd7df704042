package v1

import (
	"github.com/gogf/gf/v2/frame/g"
)

// SegmentView 播放端的句段视图
type SegmentView struct {
	Id    int64   `json:"id" dc:"句段ID"`
	Start float64 `json:"start" dc:"开始时间(秒)"`
	End   float64 `json:"end" dc:"结束时间(秒)"`
	Text  string  `json:"text" dc:"句段文本"`
}

type GetWindowReq struct {
	g.Meta `path:"/{file_id}/window" method:"get" summary:"获取字幕窗口" dc:"返回 t 时刻的当前句段（严格包含）与前后窗口。"`
	FileId int64   `json:"file_id" v:"required|min:1" dc:"文件ID"`
	Time   float64 `json:"t" dc:"播放时钟(秒)"`
}
type GetWindowRes struct {
	Time     float64       `json:"time" dc:"播放时钟(秒)"`
	Current  *SegmentView  `json:"current" dc:"正在播放的句段，可为空"`
	Upcoming []SegmentView `json:"upcoming" dc:"即将播放的句段"`
	Previous []SegmentView `json:"previous" dc:"已播放的句段"`
}

type NearestSegmentReq struct {
	g.Meta `path:"/{file_id}/nearest" method:"get" summary:"查找最近句段" dc:"按句段中点到 t 的距离取最近者，等距时取开始更早的句段。点击跳转/续播用。"`
	FileId int64   `json:"file_id" v:"required|min:1" dc:"文件ID"`
	Time   float64 `json:"t" dc:"播放时钟(秒)"`
}
type NearestSegmentRes struct {
	Segment *SegmentView `json:"segment" dc:"最近的句段，列表为空时为空"`
}

type RangeSegmentsReq struct {
	g.Meta `path:"/{file_id}/range" method:"get" summary:"获取区间句段" dc:"返回与 [start, end] 有交集的全部句段。"`
	FileId int64   `json:"file_id" v:"required|min:1" dc:"文件ID"`
	Start  float64 `json:"start" dc:"区间起点(秒)"`
	End    float64 `json:"end" dc:"区间终点(秒)"`
}
type RangeSegmentsRes struct {
	Segments []SegmentView `json:"segments" dc:"命中的句段列表"`
}
