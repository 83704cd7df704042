package v1

import (
	"github.com/gogf/gf/v2/frame/g"

	"lingoplay-speech-service/internal/model/entity"
)

// 文件上传API（支持单文件和多文件）
type FileUploadReq struct {
	g.Meta `path:"/file/upload" method:"post" summary:"上传音频文件" dc:"使用 multipart/form-data 方式上传（可批量，并行处理）。字段名是 files。"`
}
type FileUploadRes struct {
	Files   []FileInfo  `json:"files" dc:"成功上传的文件列表"`
	Errors  []FileError `json:"errors,omitempty" dc:"上传失败的文件错误信息"`
	Total   int         `json:"total" dc:"总文件数"`
	Success int         `json:"success" dc:"成功上传数"`
	Failed  int         `json:"failed" dc:"上传失败数"`
}
type FileInfo struct {
	FileId   int64  `json:"fileId" dc:"文件唯一标识"`
	FileURL  string `json:"fileUrl" dc:"文件访问地址（预签名，1小时有效）"`
	FileType string `json:"fileType" dc:"文件扩展名"`
	FileSize int64  `json:"fileSize" dc:"文件大小(字节)"`
	FileName string `json:"fileName" dc:"文件名称"`
}
type FileError struct {
	FileName string `json:"fileName" dc:"文件名"`
	Error    string `json:"error" dc:"错误信息"`
}

// 任务提交API
type TaskSubmitReq struct {
	g.Meta   `path:"/task/submit" method:"post" summary:"提交转写任务"`
	FileId   int64  `json:"fileId" v:"required|min:1" dc:"文件ID，通过文件上传API获得"`
	Language string `json:"language" d:"auto" dc:"语种提示，ISO 639-1 代码或 auto（自动检测）"`
}
type TaskSubmitRes struct {
	Status string `json:"status" dc:"任务状态"`
}

type CancelTaskReq struct {
	g.Meta `path:"/task/cancel" method:"post" summary:"取消转写任务" dc:"排队中的任务直接移出队列；执行中的任务发出取消信号，不阻塞等待。"`
	FileId int64 `json:"fileId" v:"required|min:1" dc:"文件ID"`
}
type CancelTaskRes struct {
	Cancelled bool `json:"cancelled" dc:"是否命中了队列中的任务"`
}

type RetryTaskReq struct {
	g.Meta   `path:"/task/retry" method:"post" summary:"重试转写任务" dc:"对失败或取消的任务重新入队，等同于一次全新提交。"`
	FileId   int64  `json:"fileId" v:"required|min:1" dc:"文件ID"`
	Language string `json:"language" d:"auto" dc:"语种提示"`
}
type RetryTaskRes struct {
	Status string `json:"status" dc:"任务状态"`
}

type GetTaskReq struct {
	g.Meta `path:"/task/{file_id}" method:"get" summary:"获取转写详情"`
	FileId int64 `json:"file_id" v:"required|min:1" dc:"文件ID"`
}
type GetTaskRes struct {
	Transcript *entity.Transcript `json:"transcript" dc:"转写记录"`
	Segments   []entity.Segment   `json:"segments" dc:"句段列表，按开始时间升序"`
}

type GetProgressReq struct {
	g.Meta `path:"/task/{file_id}/progress" method:"get" summary:"查询转写进度" dc:"进度条目带 TTL，过期后回退到 transcript 行的终态。"`
	FileId int64 `json:"file_id" v:"required|min:1" dc:"文件ID"`
}
type GetProgressRes struct {
	Status   string `json:"status" dc:"任务状态"`
	Progress int    `json:"progress" dc:"进度 0-100"`
	Message  string `json:"message" dc:"进度说明"`
	Error    string `json:"error,omitempty" dc:"错误信息"`
}

type EnrichTaskReq struct {
	g.Meta `path:"/task/{file_id}/enrich" method:"post" summary:"重跑富化" dc:"对已完成的转写重新执行翻译/注音富化。富化失败不会自动重试，这是唯一的手动入口。"`
	FileId int64 `json:"file_id" v:"required|min:1" dc:"文件ID"`
}
type EnrichTaskRes struct {
	Success bool `json:"success" dc:"是否执行成功"`
}

type TaskMeta struct {
	FileId   int64   `json:"fileId" dc:"文件ID"`
	FileName string  `json:"fileName" dc:"文件名"`
	FileType string  `json:"fileType" dc:"文件扩展名"`
	FileSize int64   `json:"fileSize" dc:"文件大小(字节)"`
	Status   string  `json:"status" dc:"转写状态，未提交过任务时为空"`
	Language string  `json:"language" dc:"识别语种"`
	Duration float64 `json:"duration" dc:"音频时长(秒)"`
	Error    string  `json:"error,omitempty" dc:"失败原因"`
}

type GetTaskListReq struct {
	g.Meta     `path:"/list" method:"get" summary:"获取任务列表"`
	LastFileId int64 `json:"last_file_id" d:"0" dc:"当前列表最后一条数据的文件ID，用于基于该ID向后分页"`
	Limit      int   `json:"limit" d:"10" v:"min:1|max:100" dc:"本次请求返回的数据条数"`
}
type GetTaskListRes struct {
	Total int        `json:"total" dc:"总条目数"`
	Tasks []TaskMeta `json:"tasks" dc:"任务列表"`
}

type DeleteTaskReq struct {
	g.Meta `path:"/task/{file_id}" method:"delete" summary:"删除任务" dc:"取消在途任务并删除文件记录、转写记录与全部句段。"`
	FileId int64 `json:"file_id" v:"required|min:1" dc:"文件ID"`
}
type DeleteTaskRes struct {
	Success bool `json:"success" dc:"是否删除成功"`
}

type GetFileURLReq struct {
	g.Meta `path:"/task/{file_id}/file" method:"get" summary:"获取音频播放地址"`
	FileId int64 `json:"file_id" v:"required|min:1" dc:"文件ID"`
}
type GetFileURLRes struct {
	FileURL string `json:"fileUrl" dc:"预签名播放地址"`
}
