package consts

import "github.com/gogf/gf/v2/frame/g"

// 任务/转写状态。transcript.status 是“该文件是否已转写”的唯一事实来源。
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

var (
	// 支持转写的媒体格式
	TranscriptionExt = g.MapStrStr{
		".mp4":  "video",
		".avi":  "video",
		".mov":  "video",
		".mkv":  "video",
		".wmv":  "video",
		".flv":  "video",
		".mp3":  "audio",
		".wav":  "audio",
		".aac":  "audio",
		".flac": "audio",
		".ogg":  "audio",
		".m4a":  "audio",
	}
)

const (
	MaxUploadSize = 1024 * 1024 * 1024 // 1GB
)
