package consts

import (
	"context"

	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
)

// 转写错误分类。分类只在管线边界做一次，重试策略据此判断是否可重试。
var (
	// CodeSourceMissing 音频源不存在，不可重试
	CodeSourceMissing = gcode.New(60001, "source missing", nil)
	// CodeProviderTransient 第三方服务瞬时故障（网络、超时、5xx），可重试
	CodeProviderTransient = gcode.New(60002, "provider transient failure", nil)
	// CodeProviderRejected 第三方服务明确拒绝（凭证、配额、格式），不可重试，需用户处理
	CodeProviderRejected = gcode.New(60003, "provider rejected request", nil)
	// CodePersistenceFailure 入库失败，触发补偿清理
	CodePersistenceFailure = gcode.New(60004, "persistence failure", nil)
	// CodePostProcessing 富化失败，只记日志，不影响转写终态
	CodePostProcessing = gcode.New(60005, "post-processing failure", nil)
	// CodeCancelled 用户主动取消，不算错误
	CodeCancelled = gcode.New(60006, "cancelled", nil)
)

// IsCancelled 判断错误是否为取消（含 context 取消）。
func IsCancelled(err error) bool {
	if err == nil {
		return false
	}
	if gerror.Code(err) == CodeCancelled {
		return true
	}
	return gerror.Is(err, context.Canceled)
}

// ClassifyHTTPStatus 将第三方服务的 HTTP 状态码映射为错误分类。
// 408/429/5xx 视为瞬时故障，其余 4xx 视为拒绝。
func ClassifyHTTPStatus(status int) gcode.Code {
	switch {
	case status == 408 || status == 429:
		return CodeProviderTransient
	case status >= 500:
		return CodeProviderTransient
	default:
		return CodeProviderRejected
	}
}
