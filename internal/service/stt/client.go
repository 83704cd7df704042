package stt

import (
	"bytes"
	"context"
	"mime/multipart"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/util/gconv"
	"github.com/google/uuid"

	"lingoplay-speech-service/internal/consts"
)

// Request 转写请求。Language 为 ISO 639-1 代码或 "auto"（自动检测）。
type Request struct {
	FileName string
	Audio    []byte
	Language string
}

// Word 词级时间戳
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment 句级时间戳
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words"`
}

// Result 第三方转写结果。segments / words / text 三者都可能缺失，
// 由管线按三级回退策略归一化。
type Result struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Segments []Segment `json:"segments"`
	Words    []Word    `json:"words"`
}

// Client 语音转写服务客户端（whisper 风格 HTTP 接口）。
type Client struct {
	endpoint string
	apiKey   string
	model    string
	timeout  time.Duration
}

// NewClient 从配置构建客户端。
func NewClient(ctx context.Context) *Client {
	return &Client{
		endpoint: g.Cfg().MustGet(ctx, "stt.endpoint").String(),
		apiKey:   g.Cfg().MustGet(ctx, "stt.apiKey").String(),
		model:    g.Cfg().MustGet(ctx, "stt.model", "whisper-1").String(),
		timeout:  time.Duration(g.Cfg().MustGet(ctx, "stt.timeoutSec", 300).Int()) * time.Second,
	}
}

// Transcribe 调用第三方转写接口。错误在此处完成分类：
// 网络错误/超时/5xx 归为瞬时故障，凭证缺失与其余 4xx 归为拒绝。
func (c *Client) Transcribe(ctx context.Context, req Request) (*Result, error) {
	if c.endpoint == "" || c.apiKey == "" {
		return nil, gerror.NewCode(consts.CodeProviderRejected, "转写服务凭证缺失，请检查 stt.endpoint / stt.apiKey 配置")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", req.FileName)
	if err != nil {
		return nil, gerror.WrapCode(consts.CodeProviderRejected, err, "构造转写请求失败")
	}
	if _, err = part.Write(req.Audio); err != nil {
		return nil, gerror.WrapCode(consts.CodeProviderRejected, err, "构造转写请求失败")
	}
	_ = writer.WriteField("model", c.model)
	_ = writer.WriteField("response_format", "verbose_json")
	_ = writer.WriteField("timestamp_granularities[]", "segment")
	_ = writer.WriteField("timestamp_granularities[]", "word")
	if req.Language != "" && req.Language != "auto" {
		_ = writer.WriteField("language", req.Language)
	}
	if err = writer.Close(); err != nil {
		return nil, gerror.WrapCode(consts.CodeProviderRejected, err, "构造转写请求失败")
	}

	requestId := uuid.NewString()
	response, err := g.Client().
		Timeout(c.timeout).
		ContentType(writer.FormDataContentType()).
		SetHeaderMap(g.MapStrStr{
			"Authorization":    "Bearer " + c.apiKey,
			"X-Api-Request-Id": requestId,
		}).
		Post(ctx, c.endpoint+"/v1/audio/transcriptions", body.Bytes())
	if err != nil {
		return nil, gerror.WrapCode(consts.CodeProviderTransient, err, "转写请求发送失败")
	}
	defer response.Close()

	bodyStr := response.ReadAllString()
	if response.StatusCode != 200 {
		code := consts.ClassifyHTTPStatus(response.StatusCode)
		preview := bodyStr
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		g.Log().Errorf(ctx, "[%s] 转写服务返回非 200。Status=%d Body=%s", requestId, response.StatusCode, preview)
		return nil, gerror.NewCodef(code, "转写服务返回错误。Status=%d RequestId=%s", response.StatusCode, requestId)
	}

	var result *Result
	if err = gconv.Struct(bodyStr, &result); err != nil {
		return nil, gerror.WrapCode(consts.CodeProviderRejected, err, "转写结果格式化失败")
	}
	return result, nil
}
