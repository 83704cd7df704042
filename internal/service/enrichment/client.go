package enrichment

import (
	"context"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/util/gconv"

	"lingoplay-speech-service/internal/consts"
)

// SegmentText 待富化的句段（纯文本 + 时间范围）。
type SegmentText struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// EnrichedSegment 富化结果。start/end 必须原样回传，入库时按 (start, end)
// 精确匹配写回已有句段。
type EnrichedSegment struct {
	Start           float64 `json:"start"`
	End             float64 `json:"end"`
	NormalizedText  string  `json:"normalizedText"`
	Translation     string  `json:"translation"`
	Annotations     []g.Map `json:"annotations"`
	PhoneticReading string  `json:"phoneticReading"`
}

// Client 翻译/注音富化服务客户端。富化是尽力而为的后处理，
// 这里所有错误都归为 PostProcessing 类，不影响转写终态。
type Client struct {
	endpoint        string
	targetLang      string
	annotations     bool
	phoneticReading bool
	timeout         time.Duration
}

// NewClient 从配置构建客户端。
func NewClient(ctx context.Context) *Client {
	return &Client{
		endpoint:        g.Cfg().MustGet(ctx, "enrich.endpoint").String(),
		targetLang:      g.Cfg().MustGet(ctx, "enrich.targetLang", "en").String(),
		annotations:     g.Cfg().MustGet(ctx, "enrich.annotations", true).Bool(),
		phoneticReading: g.Cfg().MustGet(ctx, "enrich.phonetic", true).Bool(),
		timeout:         time.Duration(g.Cfg().MustGet(ctx, "enrich.timeoutSec", 600).Int()) * time.Second,
	}
}

// Enrich 对句段列表做翻译、归一化与注音。
func (c *Client) Enrich(ctx context.Context, segments []SegmentText, sourceLang string) ([]EnrichedSegment, error) {
	if c.endpoint == "" {
		return nil, gerror.NewCode(consts.CodePostProcessing, "富化服务未配置，请检查 enrich.endpoint")
	}
	if len(segments) == 0 {
		return nil, nil
	}

	response, err := g.Client().
		Timeout(c.timeout).
		ContentJson().
		Post(ctx, c.endpoint+"/v1/enrich", g.Map{
			"segments":              segments,
			"sourceLanguage":        sourceLang,
			"targetLanguage":        c.targetLang,
			"enableAnnotations":     c.annotations,
			"enablePhoneticReading": c.phoneticReading,
		})
	if err != nil {
		return nil, gerror.WrapCode(consts.CodePostProcessing, err, "富化请求发送失败")
	}
	defer response.Close()

	if response.StatusCode != 200 {
		return nil, gerror.NewCodef(consts.CodePostProcessing, "富化服务返回错误。Status=%d", response.StatusCode)
	}

	var parsed struct {
		Segments []EnrichedSegment `json:"segments"`
	}
	if err = gconv.Struct(response.ReadAllString(), &parsed); err != nil {
		return nil, gerror.WrapCode(consts.CodePostProcessing, err, "富化结果格式化失败")
	}
	return parsed.Segments, nil
}
