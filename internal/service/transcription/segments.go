package transcription

import (
	"sort"
	"strings"

	"github.com/gogf/gf/v2/errors/gerror"

	"lingoplay-speech-service/internal/consts"
	"lingoplay-speech-service/internal/service/stt"
)

// wordsPerBucket 只有词级时间戳时，每多少个词合成一个句段
const wordsPerBucket = 10

// NormalizedSegment 归一化后的句段，保证 start < end 且按 start 升序。
// 唯一例外：时长未知的纯文本回退会产生一个 [0, 0] 的占位句段，
// 时间轴信息此时本来就不存在。
type NormalizedSegment struct {
	Start float64
	End   float64
	Text  string
	Words []stt.Word
}

// NormalizedResult 归一化后的转写结果，可直接交给落库协调器。
type NormalizedResult struct {
	Text     string
	Language string
	Duration float64
	Segments []NormalizedSegment
}

// Normalize 把第三方返回的任意结果形态归一化成有序句段列表。
// 三级回退：优先句级时间戳；否则按词级时间戳分桶合成；
// 最后用纯文本按句切分、总时长均摊。
func Normalize(res *stt.Result, langHint string) (*NormalizedResult, error) {
	if res == nil {
		return nil, gerror.NewCode(consts.CodeProviderRejected, "转写服务返回空结果")
	}

	language := res.Language
	if language == "" && langHint != "auto" {
		language = langHint
	}
	out := &NormalizedResult{
		Text:     strings.TrimSpace(res.Text),
		Language: language,
		Duration: res.Duration,
	}

	switch {
	case len(res.Segments) > 0:
		out.Segments = fromSegments(res.Segments)
	case len(res.Words) > 0:
		out.Segments = fromWords(res.Words)
	case out.Text != "":
		out.Segments = fromText(out.Text, res.Duration)
	default:
		return nil, gerror.NewCode(consts.CodeProviderRejected, "转写服务返回空结果")
	}

	if out.Text == "" {
		parts := make([]string, 0, len(out.Segments))
		for _, s := range out.Segments {
			parts = append(parts, s.Text)
		}
		out.Text = strings.Join(parts, "\n")
	}
	return out, nil
}

// fromSegments 句级时间戳直接采用，排序并剔除空文本与非法区间。
func fromSegments(in []stt.Segment) []NormalizedSegment {
	out := make([]NormalizedSegment, 0, len(in))
	for _, s := range in {
		text := strings.TrimSpace(s.Text)
		if text == "" || s.End <= s.Start {
			continue
		}
		out = append(out, NormalizedSegment{
			Start: s.Start,
			End:   s.End,
			Text:  text,
			Words: s.Words,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// fromWords 词级时间戳按固定大小分桶合成句段。
func fromWords(words []stt.Word) []NormalizedSegment {
	sorted := make([]stt.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	out := make([]NormalizedSegment, 0, (len(sorted)+wordsPerBucket-1)/wordsPerBucket)
	for i := 0; i < len(sorted); i += wordsPerBucket {
		j := i + wordsPerBucket
		if j > len(sorted) {
			j = len(sorted)
		}
		bucket := sorted[i:j]
		texts := make([]string, 0, len(bucket))
		for _, w := range bucket {
			texts = append(texts, strings.TrimSpace(w.Word))
		}
		seg := NormalizedSegment{
			Start: bucket[0].Start,
			End:   bucket[len(bucket)-1].End,
			Text:  strings.Join(texts, " "),
			Words: bucket,
		}
		if seg.End <= seg.Start || seg.Text == "" {
			continue
		}
		out = append(out, seg)
	}
	return out
}

// fromText 纯文本按句切分，总时长均摊；时长未知时退化为单句段。
func fromText(text string, duration float64) []NormalizedSegment {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}
	if duration <= 0 {
		// 时长未知，无法均摊，产出 [0, 0] 占位句段
		return []NormalizedSegment{{Start: 0, End: 0, Text: text}}
	}

	per := duration / float64(len(sentences))
	out := make([]NormalizedSegment, 0, len(sentences))
	for i, s := range sentences {
		out = append(out, NormalizedSegment{
			Start: float64(i) * per,
			End:   float64(i+1) * per,
			Text:  s,
		})
	}
	return out
}

// splitSentences 按中英文句末标点与换行切句，保留标点。
func splitSentences(text string) []string {
	var out []string
	var b strings.Builder
	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
		b.Reset()
	}
	for _, r := range text {
		switch r {
		case '\n':
			flush()
		case '。', '！', '？', '.', '!', '?':
			b.WriteRune(r)
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return out
}
