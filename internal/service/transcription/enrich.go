package transcription

import (
	"context"

	"github.com/gogf/gf/v2/encoding/gjson"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"

	"lingoplay-speech-service/internal/consts"
	"lingoplay-speech-service/internal/dao"
	"lingoplay-speech-service/internal/model/entity"
	"lingoplay-speech-service/internal/service/enrichment"
)

// Enricher 富化服务
type Enricher interface {
	Enrich(ctx context.Context, segments []enrichment.SegmentText, sourceLang string) ([]enrichment.EnrichedSegment, error)
}

// segmentUpdate 一条句段的部分字段更新
type segmentUpdate struct {
	SegmentId int64
	Data      g.Map
}

// EnrichTranscript 对已完成的 transcript 执行富化：翻译、归一化文本、注音。
// 按 (start, end) 精确匹配写回已有句段，只做部分字段更新，从不增删句段，
// 因此重复执行是幂等的。
func (s *Service) EnrichTranscript(ctx context.Context, transcriptId int64) error {
	var transcript *entity.Transcript
	if err := dao.Transcript.Ctx(ctx).
		Where(dao.Transcript.Columns().Id, transcriptId).Scan(&transcript); err != nil {
		return gerror.WrapCode(consts.CodePostProcessing, err, "查询 transcript 失败")
	}
	if transcript == nil {
		return gerror.NewCodef(consts.CodePostProcessing, "transcript %d 不存在", transcriptId)
	}

	var segments []entity.Segment
	if err := dao.Segment.Ctx(ctx).
		Where(dao.Segment.Columns().TranscriptId, transcriptId).
		OrderAsc(dao.Segment.Columns().StartTime).
		Scan(&segments); err != nil {
		return gerror.WrapCode(consts.CodePostProcessing, err, "查询句段失败")
	}
	if len(segments) == 0 {
		return nil
	}

	texts := make([]enrichment.SegmentText, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, enrichment.SegmentText{
			Text:  seg.Text,
			Start: seg.StartTime,
			End:   seg.EndTime,
		})
	}

	items, err := s.enricher.Enrich(ctx, texts, transcript.Language)
	if err != nil {
		return err
	}

	updates, unmatched := matchEnrichment(segments, items)
	if unmatched > 0 {
		g.Log().Warningf(ctx, "[transcript:%d] %d 条富化结果找不到对应句段，已忽略", transcriptId, unmatched)
	}
	for _, u := range updates {
		if _, err := dao.Segment.Ctx(ctx).
			Data(u.Data).
			Where(dao.Segment.Columns().Id, u.SegmentId).Update(); err != nil {
			return gerror.WrapCode(consts.CodePostProcessing, err, "写回富化结果失败")
		}
	}

	g.Log().Infof(ctx, "[transcript:%d] 富化完成，更新句段 %d 条", transcriptId, len(updates))
	return nil
}

// matchEnrichment 把富化结果按 (start, end) 精确匹配到已有句段，
// 只收集出现了的字段，生成部分更新。匹配不上的条目计数返回。
func matchEnrichment(segments []entity.Segment, items []enrichment.EnrichedSegment) (updates []segmentUpdate, unmatched int) {
	type key struct{ start, end float64 }
	index := make(map[key]*entity.Segment, len(segments))
	for i := range segments {
		index[key{segments[i].StartTime, segments[i].EndTime}] = &segments[i]
	}

	for _, item := range items {
		seg, ok := index[key{item.Start, item.End}]
		if !ok {
			unmatched++
			continue
		}
		data := g.Map{}
		if item.NormalizedText != "" {
			data["normalized_text"] = item.NormalizedText
		}
		if item.Translation != "" {
			data["translation"] = item.Translation
		}
		if len(item.Annotations) > 0 {
			data["annotations"] = gjson.New(item.Annotations).MustToJsonString()
		}
		if item.PhoneticReading != "" {
			data["phonetic_reading"] = item.PhoneticReading
		}
		if len(data) == 0 {
			continue
		}
		updates = append(updates, segmentUpdate{SegmentId: seg.Id, Data: data})
	}
	return updates, unmatched
}
