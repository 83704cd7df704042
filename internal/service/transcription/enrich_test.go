package transcription

import (
	"context"
	"strings"
	"testing"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/test/gtest"

	"lingoplay-speech-service/internal/consts"
	"lingoplay-speech-service/internal/dao"
	"lingoplay-speech-service/internal/model/entity"
	"lingoplay-speech-service/internal/service/enrichment"
)

func enrichFixture() []entity.Segment {
	return []entity.Segment{
		{Id: 1, StartTime: 0, EndTime: 3, Text: "こんにちは。"},
		{Id: 2, StartTime: 3, EndTime: 6, Text: "元気ですか。"},
	}
}

func TestMatchEnrichmentPartialUpdate(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		updates, unmatched := matchEnrichment(enrichFixture(), []enrichment.EnrichedSegment{
			{Start: 0, End: 3, Translation: "Hello."},
			{Start: 3, End: 6, Translation: "How are you?", PhoneticReading: "げんきですか"},
		})
		t.Assert(unmatched, 0)
		t.Assert(len(updates), 2)
		t.Assert(updates[0].SegmentId, int64(1))
		t.Assert(updates[0].Data["translation"], "Hello.")
		// 缺失字段不出现在更新里
		_, hasPhonetic := updates[0].Data["phonetic_reading"]
		t.Assert(hasPhonetic, false)
		t.Assert(updates[1].Data["phonetic_reading"], "げんきですか")
	})
}

func TestMatchEnrichmentUnmatched(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		updates, unmatched := matchEnrichment(enrichFixture(), []enrichment.EnrichedSegment{
			{Start: 0, End: 3, Translation: "Hello."},
			{Start: 99, End: 100, Translation: "orphan"},
		})
		t.Assert(unmatched, 1)
		t.Assert(len(updates), 1)
	})
}

func TestMatchEnrichmentEmptyFieldsSkipped(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		updates, unmatched := matchEnrichment(enrichFixture(), []enrichment.EnrichedSegment{
			{Start: 0, End: 3},
		})
		t.Assert(unmatched, 0)
		t.Assert(len(updates), 0)
	})
}

func TestMatchEnrichmentAnnotationsSerialized(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		updates, _ := matchEnrichment(enrichFixture(), []enrichment.EnrichedSegment{
			{Start: 0, End: 3, Annotations: []g.Map{
				{"word": "こんにちは", "note": "greeting"},
			}},
		})
		t.Assert(len(updates), 1)
		raw, ok := updates[0].Data["annotations"].(string)
		t.Assert(ok, true)
		t.Assert(strings.Contains(raw, "greeting"), true)
	})
}

func TestMatchEnrichmentRepeatedApplication(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		items := []enrichment.EnrichedSegment{
			{Start: 0, End: 3, NormalizedText: "こんにちは", Translation: "Hello."},
			{Start: 3, End: 6, Translation: "How are you?", PhoneticReading: "げんきですか"},
		}
		// 同一份富化结果重复匹配，产生的更新完全一致
		first, _ := matchEnrichment(enrichFixture(), items)
		second, _ := matchEnrichment(enrichFixture(), items)
		t.Assert(second, first)
	})
}

type stubEnricher struct {
	items []enrichment.EnrichedSegment
	calls int
}

func (e *stubEnricher) Enrich(ctx context.Context, segments []enrichment.SegmentText, sourceLang string) ([]enrichment.EnrichedSegment, error) {
	e.calls++
	return e.items, nil
}

func TestEnrichTranscriptIdempotent(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		setupDB(ctx)
		c := &Coordinator{batchSize: 100}
		fileId := int64(9201)

		transcriptId, err := c.SaveResult(ctx, fileId, &NormalizedResult{
			Text:     "こんにちは。元気ですか。",
			Language: "ja",
			Duration: 6,
			Segments: []NormalizedSegment{
				{Start: 0, End: 3, Text: "こんにちは。"},
				{Start: 3, End: 6, Text: "元気ですか。"},
			},
		})
		t.AssertNil(err)

		s := &Service{
			enricher: &stubEnricher{items: []enrichment.EnrichedSegment{
				{Start: 0, End: 3, NormalizedText: "こんにちは", Translation: "Hello."},
				{Start: 3, End: 6, Translation: "How are you?", PhoneticReading: "げんきですか"},
			}},
		}

		readRows := func() []entity.Segment {
			var rows []entity.Segment
			err := dao.Segment.Ctx(ctx).
				Where(dao.Segment.Columns().TranscriptId, transcriptId).
				OrderAsc(dao.Segment.Columns().StartTime).
				Scan(&rows)
			t.AssertNil(err)
			return rows
		}

		t.AssertNil(s.EnrichTranscript(ctx, transcriptId))
		after1 := readRows()
		t.Assert(len(after1), 2)
		t.Assert(after1[0].Translation, "Hello.")
		t.Assert(after1[0].NormalizedText, "こんにちは")
		t.Assert(after1[1].PhoneticReading, "げんきですか")

		// 同一份富化结果再跑一遍：不增删句段，字段内容不变
		t.AssertNil(s.EnrichTranscript(ctx, transcriptId))
		after2 := readRows()
		t.Assert(len(after2), 2)
		for i := range after2 {
			t.Assert(after2[i].Id, after1[i].Id)
			t.Assert(after2[i].Text, after1[i].Text)
			t.Assert(after2[i].NormalizedText, after1[i].NormalizedText)
			t.Assert(after2[i].Translation, after1[i].Translation)
			t.Assert(after2[i].PhoneticReading, after1[i].PhoneticReading)
		}

		// 转写状态不受富化影响
		var transcript *entity.Transcript
		err = dao.Transcript.Ctx(ctx).
			Where(dao.Transcript.Columns().Id, transcriptId).Scan(&transcript)
		t.AssertNil(err)
		t.Assert(transcript.Status, consts.StatusCompleted)
	})
}
