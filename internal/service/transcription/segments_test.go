package transcription

import (
	"testing"

	"github.com/gogf/gf/v2/test/gtest"

	"lingoplay-speech-service/internal/service/stt"
)

func TestNormalizePreferSegments(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		res := &stt.Result{
			Text:     "hello world. bye.",
			Language: "en",
			Duration: 10,
			Segments: []stt.Segment{
				{Start: 5, End: 10, Text: " bye."},
				{Start: 0, End: 5, Text: "hello world."},
				{Start: 2, End: 2, Text: "degenerate"},
				{Start: 3, End: 4, Text: "   "},
			},
			Words: []stt.Word{{Word: "ignored", Start: 0, End: 1}},
		}

		out, err := Normalize(res, "auto")
		t.AssertNil(err)
		t.Assert(len(out.Segments), 2)
		t.Assert(out.Segments[0].Start, float64(0))
		t.Assert(out.Segments[0].Text, "hello world.")
		t.Assert(out.Segments[1].Start, float64(5))
		t.Assert(out.Language, "en")
	})
}

func TestNormalizeWordBuckets(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		words := make([]stt.Word, 0, 23)
		for i := 0; i < 23; i++ {
			words = append(words, stt.Word{
				Word:  "w",
				Start: float64(i),
				End:   float64(i) + 1,
			})
		}
		out, err := Normalize(&stt.Result{Words: words, Duration: 23}, "en")
		t.AssertNil(err)
		// 23 个词按 10 个一桶 → 3 个句段
		t.Assert(len(out.Segments), 3)
		t.Assert(out.Segments[0].Start, float64(0))
		t.Assert(out.Segments[0].End, float64(10))
		t.Assert(len(out.Segments[0].Words), 10)
		t.Assert(out.Segments[2].Start, float64(20))
		t.Assert(out.Segments[2].End, float64(23))
		t.Assert(len(out.Segments[2].Words), 3)
	})
}

func TestNormalizeTextEvenSplit(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		out, err := Normalize(&stt.Result{
			Text:     "一句。两句！三句？",
			Duration: 9,
		}, "zh")
		t.AssertNil(err)
		t.Assert(len(out.Segments), 3)
		t.Assert(out.Segments[0].Text, "一句。")
		t.Assert(out.Segments[1].Start, float64(3))
		t.Assert(out.Segments[1].End, float64(6))
		t.Assert(out.Segments[2].End, float64(9))
		t.Assert(out.Language, "zh")
	})
}

func TestNormalizeTextWithoutDuration(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		out, err := Normalize(&stt.Result{Text: "short clip"}, "en")
		t.AssertNil(err)
		t.Assert(len(out.Segments), 1)
		t.Assert(out.Segments[0].Text, "short clip")
		// 时长未知时是 [0, 0] 占位句段
		t.Assert(out.Segments[0].Start, float64(0))
		t.Assert(out.Segments[0].End, float64(0))
	})
}

func TestNormalizeEmptyResult(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		_, err := Normalize(&stt.Result{}, "en")
		t.AssertNE(err, nil)

		_, err = Normalize(nil, "en")
		t.AssertNE(err, nil)
	})
}

func TestSplitSentences(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		t.Assert(splitSentences("A. B! C?"), []string{"A.", "B!", "C?"})
		t.Assert(splitSentences("第一行\n第二行"), []string{"第一行", "第二行"})
		t.Assert(splitSentences("没有标点"), []string{"没有标点"})
		t.Assert(len(splitSentences("   ")), 0)
	})
}
