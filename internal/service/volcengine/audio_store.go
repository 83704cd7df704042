package volcengine

import (
	"context"
	"io"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/volcengine/ve-tos-golang-sdk/v2/tos"
	"github.com/volcengine/ve-tos-golang-sdk/v2/tos/enum"

	"lingoplay-speech-service/internal/consts"
)

// PutAudio 上传音频对象。
func PutAudio(ctx context.Context, key string, content io.Reader) error {
	tosC := GetClient()
	if _, err := tosC.PutObjectV2(ctx, &tos.PutObjectV2Input{
		PutObjectBasicInput: tos.PutObjectBasicInput{
			Bucket: g.Cfg().MustGet(ctx, "volc.tos.bucket").String(),
			Key:    key,
		},
		Content: content,
	}); err != nil {
		return gerror.Wrap(err, "上传音频失败")
	}
	return nil
}

// FetchAudio 拉取音频字节流，供转写管线使用。对象不存在时返回 SourceMissing。
func FetchAudio(ctx context.Context, key string) ([]byte, error) {
	tosC := GetClient()
	out, err := tosC.GetObjectV2(ctx, &tos.GetObjectV2Input{
		Bucket: g.Cfg().MustGet(ctx, "volc.tos.bucket").String(),
		Key:    key,
	})
	if err != nil {
		if serverErr, ok := err.(*tos.TosServerError); ok && serverErr.StatusCode == 404 {
			return nil, gerror.WrapCode(consts.CodeSourceMissing, err, "音频对象不存在")
		}
		return nil, gerror.Wrap(err, "拉取音频失败")
	}
	defer out.Content.Close()

	data, err := io.ReadAll(out.Content)
	if err != nil {
		return nil, gerror.Wrap(err, "读取音频内容失败")
	}
	return data, nil
}

// PreSignedAudioURL 获取音频播放直链（1 小时有效）。
func PreSignedAudioURL(ctx context.Context, key string) (string, error) {
	tosC := GetClient()
	url, err := tosC.PreSignedURL(&tos.PreSignedURLInput{
		HTTPMethod: enum.HttpMethodGet,
		Bucket:     g.Cfg().MustGet(ctx, "volc.tos.bucket").String(),
		Key:        key,
		Expires:    3600,
	})
	if err != nil {
		return "", gerror.Wrap(err, "获取文件访问地址失败")
	}
	return url.SignedUrl, nil
}
