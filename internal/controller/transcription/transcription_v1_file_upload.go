package transcription

import (
	"context"
	"mime/multipart"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
	"github.com/google/uuid"

	v1 "lingoplay-speech-service/api/transcription/v1"
	"lingoplay-speech-service/internal/consts"
	"lingoplay-speech-service/internal/dao"
	"lingoplay-speech-service/internal/service/volcengine"
)

// FileUpload 文件上传接口（支持单文件和多文件）
func (c *ControllerV1) FileUpload(ctx context.Context, req *v1.FileUploadReq) (res *v1.FileUploadRes, err error) {
	uploadFiles := g.RequestFromCtx(ctx).GetUploadFiles("files")
	if uploadFiles == nil {
		return nil, gerror.New("上传文件为空，请使用字段名'files'上传文件")
	}

	// 并发处理多个文件
	var wg sync.WaitGroup
	resultCh := make(chan fileUploadResult, len(uploadFiles))
	semaphore := make(chan struct{}, 3) // 限制并发数量

	for _, file := range uploadFiles {
		wg.Add(1)
		go func(file *ghttp.UploadFile) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			resultCh <- processFileUpload(ctx, &httpUploadSource{file: file})
		}(file)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var successFiles []v1.FileInfo
	var errorFiles []v1.FileError
	for result := range resultCh {
		if result.Error != nil {
			errorFiles = append(errorFiles, v1.FileError{
				FileName: result.FileName,
				Error:    result.Error.Error(),
			})
		} else {
			successFiles = append(successFiles, result.FileInfo)
		}
	}

	return &v1.FileUploadRes{
		Files:   successFiles,
		Errors:  errorFiles,
		Total:   len(uploadFiles),
		Success: len(successFiles),
		Failed:  len(errorFiles),
	}, nil
}

type fileUploadResult struct {
	FileInfo v1.FileInfo
	FileName string
	Error    error
}

// uploadSource 抽象上传文件来源，便于复用上传逻辑。
type uploadSource interface {
	FileName() string
	FileSize() int64
	Open() (multipart.File, error)
}

type httpUploadSource struct {
	file *ghttp.UploadFile
}

func (h *httpUploadSource) FileName() string {
	return h.file.Filename
}

func (h *httpUploadSource) FileSize() int64 {
	return h.file.Size
}

func (h *httpUploadSource) Open() (multipart.File, error) {
	return h.file.Open()
}

// processFileUpload 处理单个文件的上传：格式检测 → 建档 → 上传对象存储
func processFileUpload(ctx context.Context, file uploadSource) fileUploadResult {
	result := fileUploadResult{
		FileName: file.FileName(),
	}
	if file.FileSize() >= consts.MaxUploadSize {
		result.Error = gerror.Newf("文件大小超过最大限制：%d / 1,073,741,824 字节", file.FileSize())
		return result
	}

	fileReader, err := file.Open()
	if err != nil {
		result.Error = gerror.Wrap(err, "打开文件失败")
		return result
	}
	defer fileReader.Close()

	// 校验文件类型
	mType, err := mimetype.DetectReader(fileReader)
	if err != nil {
		result.Error = gerror.Wrap(err, "检测文件类型失败")
		return result
	}
	if _, ok := consts.TranscriptionExt[mType.Extension()]; !ok {
		result.Error = gerror.Newf("不支持的文件格式：%s", mType.Extension())
		return result
	}

	// 重置文件读取器，因为 mimetype.DetectReader 已经读取了一部分
	if _, err := fileReader.Seek(0, 0); err != nil {
		result.Error = gerror.Wrap(err, "无法重置文件读取器")
		return result
	}

	objectKey := uuid.NewString() + "/" + file.FileName()
	fileId, err := dao.AudioFile.Ctx(ctx).Data(g.Map{
		"object_key": objectKey,
		"filename":   file.FileName(),
		"file_type":  mType.Extension(),
		"file_size":  file.FileSize(),
	}).InsertAndGetId()
	if err != nil {
		result.Error = gerror.Wrap(err, "数据库新建记录失败")
		return result
	}

	if err = volcengine.PutAudio(ctx, objectKey, fileReader); err != nil {
		// 上传失败时回收已建的档案记录
		_, _ = dao.AudioFile.Ctx(ctx).Where(dao.AudioFile.Columns().Id, fileId).Delete()
		result.Error = err
		return result
	}

	url, err := volcengine.PreSignedAudioURL(ctx, objectKey)
	if err != nil {
		result.Error = err
		return result
	}

	result.FileInfo = v1.FileInfo{
		FileId:   fileId,
		FileURL:  url,
		FileType: mType.Extension(),
		FileSize: file.FileSize(),
		FileName: file.FileName(),
	}
	return result
}
