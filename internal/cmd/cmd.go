package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
	"github.com/gogf/gf/v2/os/gcmd"
	"github.com/gogf/gf/v2/os/glog"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	playbackCtrl "lingoplay-speech-service/internal/controller/playback"
	transcriptionCtrl "lingoplay-speech-service/internal/controller/transcription"
	"lingoplay-speech-service/internal/middlewares"
	playbackSvc "lingoplay-speech-service/internal/service/playback"
	transcriptionSvc "lingoplay-speech-service/internal/service/transcription"
)

var (
	Main = gcmd.Command{
		Name:  "main",
		Usage: "main",
		Brief: "start http server",
		Func: func(ctx context.Context, parser *gcmd.Parser) (err error) {
			fmt.Println(`
 _     _                   ____  _
| |   (_)_ __   __ _  ___ |  _ \| | __ _ _   _
| |   | | '_ \ / _' |/ _ \| |_) | |/ _' | | | |
| |___| | | | | (_| | (_) |  __/| | (_| | |_| |
|_____|_|_| |_|\__, |\___/|_|   |_|\__,_|\__, |
               |___/                     |___/
					 `)
			fmt.Println("LingoPlay Speech Service")
			fmt.Println()
			s := g.Server()
			logger := g.Log()
			if err := transcriptionSvc.Init(ctx); err != nil {
				return err
			}
			s.SetPort(g.Cfg().MustGet(ctx, "server.port").Int())
			s.SetClientMaxBodySize(1024 * 1024 * 1024)
			s.Use(middlewares.BrotliMiddleware)
			s.Use(ghttp.MiddlewareCORS)
			s = setupWebSocketHandler(s, logger)
			oai := s.GetOpenApi()
			oai.Config.CommonResponse = ghttp.DefaultHandlerResponse{}
			oai.Config.CommonResponseDataField = "Data"
			s.SetOpenApiPath(g.Cfg().MustGet(ctx, "server.openapiPath").String())
			s.SetSwaggerPath(g.Cfg().MustGet(ctx, "server.swaggerPath").String())

			s.Group("/transcription", func(group *ghttp.RouterGroup) {
				group.Middleware(ghttp.MiddlewareHandlerResponse)
				group.Bind(
					transcriptionCtrl.NewV1(),
				)
			})
			s.Group("/playback", func(group *ghttp.RouterGroup) {
				group.Middleware(ghttp.MiddlewareHandlerResponse)
				group.Bind(
					playbackCtrl.NewV1(),
				)
			})

			// 恢复上次进程退出时滞留的任务
			go transcriptionSvc.Recover(ctx)

			s.Run()
			return nil
		},
	}
)

// setupWebSocketHandler 挂载播放会话端点：客户端推送播放时钟，
// 服务端推送字幕窗口与 A/B 循环回跳指令。
func setupWebSocketHandler(s *ghttp.Server, logger *glog.Logger) *ghttp.Server {
	var (
		wsUpGrader = websocket.Upgrader{
			// TODO: 同源检查
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
			},
		}
	)

	s.BindHandler("/playback/ws/{file_id}", func(r *ghttp.Request) {
		sessionID := uuid.NewString()
		r.Response.Header().Set("X-Session-Id", sessionID)

		reqCtx := r.Context()
		fileId := r.Get("file_id").Int64()

		sync, err := playbackSvc.NewSynchronizerForFile(reqCtx, fileId)
		if err != nil {
			r.Response.WriteStatus(http.StatusBadRequest, err.Error())
			return
		}

		clientConn, err := wsUpGrader.Upgrade(r.Response.Writer, r.Request, nil)
		if err != nil {
			r.Response.Write(err.Error())
			return
		}
		defer clientConn.Close()

		logger.Infof(reqCtx, "播放会话建立，session=%s file=%d", sessionID, fileId)

		session := playbackSvc.NewSession(clientConn, sync)
		if err := session.Run(reqCtx); err != nil && !isNormalClosure(err) {
			logger.Warningf(reqCtx, "播放会话异常关闭，session=%s: %v", sessionID, err)
			_ = clientConn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session error"),
				time.Now().Add(time.Second),
			)
			return
		}
		logger.Infof(reqCtx, "播放会话结束，session=%s file=%d", sessionID, fileId)
	})

	return s
}

func isNormalClosure(err error) bool {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived, websocket.CloseGoingAway) {
		return true
	}
	return false
}
