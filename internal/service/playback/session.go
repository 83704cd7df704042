package playback

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/gorilla/websocket"
)

// 客户端到服务端的会话消息类型。
const (
	msgTick      = "tick"
	msgSetLoop   = "setLoop"
	msgClearLoop = "clearLoop"
)

// inboundMessage 客户端消息：时钟 tick 或循环操作。
type inboundMessage struct {
	Type  string  `json:"type"`
	Time  float64 `json:"time"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// outboundMessage 服务端消息：字幕窗口推送或回跳指令。
type outboundMessage struct {
	Type   string  `json:"type"`
	State  *State  `json:"state,omitempty"`
	SeekTo float64 `json:"seekTo,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Session 一条播放会话：客户端持续推送播放时钟，服务端在活跃句段变化时
// 推送字幕窗口，循环越界时推送回跳指令。每条连接一个实例，不跨连接共享。
type Session struct {
	conn *websocket.Conn
	sync *Synchronizer
	loop *Loop
}

// NewSession 基于已升级的 WebSocket 连接构建会话。
func NewSession(conn *websocket.Conn, sync *Synchronizer) *Session {
	return &Session{
		conn: conn,
		sync: sync,
		loop: NewLoop(),
	}
}

// Run 驱动会话直到连接关闭或 ctx 结束。读写都在调用方 goroutine 内串行执行，
// 同步器和循环控制器因此不需要额外加锁。
func (s *Session) Run(ctx context.Context) error {
	// 连接建立即推一次初始窗口
	state := s.sync.StateAt(0)
	if err := s.conn.WriteJSON(outboundMessage{Type: "window", State: &state}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var msg inboundMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		switch msg.Type {
		case msgTick:
			if err := s.handleTick(ctx, msg.Time); err != nil {
				return err
			}
		case msgSetLoop:
			if err := s.loop.SetLoop(msg.Start, msg.End); err != nil {
				if werr := s.conn.WriteJSON(outboundMessage{Type: "error", Error: err.Error()}); werr != nil {
					return werr
				}
			}
		case msgClearLoop:
			s.loop.ClearLoop()
		default:
			g.Log().Debugf(ctx, "播放会话收到未知消息类型: %s", msg.Type)
		}
	}
}

func (s *Session) handleTick(ctx context.Context, t float64) error {
	if s.loop.CheckLoop(t) {
		start, _, _ := s.loop.Range()
		if err := s.conn.WriteJSON(outboundMessage{Type: "loopSeek", SeekTo: start}); err != nil {
			return err
		}
	}

	state, changed := s.sync.UpdateTime(t)
	if !changed {
		return nil
	}
	return s.conn.WriteJSON(outboundMessage{Type: "window", State: &state})
}
