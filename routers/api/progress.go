package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StoryProgressWebSocket 订阅故事的忙碌标记变化。
// 连接建立后先推一次当前状态，之后由生成操作的开始/结束事件驱动。
func StoryProgressWebSocket(c *gin.Context) {
	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	if err := sess.Subscribe(conn); err != nil {
		return
	}
	defer sess.Unsubscribe(conn)

	// 只为感知断开而读，客户端不上行消息
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
