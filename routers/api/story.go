package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 创建故事会话
func CreateStory(c *gin.Context) {
	sess := Studio.CreateStory()
	c.JSON(http.StatusOK, gin.H{
		"story": sess.StorySnapshot(),
		"busy":  sess.Busy(),
	})
}

// 获取故事当前状态（场景列表按播放顺序）
func GetStory(c *gin.Context) {
	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"story": sess.StorySnapshot(),
		"busy":  sess.Busy(),
	})
}

// 重置：丢弃当前故事，返回新的空故事
func ResetStory(c *gin.Context) {
	sess, err := Studio.ResetStory(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"story": sess.StorySnapshot(),
		"busy":  sess.Busy(),
	})
}

// 更新全局旁白语音说明
func UpdateVoiceInstructions(c *gin.Context) {
	var req struct {
		VoiceInstructions string `json:"voiceInstructions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := sess.SetVoiceInstructions(req.VoiceInstructions); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"voiceInstructions": sess.VoiceInstructions()})
}

// 合并所有已生成视频的场景，直接流式下发最终视频文件
func MergeFinalVideo(c *gin.Context) {
	err := Studio.MergeFinalVideo(c.Request.Context(), c.Param("story_id"), func(filename string, body io.Reader) error {
		c.Header("Content-Type", "video/mp4")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Status(http.StatusOK)
		_, err := io.Copy(c.Writer, body)
		return err
	})
	if err != nil {
		// 响应头已发出的失败只能断流，这里兜底处理还没写头的情况
		if !c.Writer.Written() {
			fail(c, err)
		}
		return
	}
}
