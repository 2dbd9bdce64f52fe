package api

import (
	"net/http"

	"StorylineStudio-server/models"
	"StorylineStudio-server/service"

	"github.com/gin-gonic/gin"
)

// 图片生成对话框状态（提示词为空时用场景文本预填）
func GetImageGen(c *gin.Context) {
	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	state, err := sess.ImageGenState(c.Param("scene_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings":   state,
		"models":     models.ImageModels(),
		"dimensions": models.ImageDimensions(),
	})
}

// 更新对话框参数（提示词、负面词、模型、尺寸、参考场景）
func UpdateImageGen(c *gin.Context) {
	var req service.ImageGenUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	state, err := sess.UpdateImageGen(c.Param("scene_id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": state})
}

// 根据场景文本自动生成视觉提示词
func GenerateImagePrompt(c *gin.Context) {
	state, err := Studio.GenerateScenePrompt(c.Request.Context(), c.Param("story_id"), c.Param("scene_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": state})
}

// 生成预览图（不直接写入场景）
func GenerateImagePreview(c *gin.Context) {
	state, err := Studio.GenerateImagePreview(c.Request.Context(), c.Param("story_id"), c.Param("scene_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": state})
}

// 把预览图确认为场景图片
func AcceptImage(c *gin.Context) {
	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	sc, err := sess.AcceptImage(c.Param("scene_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scene": sc})
}

// 直接复用另一个场景的图片
func UseSceneImage(c *gin.Context) {
	var req struct {
		FromSceneID string `json:"fromSceneId" binding:"required"`
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
	sc, err := sess.UseSceneImage(c.Param("scene_id"), req.FromSceneID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scene": sc})
}
