package api

import (
	"net/http"

	"StorylineStudio-server/models"
	"StorylineStudio-server/service"

	"github.com/gin-gonic/gin"
)

// 在故事末尾追加一个空场景
func AddScene(c *gin.Context) {
	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	sc, err := sess.AddScene()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scene": sc})
}

// 删除场景
func RemoveScene(c *gin.Context) {
	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := sess.RemoveScene(c.Param("scene_id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// 获取场景详情
func GetScene(c *gin.Context) {
	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	sc, idx, err := sess.SceneSnapshot(c.Param("scene_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scene": sc, "index": idx})
}

// 编辑场景旁白文本
func UpdateSceneText(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
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
	sc, err := sess.UpdateSceneText(c.Param("scene_id"), req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scene": sc})
}

// 直接设置场景图片（上传的 data-URI 或外部 URL）
func SetSceneImage(c *gin.Context) {
	var req struct {
		Image string `json:"image" binding:"required"`
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
	sc, err := sess.SetSceneImage(c.Param("scene_id"), req.Image)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scene": sc})
}

// 场景旁白 TTS，生成期间全局互斥
func GenerateSceneAudio(c *gin.Context) {
	sc, err := Studio.GenerateAudio(c.Request.Context(), c.Param("story_id"), c.Param("scene_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scene": sc})
}

// 场景视频渲染。请求体可带 animationSettings 覆盖已保存的动画配置
func GenerateSceneVideo(c *gin.Context) {
	var req struct {
		AnimationSettings *models.AnimationSettings `json:"animationSettings"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	sc, err := Studio.GenerateVideo(c.Request.Context(), c.Param("story_id"), c.Param("scene_id"), req.AnimationSettings)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scene": sc})
}

// 动画配置到 FFmpeg 滤镜链的预览，和视频生成走同一映射
func PreviewAnimationFilter(c *gin.Context) {
	var req struct {
		AnimationSettings models.AnimationSettings `json:"animationSettings" binding:"required"`
		AudioDuration     float64                  `json:"audioDuration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := service.BuildFilter(req.AnimationSettings, req.AudioDuration)
	c.JSON(http.StatusOK, gin.H{
		"filter":      result.Filter,
		"none":        result.None,
		"unsupported": result.Unsupported,
	})
}

// 各动画类型的默认参数，前端切换类型时用来重置面板
func AnimationDefaults(c *gin.Context) {
	types := []models.AnimationType{
		models.AnimationKenBurns,
		models.AnimationParallax,
		models.AnimationCinemagraph,
		models.AnimationDollyZoom,
		models.AnimationStatic,
	}
	defaults := make(map[string]models.AnimationSettings, len(types))
	for _, t := range types {
		defaults[string(t)] = models.DefaultAnimationSettings(t)
	}
	c.JSON(http.StatusOK, gin.H{"defaults": defaults})
}
