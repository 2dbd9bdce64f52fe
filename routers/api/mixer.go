package api

import (
	"io"
	"net/http"
	"strconv"

	"StorylineStudio-server/service"

	"github.com/gin-gonic/gin"
)

// 场景混音台状态（音轨列表和最近一次混音结果）
func GetMixer(c *gin.Context) {
	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	mixer, err := sess.MixerSnapshot(c.Param("scene_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mixer": mixer})
}

// 新建一条空音轨
func AddTrack(c *gin.Context) {
	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	track, err := sess.AddTrack(c.Param("scene_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"track": track})
}

// 局部更新音轨参数（起始时间、时长、音量、循环、淡入淡出）
func UpdateTrack(c *gin.Context) {
	var req service.TrackUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	track, err := sess.UpdateTrack(c.Param("scene_id"), c.Param("track_id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"track": track})
}

// 删除音轨
func RemoveTrack(c *gin.Context) {
	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := sess.RemoveTrack(c.Param("scene_id"), c.Param("track_id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// 上传音轨文件。multipart 字段：file 必填，duration 可选（秒，由前端解码探测）
func UploadTrackFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing audio file: " + err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read audio file failed: " + err.Error()})
		return
	}
	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)

	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	track, err := sess.AttachTrackFile(c.Param("scene_id"), c.Param("track_id"), header.Filename, data, duration)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"track": track})
}

// 回放音轨文件
func GetTrackAudio(c *gin.Context) {
	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	name, data, err := sess.TrackData(c.Param("scene_id"), c.Param("track_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+name+`"`)
	c.Data(http.StatusOK, "audio/mpeg", data)
}

// 旁白和全部已上传音轨送后端混音
func MixSceneAudio(c *gin.Context) {
	mixer, err := Studio.MixSceneAudio(c.Request.Context(), c.Param("story_id"), c.Param("scene_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mixer": mixer})
}

// 清空混音台
func ClearMixer(c *gin.Context) {
	sess, err := Studio.Session(c.Param("story_id"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := sess.ClearMixer(c.Param("scene_id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
