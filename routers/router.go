package routers

import (
	"StorylineStudio-server/routers/api"
	"StorylineStudio-server/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(studio *service.Manager) *gin.Engine {
	api.Studio = studio

	r := gin.Default()
	r.Static("/static", "./static")
	v1 := r.Group("/v1/api")
	{
		v1.POST("/stories", api.CreateStory)
		v1.GET("/stories/:story_id", api.GetStory)
		v1.POST("/stories/:story_id/reset", api.ResetStory)
		v1.PUT("/stories/:story_id/voice", api.UpdateVoiceInstructions)
		v1.POST("/stories/:story_id/merge", api.MergeFinalVideo)

		v1.POST("/stories/:story_id/scenes", api.AddScene)
		v1.GET("/stories/:story_id/scenes/:scene_id", api.GetScene)
		v1.DELETE("/stories/:story_id/scenes/:scene_id", api.RemoveScene)
		v1.PUT("/stories/:story_id/scenes/:scene_id/text", api.UpdateSceneText)
		v1.PUT("/stories/:story_id/scenes/:scene_id/image", api.SetSceneImage)

		v1.GET("/stories/:story_id/scenes/:scene_id/imagegen", api.GetImageGen)
		v1.PUT("/stories/:story_id/scenes/:scene_id/imagegen", api.UpdateImageGen)
		v1.POST("/stories/:story_id/scenes/:scene_id/imagegen/prompt", api.GenerateImagePrompt)
		v1.POST("/stories/:story_id/scenes/:scene_id/imagegen/preview", api.GenerateImagePreview)
		v1.POST("/stories/:story_id/scenes/:scene_id/imagegen/accept", api.AcceptImage)
		v1.POST("/stories/:story_id/scenes/:scene_id/imagegen/use", api.UseSceneImage)

		v1.POST("/stories/:story_id/scenes/:scene_id/audio", api.GenerateSceneAudio)
		v1.POST("/stories/:story_id/scenes/:scene_id/video", api.GenerateSceneVideo)
		v1.POST("/animation/preview", api.PreviewAnimationFilter)
		v1.GET("/animation/defaults", api.AnimationDefaults)

		v1.GET("/stories/:story_id/scenes/:scene_id/mixer", api.GetMixer)
		v1.POST("/stories/:story_id/scenes/:scene_id/mixer/tracks", api.AddTrack)
		v1.PUT("/stories/:story_id/scenes/:scene_id/mixer/tracks/:track_id", api.UpdateTrack)
		v1.DELETE("/stories/:story_id/scenes/:scene_id/mixer/tracks/:track_id", api.RemoveTrack)
		v1.POST("/stories/:story_id/scenes/:scene_id/mixer/tracks/:track_id/audio", api.UploadTrackFile)
		v1.GET("/stories/:story_id/scenes/:scene_id/mixer/tracks/:track_id/audio", api.GetTrackAudio)
		v1.POST("/stories/:story_id/scenes/:scene_id/mixer/mix", api.MixSceneAudio)
		v1.DELETE("/stories/:story_id/scenes/:scene_id/mixer", api.ClearMixer)
	}
	r.GET("/stories/:story_id/ws", api.StoryProgressWebSocket)
	return r
}
