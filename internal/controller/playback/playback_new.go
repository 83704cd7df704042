// =================================================================================
// This is auto-generated by GoFrame CLI tool only once. Fill this file as you wish.
// =================================================================================

package playback

import (
	"lingoplay-speech-service/api/playback"
)

type ControllerV1 struct{}

func NewV1() playback.IPlaybackV1 {
	return &ControllerV1{}
}
