// =================================================================================
// This file is auto-generated by the GoFrame CLI tool. You may modify it as you wish.
// =================================================================================

package dao

import (
	"lingoplay-speech-service/internal/dao/internal"
)

// audioFileDao is the data access object for the table audio_file.
// You can define custom methods on it to extend its functionality as needed.
type audioFileDao struct {
	*internal.AudioFileDao
}

var (
	// AudioFile is a globally accessible object for table audio_file operations.
	AudioFile = audioFileDao{internal.NewAudioFileDao()}
)

// Add your custom methods and functionality below.
