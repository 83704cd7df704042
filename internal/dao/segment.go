// =================================================================================
// This file is auto-generated by the GoFrame CLI tool. You may modify it as you wish.
// =================================================================================

package dao

import (
	"lingoplay-speech-service/internal/dao/internal"
)

// segmentDao is the data access object for the table segment.
// You can define custom methods on it to extend its functionality as needed.
type segmentDao struct {
	*internal.SegmentDao
}

var (
	// Segment is a globally accessible object for table segment operations.
	Segment = segmentDao{internal.NewSegmentDao()}
)

// Add your custom methods and functionality below.
