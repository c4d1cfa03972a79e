// Package upload defines the publish capability: submit a local video file
// with its metadata bundle and receive a stable remote identifier back, with
// progress callbacks during transfer, plus an optional playlist attach. The
// pipeline depends only on this interface; the real platform adapter lives
// in the youtube subpackage and tests substitute fakes.
package upload

import "context"

// Progress reports transfer progress. total is the video file size in bytes;
// sent is monotonically non-decreasing and ends at total on success.
type Progress func(sent, total int64)

// Metadata is the bundle submitted alongside the video file.
type Metadata struct {
	Title         string
	Description   string
	Tags          []string
	CategoryID    string
	PrivacyStatus string
}

// Service is the publish capability.
type Service interface {
	// Upload submits the video at path and blocks until the transfer
	// completes or fails, invoking progress along the way when non-nil.
	// On success it returns the platform's stable video identifier.
	Upload(ctx context.Context, path string, meta Metadata, progress Progress) (videoID string, err error)

	// AttachToPlaylist appends an uploaded video to a playlist and returns
	// the playlist item identifier.
	AttachToPlaylist(ctx context.Context, videoID, playlistID string) (itemID string, err error)
}
