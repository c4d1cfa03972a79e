// Package meta derives the per-file template context from a source snapshot
// plus an ffprobe bitrate reading. Every field degrades to the empty string
// rather than erroring: metadata extraction must never abort the pipeline.
package meta

import (
	"context"
	"strconv"

	"github.com/backmassage/tape2tube/internal/probe"
	"github.com/backmassage/tape2tube/internal/scan"
)

// dateFormat is the calendar-date layout used by all date fields.
const dateFormat = "2006-01-02"

// Prober reads audio properties from a file. Injected so tests can supply a
// fake instead of invoking ffprobe.
type Prober func(ctx context.Context, path string) (*probe.Result, error)

// Context builds the flat template context for src:
//
//	filename       full base name ("song.mp3")
//	basename       stem without extension ("song")
//	creation_date  birth time as YYYY-MM-DD; "" where the platform or
//	               filesystem cannot supply one
//	update_date    modification time as YYYY-MM-DD (always available)
//	filedate       creation_date, falling back to update_date
//	mp3_rate       audio bit rate in integer kbit/s; "" on any probe failure
func Context(ctx context.Context, src scan.Source, prober Prober) map[string]string {
	updateDate := src.ModTime.Format(dateFormat)

	creationDate := ""
	fileDate := updateDate
	if bt := birthTime(src.Path); !bt.IsZero() {
		creationDate = bt.Format(dateFormat)
		fileDate = creationDate
	}

	return map[string]string{
		"filename":      src.Name,
		"basename":      src.Stem,
		"creation_date": creationDate,
		"update_date":   updateDate,
		"filedate":      fileDate,
		"mp3_rate":      bitrateField(ctx, src.Path, prober),
	}
}

// bitrateField probes path and renders the audio bit rate in kbit/s.
// Any failure (probe error, no usable rate) resolves to "".
func bitrateField(ctx context.Context, path string, prober Prober) string {
	if prober == nil {
		return ""
	}
	res, err := prober(ctx, path)
	if err != nil || res == nil {
		return ""
	}
	kbps := res.AudioBitRate() / 1000
	if kbps <= 0 {
		return ""
	}
	return strconv.FormatInt(kbps, 10)
}
