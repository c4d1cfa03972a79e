package pipeline

import (
	"github.com/backmassage/tape2tube/internal/config"
	"github.com/backmassage/tape2tube/internal/scan"
	"github.com/backmassage/tape2tube/internal/template"
	"github.com/backmassage/tape2tube/internal/upload"
)

// buildMetadata assembles the publish metadata for one item. A rendered
// template wins outright over the legacy prefix fallback when it comes out
// non-empty; the template renderer's fail-soft policy means a malformed
// template falls back rather than leaking template syntax. The fixed
// description suffix is appended in both cases.
func buildMetadata(cfg *config.Config, src scan.Source, tctx map[string]string) upload.Metadata {
	title := template.Render(cfg.TitleTemplate, tctx)
	if title == "" {
		title = cfg.TitlePrefix + src.Stem
	}

	description := template.Render(cfg.DescriptionTemplate, tctx)
	if description == "" {
		description = cfg.DescriptionPrefix + src.Stem + "\nRecorded on " + tctx["update_date"]
	}
	if cfg.Description != "" {
		description += "\n\n" + cfg.Description
	}

	return upload.Metadata{
		Title:         title,
		Description:   description,
		Tags:          cfg.Tags,
		CategoryID:    cfg.CategoryID,
		PrivacyStatus: cfg.PrivacyStatus,
	}
}
