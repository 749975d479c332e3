// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"embed"
	"strings"
	"sync"

	"brandpress/internal/brandconfig"
)

//go:embed templates
var templateFS embed.FS

// Base templates are embedded at compile time and loaded once on first
// use; the holders are safe under concurrent first access.
var (
	captionBase  = sync.OnceValue(func() string { return loadTemplate("caption_prompt.txt") })
	analysisBase = sync.OnceValue(func() string { return loadTemplate("analysis_prompt.txt") })
)

func loadTemplate(name string) string {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		// Embedded files are checked at build time; a miss is a packaging bug.
		panic("prompt: missing embedded template " + name)
	}
	return strings.TrimSpace(string(raw))
}

// CaptionBase returns the built-in caption prompt template.
func CaptionBase() string { return captionBase() }

// AnalysisBase returns the built-in image analysis prompt template.
func AnalysisBase() string { return analysisBase() }

// RenderCaption renders the built-in caption prompt for a resolved config.
func RenderCaption(cfg *brandconfig.Config) string {
	return Render(CaptionBase(), cfg)
}

// RenderAnalysis renders the built-in analysis prompt for a resolved config.
func RenderAnalysis(cfg *brandconfig.Config) string {
	return Render(AnalysisBase(), cfg)
}
