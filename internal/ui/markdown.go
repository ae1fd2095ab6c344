package ui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders a package description for the terminal. Width 0
// keeps glamour's default wrapping.
func RenderMarkdown(content string, width int) (string, error) {
	rendererOpts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return "", err
	}

	return renderer.Render(content)
}
