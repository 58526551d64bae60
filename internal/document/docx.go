package document

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var reBold = regexp.MustCompile(`\*\*(.+?)\*\*`)

// RenderDocx renders the document as a .docx file and returns its bytes.
// Section titles become bold headings; model output keeps **bold** runs.
func RenderDocx(d Document) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("create docx: %w", err)
	}

	for _, s := range d.Sections {
		addStyledRun(doc.AddParagraph(""), s.Title, true, 16)

		for _, line := range s.Lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if trimmed == headingSummary || trimmed == headingChunks {
				addStyledRun(doc.AddParagraph(""), trimmed, true, 14)
				continue
			}
			addRichText(doc.AddParagraph(""), trimmed)
		}
	}

	dir, err := os.MkdirTemp("", "compiled-docx-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "compiled.docx")
	if err := doc.SaveTo(path); err != nil {
		return nil, fmt.Errorf("save docx: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	return data, nil
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
