package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

// MIMEType is the content type of a .docx file.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const extension = ".docx"

// pStyle takes the style id from styles.xml, not the display name.
var styleIDs = map[string]string{
	StyleListBullet: "ListBullet",
}

func styleID(name string) string {
	if id, ok := styleIDs[name]; ok {
		return id
	}
	return strings.ReplaceAll(name, " ", "")
}

// Rendered is a finished document ready for delivery.
type Rendered struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Filename derives "<label>_<name without extension>.docx".
func Filename(label, original string) string {
	base := filepath.Base(original)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return label + "_" + stem + extension
}

// Encode writes the elements into a Word document and returns its bytes.
func Encode(elements []Element) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("new document: %w", err)
	}

	for _, el := range elements {
		switch el.Kind {
		case KindHeading:
			if err := addHeading(doc, el.Text, el.Level); err != nil {
				return nil, err
			}
		case KindPageBreak:
			doc.AddPageBreak()
		default:
			p := addParagraph(doc, el.Text)
			if el.Style != "" {
				p.Style(styleID(el.Style))
			}
		}
	}

	// godocx only saves to a path
	dir, err := os.MkdirTemp("", "minutes-docx-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "minutes"+extension)
	if err := doc.SaveTo(path); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

// Build renders and encodes in one step.
func Build(labels Labels, filenameLabel, original, minutes, transcript string) (Rendered, error) {
	data, err := Encode(Render(labels, minutes, transcript))
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{
		Filename: Filename(filenameLabel, original),
		MIMEType: MIMEType,
		Data:     data,
	}, nil
}

// addParagraph keeps multi-line text in one paragraph, with a line break
// between lines.
func addParagraph(doc *docx.RootDoc, text string) *docx.Paragraph {
	if !strings.Contains(text, "\n") {
		return doc.AddParagraph(text)
	}

	p := doc.AddParagraph("")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		r := p.AddText(line)
		if i < len(lines)-1 {
			r.AddBreak(nil)
		}
	}
	return p
}

func addHeading(doc *docx.RootDoc, text string, level int) error {
	var err error
	switch level {
	case 0:
		_, err = doc.AddHeading(text, 0)
	case 1:
		_, err = doc.AddHeading(text, 1)
	case 2:
		_, err = doc.AddHeading(text, 2)
	case 3:
		_, err = doc.AddHeading(text, 3)
	default:
		return fmt.Errorf("heading level %d not supported", level)
	}
	if err != nil {
		return fmt.Errorf("add heading: %w", err)
	}
	return nil
}
