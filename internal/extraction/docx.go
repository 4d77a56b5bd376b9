package extraction

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"code.sajari.com/docconv"

	"github.com/jonathan/career-analyzer/internal/types"
)

const docxBody = "word/document.xml"

func (e *Extractor) extractDOCX(ctx context.Context, path string) types.ExtractionResult {
	out, name, err := e.runChain(ctx, path, e.docxMethods)
	if err != nil {
		return types.FailedExtraction(types.ExtractionDOCX, fmt.Errorf("All DOCX extraction methods failed: %w", err))
	}
	return finish(types.ExtractionResult{
		ExtractionType:   types.ExtractionDOCX,
		ExtractionMethod: name,
	}, out.Text)
}

func (e *Extractor) extractDOC(ctx context.Context, path string) types.ExtractionResult {
	out, name, err := e.runChain(ctx, path, e.docMethods)
	if err != nil {
		return types.FailedExtraction(types.ExtractionDOC,
			fmt.Errorf("DOC extraction failed. Consider converting to DOCX format first: %w", err))
	}
	return finish(types.ExtractionResult{
		ExtractionType:   types.ExtractionDOC,
		ExtractionMethod: name,
	}, out.Text)
}

// docxRich converts the whole package, headers and footers included.
func (e *Extractor) docxRich(_ context.Context, path string) (pageText, error) {
	f, err := os.Open(path)
	if err != nil {
		return pageText{}, err
	}
	defer func() { _ = f.Close() }()

	text, _, err := docconv.ConvertDocx(f)
	if err != nil {
		return pageText{}, err
	}
	return pageText{Text: text}, nil
}

// docxPlain flattens the main document part to text.
func (e *Extractor) docxPlain(_ context.Context, path string) (pageText, error) {
	var text string
	err := withDocxBody(path, func(r io.Reader) error {
		var err error
		text, err = docconv.XMLToText(r, []string{"br", "p", "tab"}, []string{"instrText", "script"}, true)
		return err
	})
	if err != nil {
		return pageText{}, err
	}
	return pageText{Text: text}, nil
}

// docxParagraphs walks <w:p> elements and joins their runs, one paragraph per block.
func (e *Extractor) docxParagraphs(_ context.Context, path string) (pageText, error) {
	var paragraphs []string
	err := withDocxBody(path, func(r io.Reader) error {
		var err error
		paragraphs, err = walkParagraphs(r)
		return err
	})
	if err != nil {
		return pageText{}, err
	}
	return pageText{Text: strings.Join(paragraphs, "\n\n")}, nil
}

// docLegacy reads a Word 97-2003 binary document.
func (e *Extractor) docLegacy(_ context.Context, path string) (pageText, error) {
	f, err := os.Open(path)
	if err != nil {
		return pageText{}, err
	}
	defer func() { _ = f.Close() }()

	text, _, err := docconv.ConvertDoc(f)
	if err != nil {
		return pageText{}, err
	}
	return pageText{Text: text}, nil
}

func withDocxBody(path string, fn func(io.Reader) error) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open docx archive: %w", err)
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if f.Name != docxBody {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open %s: %w", docxBody, err)
		}
		defer func() { _ = rc.Close() }()
		return fn(rc)
	}
	return fmt.Errorf("%s not found in archive", docxBody)
}

func walkParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		paragraphs []string
		cur        strings.Builder
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				cur.WriteString("\t")
			case "br", "cr":
				cur.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if p := strings.TrimSpace(cur.String()); p != "" {
					paragraphs = append(paragraphs, p)
				}
				cur.Reset()
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	return paragraphs, nil
}
