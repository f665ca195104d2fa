package extract

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"

	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
	"github.com/akolanti/MentorAPI/pkg/logger_i"
)

var logger = logger_i.NewLogger("Extraction")

func DocTypeOf(filename string) commonModels.DocType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".rtf", ".odt":
		return commonModels.DOCX
	case ".txt":
		return commonModels.TXT
	default:
		return commonModels.ERR
	}
}

// Text pulls the plain text out of an uploaded document. Unsupported
// types, unreadable files and documents with no extractable text all come
// back as ExtractionError - user-fixable, not a server fault.
func Text(data []byte, filename string) (string, error) {
	var text string
	var err error

	switch DocTypeOf(filename) {
	case commonModels.PDF:
		text, err = pdfText(data)
	case commonModels.DOCX, commonModels.TXT:
		text, err = cat.FromBytes(data)
	default:
		return "", commonModels.ExtractionError("unsupported file type: "+filepath.Ext(filename), nil)
	}

	if err != nil {
		return "", commonModels.ExtractionError("extracting text from "+filename, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", commonModels.ExtractionError("no extractable text in "+filename, nil)
	}
	return text, nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	logger.Debug("pdfText", "pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := protectExtract(page)
		if err != nil {
			// a broken page shouldn't sink the whole document
			logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// protectExtract guards against the pdf library hanging on malformed
// page content streams.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("page extraction timeout")
	}
}
