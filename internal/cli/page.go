package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goliatone/go-jsonfields/pkg/dom/htmldoc"
)

func loadPage(in io.Reader, name string) (*htmldoc.Document, error) {
	data, err := readInput(in, name)
	if err != nil {
		return nil, err
	}
	doc, err := htmldoc.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return doc, nil
}

func pageName(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
