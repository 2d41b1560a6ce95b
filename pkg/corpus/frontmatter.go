package corpus

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	yaml "gopkg.in/yaml.v2"
)

const frontmatterDelimiter = "---"

// document is the result of a permissive frontmatter parse. A malformed
// block (unterminated delimiter, invalid YAML) degrades to empty metadata
// with the malformed marker set; parsing never fails hard.
type document struct {
	meta      Meta
	items     []MetaItem
	body      string
	bodyLine  int
	malformed bool
}

// parseDocument splits a document into frontmatter metadata and body,
// preserving declaration order of the metadata keys.
func parseDocument(content []byte) document {
	doc := document{body: string(content), bodyLine: 1}

	text := string(content)
	if !strings.HasPrefix(text, frontmatterDelimiter) {
		return doc
	}

	body, bodyLine, closed := splitBody(text)
	if !closed {
		// the opening delimiter is never closed; goldmark-meta would parse
		// the whole remaining document as YAML, so short-circuit here
		doc.malformed = true
		return doc
	}
	doc.body, doc.bodyLine = body, bodyLine

	md := goldmark.New(goldmark.WithExtensions(meta.Meta))

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		doc.malformed = true
		return doc
	}

	items, err := meta.TryGetItems(pctx)
	if err != nil {
		doc.malformed = true
		return doc
	}
	if items == nil && meta.Get(pctx) == nil {
		doc.malformed = true
		return doc
	}

	doc.items = metaItems(items)

	if data := meta.Get(pctx); data != nil {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &doc.meta,
			WeaklyTypedInput: true,
		})
		if err == nil {
			// decode errors are tolerated: fields that don't coerce stay empty
			_ = decoder.Decode(data)
		}
	}

	return doc
}

// metaItems flattens goldmark-meta's ordered yaml.MapSlice into MetaItems,
// keeping declaration order and rendering every value as text.
func metaItems(items yaml.MapSlice) []MetaItem {
	if len(items) == 0 {
		return nil
	}

	result := make([]MetaItem, 0, len(items))
	for _, item := range items {
		result = append(result, MetaItem{
			Key:   fmt.Sprint(item.Key),
			Value: fmt.Sprint(item.Value),
		})
	}
	return result
}

// splitBody returns the content after the closing frontmatter delimiter and
// the 1-based file line the body starts on. Line numbers in reference edges
// are file-accurate, so the frontmatter offset must be preserved here.
func splitBody(content string) (body string, bodyLine int, closed bool) {
	lines := strings.Split(content, "\n")

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return content, 1, false
	}

	return strings.Join(lines[end+1:], "\n"), end + 2, true
}
