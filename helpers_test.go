package godocx

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

const (
	testDocumentOpen  = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" + `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	testDocumentClose = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`

	testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`
	testStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`
)

type testPart struct {
	name    string
	content string
}

func testRels(target string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="` + target + `"/>` +
		`</Relationships>`
}

// paragraph returns a body paragraph with a single run.
func paragraph(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

// table returns a w:tbl with one row per entry and one cell per value.
func table(rows ...[]string) string {
	var sb strings.Builder
	sb.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/></w:tblPr>`)
	for _, row := range rows {
		sb.WriteString(`<w:tr>`)
		for _, cell := range row {
			sb.WriteString(`<w:tc>` + paragraph(cell) + `</w:tc>`)
		}
		sb.WriteString(`</w:tr>`)
	}
	sb.WriteString(`</w:tbl>`)
	return sb.String()
}

func zipParts(t *testing.T, parts ...testPart) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, p := range parts {
		f, err := w.Create(p.name)
		require.NoError(t, err)
		_, err = f.Write([]byte(p.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// buildDocx packages body into a minimal docx.
func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	return zipParts(t,
		testPart{"[Content_Types].xml", testContentTypes},
		testPart{"_rels/.rels", testRels("word/document.xml")},
		testPart{"word/document.xml", testDocumentOpen + body + testDocumentClose},
		testPart{"word/styles.xml", testStyles},
	)
}

func loadDocx(t *testing.T, body string) *Document {
	t.Helper()

	doc, err := LoadDocument(bytes.NewReader(buildDocx(t, body)))
	require.NoError(t, err)
	return doc
}

// parseElement parses an XML fragment. The w prefix is bound to WordprocessingML
// unless the fragment declares it.
func parseElement(t *testing.T, fragment string) *etree.Element {
	t.Helper()

	doc := etree.NewDocument()
	wrapped := `<root xmlns:w="` + NamespaceWordML + `">` + fragment + `</root>`
	require.NoError(t, doc.ReadFromString(wrapped))
	children := doc.Root().ChildElements()
	require.Len(t, children, 1)
	return children[0]
}

// textValues returns the values of every text element under el.
func textValues(el *etree.Element) []string {
	var values []string
	for _, text := range FindAll(el, KindText) {
		values = append(values, text.Text())
	}
	return values
}
