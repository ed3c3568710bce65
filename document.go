package godocx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/beevik/etree"
)

const (
	defaultMainPart = "word/document.xml"
	packageRels     = "_rels/.rels"

	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
)

// Document - пакет DOCX в памяти. Основная часть разобрана в дерево элементов,
// остальные части хранятся как есть.
type Document struct {
	files    []*zip.File
	mainPart string
	xml      *etree.Document
}

// OpenDocument загружает пакет из файла path.
func OpenDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	return LoadDocument(f)
}

// LoadDocument читает пакет целиком из r.
func LoadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("read package: %w", err)}
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("open package: %w", err)}
	}

	d := &Document{files: zr.File}
	if d.mainPart, err = d.findMainPart(); err != nil {
		return nil, err
	}

	f := d.file(d.mainPart)
	if f == nil {
		return nil, &ParseError{Part: d.mainPart, Err: errors.New("part not found")}
	}
	content, err := readPart(f)
	if err != nil {
		return nil, &ParseError{Part: d.mainPart, Err: err}
	}

	d.xml = etree.NewDocument()
	d.xml.WriteSettings = etree.WriteSettings{
		CanonicalAttrVal: true,
		CanonicalText:    true,
		CanonicalEndTags: true,
	}
	if err := d.xml.ReadFromBytes(content); err != nil {
		return nil, &ParseError{Part: d.mainPart, Err: err}
	}

	if KindOf(d.xml.Root()) != KindDocument {
		return nil, &ParseError{Part: d.mainPart, Err: errors.New("root element is not w:document")}
	}
	if d.Body() == nil {
		return nil, &ParseError{Part: d.mainPart, Err: errors.New("missing w:body")}
	}

	return d, nil
}

// findMainPart находит основную часть документа по связям пакета.
// По умолчанию word/document.xml.
func (d *Document) findMainPart() (string, error) {
	f := d.file(packageRels)
	if f == nil {
		return defaultMainPart, nil
	}

	content, err := readPart(f)
	if err != nil {
		return "", &ParseError{Part: packageRels, Err: err}
	}
	rels := etree.NewDocument()
	if err := rels.ReadFromBytes(content); err != nil {
		return "", &ParseError{Part: packageRels, Err: err}
	}
	if rels.Root() == nil {
		return defaultMainPart, nil
	}

	for _, rel := range rels.Root().ChildElements() {
		if rel.Tag != "Relationship" || rel.SelectAttrValue("Type", "") != relTypeOfficeDocument {
			continue
		}
		if target := rel.SelectAttrValue("Target", ""); target != "" {
			return path.Clean(strings.TrimPrefix(target, "/")), nil
		}
	}
	return defaultMainPart, nil
}

func (d *Document) file(name string) *zip.File {
	for _, f := range d.files {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// MainPart возвращает имя основной части документа.
func (d *Document) MainPart() string {
	return d.mainPart
}

// Body возвращает элемент w:body.
func (d *Document) Body() *etree.Element {
	return childOf(d.xml.Root(), "body")
}

// Tables возвращает таблицы верхнего уровня в теле документа.
func (d *Document) Tables() []*etree.Element {
	return FindAll(d.Body(), KindTable)
}

// AppendToBody добавляет el последним блоком тела, перед завершающим w:sectPr.
func (d *Document) AppendToBody(el *etree.Element) {
	body := d.Body()
	children := body.ChildElements()
	if n := len(children); n > 0 && KindOf(children[n-1]) == KindSectionProperties {
		body.InsertChildAt(children[n-1].Index(), el)
		return
	}
	body.AddChild(el)
}

// WriteTo записывает пакет в w. Все части, кроме основной, копируются без изменений.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := d.bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

func (d *Document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range d.files {
		if f.Name != d.mainPart {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copy %s: %w", f.Name, err)
			}
			continue
		}

		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", f.Name, err)
		}
		if _, err := d.xml.WriteTo(entry); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return buf.Bytes(), nil
}

// Save сохраняет пакет в path, перезаписывая существующий файл.
func (d *Document) Save(path string) error {
	data, err := d.bytes()
	if err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// SaveDocument сохраняет doc в path, перезаписывая существующий файл.
func SaveDocument(doc *Document, path string) error {
	return doc.Save(path)
}
