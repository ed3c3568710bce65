package godocx

import "github.com/beevik/etree"

// NamespaceWordML - основное пространство имен WordprocessingML.
const NamespaceWordML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Kind определяет тип элемента документа.
type Kind int

const (
	KindOther Kind = iota
	KindDocument
	KindBody
	KindParagraph
	KindRun
	KindText
	KindTable
	KindRow
	KindCell
	KindContentControl
	KindSectionProperties
)

var kindNames = map[Kind]string{
	KindOther:             "other",
	KindDocument:          "document",
	KindBody:              "body",
	KindParagraph:         "paragraph",
	KindRun:               "run",
	KindText:              "text",
	KindTable:             "table",
	KindRow:               "row",
	KindCell:              "cell",
	KindContentControl:    "content-control",
	KindSectionProperties: "section-properties",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

var wordKinds = map[string]Kind{
	"document": KindDocument,
	"body":     KindBody,
	"p":        KindParagraph,
	"r":        KindRun,
	"t":        KindText,
	"tbl":      KindTable,
	"tr":       KindRow,
	"tc":       KindCell,
	"sdt":      KindContentControl,
	"sectPr":   KindSectionProperties,
}

// KindOf возвращает тип элемента. Элементы вне пространства имен
// WordprocessingML имеют тип KindOther.
func KindOf(el *etree.Element) Kind {
	if el == nil || !inWordML(el) {
		return KindOther
	}
	return wordKinds[el.Tag]
}

// inWordML проверяет пространство имен элемента. Для фрагментов, отделенных
// от объявлений, достаточно префикса "w".
func inWordML(el *etree.Element) bool {
	if uri := el.NamespaceURI(); uri != "" {
		return uri == NamespaceWordML
	}
	return el.Space == "w"
}

// Unwrap раскрывает элемент управления содержимым (w:sdt) до его w:sdtContent.
// Прочие элементы и w:sdt без содержимого возвращаются как есть.
func Unwrap(el *etree.Element) *etree.Element {
	for KindOf(el) == KindContentControl {
		content := childOf(el, "sdtContent")
		if content == nil {
			return el
		}
		el = content
	}
	return el
}

// FindAll возвращает все элементы заданного типа внутри node, включая сам node,
// в порядке документа. Внутрь найденного элемента поиск не спускается, поэтому
// вложенные совпадения не возвращаются.
func FindAll(node *etree.Element, kind Kind) []*etree.Element {
	if node == nil {
		return nil
	}
	var found []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		el = Unwrap(el)
		if KindOf(el) == kind {
			found = append(found, el)
			return
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(node)
	return found
}

// childOf возвращает первый прямой дочерний элемент WordprocessingML с тегом tag.
func childOf(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag && inWordML(child) {
			return child
		}
	}
	return nil
}
