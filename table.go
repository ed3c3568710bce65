package godocx

import "github.com/beevik/etree"

// FindTable возвращает первую таблицу с текстовым элементом, равным token.
// Если такой нет, возвращается новая пустая таблица вне документа.
// Проверяйте результат через IsEmptyTable.
func FindTable(tables []*etree.Element, token string) *etree.Element {
	for _, table := range tables {
		for _, text := range FindAll(table, KindText) {
			if text.Text() == token {
				return table
			}
		}
	}
	return NewTable()
}

// NewTable создает пустой w:tbl, не привязанный к документу.
func NewTable() *etree.Element {
	return etree.NewElement("w:tbl")
}

// IsEmptyTable сообщает, что таблица пуста.
func IsEmptyTable(table *etree.Element) bool {
	return table == nil || len(table.ChildElements()) == 0
}
