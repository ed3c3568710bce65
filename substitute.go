package godocx

import (
	"strings"

	"github.com/beevik/etree"
)

// Record сопоставляет шаблонам значения для подстановки.
type Record map[string]string

// Substitute заменяет каждый текстовый элемент внутри node, значение которого
// целиком совпадает с одним из шаблонов. Шаблоны проверяются по очереди против
// текущего значения, записи применяются по порядку, побеждает последняя.
// Отсутствующий в записи шаблон заменяется пустой строкой. Возвращает число
// выполненных замен.
func Substitute(node *etree.Element, records []Record, placeholders []string) int {
	matched := 0
	for _, text := range FindAll(node, KindText) {
		for _, placeholder := range placeholders {
			if len(records) == 0 || text.Text() != placeholder {
				continue
			}
			for _, record := range records {
				setText(text, record[placeholder])
			}
			matched++
		}
	}
	return matched
}

// setText меняет значение w:t, сохраняя пробелы по краям видимыми для редактора.
func setText(text *etree.Element, value string) {
	text.SetText(value)
	if value != strings.TrimSpace(value) {
		text.CreateAttr("xml:space", "preserve")
	}
}
