// Package godocx заполняет таблицы-шаблоны в документах WordprocessingML (.docx).
//
// Документ целиком загружается в память через LoadDocument или OpenDocument.
// Заполняется первая таблица, в которой есть текстовый элемент, равный первому
// шаблону целиком. UpdateDocument подставляет каждую запись в строки этой
// таблицы и сохраняет результат.
//
//	doc, err := godocx.OpenDocument("template.docx")
//	if err != nil {
//		return err
//	}
//	records := []godocx.Record{{"{{NAME}}": "Alice", "{{AGE}}": "30"}}
//	err = godocx.UpdateDocument([]string{"{{NAME}}", "{{AGE}}"}, records, doc, "out.docx")
package godocx
