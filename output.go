package godocx

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

// OutputPath возвращает новый путь output_<uuid>.docx в каталоге dir.
func OutputPath(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("output_%s.docx", uuid.NewString()))
}
