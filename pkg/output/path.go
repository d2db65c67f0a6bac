// Package output сохраняет сгенерированные записи в CSV файлы.
//
// Правило 12: имена файлов приходят из интерактивного ввода и проходят
// санитизацию перед использованием.
package output

import (
	"path/filepath"

	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/utils"
)

// DefaultFilename используется когда пользователь принимает имя по умолчанию.
const DefaultFilename = "generated_data.csv"

// ResolvePath определяет итоговый путь сохранения файла.
//
// Правила:
//   - Пустое имя заменяется на DefaultFilename
//   - Имя с разделителем пути используется как есть:
//     пользователь явно выбрал каталог ("exports/q1.csv", "/tmp/data.csv")
//   - Голое имя файла санитизируется и кладётся в каталог outputDir
func ResolvePath(filename, outputDir string) string {
	if filename == "" {
		filename = DefaultFilename
	}

	if filepath.Base(filename) != filename {
		return filename
	}

	return filepath.Join(outputDir, utils.SanitizeFilename(filename, DefaultFilename))
}
