package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"pycheck/internal/diag"
	"pycheck/internal/project"
	"pycheck/internal/source"
)

// FileStatus описывает стадию обработки файла для индикации прогресса.
type FileStatus uint8

const (
	StatusQueued FileStatus = iota
	StatusChecking
	StatusDone
	StatusError
)

func (s FileStatus) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusChecking:
		return "checking"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Event сообщает о смене статуса файла. Колбэк вызывается из рабочих горутин;
// получатель отвечает за синхронизацию.
type Event struct {
	Path      string
	Index     int
	Total     int
	Status    FileStatus
	FromCache bool
}

// CheckDirResult содержит результат проверки одного файла
type CheckDirResult struct {
	Path      string        // Относительный путь к файлу
	FileID    source.FileID // ID файла в FileSet
	Bag       *diag.Bag     // Диагностики
	FromCache bool
}

// ListPythonFiles возвращает отсортированный список всех *.py и *.pyi файлов
func ListPythonFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Скрытые каталоги и окружения не проверяем
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "__pycache__" || name == "venv") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".py") || strings.HasSuffix(path, ".pyi") {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir проверяет все Python-файлы в директории параллельно.
func CheckDir(ctx context.Context, dir string, cfg *project.Config, cache *DiskCache, onEvent func(Event)) (*source.FileSet, []CheckDirResult, error) {
	files, err := ListPythonFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	// Создаём FileSet и предзагружаем все файлы; горутины дальше только читают
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	for i, path := range files {
		emit(onEvent, Event{Path: path, Index: i, Total: len(files), Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := cfg.Check.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]CheckDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				emit(onEvent, Event{Path: path, Index: i, Total: len(files), Status: StatusChecking})

				if loadErr, hadError := loadErrors[path]; hadError {
					bag := diag.NewBag(cfg.Check.MaxDiagnostics)
					bag.Add(diag.Diagnostic{
						Severity: diag.SevError,
						Code:     diag.IOLoadFileError,
						Message:  "failed to load file: " + loadErr.Error(),
						Primary:  source.Span{},
					})
					results[i] = CheckDirResult{Path: path, Bag: bag}
					emit(onEvent, Event{Path: path, Index: i, Total: len(files), Status: StatusError})
					return nil
				}

				fileID := fileIDs[path]
				file := fileSet.Get(fileID)
				bag, fromCache := checkFile(file, cfg, cache)

				// Сохраняем результат (мьютекс не нужен — индекс i уникален)
				results[i] = CheckDirResult{
					Path:      path,
					FileID:    fileID,
					Bag:       bag,
					FromCache: fromCache,
				}

				emit(onEvent, Event{Path: path, Index: i, Total: len(files), Status: StatusDone, FromCache: fromCache})
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}

	return fileSet, results, nil
}

func emit(onEvent func(Event), ev Event) {
	if onEvent != nil {
		onEvent(ev)
	}
}

// MergeBags сливает диагностики всех результатов в один отсортированный Bag.
func MergeBags(results []CheckDirResult, maxDiagnostics int) *diag.Bag {
	merged := diag.NewBag(maxDiagnostics)
	for _, res := range results {
		if res.Bag != nil {
			merged.Merge(res.Bag)
		}
	}
	merged.Sort()
	return merged
}
