package driver

import (
	"fortio.org/safecast"

	"pycheck/internal/diag"
	"pycheck/internal/project"
	"pycheck/internal/rules"
	"pycheck/internal/source"
)

// CheckResult содержит результат проверки одного файла
type CheckResult struct {
	FileSet   *source.FileSet
	File      *source.File
	Bag       *diag.Bag
	FromCache bool
}

// RunChecks запускает все включённые правила над файлом.
// Повторы отфильтровываются DedupReporter'ом.
func RunChecks(file *source.File, cfg *project.Config, r diag.Reporter) {
	dedup := diag.NewDedupReporter(r)

	if cfg.Enabled(diag.CheckMissingWhitespaceAfterKeyword) {
		rules.MissingWhitespaceAfterKeyword(file, dedup)
	}
	if cfg.Enabled(diag.CheckTooManyBlankLines) {
		maxBlank, err := safecast.Conv[uint32](cfg.Check.MaxBlankLines)
		if err != nil {
			panic(err) // конфиг валидируется при загрузке
		}
		rules.TooManyBlankLines(file, maxBlank, dedup)
	}
	if cfg.Enabled(diag.CheckBlankLineAtEOF) {
		rules.BlankLineAtEOF(file, dedup)
	}
	if cfg.Enabled(diag.CheckNoNewlineAtEOF) {
		rules.NoNewlineAtEOF(file, dedup)
	}
}

// CheckPath загружает файл и проверяет его, используя дисковый кэш, когда он
// передан. Ошибки кэша не фатальны: чтение деградирует до промаха, ошибка
// записи становится IO-диагностикой.
func CheckPath(path string, cfg *project.Config, cache *DiskCache) (*CheckResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag, fromCache := checkFile(file, cfg, cache)
	return &CheckResult{
		FileSet:   fs,
		File:      file,
		Bag:       bag,
		FromCache: fromCache,
	}, nil
}

// checkFile проверяет уже загруженный файл с прослойкой кэша.
func checkFile(file *source.File, cfg *project.Config, cache *DiskCache) (*diag.Bag, bool) {
	var key Digest
	if cache != nil {
		key = cacheKey(file.Content, cfg)
		var payload CheckPayload
		if ok, err := cache.Get(key, &payload); err == nil && ok {
			return bagFromPayload(&payload, file.ID, cfg.Check.MaxDiagnostics), true
		}
	}

	bag := diag.NewBag(cfg.Check.MaxDiagnostics)
	RunChecks(file, cfg, diag.BagReporter{Bag: bag})
	bag.Sort()

	if cache != nil {
		if err := cache.Put(key, payloadFromBag(bag)); err != nil {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.IOCacheError,
				Message:  "failed to write check cache: " + err.Error(),
				Primary:  source.Span{File: file.ID},
			})
		}
	}
	return bag, false
}
