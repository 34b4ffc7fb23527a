package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
)

// Adapter loads catalogs from some source.
type Adapter interface {
	Load(ctx context.Context) (Catalogs, error)
}

// MapAdapter serves catalogs from memory.
type MapAdapter struct {
	Data Catalogs
}

func (a *MapAdapter) Load(_ context.Context) (Catalogs, error) {
	if a.Data == nil {
		return Catalogs{}, nil
	}
	return a.Data, nil
}

// FSAdapter loads every file in dir whose extension the parser supports.
// Languages spread over several files are merged; later files (in directory
// order) win on key conflicts.
type FSAdapter struct {
	fsys   fs.FS
	dir    string
	parser Parser
}

// NewFSAdapter returns an adapter reading dir of fsys with parser.
// An empty dir means the root of fsys.
func NewFSAdapter(fsys fs.FS, dir string, parser Parser) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir, parser: parser}
}

func (a *FSAdapter) Load(ctx context.Context) (Catalogs, error) {
	if a.parser == nil {
		return nil, ErrNilParser
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}

	all := make(Catalogs)
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !a.parser.SupportsExtension(path.Ext(entry.Name())) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, fmt.Errorf("%s: %w", name, err))
		}
		cats, err := a.parser.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for lang, tree := range cats {
			if all[lang] == nil {
				all[lang] = make(map[string]any, len(tree))
			}
			maps.Copy(all[lang], tree)
		}
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoCatalogs, a.dir)
	}
	return all, nil
}
