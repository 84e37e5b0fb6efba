package library

import (
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/bowling220/YTune/internal/tags"
)

const numWorkers = 4

// ScanProgress reports the progress of a library scan.
type ScanProgress struct {
	Phase       string // "scanning", "processing", "cleaning", "done"
	Current     int
	Total       int
	CurrentFile string
	Stats       *ScanStats // only populated when Phase == "done"
}

// ScanStats summarizes a completed scan.
type ScanStats struct {
	Added   int
	Updated int
	Removed int
	Failed  int
}

type fileInfo struct {
	path  string
	mtime int64
}

type fileResult struct {
	info  *tags.FileInfo
	mtime int64
	err   error
	path  string
}

// Scan walks the source directories, adds new and modified music files
// to the library and removes rows for files that no longer exist.
// Progress updates are sent to progress if non-nil; the channel is
// closed when the scan finishes.
func (l *Library) Scan(sources []string, progress chan<- ScanProgress) (*ScanStats, error) {
	if progress != nil {
		defer close(progress)
	}

	report := func(p ScanProgress) {
		if progress != nil {
			progress <- p
		}
	}

	report(ScanProgress{Phase: "scanning"})
	files, discovered := discoverFiles(sources)

	existing, err := l.existingMtimes()
	if err != nil {
		return nil, err
	}

	// Unchanged files are skipped on mtime.
	toProcess := files[:0]
	for _, f := range files {
		if mtime, ok := existing[f.path]; ok && mtime == f.mtime {
			continue
		}
		toProcess = append(toProcess, f)
	}

	stats := &ScanStats{}
	if len(toProcess) > 0 {
		l.processFiles(toProcess, stats, report)
	}

	report(ScanProgress{Phase: "cleaning"})
	for path := range existing {
		if _, ok := discovered[path]; ok {
			continue
		}
		if err := l.RemoveTrackByPath(path); err != nil {
			l.logger.Printf("library: remove %s: %v", path, err)
			continue
		}
		stats.Removed++
	}

	report(ScanProgress{Phase: "done", Current: len(files), Total: len(files), Stats: stats})
	return stats, nil
}

// discoverFiles walks the sources and collects music files. Unreadable
// directories are skipped, not fatal.
func discoverFiles(sources []string) ([]fileInfo, map[string]struct{}) {
	var files []fileInfo
	discovered := make(map[string]struct{})

	for _, source := range sources {
		_ = filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !tags.IsMusicFile(path) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if _, seen := discovered[path]; seen {
				return nil
			}
			discovered[path] = struct{}{}
			files = append(files, fileInfo{path: path, mtime: info.ModTime().Unix()})
			return nil
		})
	}
	return files, discovered
}

// processFiles reads metadata with a worker pool and inserts results
// serially, sqlite writes stay on one goroutine.
func (l *Library) processFiles(files []fileInfo, stats *ScanStats, report func(ScanProgress)) {
	work := make(chan fileInfo)
	results := make(chan fileResult)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range work {
				info, err := tags.ReadWithAudio(f.path)
				results <- fileResult{info: info, mtime: f.mtime, err: err, path: f.path}
			}
		}()
	}

	go func() {
		for _, f := range files {
			work <- f
		}
		close(work)
		wg.Wait()
		close(results)
	}()

	current := 0
	for res := range results {
		current++
		report(ScanProgress{Phase: "processing", Current: current, Total: len(files), CurrentFile: res.path})

		if res.err != nil {
			l.logger.Printf("library: read %s: %v", res.path, res.err)
			stats.Failed++
			continue
		}
		_, isNew, err := l.AddTrack(res.info, res.mtime)
		if err != nil {
			l.logger.Printf("library: store %s: %v", res.path, err)
			stats.Failed++
			continue
		}
		if isNew {
			stats.Added++
		} else {
			stats.Updated++
		}
	}
}
