// Package walker flattens user-selected directory trees into ordered upload
// records. PickerTraversal walks a handle returned by a directory picker,
// DropTraversal walks the entries of a drop gesture.
package walker

import (
	"errors"
	"fmt"
	"sync"

	"upload-collector/internal/hash"
	"upload-collector/internal/progress"
	"upload-collector/internal/record"
)

var (
	// ErrPickerCancelled means the picker was dismissed or access was denied.
	ErrPickerCancelled = errors.New("directory picker cancelled")
	// ErrPickerUnsupported means no directory picker is available here.
	ErrPickerUnsupported = errors.New("directory picker unsupported")
	// ErrEntryResolution marks a drop item that did not resolve to an entry.
	ErrEntryResolution = errors.New("drop item has no filesystem entry")
	// ErrContentResolution marks a file whose content could not be read.
	ErrContentResolution = errors.New("file content unavailable")
	ErrReadEntries       = errors.New("reading directory entries failed")
	ErrUnknownKind       = errors.New("entry is neither file nor directory")

	errNoContent = errors.New("no content returned")
)

// Observer is notified of every record as it is discovered. DropTraversal
// calls it from several goroutines.
type Observer interface {
	Observe(r record.UploadFileRecord)
}

type Result struct {
	Records []record.UploadFileRecord
	// Errors holds per-entry failures; the entries are absent from Records.
	Errors []error
	// Skipped counts drop items that had no entry.
	Skipped int
}

func newResult() *Result {
	return &Result{
		Records: make([]record.UploadFileRecord, 0),
		Errors:  make([]error, 0),
	}
}

func (r *Result) merge(other *Result) {
	r.Records = append(r.Records, other.Records...)
	r.Errors = append(r.Errors, other.Errors...)
	r.Skipped += other.Skipped
}

func (r *Result) Files() int {
	n := 0
	for _, rec := range r.Records {
		if !rec.IsDirectoryMarker() {
			n++
		}
	}
	return n
}

func (r *Result) Directories() int {
	return len(r.Records) - r.Files()
}

func emit(result *Result, observer Observer, rec record.UploadFileRecord) {
	result.Records = append(result.Records, rec)
	if observer != nil {
		observer.Observe(rec)
	}
}

// entryPath is the display path used in per-entry errors.
func entryPath(prefix, name string) string {
	if prefix == "" && name == "" {
		return "."
	}
	return prefix + name
}

type HashResult struct {
	Hashes map[int]string // record index -> hash
	Errors []error
}

type hashJob struct {
	i   int
	rec record.UploadFileRecord
}

type hashJobResult struct {
	i    int
	name string
	hash string
	err  error
}

// HashFiles fingerprints the content of every real-file record, keyed by
// the record's index in records. Directory markers are ignored.
func HashFiles(records []record.UploadFileRecord, numWorkers int, progressBar *progress.Bar) (*HashResult, error) {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	result := &HashResult{
		Hashes: make(map[int]string),
		Errors: make([]error, 0),
	}

	files := make([]hashJob, 0, len(records))
	for i, rec := range records {
		if !rec.IsDirectoryMarker() {
			files = append(files, hashJob{i: i, rec: rec})
		}
	}

	if len(files) == 0 {
		return result, nil
	}

	jobs := make(chan hashJob, len(files))
	results := make(chan hashJobResult, len(files))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				hashStr, err := hash.HashContent(job.rec.Payload.Content)
				results <- hashJobResult{
					i:    job.i,
					name: job.rec.DisplayName(),
					hash: hashStr,
					err:  err,
				}
			}
		}()
	}

	go func() {
		for _, job := range files {
			jobs <- job
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for jobResult := range results {
		if jobResult.err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", jobResult.name, jobResult.err))
			continue
		}
		result.Hashes[jobResult.i] = jobResult.hash

		if progressBar != nil {
			progressBar.SetDirectory(parentOf(jobResult.name))
			progressBar.Increment()
		}
	}

	return result, nil
}

func parentOf(displayName string) string {
	for i := len(displayName) - 1; i >= 0; i-- {
		if displayName[i] == record.Separator[0] {
			return displayName[:i]
		}
	}
	return "."
}
