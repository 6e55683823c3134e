package portal

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/export"
)

// SearchDebounce is how long the directory waits after the last keystroke before searching.
const SearchDebounce = 500 * time.Millisecond

// DefaultDirectoryPageSize is the page size used when none is set.
const DefaultDirectoryPageSize = 10

// StudentAPI is the student directory part of the server.
type StudentAPI interface {
	Students(ctx context.Context, filter models.StudentFilter, page, size int) (*StudentPage, error)
	DownloadStudents(ctx context.Context, format string, filter models.StudentFilter, w io.Writer) (string, error)
}

// StudentDirectory is the faculty view of registered students: filters, pages and a
// debounced free-text search.
type StudentDirectory struct {
	api   StudentAPI
	delay time.Duration

	mu       sync.Mutex
	filter   models.StudentFilter
	page     int
	size     int
	result   *StudentPage
	lastErr  string
	timer    *time.Timer
	seq      uint64
	onResult func(*StudentPage, error)
}

// NewStudentDirectory creates a directory. A non-positive delay uses SearchDebounce.
func NewStudentDirectory(api StudentAPI, delay time.Duration) *StudentDirectory {
	if delay <= 0 {
		delay = SearchDebounce
	}
	return &StudentDirectory{api: api, delay: delay, page: 1, size: DefaultDirectoryPageSize}
}

// OnResult registers a callback for results of debounced searches.
func (d *StudentDirectory) OnResult(fn func(*StudentPage, error)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onResult = fn
}

// SetFilter replaces batch, college and department, keeps the search text and goes back
// to the first page. Call Load to fetch.
func (d *StudentDirectory) SetFilter(batch, college, department string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filter.Batch = strings.TrimSpace(batch)
	d.filter.College = strings.TrimSpace(college)
	d.filter.Department = strings.TrimSpace(department)
	d.page = 1
}

// SetPage selects the page and page size. Call Load to fetch.
func (d *StudentDirectory) SetPage(page, size int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultDirectoryPageSize
	}
	d.page, d.size = page, size
}

// Filter returns the active filter.
func (d *StudentDirectory) Filter() models.StudentFilter {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filter
}

// SetSearch sets the search text and goes back to the first page without fetching.
func (d *StudentDirectory) SetSearch(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filter.Search = strings.TrimSpace(text)
	d.page = 1
}

// Search sets the search text and fetches the first page once no further Search call has
// arrived for the debounce delay. Only the last call in a burst reaches the server.
func (d *StudentDirectory) Search(ctx context.Context, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.filter.Search = strings.TrimSpace(text)
	d.page = 1
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		page, err := d.fetch(ctx, seq)
		d.mu.Lock()
		fn := d.onResult
		current := seq == d.seq
		d.mu.Unlock()
		if fn != nil && current {
			fn(page, err)
		}
	})
}

// Load fetches the current page right away, cancelling any pending search.
func (d *StudentDirectory) Load(ctx context.Context) (*StudentPage, error) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	return d.fetch(ctx, seq)
}

// fetch loads a page and stores it unless a newer request started meanwhile.
func (d *StudentDirectory) fetch(ctx context.Context, seq uint64) (*StudentPage, error) {
	d.mu.Lock()
	filter, page, size := d.filter, d.page, d.size
	d.mu.Unlock()

	result, err := d.api.Students(ctx, filter, page, size)

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq {
		return result, err
	}
	if err != nil {
		d.lastErr = ErrorMessage(err)
		return nil, err
	}
	d.result = result
	d.lastErr = ""
	return result, nil
}

// Result returns the last loaded page.
func (d *StudentDirectory) Result() *StudentPage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

// Err returns the message of the last failed load.
func (d *StudentDirectory) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Download writes the filtered directory to w as csv, xlsx or pdf and returns the file
// name suggested by the server.
func (d *StudentDirectory) Download(ctx context.Context, format string, w io.Writer) (string, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return "", FieldErrors{"format": err.Error()}
	}
	return d.api.DownloadStudents(ctx, string(f), d.Filter(), w)
}
