package engine

// Filters holds the active findings-table filters. Empty fields are
// inactive.
type Filters struct {
	Repo     string
	Tool     string
	Severity string
}

// Pager composes the query parameters for the findings fetch from the
// current filters and pagination state. Changing any filter resets the page
// to 1 before the next poll.
type Pager struct {
	filters Filters
	page    int
	perPage int
	total   int
}

// NewPager creates a pager on page 1 with the given page size.
func NewPager(perPage int) Pager {
	if perPage < 1 {
		perPage = 1
	}
	return Pager{page: 1, perPage: perPage}
}

// SetRepo sets the repo filter, resetting to page 1 on change.
func (p *Pager) SetRepo(repo string) {
	if p.filters.Repo != repo {
		p.filters.Repo = repo
		p.page = 1
	}
}

// SetTool sets the tool filter, resetting to page 1 on change.
func (p *Pager) SetTool(tool string) {
	if p.filters.Tool != tool {
		p.filters.Tool = tool
		p.page = 1
	}
}

// SetSeverity sets the severity filter, resetting to page 1 on change.
func (p *Pager) SetSeverity(severity string) {
	if p.filters.Severity != severity {
		p.filters.Severity = severity
		p.page = 1
	}
}

// Clear removes all filters and returns to page 1.
func (p *Pager) Clear() {
	if p.filters != (Filters{}) {
		p.filters = Filters{}
		p.page = 1
	}
}

// ChangePage moves by delta pages. It is a no-op when the target would fall
// outside [1, TotalPages]; the return value reports whether the page moved.
func (p *Pager) ChangePage(delta int) bool {
	target := p.page + delta
	if target < 1 || target > p.TotalPages() {
		return false
	}
	p.page = target
	return true
}

// SetResult records the pagination fields of a successful findings fetch.
// The server is authoritative for page and total; the current page is
// clamped back into range if the total shrank underneath it.
func (p *Pager) SetResult(page, perPage, total int) {
	if perPage > 0 {
		p.perPage = perPage
	}
	if total < 0 {
		total = 0
	}
	p.total = total
	if page > 0 {
		p.page = page
	}
	if p.page > p.TotalPages() {
		p.page = p.TotalPages()
	}
	if p.page < 1 {
		p.page = 1
	}
}

// TotalPages is ceil(total/perPage) with a floor of 1.
func (p *Pager) TotalPages() int {
	pages := (p.total + p.perPage - 1) / p.perPage
	if pages < 1 {
		return 1
	}
	return pages
}

// Page returns the current 1-indexed page.
func (p *Pager) Page() int { return p.page }

// PerPage returns the page size.
func (p *Pager) PerPage() int { return p.perPage }

// Total returns the last known total row count.
func (p *Pager) Total() int { return p.total }

// Filters returns the active filter set.
func (p *Pager) Filters() Filters { return p.filters }
