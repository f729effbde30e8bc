package types

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListQuery is the common list/filter/paginate query for admin list
// endpoints. Decoded straight from the URL query string.
type ListQuery struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// Normalize clamps page to >= 1 and pageSize into [1, MaxPageSize],
// defaulting pageSize to DefaultPageSize when unset.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize < 1 {
		q.PageSize = 1
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}

// Offset is the 0-based row offset for the 1-indexed page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// NecessidadeListQuery carries the extra filters the need-request admin
// table exposes.
type NecessidadeListQuery struct {
	Query      string `form:"query"`
	Status     string `form:"status"`
	Prioridade string `form:"prioridade"`
	Categoria  string `form:"categoria"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

func (q *NecessidadeListQuery) Normalize() {
	lq := ListQuery{Page: q.Page, PageSize: q.PageSize}
	lq.Normalize()
	q.Page = lq.Page
	q.PageSize = lq.PageSize
}

func (q NecessidadeListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// PageMeta is the pagination envelope shared by every paginated
// response.
type PageMeta struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
	Pages    int `json:"pages"`
}

func NewPageMeta(total, page, pageSize int) PageMeta {
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return PageMeta{Page: page, PageSize: pageSize, Total: total, Pages: pages}
}

type BeneficiaryPage struct {
	Items []*Beneficiary `json:"items"`
	PageMeta
}

type DonationPage struct {
	Items []*Donation `json:"items"`
	PageMeta
}

type NecessidadePage struct {
	Items []*Necessidade `json:"items"`
	PageMeta
}
