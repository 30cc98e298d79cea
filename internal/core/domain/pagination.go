package domain

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest - номер страницы (с 1) и ее размер.
type PageRequest struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
}

// NewPageRequest создает запрос страницы с нормализацией значений.
func NewPageRequest(pageIndex, pageSize int) PageRequest {
	return PageRequest{PageIndex: pageIndex, PageSize: pageSize}.Normalize()
}

func (p PageRequest) Normalize() PageRequest {
	if p.PageIndex < 1 {
		p.PageIndex = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p PageRequest) Limit() int {
	return p.Normalize().PageSize
}

func (p PageRequest) Offset() int {
	n := p.Normalize()
	return (n.PageIndex - 1) * n.PageSize
}

// TotalPages считает количество страниц для total элементов.
func (p PageRequest) TotalPages(total int) int {
	size := p.Normalize().PageSize
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
