package domain

// Page selects a window of a list. A nil Page means the whole list.
type Page interface {
	GetNumber() int64
	GetSize() int64
}

type page struct {
	number int64
	size   int64
}

// NewPage returns a page, defaulting to the first one of 10 items.
func NewPage(pageNumber, pageSize int64) Page {
	pNumber := int64(1)
	if pageNumber > 0 {
		pNumber = pageNumber
	}

	pSize := int64(10)
	if pageSize > 0 {
		pSize = pageSize
	}

	return page{pNumber, pSize}
}

func (p page) GetNumber() int64 {
	return p.number
}

func (p page) GetSize() int64 {
	return p.size
}
