package feedapp

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

// clampPage maps any requested page number onto the valid 1..pageCount range
// and returns the page number, offset and page count. An empty feed still has
// one (empty) page, matching the paginator contract: out-of-range requests
// clamp instead of failing.
func clampPage(total int64, number int) (page, offset, pageCount int) {
	pageCount = int((total + PageSize - 1) / PageSize)
	if pageCount < 1 {
		pageCount = 1
	}
	page = number
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}
	offset = (page - 1) * PageSize
	return page, offset, pageCount
}
