package depot

// Paginate computes the visible slice of an ordered collection.
//
// It returns the half-open index range [start, end) for the requested page
// and the total page count. The page count is at least 1 even for an empty
// collection; the requested page is clamped into [0, pages-1]; end never
// exceeds total. Pure and deterministic for any total >= 0, perPage >= 1.
func Paginate(total, perPage, page int) (start, end, pages int) {
	pages = (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	if page < 0 {
		page = 0
	}
	if page > pages-1 {
		page = pages - 1
	}
	start = page * perPage
	end = start + perPage
	if end > total {
		end = total
	}
	return start, end, pages
}
