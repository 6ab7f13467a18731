package utils

// TotalPages is the number of perPage sized pages needed for total rows.
func TotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// Offset of the first row on a 1-based page.
func Offset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}

// ClampPerPage falls back to def below 1 and caps at limit.
func ClampPerPage(perPage, def, limit int) int {
	switch {
	case perPage < 1:
		return def
	case perPage > limit:
		return limit
	}
	return perPage
}
