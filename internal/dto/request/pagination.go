package request

import "taxi-booking/pkg/utils"

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// NewPaginatedRequest reads page and per_page query values, clamping bad input.
func NewPaginatedRequest(page, perPage string) PaginatedRequest {
	p := PaginatedRequest{
		Page:    utils.ParseInt(page, 1),
		PerPage: utils.ClampPerPage(utils.ParseInt(perPage, DefaultPerPage), DefaultPerPage, MaxPerPage),
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

func (p PaginatedRequest) Offset() int {
	return utils.Offset(p.Page, p.PerPage)
}
