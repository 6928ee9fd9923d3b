package hh

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

var ErrTooDeepPagination = errors.New("too deep pagination")

type SearchParameters struct {
	AreaID                 string
	DateFrom               time.Time
	DateTo                 time.Time
	OrderByPublicationTime bool
	Page                   int
	PerPage                int
}

func (s SearchParameters) Validate() error {

	if s.DateFrom.IsZero() || s.DateTo.IsZero() {
		return fmt.Errorf("both dateFrom and dateTo are required")
	}

	if s.DateTo.Before(s.DateFrom) {
		return fmt.Errorf("dateTo must not precede dateFrom")
	}

	if s.Page < 0 {
		return fmt.Errorf("page must be non-negative")
	}

	if s.PerPage <= 0 || s.PerPage > 100 {
		return fmt.Errorf("per page must be between 1 and 100")
	}

	maxResults := 2000
	maxPage := maxResults / s.PerPage
	if s.Page >= maxPage {
		return ErrTooDeepPagination
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}

	if s.AreaID != "" {
		params.Add("area", s.AreaID)
	}

	params.Add("date_from", s.DateFrom.Format(timeLayout))
	params.Add("date_to", s.DateTo.Format(timeLayout))
	params.Add("page", strconv.Itoa(s.Page))
	params.Add("per_page", strconv.Itoa(s.PerPage))

	if s.OrderByPublicationTime {
		params.Add("order_by", "publication_time")
	}

	return params
}
