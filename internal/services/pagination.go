package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/intuitive-care/operadoras-api/internal/models"
)

// ValidatePaginationParams validates and parses pagination parameters.
// Empty values fall back to page 1 and limit 10. A page whose offset would
// overflow int is rejected.
func ValidatePaginationParams(pageStr, limitStr string) (int, int, error) {
	page := models.DefaultPage
	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return 0, 0, fmt.Errorf("invalid page parameter %q: %w", pageStr, models.ErrInvalidPage)
		}
		page = p
	}

	limit := models.DefaultLimit
	if limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 || l > models.MaxLimit {
			return 0, 0, fmt.Errorf("invalid limit parameter %q: %w", limitStr, models.ErrInvalidLimit)
		}
		limit = l
	}

	if page-1 > math.MaxInt/limit {
		return 0, 0, fmt.Errorf("invalid page parameter %q: %w", pageStr, models.ErrInvalidPage)
	}

	return page, limit, nil
}

// NewListParams validates pagination and trims the search term.
func NewListParams(pageStr, limitStr, search string) (models.ListParams, error) {
	page, limit, err := ValidatePaginationParams(pageStr, limitStr)
	if err != nil {
		return models.ListParams{}, err
	}
	return models.ListParams{Page: page, Limit: limit, Search: strings.TrimSpace(search)}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term as a literal substring.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
