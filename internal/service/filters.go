package service

import (
	"strings"
	"time"

	"socialhub/internal/apperror"
	"socialhub/internal/models"
)

const DateLayout = "2006-01-02"

// ParsePostFilter reads the tag and date query parameters. Empty values
// mean no filter.
func ParsePostFilter(tag, date string) (models.PostFilter, error) {
	filter := models.PostFilter{Tag: strings.TrimSpace(tag)}

	date = strings.TrimSpace(date)
	if date == "" {
		return filter, nil
	}

	day, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return models.PostFilter{}, apperror.NewValidation("date", "Enter a valid date in YYYY-MM-DD format.")
	}
	filter.Date = &day

	return filter, nil
}

func ParseProfileFilter(username, city string) models.ProfileFilter {
	return models.ProfileFilter{
		Username: strings.TrimSpace(username),
		City:     strings.TrimSpace(city),
	}
}
