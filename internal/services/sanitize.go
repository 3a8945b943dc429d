package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Описания вакансий и компаний приходят из rich-text редактора
var descriptionPolicy = bluemonday.UGCPolicy()

func sanitizeHTML(s string) string {
	return strings.TrimSpace(descriptionPolicy.Sanitize(s))
}
