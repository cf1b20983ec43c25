package services

import (
	"slices"

	"blog-platform/models"
)

const excerptLength = 150

// deriveExcerpt returns the first 150 characters of content, with "..." appended
// when something was cut off.
func deriveExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength]) + "..."
}

func paginate[T any](items []T, skip, limit int) []T {
	skip = max(skip, 0)
	if skip >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit >= 0 && skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}

func uniqueSorted(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func authorOrDefault(author string) string {
	if author == "" {
		return models.DefaultAuthor
	}
	return author
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
