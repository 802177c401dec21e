// Package sorter упорядочивает сегменты маршрута по названию.
package sorter

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"

	"route-spreadsheet-go/pkg/models"
)

// Options параметры сортировки
type Options struct {
	// StripPrefix сортирует по ведущему номеру в названии и убирает его после сортировки
	StripPrefix bool
}

// ведущий номер и разделитель: "2 - Ridge", "10. Summit", "3) Camp", "4 Lake".
// За номером обязательно идет разделитель или пробел, поэтому "3rd" и "4WD" номером не считаются.
var prefixPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)(?:\s*[-–—.:)]\s*|\s+)`)

type keyed struct {
	segment   models.Segment
	hasPrefix bool
	number    float64
	rest      string
}

// Sort возвращает новую последовательность сегментов, упорядоченную по названию.
// Сортировка устойчивая, входной срез не изменяется.
func Sort(segments []models.Segment, opts Options) []models.Segment {
	items := make([]keyed, len(segments))
	for i, segment := range segments {
		items[i] = keyed{segment: segment}
		if opts.StripPrefix {
			items[i].number, items[i].rest, items[i].hasPrefix = splitPrefix(segment.Title)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})

	out := make([]models.Segment, len(items))
	for i, item := range items {
		if item.hasPrefix && item.rest != "" {
			out[i] = item.segment.WithTitle(item.rest)
			continue
		}
		out[i] = item.segment
	}
	return out
}

func less(a, b keyed) bool {
	if a.hasPrefix && b.hasPrefix {
		if a.number != b.number {
			return a.number < b.number
		}
		return natural.Less(a.rest, b.rest)
	}
	return natural.Less(a.segment.Title, b.segment.Title)
}

// splitPrefix отделяет ведущий номер от остального названия
func splitPrefix(title string) (float64, string, bool) {
	match := prefixPattern.FindStringSubmatchIndex(title)
	if match == nil {
		return 0, title, false
	}
	number, err := strconv.ParseFloat(title[match[2]:match[3]], 64)
	if err != nil {
		return 0, title, false
	}
	return number, strings.TrimSpace(title[match[1]:]), true
}
