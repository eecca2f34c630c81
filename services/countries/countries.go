package countries

import (
	"sort"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/search"
)

// DefaultLimit caps Suggest when no limit is given.
const DefaultLimit = 10

type Country struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	DialCode string `json:"dialCode"`
}

// Lookup is the country table used by the location step. It is immutable and safe
// for concurrent use.
type Lookup struct {
	countries []Country
	byCode    map[string]int
	matcher   *search.Matcher
}

// New builds the table from every region with a telephone numbering plan. The home
// region is listed first; the rest are sorted by English display name.
func New(homeRegion string) *Lookup {
	namer := display.English.Regions()
	list := make([]Country, 0, 256)
	for code := range phonenumbers.GetSupportedRegions() {
		region, err := language.ParseRegion(code)
		if err != nil {
			continue
		}
		name := namer.Name(region)
		if name == "" {
			continue
		}
		list = append(list, Country{
			Code:     region.String(),
			Name:     name,
			DialCode: "+" + strconv.Itoa(phonenumbers.GetCountryCodeForRegion(code)),
		})
	}

	col := collate.New(language.English, collate.IgnoreCase, collate.IgnoreDiacritics)
	home := strings.ToUpper(strings.TrimSpace(homeRegion))
	sort.SliceStable(list, func(i, j int) bool {
		if (list[i].Code == home) != (list[j].Code == home) {
			return list[i].Code == home
		}
		return col.CompareString(list[i].Name, list[j].Name) < 0
	})

	l := &Lookup{
		countries: list,
		byCode:    make(map[string]int, len(list)),
		matcher:   search.New(language.English, search.IgnoreCase, search.IgnoreDiacritics),
	}
	for i, c := range list {
		l.byCode[c.Code] = i
	}
	return l
}

// All returns the whole table in display order.
func (l *Lookup) All() []Country {
	out := make([]Country, len(l.countries))
	copy(out, l.countries)
	return out
}

// ByCode finds a country by ISO 3166 alpha-2 code.
func (l *Lookup) ByCode(code string) (Country, bool) {
	i, ok := l.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Country{}, false
	}
	return l.countries[i], true
}

// Suggest matches q against names and codes. Name prefix matches come before
// substring matches; both keep display order. An empty query returns the head of
// the table.
func (l *Lookup) Suggest(q string, limit int) []Country {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return l.head(limit)
	}

	var prefix, inner []Country
	for _, c := range l.countries {
		start, _ := l.matcher.IndexString(c.Name, q)
		switch {
		case start == 0 || strings.EqualFold(c.Code, q):
			prefix = append(prefix, c)
		case start > 0:
			inner = append(inner, c)
		}
	}
	out := append(prefix, inner...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (l *Lookup) head(limit int) []Country {
	if limit > len(l.countries) {
		limit = len(l.countries)
	}
	out := make([]Country, limit)
	copy(out, l.countries[:limit])
	return out
}
