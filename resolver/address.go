package resolver

import (
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/spkg/bom"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"karlsruhe.dev/transit/model"
)

type addressCSV struct {
	FullAddress string  `csv:"full_address"`
	Lat         float64 `csv:"lat"`
	Lon         float64 `csv:"lon"`
}

// Addresses is the in-memory address lookup table loaded from a
// full_address,lat,lon CSV.
type Addresses struct {
	rows []model.Address
}

// LoadAddresses reads the address CSV at path.
func LoadAddresses(path string) (*Addresses, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening address csv")
	}
	defer f.Close()

	return parseAddresses(bom.NewReader(f))
}

func parseAddresses(r io.Reader) (*Addresses, error) {
	var raw []addressCSV
	if err := gocsv.Unmarshal(r, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing addresses")
	}

	rows := make([]model.Address, 0, len(raw))
	for _, row := range raw {
		rows = append(rows, model.Address{
			FullAddress: row.FullAddress,
			Lat:         row.Lat,
			Lon:         row.Lon,
		})
	}

	return &Addresses{rows: rows}, nil
}

// German street names are compound words ("Kaiserstraße"), so the
// "strasse"/"str" suffix never sits at a \b-recognized word start —
// only anchor the trailing boundary, never the leading one.
var (
	strasseSuffix = regexp.MustCompile(`strasse\b`)
	strAbbrev     = regexp.MustCompile(`str\.`)
	strSuffix     = regexp.MustCompile(`str\b`)
)

// Normalize decomposes s to NFKD and drops combining marks, so accented
// characters fold the way unicodedata.normalize('NFKD',
// s).encode('ASCII', 'ignore') does. NFKD does not decompose "ß" (it
// isn't a base+mark pair), so that fold is done explicitly. The result
// is lowercased, "strasse"/"straße"/"str."/"str" are canonicalized to
// "str", and whitespace is stripped so differently-formatted street
// names match.
func Normalize(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}

	ascii = strings.ToLower(strings.TrimSpace(ascii))
	ascii = strings.ReplaceAll(ascii, "ß", "ss")
	ascii = strasseSuffix.ReplaceAllString(ascii, "str")
	ascii = strAbbrev.ReplaceAllString(ascii, "str")
	ascii = strSuffix.ReplaceAllString(ascii, "str")
	ascii = strings.ReplaceAll(ascii, " ", "")

	return ascii
}

// streetPart returns the portion of a full address before its first
// comma, e.g. "Kaiserstraße 1, 76131 Karlsruhe" -> "Kaiserstraße 1".
func streetPart(fullAddress string) string {
	if idx := strings.Index(fullAddress, ","); idx >= 0 {
		return fullAddress[:idx]
	}
	return fullAddress
}

// FindAddress returns every address whose normalized street portion
// contains the normalized street portion of query.
func (a *Addresses) FindAddress(query string) []model.Address {
	needle := Normalize(streetPart(query))
	if needle == "" {
		return nil
	}

	var matches []model.Address
	for _, addr := range a.rows {
		if strings.Contains(Normalize(streetPart(addr.FullAddress)), needle) {
			matches = append(matches, addr)
		}
	}

	return matches
}
