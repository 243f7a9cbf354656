package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Category is the coarse promo tier an affiliation maps to. It drives which
// code/URL pair the resolver picks.
type Category int

const (
	CategoryGeneral Category = iota
	CategoryEdu
	CategoryPartner
)

func (c Category) String() string {
	switch c {
	case CategoryEdu:
		return "edu"
	case CategoryPartner:
		return "partner"
	default:
		return "general"
	}
}

// ParseCategory maps a catalog tag to a Category. Anything unrecognized
// falls into the general tier.
func ParseCategory(tag string) Category {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "edu":
		return CategoryEdu
	case "partner":
		return CategoryPartner
	default:
		return CategoryGeneral
	}
}

type Affiliation struct {
	Key            string
	Message        string
	Category       Category
	DomainFragment string
}

// Directory is the affiliation catalog, built once at startup and read-only
// afterwards.
type Directory map[string]Affiliation

// Catalog shipped with the binary, used when AFFILIATIONS_PATH is not set.
const defaultCatalog = `# key|message|category|domain-fragment
academic|As an academic participant, you're eligible for our special academic discount. Use the promo code above to register at the discounted rate.|edu|
student|Students are the future of bioinformatics! Your promo code includes access to student-specific resources and mentoring opportunities.|edu|edu
industry|We're excited to have industry professionals join our workshop. Your promo code provides access to our comprehensive industry track.|partner|
government|Government participants are welcome! Your promo code includes access to our government-specific resources and networking opportunities.|general|
nonprofit|Non-profit organizations are important to our community. Your promo code includes additional resources for non-profit capacity building.|general|
other|We're glad to have you join our diverse community of learners. Your promo code provides full access to all workshop materials and resources.|general|
`

// ParseDirectory reads the pipe-delimited affiliation catalog. Blank lines
// and '#' comments are ignored; lines with fewer than three fields are
// skipped rather than treated as fatal.
func ParseDirectory(r io.Reader) (Directory, error) {
	directory := make(Directory)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, "|")
		if len(fields) < 3 {
			log.Warn().Int("line", line).Int("fields", len(fields)).Msg("Malformed Affiliation Line Skipped")
			continue
		}

		affiliation := Affiliation{
			Key:      strings.TrimSpace(fields[0]),
			Message:  strings.TrimSpace(fields[1]),
			Category: ParseCategory(fields[2]),
		}
		if len(fields) > 3 {
			affiliation.DomainFragment = strings.TrimSpace(fields[3])
		}

		directory[affiliation.Key] = affiliation
	}

	if err := scanner.Err(); err != nil {
		return directory, errors.Wrap(err, "failed to read affiliation catalog")
	}

	return directory, nil
}

// LoadDirectory builds the directory from the configured catalog file,
// falling back to the built-in catalog when no path is set. A missing or
// unreadable file yields an empty directory, not a crash.
func LoadDirectory(path string) Directory {
	if path == "" {
		directory, _ := ParseDirectory(strings.NewReader(defaultCatalog))
		return directory
	}

	file, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to Open Affiliation Catalog")
		return make(Directory)
	}
	defer file.Close()

	directory, err := ParseDirectory(file)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to Parse Affiliation Catalog")
	}
	return directory
}
