package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailValid is the cheap format check applied to every submission before
// any affiliation-specific rule.
func EmailValid(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateDomain enforces an affiliation's required-domain-fragment. An
// affiliation without a fragment accepts any email. The fragment must equal
// a whole label of the domain: "edu" accepts a@dept.edu but not
// a@education.org.
func ValidateDomain(email string, affiliation Affiliation) error {
	fragment := strings.ToLower(strings.TrimSpace(affiliation.DomainFragment))
	if fragment == "" {
		return nil
	}

	lowered := strings.ToLower(email)
	if strings.Count(lowered, "@") != 1 {
		return ValidationError(msgInvalidEmail)
	}

	domain := lowered[strings.Index(lowered, "@")+1:]
	labels := strings.Split(domain, ".")
	if lo.Contains(labels, fragment) {
		return nil
	}

	return ValidationError(fmt.Sprintf(
		"The %s affiliation requires an email address with %q in its domain.",
		affiliation.Key, fragment,
	))
}
