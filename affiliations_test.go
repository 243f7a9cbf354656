package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirectory(t *testing.T) {
	catalog := `# comment line

academic|Welcome, academics.|edu|
student|Hello students.|edu|edu
industry|Industry track.|partner|
broken line with no pipes
too|few
other|Everyone else.|unknown-tag|
`

	directory, err := ParseDirectory(strings.NewReader(catalog))
	require.NoError(t, err)

	require.Len(t, directory, 4)

	academic := directory["academic"]
	assert.Equal(t, "Welcome, academics.", academic.Message)
	assert.Equal(t, CategoryEdu, academic.Category)
	assert.Equal(t, "", academic.DomainFragment)

	student := directory["student"]
	assert.Equal(t, CategoryEdu, student.Category)
	assert.Equal(t, "edu", student.DomainFragment)

	assert.Equal(t, CategoryPartner, directory["industry"].Category)

	// Unrecognized category tags land in the general tier
	assert.Equal(t, CategoryGeneral, directory["other"].Category)
}

func TestParseDirectoryTrimsFields(t *testing.T) {
	directory, err := ParseDirectory(strings.NewReader("  gov  |  Message here.  | general |  gov.uk  \n"))
	require.NoError(t, err)

	affiliation, found := directory["gov"]
	require.True(t, found)
	assert.Equal(t, "Message here.", affiliation.Message)
	assert.Equal(t, "gov.uk", affiliation.DomainFragment)
}

func TestDefaultCatalog(t *testing.T) {
	directory, err := ParseDirectory(strings.NewReader(defaultCatalog))
	require.NoError(t, err)
	require.Len(t, directory, 6)

	// academic: edu tier, no domain restriction
	academic := directory["academic"]
	assert.Equal(t, CategoryEdu, academic.Category)
	assert.Empty(t, academic.DomainFragment)

	// student: edu tier restricted to edu domains
	assert.Equal(t, "edu", directory["student"].DomainFragment)
}

func TestLoadDirectoryMissingFile(t *testing.T) {
	directory := LoadDirectory("/nonexistent/affiliations.txt")
	assert.Empty(t, directory)
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryEdu, ParseCategory("edu"))
	assert.Equal(t, CategoryEdu, ParseCategory(" EDU "))
	assert.Equal(t, CategoryPartner, ParseCategory("partner"))
	assert.Equal(t, CategoryGeneral, ParseCategory("default"))
	assert.Equal(t, CategoryGeneral, ParseCategory(""))
}
