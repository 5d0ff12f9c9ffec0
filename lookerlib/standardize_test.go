package lookerlib_test

import (
	"testing"

	"github.com/9seconds/iplooker/lookerlib"
	"github.com/stretchr/testify/suite"
)

type StandardizeTestSuite struct {
	suite.Suite
}

func (suite *StandardizeTestSuite) TestCountryUSA() {
	suite.Equal("US", lookerlib.StandardizeCountry("US"))
	suite.Equal("US", lookerlib.StandardizeCountry("us"))
	suite.Equal("US", lookerlib.StandardizeCountry("usa"))
	suite.Equal("US", lookerlib.StandardizeCountry("United States"))
	suite.Equal("US", lookerlib.StandardizeCountry("United States of America"))
}

func (suite *StandardizeTestSuite) TestCountryCode() {
	suite.Equal("United Kingdom", lookerlib.StandardizeCountry("GB"))
	suite.Equal("Germany", lookerlib.StandardizeCountry("de"))
}

func (suite *StandardizeTestSuite) TestCountryUnknownCode() {
	suite.Equal("Zz", lookerlib.StandardizeCountry("Zz"))
	suite.Equal("UK", lookerlib.StandardizeCountry("UK"))
}

func (suite *StandardizeTestSuite) TestCountryAsIs() {
	suite.Equal("Random", lookerlib.StandardizeCountry("Random"))
	suite.Equal("Germany", lookerlib.StandardizeCountry("Germany"))
	suite.Equal("", lookerlib.StandardizeCountry(""))
	suite.Equal("Unknown Country", lookerlib.StandardizeCountry("Unknown Country"))
}

func (suite *StandardizeTestSuite) TestCountryIdempotent() {
	for _, v := range []string{"US", "usa", "GB", "Zz", "Random"} {
		once := lookerlib.StandardizeCountry(v)

		suite.Equal(once, lookerlib.StandardizeCountry(once), v)
	}
}

func (suite *StandardizeTestSuite) TestRegionAndCity() {
	region, city := lookerlib.StandardizeRegionAndCity("District of Columbia", "Washington D.C.")

	suite.Equal("DC", region)
	suite.Equal("Washington", city)
}

func (suite *StandardizeTestSuite) TestRegionAndCityNewYork() {
	region, city := lookerlib.StandardizeRegionAndCity("New York", "NYC")

	suite.Equal("New York", region)
	suite.Equal("New York", city)
}

func (suite *StandardizeTestSuite) TestRegionAndCityIndependent() {
	region, city := lookerlib.StandardizeRegionAndCity("d.c.", "Springfield")

	suite.Equal("DC", region)
	suite.Equal("Springfield", city)

	region, city = lookerlib.StandardizeRegionAndCity("Virginia", "washington, dc")

	suite.Equal("Virginia", region)
	suite.Equal("Washington", city)
}

func (suite *StandardizeTestSuite) TestRegionAndCityIdempotent() {
	region, city := lookerlib.StandardizeRegionAndCity("DC", "Washington")

	suite.Equal("DC", region)
	suite.Equal("Washington", city)
}

func (suite *StandardizeTestSuite) TestISPAndOrg() {
	value, ok := lookerlib.StandardizeISPAndOrg("Comcast", "Comcast")

	suite.True(ok)
	suite.Equal("Comcast", value)

	value, ok = lookerlib.StandardizeISPAndOrg("comcast business", "Comcast")

	suite.True(ok)
	suite.Equal("Comcast / Comcast", value)

	value, ok = lookerlib.StandardizeISPAndOrg("", "Some Org")

	suite.True(ok)
	suite.Equal("Some Org", value)

	_, ok = lookerlib.StandardizeISPAndOrg("Unknown ISP", "")

	suite.False(ok)
}

func (suite *StandardizeTestSuite) TestISPAndOrgCaseInsensitiveEquality() {
	value, ok := lookerlib.StandardizeISPAndOrg("Google LLC", "google llc")

	suite.True(ok)
	suite.Equal("Google LLC", value)
}

func (suite *StandardizeTestSuite) TestISPAndOrgDifferent() {
	value, ok := lookerlib.StandardizeISPAndOrg("Google LLC", "Google")

	suite.True(ok)
	suite.Equal("Google LLC / Google", value)
}

func (suite *StandardizeTestSuite) TestISPAndOrgOnlyISP() {
	value, ok := lookerlib.StandardizeISPAndOrg("Comcast Cable", "Unknown Org")

	suite.True(ok)
	suite.Equal("Comcast", value)
}

func TestStandardize(t *testing.T) {
	suite.Run(t, &StandardizeTestSuite{})
}
