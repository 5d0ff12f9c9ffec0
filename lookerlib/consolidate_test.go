package lookerlib_test

import (
	"testing"

	"github.com/9seconds/iplooker/lookerlib"
	"github.com/stretchr/testify/suite"
)

type ConsolidateTestSuite struct {
	suite.Suite
}

func (suite *ConsolidateTestSuite) TestDisplayLine() {
	suite.Equal("Paris, France",
		lookerlib.Result{Location: "Paris, France"}.DisplayLine())
	suite.Equal("Paris, France (Orange)",
		lookerlib.Result{Location: "Paris, France", ISPOrg: "Orange"}.DisplayLine())
}

func (suite *ConsolidateTestSuite) TestEmpty() {
	suite.Empty(lookerlib.Consolidate(nil))
	suite.Empty(lookerlib.Render(nil))
}

func (suite *ConsolidateTestSuite) TestSortedByCount() {
	results := []lookerlib.Result{
		{Source: "s1", Location: "Berlin, Germany"},
		{Source: "s2", Location: "New York, US", ISPOrg: "Google"},
		{Source: "s3", Location: "New York, US", ISPOrg: "Google"},
		{Source: "s4", Location: "New York, US", ISPOrg: "Google"},
	}

	suite.Equal([]string{
		"3 sources: New York, US (Google)",
		"s1: Berlin, Germany",
	}, lookerlib.Render(results))
}

func (suite *ConsolidateTestSuite) TestTiesKeepFirstSeenOrder() {
	results := []lookerlib.Result{
		{Source: "s1", Location: "A"},
		{Source: "s2", Location: "B"},
		{Source: "s3", Location: "C"},
		{Source: "s4", Location: "B"},
		{Source: "s5", Location: "C"},
	}

	suite.Equal([]string{
		"2 sources: B",
		"2 sources: C",
		"s1: A",
	}, lookerlib.Render(results))
}

func (suite *ConsolidateTestSuite) TestSameLocationDifferentISP() {
	results := []lookerlib.Result{
		{Source: "s1", Location: "Oslo, Norway", ISPOrg: "Telenor"},
		{Source: "s2", Location: "Oslo, Norway"},
	}

	groups := lookerlib.Consolidate(results)

	suite.Len(groups, 2)
	suite.Equal("s1", groups[0].Source)
	suite.Equal("s2", groups[1].Source)
}

func (suite *ConsolidateTestSuite) TestSecurity() {
	results := []lookerlib.Result{
		{Source: "s1", Location: "Amsterdam, Netherlands", Security: "is a VPN service"},
		{Source: "s2", Location: "Amsterdam, Netherlands", Security: "is a proxy IP"},
		{Source: "s3", Location: "Amsterdam, Netherlands", Security: "is a VPN service"},
		{Source: "s4", Location: "Amsterdam, Netherlands"},
		{Source: "s5", Location: "Rotterdam, Netherlands", Security: "is anonymous"},
	}

	groups := lookerlib.Consolidate(results)

	suite.Equal([]lookerlib.DisplayGroup{
		{
			Line:     "Amsterdam, Netherlands",
			Count:    4,
			Security: []string{"is a VPN service", "is a proxy IP"},
		},
		{
			Line:     "Rotterdam, Netherlands",
			Count:    1,
			Source:   "s5",
			Security: []string{"is anonymous"},
		},
	}, groups)

	suite.Equal([]string{
		"4 sources: Amsterdam, Netherlands",
		lookerlib.SecurityIndent + "is a VPN service",
		lookerlib.SecurityIndent + "is a proxy IP",
		"s5: Rotterdam, Netherlands",
		lookerlib.SecurityIndent + "is anonymous",
	}, lookerlib.Render(results))
}

func (suite *ConsolidateTestSuite) TestLabel() {
	suite.Equal("3 sources", lookerlib.DisplayGroup{Line: "X", Count: 3}.Label())
	suite.Equal("dbip", lookerlib.DisplayGroup{Line: "X", Count: 1, Source: "dbip"}.Label())
}

func (suite *ConsolidateTestSuite) TestHeader() {
	suite.Equal("2 sources: X", lookerlib.DisplayGroup{Line: "X", Count: 2}.Header())
	suite.Equal("ipinfo: X", lookerlib.DisplayGroup{Line: "X", Count: 1, Source: "ipinfo"}.Header())
}

func TestConsolidate(t *testing.T) {
	suite.Run(t, &ConsolidateTestSuite{})
}
