package lookerlib_test

import (
	"fmt"

	"github.com/9seconds/iplooker/lookerlib"
)

func ExampleStandardizeCountry() {
	fmt.Println(lookerlib.StandardizeCountry("GB"))
	fmt.Println(lookerlib.StandardizeCountry("usa"))
	// output:
	// United Kingdom
	// US
}

func ExampleStandardizeRegionAndCity() {
	fmt.Println(lookerlib.StandardizeRegionAndCity("District of Columbia", "Washington D.C."))
	// output: DC Washington
}

func ExampleStandardizeISPAndOrg() {
	fmt.Println(lookerlib.StandardizeISPAndOrg("comcast business", "Comcast"))
	// output: Comcast / Comcast true
}
