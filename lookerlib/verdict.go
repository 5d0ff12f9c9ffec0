package lookerlib

import (
	"github.com/antzucaro/matchr"
	"github.com/pariz/gountries"
)

// ComputeVerdict picks a country most sources agree on and then a city
// most of those sources agree on. Cities are compared phonetically so
// "Frankfurt am Main" and "Frankfurt Am Main" count as the same.
func ComputeVerdict(records []Record) Verdict {
	unknownCountry := MissingValue(FieldCountry)
	unknownCity := MissingValue(FieldCity)

	countries := map[string][]*Record{}
	countryOrder := []string{}

	for i := range records {
		country := StandardizeCountry(records[i].Country)
		if country == "" || country == unknownCountry {
			continue
		}

		if _, ok := countries[country]; !ok {
			countryOrder = append(countryOrder, country)
		}

		countries[country] = append(countries[country], &records[i])
	}

	rv := Verdict{}
	selectedCountry := ""
	maxLen := 0

	for _, country := range countryOrder {
		if len(countries[country]) > maxLen {
			selectedCountry = country
			maxLen = len(countries[country])
		}
	}

	if selectedCountry == "" {
		return rv
	}

	rv.Country.CommonName = selectedCountry

	if details, err := findCountry(selectedCountry); err == nil {
		rv.Country.Alpha2Code = details.Alpha2
		rv.Country.CommonName = details.Name.Common
		rv.Country.OfficialName = details.Name.Official
	}

	counters := map[string]int{}
	names := map[string]string{}
	order := []string{}

	for _, rec := range countries[selectedCountry] {
		_, city := StandardizeRegionAndCity(rec.Region, rec.City)
		if city == "" || city == unknownCity {
			continue
		}

		normalizedCityName, _ := matchr.DoubleMetaphone(city)

		if _, ok := names[normalizedCityName]; !ok {
			names[normalizedCityName] = city
			order = append(order, normalizedCityName)
		}

		counters[normalizedCityName]++
	}

	maxLen = 0

	for _, key := range order {
		if counters[key] > maxLen {
			rv.City = names[key]
			maxLen = counters[key]
		}
	}

	return rv
}

func findCountry(name string) (gountries.Country, error) {
	if len(name) == 2 {
		return countryQuery.FindCountryByAlpha(name)
	}

	return countryQuery.FindCountryByName(name)
}
