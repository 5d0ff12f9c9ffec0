package lookerlib_test

import (
	"context"

	"github.com/9seconds/iplooker/lookerlib"
	"github.com/stretchr/testify/mock"
)

type QuerierMock struct {
	mock.Mock
}

func (m *QuerierMock) Query(ctx context.Context, ip string, source lookerlib.Source) (lookerlib.Payload, error) {
	args := m.Called(ctx, ip, source.Name)

	payload, _ := args.Get(0).(lookerlib.Payload)

	return payload, args.Error(1)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) QueryRetry(source string, attempt, maxAttempts int, err error) {
	m.Called(source, attempt, maxAttempts, err)
}

func (m *LoggerMock) QueryError(source string, err error) {
	m.Called(source, err)
}

func (m *LoggerMock) LookupError(ip, source string, err error) {
	m.Called(ip, source, err)
}

func testSource(name string) lookerlib.Source {
	return lookerlib.Source{
		Name:     name,
		DataPath: []string{"res"},
		Fields: []lookerlib.FieldSpec{
			{Name: lookerlib.FieldCountry, Key: "country"},
			{Name: lookerlib.FieldRegion, Key: "region"},
			{Name: lookerlib.FieldCity, Key: "city"},
			{Name: lookerlib.FieldISP, Key: "isp"},
			{Name: lookerlib.FieldOrg, Key: "org"},
		},
	}
}

func testPayload(country, region, city, isp, org string) lookerlib.Payload {
	return lookerlib.Payload{
		"res": map[string]interface{}{
			"country": country,
			"region":  region,
			"city":    city,
			"isp":     isp,
			"org":     org,
		},
	}
}
