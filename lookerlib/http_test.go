package lookerlib_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/9seconds/iplooker/lookerlib"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HTTPHandlerTestSuite struct {
	suite.Suite

	l           *lookerlib.Looker
	handler     http.Handler
	querierMock *QuerierMock
}

func (suite *HTTPHandlerTestSuite) SetupTest() {
	suite.querierMock = &QuerierMock{}
	suite.l, _ = lookerlib.NewLooker(suite.querierMock,
		[]lookerlib.Source{testSource("s0"), testSource("s1")}, nil, 4)
	suite.handler = lookerlib.NewHTTPHandler(suite.l)
}

func (suite *HTTPHandlerTestSuite) TearDownTest() {
	suite.l.Shutdown()
	suite.querierMock.AssertExpectations(suite.T())
}

func (suite *HTTPHandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()

	suite.handler.ServeHTTP(rec, req)

	return rec
}

func (suite *HTTPHandlerTestSuite) TestGetIP() {
	suite.querierMock.On("Query", mock.Anything, "9.9.9.9", mock.Anything).
		Return(testPayload("CH", "Zurich", "Zurich", "Quad9", "Quad9"), nil)

	rec := suite.serve(httptest.NewRequest(http.MethodGet, "/9.9.9.9", nil))

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("application/json", rec.Header().Get("Content-Type"))

	response := struct {
		Result lookerlib.Report `json:"result"`
		Lines  []string         `json:"lines"`
	}{}

	suite.NoError(json.NewDecoder(rec.Body).Decode(&response))
	suite.Equal("9.9.9.9", response.Result.IP)
	suite.Len(response.Result.Results, 2)
	suite.Equal([]string{"2 sources: Zurich, Zurich, Switzerland (Quad9)"}, response.Lines)
	suite.Equal("CH", response.Result.Verdict.Country.Alpha2Code)
}

func (suite *HTTPHandlerTestSuite) TestGetSelf() {
	suite.querierMock.On("Query", mock.Anything, "203.0.113.7", "s1").
		Return(testPayload("JP", "", "Tokyo", "", ""), nil)

	req := httptest.NewRequest(http.MethodGet, "/?source=s1", nil)
	req.RemoteAddr = "203.0.113.7:54321"

	rec := suite.serve(req)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "s1: Tokyo, Japan")
}

func (suite *HTTPHandlerTestSuite) TestNoData() {
	suite.querierMock.On("Query", mock.Anything, "9.9.9.9", mock.Anything).Return(nil, nil)

	rec := suite.serve(httptest.NewRequest(http.MethodGet, "/9.9.9.9", nil))

	suite.Equal(http.StatusServiceUnavailable, rec.Code)
	suite.Contains(rec.Body.String(), "No sources returned results")
}

func (suite *HTTPHandlerTestSuite) TestUnknownSource() {
	rec := suite.serve(httptest.NewRequest(http.MethodGet, "/9.9.9.9?source=nope", nil))

	suite.Equal(http.StatusBadRequest, rec.Code)

	response := struct {
		Error struct {
			Message string `json:"message"`
			Context string `json:"context"`
		} `json:"error"`
	}{}

	suite.NoError(json.NewDecoder(rec.Body).Decode(&response))
	suite.Equal("Incorrect source", response.Error.Message)
	suite.Contains(response.Error.Context, "nope")
}

func (suite *HTTPHandlerTestSuite) TestSources() {
	rec := suite.serve(httptest.NewRequest(http.MethodGet, "/sources", nil))

	suite.Equal(http.StatusOK, rec.Code)

	response := struct {
		Results []lookerlib.Source `json:"results"`
	}{}

	suite.NoError(json.NewDecoder(rec.Body).Decode(&response))
	suite.Len(response.Results, 2)
	suite.Equal("s0", response.Results[0].Name)
}

func (suite *HTTPHandlerTestSuite) TestStats() {
	rec := suite.serve(httptest.NewRequest(http.MethodGet, "/stats", nil))

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"name":"s1"`)
	suite.Contains(rec.Body.String(), `"success_count":0`)
}

func (suite *HTTPHandlerTestSuite) TestMethodNotAllowed() {
	rec := suite.serve(httptest.NewRequest(http.MethodPost, "/9.9.9.9", nil))

	suite.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func TestHTTPHandler(t *testing.T) {
	suite.Run(t, &HTTPHandlerTestSuite{})
}
