package hh

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func getVacancyMock() (*http.Response, error) {
	file, err := os.ReadFile("testdata/get_vacancy.json")

	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}, err
}

func getVacanciesMock() (*http.Response, error) {
	file, err := os.ReadFile("testdata/get_vacancies.json")

	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}, err
}

func Test_HHClient_GetVacancies_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)

	moscow := time.FixedZone("MSK", 3*60*60)
	dateFrom := time.Date(2024, 4, 3, 0, 0, 0, 0, moscow)
	dateTo := time.Date(2024, 5, 3, 0, 0, 0, 0, moscow)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		query := req.URL.Query()
		return req.URL.Path == "/vacancies" &&
			query.Get("area") == "1" &&
			query.Get("date_from") == "2024-04-03T00:00:00+0300" &&
			query.Get("date_to") == "2024-05-03T00:00:00+0300" &&
			query.Get("page") == "0" &&
			query.Get("per_page") == "30"
	})).Return(getVacanciesMock())

	client := NewClient()
	client.SetHTTPClient(mockClient)

	params := SearchParameters{
		AreaID:   "1",
		DateFrom: dateFrom,
		DateTo:   dateTo,
		PerPage:  30,
	}
	vacancies, err := client.GetVacancies(params)
	assert.NoError(err)

	assert.True(len(vacancies) == 2)
	assert.Equal(vacancies[0].ID, "94581234")
	assert.Equal(vacancies[0].Name, "Backend-разработчик (Python)")
	assert.Equal(vacancies[0].PublishedAt.Format("2006-01-02"), "2024-05-03")

	if assert.NotNil(vacancies[0].Employer) {
		assert.Equal(vacancies[0].Employer.ID, "1455")
		assert.Equal(vacancies[0].Employer.Name, "ХэдХантер")
	}
	if assert.NotNil(vacancies[0].Address) {
		assert.Equal(vacancies[0].Address.ID, "7")
		assert.Equal(vacancies[0].Address.City, "Москва")
	}
	if assert.NotNil(vacancies[0].Salary) {
		if assert.NotNil(vacancies[0].Salary.From) {
			assert.Equal(*vacancies[0].Salary.From, 100000)
		}
		assert.Nil(vacancies[0].Salary.To)
	}
	if assert.NotEmpty(vacancies[0].ProfessionalRoles) {
		assert.Equal(vacancies[0].ProfessionalRoles[0].Name, "Backend Developer")
	}
	if assert.NotNil(vacancies[0].Experience) {
		assert.Equal(vacancies[0].Experience.Name, "От 1 года до 3 лет")
	}

	assert.Equal(vacancies[1].ID, "94587777")
	assert.Nil(vacancies[1].Employer)
	assert.Nil(vacancies[1].Address)
	assert.Nil(vacancies[1].Salary)
	assert.Empty(vacancies[1].ProfessionalRoles)
	assert.Nil(vacancies[1].Experience)
}

func Test_HHClient_GetVacancy_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)
	vacancyID := "94581234"

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "https://api.hh.ru/vacancies/"+vacancyID
	})).Return(getVacancyMock())

	client := NewClient()
	client.SetHTTPClient(mockClient)

	vacancy, err := client.GetVacancy(vacancyID)
	assert.NoError(err)
	assert.Equal(vacancy.ID, vacancyID)
	assert.Len(vacancy.KeySkills, 2)
	assert.Equal(vacancy.KeySkills[0].Name, "Python")
	assert.Equal(vacancy.KeySkills[1].Name, "SQL")
}

func Test_HHClient_GetVacancies_FailsOnBadStatus(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: 403,
		Body:       io.NopCloser(bytes.NewBufferString(`{"errors":[{"type":"captcha_required"}]}`)),
	}, nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	_, err := client.GetVacancies(SearchParameters{
		DateFrom: time.Now().AddDate(0, 0, -30),
		DateTo:   time.Now(),
		PerPage:  30,
	})
	assert.Error(t, err)
}

func Test_SearchParameters_Validate(t *testing.T) {

	valid := SearchParameters{
		DateFrom: time.Now().AddDate(0, 0, -30),
		DateTo:   time.Now(),
		PerPage:  30,
	}
	assert.NoError(t, valid.Validate())

	noDates := SearchParameters{PerPage: 30}
	assert.Error(t, noDates.Validate())

	reversed := valid
	reversed.DateFrom, reversed.DateTo = reversed.DateTo, reversed.DateFrom.AddDate(0, 0, -60)
	assert.Error(t, reversed.Validate())

	badPageSize := valid
	badPageSize.PerPage = 101
	assert.Error(t, badPageSize.Validate())

	tooDeep := valid
	tooDeep.Page = 1000
	assert.ErrorIs(t, tooDeep.Validate(), ErrTooDeepPagination)
}
