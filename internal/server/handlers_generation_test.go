package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrei/cv-tailor/internal/llm"
	"github.com/andrei/cv-tailor/internal/types"
)

func TestVacancyRoundTrip(t *testing.T) {
	s := newTestServer(t, &stubBoundary{})

	rec := doJSON(t, s, http.MethodPut, "/vacancy", map[string]string{"text": "Ищем разработчика"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/vacancy", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeJSON(t, rec, &body)
	assert.Equal(t, "Ищем разработчика", body["text"])
}

func TestFetchVacancy(t *testing.T) {
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main><p>Описание вакансии из сети</p></main></body></html>`))
	}))
	defer posting.Close()

	s := newTestServer(t, &stubBoundary{})

	rec := doJSON(t, s, http.MethodPost, "/vacancy/fetch", types.VacancyFetchRequest{URL: posting.URL})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeJSON(t, rec, &body)
	assert.Contains(t, body["text"], "Описание вакансии из сети")
	assert.Contains(t, s.state.VacancyText(), "Описание вакансии из сети")
}

func TestFetchVacancy_Refresh(t *testing.T) {
	hits := 0
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`<html><body><main><p>Описание вакансии из сети</p></main></body></html>`))
	}))
	defer posting.Close()

	s := newTestServer(t, &stubBoundary{})

	rec := doJSON(t, s, http.MethodPost, "/vacancy/fetch", types.VacancyFetchRequest{URL: posting.URL})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, s, http.MethodPost, "/vacancy/fetch", types.VacancyFetchRequest{URL: posting.URL})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, hits, "second fetch should come from the cache")

	rec = doJSON(t, s, http.MethodPost, "/vacancy/fetch", types.VacancyFetchRequest{URL: posting.URL, Refresh: true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, hits, "refresh should bypass the cache")
}

func TestFetchVacancy_InvalidURL(t *testing.T) {
	s := newTestServer(t, &stubBoundary{})

	rec := doJSON(t, s, http.MethodPost, "/vacancy/fetch", map[string]string{"url": "not a url"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerate_Success(t *testing.T) {
	boundary := &stubBoundary{output: types.GenerationOutput{Resume: "# Резюме", CoverLetter: "Письмо"}}
	s := newTestServer(t, boundary)

	rec := doJSON(t, s, http.MethodPut, "/vacancy", map[string]string{"text": "вакансия"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/generate", types.GenerateRequest{CoverLetterLength: types.LengthShort})
	require.Equal(t, http.StatusOK, rec.Code)

	var item types.HistoryItem
	decodeJSON(t, rec, &item)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "# Резюме", item.Output.Resume)
	assert.Equal(t, 1, s.history.Len())
}

func TestGenerate_EmptyVacancy(t *testing.T) {
	boundary := &stubBoundary{}
	s := newTestServer(t, boundary)

	rec := doJSON(t, s, http.MethodPost, "/generate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 0, boundary.calls)

	var body map[string]string
	decodeJSON(t, rec, &body)
	assert.Contains(t, body["error"], "вставьте описание вакансии")
}

func TestGenerate_BoundaryFailure(t *testing.T) {
	boundary := &stubBoundary{err: &llm.BoundaryError{Message: "generation request failed", Cause: errors.New("quota")}}
	s := newTestServer(t, boundary)

	rec := doJSON(t, s, http.MethodPut, "/vacancy", map[string]string{"text": "вакансия"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/generate", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, 0, s.history.Len())
}

func TestStatus(t *testing.T) {
	boundary := &stubBoundary{err: &llm.BoundaryError{Message: "generation request failed", Cause: errors.New("quota")}}
	s := newTestServer(t, boundary)

	rec := doJSON(t, s, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decodeJSON(t, rec, &body)
	assert.Equal(t, false, body["loading"])
	assert.Empty(t, body["error"])
	assert.Equal(t, false, body["has_output"])

	rec = doJSON(t, s, http.MethodPut, "/vacancy", map[string]string{"text": "вакансия"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, s, http.MethodPost, "/generate", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &body)
	assert.Equal(t, false, body["loading"])
	assert.Contains(t, body["error"], "Не удалось сгенерировать контент.")
	assert.Equal(t, false, body["has_output"])
}

func TestGenerate_InvalidLength(t *testing.T) {
	s := newTestServer(t, &stubBoundary{})

	rec := doJSON(t, s, http.MethodPost, "/generate", map[string]string{"cover_letter_length": "epic"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOutput(t *testing.T) {
	boundary := &stubBoundary{output: types.GenerationOutput{Resume: "# Резюме", CoverLetter: "Письмо"}}
	s := newTestServer(t, boundary)

	rec := doJSON(t, s, http.MethodGet, "/output", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "no output before first generation")

	doJSON(t, s, http.MethodPut, "/vacancy", map[string]string{"text": "вакансия"})
	rec = doJSON(t, s, http.MethodPost, "/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/output", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var output types.GenerationOutput
	decodeJSON(t, rec, &output)
	assert.Equal(t, "# Резюме", output.Resume)
	assert.Equal(t, "Письмо", output.CoverLetter)
}

func TestGetOutputHTML(t *testing.T) {
	boundary := &stubBoundary{output: types.GenerationOutput{Resume: "# Заголовок\n\n- пункт", CoverLetter: "Текст"}}
	s := newTestServer(t, boundary)

	doJSON(t, s, http.MethodPut, "/vacancy", map[string]string{"text": "вакансия"})
	rec := doJSON(t, s, http.MethodPost, "/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/output/resume/html", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Заголовок</h1>")
	assert.Contains(t, rec.Body.String(), "<li>пункт</li>")

	rec = doJSON(t, s, http.MethodGet, "/output/coverLetter/html", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<p>Текст</p>")
}

func TestGetOutputHTML_UnknownDoc(t *testing.T) {
	s := newTestServer(t, &stubBoundary{})

	rec := doJSON(t, s, http.MethodGet, "/output/invoice/html", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHTML(t *testing.T) {
	boundary := &stubBoundary{output: types.GenerationOutput{Resume: "# Иван", CoverLetter: "Письмо"}}
	s := newTestServer(t, boundary)

	doJSON(t, s, http.MethodPut, "/vacancy", map[string]string{"text": "вакансия"})
	rec := doJSON(t, s, http.MethodPost, "/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/export/resume", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
	assert.Contains(t, rec.Body.String(), "size: A4")
	assert.Contains(t, rec.Body.String(), "<h1>Иван</h1>")
}

func TestSamples(t *testing.T) {
	s := newTestServer(t, &stubBoundary{})

	rec := doJSON(t, s, http.MethodGet, "/samples/profiles", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profileBody struct {
		Count int `json:"count"`
	}
	decodeJSON(t, rec, &profileBody)
	assert.Greater(t, profileBody.Count, 0)

	rec = doJSON(t, s, http.MethodGet, "/samples/vacancies", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var vacancyBody struct {
		Count int `json:"count"`
	}
	decodeJSON(t, rec, &vacancyBody)
	assert.Greater(t, vacancyBody.Count, 0)
}
