package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/internal/store"
)

type stubValidator struct {
	verdict *model.PackageVerdict
	err     error
	gotIn   model.PackageInput
}

func (s *stubValidator) Run(_ context.Context, input model.PackageInput) (*model.PackageVerdict, error) {
	s.gotIn = input
	if s.err != nil {
		return nil, s.err
	}
	return s.verdict, nil
}

type stubStore struct {
	store.Store
	pkg     *store.StoredPackage
	getErr  error
	list    []store.StoredPackage
	listErr error
	filter  store.PackageFilter
}

func (s *stubStore) GetPackage(_ context.Context, _ string) (*store.StoredPackage, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.pkg, nil
}

func (s *stubStore) ListPackages(_ context.Context, filter store.PackageFilter) ([]store.StoredPackage, error) {
	s.filter = filter
	return s.list, s.listErr
}

func TestServeHealth(t *testing.T) {
	r := newRouter(&stubValidator{}, &stubStore{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestServeValidate(t *testing.T) {
	v := &stubValidator{verdict: &model.PackageVerdict{
		PackageID:      "pkg-1",
		OverallVerdict: model.VerdictGo,
		PaymentMode:    model.PaymentModeLC,
	}}
	r := newRouter(v, &stubStore{})

	body, _ := json.Marshal(model.PackageInput{
		ClientIdentifier: "acme-trading",
		Documents: []model.InputDocument{
			{Type: model.DocLetterOfCredit, Text: "..."},
		},
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/validate", bytes.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.PackageVerdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "pkg-1", got.PackageID)
	assert.Equal(t, model.VerdictGo, got.OverallVerdict)
	// Channel defaults to api when the caller leaves it blank.
	assert.Equal(t, model.ChannelAPI, v.gotIn.Channel)
}

func TestServeValidate_BadBody(t *testing.T) {
	r := newRouter(&stubValidator{}, &stubStore{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/validate", bytes.NewReader([]byte("not json"))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeValidate_PipelineRejection(t *testing.T) {
	r := newRouter(&stubValidator{err: eris.New("package contains no documents")}, &stubStore{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/validate", bytes.NewReader([]byte(`{}`))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no documents")
}

func TestServeGetPackage(t *testing.T) {
	st := &stubStore{pkg: &store.StoredPackage{
		Verdict: model.PackageVerdict{PackageID: "pkg-1", OverallVerdict: model.VerdictWait},
	}}
	r := newRouter(&stubValidator{}, st)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/packages/pkg-1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"package_id":"pkg-1"`)
}

func TestServeGetPackage_NotFound(t *testing.T) {
	r := newRouter(&stubValidator{}, &stubStore{getErr: store.ErrNotFound})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/packages/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeListPackages_FilterParsing(t *testing.T) {
	st := &stubStore{list: []store.StoredPackage{
		{Verdict: model.PackageVerdict{PackageID: "pkg-1"}},
	}}
	r := newRouter(&stubValidator{}, st)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/packages?client=acme-trading&verdict=WAIT&limit=10&offset=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acme-trading", st.filter.ClientIdentifier)
	assert.Equal(t, model.VerdictWait, st.filter.Verdict)
	assert.Equal(t, 10, st.filter.Limit)
	assert.Equal(t, 5, st.filter.Offset)
	assert.Contains(t, rec.Body.String(), `"count":1`)
}
