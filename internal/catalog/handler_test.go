package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cat, err := New([]Company{tokyo, osaka}, sampleOffers())
	require.NoError(t, err)

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(cat))
	return r
}

func Test_ListOffers_Filters_By_Query(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/offers?type=material&category=steel&minQuantity=100", nil))

	req.Equal(http.StatusOK, rec.Code)
	var offers []Offer
	req.NoError(json.NewDecoder(rec.Body).Decode(&offers))
	req.Equal([]string{"m3"}, ids(offers))
	req.NotNil(offers[0].Material)
	req.Nil(offers[0].Transport)
}

func Test_ListOffers_Defaults_To_Transport(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/offers", nil))

	req.Equal(http.StatusOK, rec.Code)
	var offers []Offer
	req.NoError(json.NewDecoder(rec.Body).Decode(&offers))
	req.Equal([]string{"t1", "t2", "t3"}, ids(offers))
}

func Test_ListOffers_Rejects_Invalid_Criteria(t *testing.T) {
	router := newTestRouter(t)
	for _, target := range []string{
		"/offers?type=scrap",
		"/offers?minCapacity=abc",
		"/offers?minQuantity=-3",
		"/offers?availableFrom=01-02-2025",
		"/offers?type=material&category=gold",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func Test_GetOffer(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/offers/t2", nil))
	req.Equal(http.StatusOK, rec.Code)

	var offer Offer
	req.NoError(json.NewDecoder(rec.Body).Decode(&offer))
	req.Equal(OfferTransport, offer.Type)
	req.Equal(tokyo.ID, offer.Company.ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/offers/nope", nil))
	req.Equal(http.StatusNotFound, rec.Code)
}
