package provider

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

const stubMeal = `{
	"idMeal": "52772",
	"strMeal": "Teriyaki Chicken Casserole",
	"strCategory": "Chicken",
	"strArea": "Japanese",
	"strMealThumb": "https://example.com/teriyaki.jpg",
	"strInstructions": "Preheat oven.",
	"strTags": "Meat,Casserole",
	"strYoutube": "https://youtube.com/watch",
	"strIngredient1": "soy sauce",
	"strMeasure1": "3/4 cup",
	"strIngredient2": " water ",
	"strMeasure2": "1/2 cup",
	"strIngredient3": "",
	"strMeasure3": "",
	"strIngredient4": null,
	"strMeasure4": null
}`

func newMealDBStub(t *testing.T, handler http.HandlerFunc) *MealDB {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewMealDB(ts.Client(), ts.URL)
}

func TestMealDBLookupFlattensIngredients(t *testing.T) {
	client := newMealDBStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/lookup.php", r.URL.Path)
		require.Equal(t, "52772", r.URL.Query().Get("i"))
		w.Write([]byte(`{"meals":[` + stubMeal + `]}`))
	})

	detail, err := client.Lookup("52772")
	require.NoError(t, err)
	require.Equal(t, "52772", detail.ID)
	require.Equal(t, "Teriyaki Chicken Casserole", detail.Title)
	require.Equal(t, []string{"Meat", "Casserole"}, detail.Tags)
	require.Equal(t, []MealIngredient{
		{Ingredient: "soy sauce", Measure: "3/4 cup"},
		{Ingredient: "water", Measure: "1/2 cup"},
	}, detail.Ingredients)
}

func TestMealDBLookupUnknownIdReturnsNil(t *testing.T) {
	client := newMealDBStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals":null}`))
	})

	detail, err := client.Lookup("0")
	require.NoError(t, err)
	require.Nil(t, detail)
}

func TestMealDBRandomFiltersAndDeduplicates(t *testing.T) {
	var calls int64
	client := newMealDBStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/random.php", r.URL.Path)
		atomic.AddInt64(&calls, 1)
		// Every request returns the same meal, so the batch must collapse.
		w.Write([]byte(`{"meals":[` + stubMeal + `]}`))
	})

	cards, err := client.Random(6)
	require.NoError(t, err)
	require.EqualValues(t, 6, atomic.LoadInt64(&calls))
	require.Len(t, cards, 1)
	require.Equal(t, "52772", cards[0].ID)
	require.Equal(t, "https://example.com/teriyaki.jpg/preview", cards[0].Image)
	require.Equal(t, "Category: Chicken | Area: Japanese", cards[0].Description)
	require.Equal(t, "/recipes/52772", cards[0].SourceUrl)
}

func TestMealDBFilterEndpointSelection(t *testing.T) {
	tests := []struct {
		filterType string
		wantPath   string
		wantParam  string
	}{
		{filterType: "c", wantPath: "/filter.php", wantParam: "c"},
		{filterType: "i", wantPath: "/filter.php", wantParam: "i"},
		{filterType: "s", wantPath: "/search.php", wantParam: "s"},
	}
	for _, tt := range tests {
		t.Run(tt.filterType, func(t *testing.T) {
			client := newMealDBStub(t, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, tt.wantPath, r.URL.Path)
				require.Equal(t, "Seafood", r.URL.Query().Get(tt.wantParam))
				w.Write([]byte(`{"meals":[` + stubMeal + `]}`))
			})

			cards, err := client.Filter("Seafood", tt.filterType)
			require.NoError(t, err)
			require.Len(t, cards, 1)
			require.Equal(t, "Filtered result. Click to view details.", cards[0].Description)
		})
	}
}

func TestMealDBFilterRejectsUnknownType(t *testing.T) {
	client := NewMealDB(http.DefaultClient, "http://unused")

	_, err := client.Filter("Seafood", "x")
	require.ErrorIs(t, err, ErrInvalidFilterType)
}

func TestMealDBFilterNullMealsIsEmpty(t *testing.T) {
	client := newMealDBStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals":null}`))
	})

	cards, err := client.Filter("Nowhere", "c")
	require.NoError(t, err)
	require.Empty(t, cards)
}
