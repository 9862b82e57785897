package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// MealDBBaseURL is the free-tier endpoint, test key "1" baked into the path.
const MealDBBaseURL = "https://www.themealdb.com/api/json/v1/1"

// ErrInvalidFilterType is returned for a filter type other than c, i or s.
var ErrInvalidFilterType = errors.New("invalid filterType")

// MealDB is a keyless adapter over TheMealDB API. Meals arrive as flat JSON
// objects with positional strIngredient1..20 / strMeasure1..20 fields, which
// this adapter flattens into proper lists.
type MealDB struct {
	client  *http.Client
	baseURL string
}

func NewMealDB(client *http.Client, baseURL string) *MealDB {
	return &MealDB{client: client, baseURL: baseURL}
}

func (c *MealDB) get(path string, params url.Values, out interface{}) error {
	uri := c.baseURL + path
	if len(params) > 0 {
		uri += "?" + params.Encode()
	}
	return getJSON(c.client, uri, out)
}

// meal is a raw TheMealDB meal object. Values are strings or null.
type meal map[string]interface{}

func (m meal) str(key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

type mealsResponse struct {
	Meals []meal `json:"meals"`
}

// MealIngredient is one flattened ingredient/measure pair.
type MealIngredient struct {
	Ingredient string `json:"ingredient"`
	Measure    string `json:"measure"`
}

// MealDetail is the reshaped full detail of a meal.
type MealDetail struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Category     string           `json:"category"`
	Area         string           `json:"area"`
	Image        string           `json:"image"`
	Instructions string           `json:"instructions"`
	Tags         []string         `json:"tags"`
	Youtube      string           `json:"youtube"`
	Ingredients  []MealIngredient `json:"ingredients"`
}

// MealCard is the lightweight listing shape used by random and filter results.
type MealCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	Description string `json:"description"`
	SourceUrl   string `json:"sourceUrl"`
}

// Lookup fetches a meal by id. Returns (nil, nil) when the id is unknown.
func (c *MealDB) Lookup(id string) (*MealDetail, error) {
	var resp mealsResponse
	if err := c.get("/lookup.php", url.Values{"i": {id}}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Meals) == 0 || resp.Meals[0] == nil {
		return nil, nil
	}
	return detailFromMeal(resp.Meals[0]), nil
}

// Categories returns the raw categories array.
func (c *MealDB) Categories() (json.RawMessage, error) {
	var resp struct {
		Categories json.RawMessage `json:"categories"`
	}
	if err := c.get("/categories.php", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Categories == nil {
		return json.RawMessage("[]"), nil
	}
	return resp.Categories, nil
}

// Random fetches n random meals. TheMealDB has no native batch endpoint, so n
// single-meal requests are issued in parallel; nil results are filtered and
// duplicate ids collapsed, so fewer than n cards may come back.
func (c *MealDB) Random(n int) ([]MealCard, error) {
	type result struct {
		meal meal
		err  error
	}
	results := make([]result, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var resp mealsResponse
			if err := c.get("/random.php", nil, &resp); err != nil {
				results[i] = result{err: err}
				return
			}
			if len(resp.Meals) > 0 {
				results[i] = result{meal: resp.Meals[0]}
			}
		}(i)
	}
	wg.Wait()

	cards := []MealCard{}
	seen := map[string]bool{}
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		if r.meal == nil {
			continue
		}
		id := r.meal.str("idMeal")
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		cards = append(cards, MealCard{
			ID:          id,
			Title:       r.meal.str("strMeal"),
			Image:       r.meal.str("strMealThumb") + "/preview",
			Description: fmt.Sprintf("Category: %s | Area: %s", r.meal.str("strCategory"), r.meal.str("strArea")),
			SourceUrl:   "/recipes/" + id,
		})
	}
	return cards, nil
}

// Filter searches meals by category (c), ingredient (i) or name (s).
func (c *MealDB) Filter(query, filterType string) ([]MealCard, error) {
	endpoint := "/filter.php"
	params := url.Values{}
	switch filterType {
	case "c":
		params.Set("c", query)
	case "i":
		params.Set("i", query)
	case "s":
		endpoint = "/search.php"
		params.Set("s", query)
	default:
		return nil, ErrInvalidFilterType
	}

	var resp mealsResponse
	if err := c.get(endpoint, params, &resp); err != nil {
		return nil, err
	}

	cards := []MealCard{}
	for _, m := range resp.Meals {
		if m == nil {
			continue
		}
		cards = append(cards, MealCard{
			ID:          m.str("idMeal"),
			Title:       m.str("strMeal"),
			Image:       m.str("strMealThumb") + "/preview",
			Description: "Filtered result. Click to view details.",
			SourceUrl:   "/recipes/" + m.str("idMeal"),
		})
	}
	return cards, nil
}

func detailFromMeal(m meal) *MealDetail {
	detail := &MealDetail{
		ID:           m.str("idMeal"),
		Title:        m.str("strMeal"),
		Category:     m.str("strCategory"),
		Area:         m.str("strArea"),
		Image:        m.str("strMealThumb"),
		Instructions: m.str("strInstructions"),
		Youtube:      m.str("strYoutube"),
		Tags:         []string{},
		Ingredients:  flattenIngredients(m),
	}
	if tags := m.str("strTags"); tags != "" {
		detail.Tags = strings.Split(tags, ",")
	}
	return detail
}

// flattenIngredients walks the positional strIngredient1..20 fields, skipping
// blanks and nulls.
func flattenIngredients(m meal) []MealIngredient {
	out := []MealIngredient{}
	for i := 1; i <= 20; i++ {
		name := m.str(fmt.Sprintf("strIngredient%d", i))
		if name == "" {
			continue
		}
		out = append(out, MealIngredient{
			Ingredient: name,
			Measure:    m.str(fmt.Sprintf("strMeasure%d", i)),
		})
	}
	return out
}
