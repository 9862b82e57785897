package provider

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
)

// SpoonacularBaseURL is the production endpoint. Tests point the client at a
// local stub instead.
const SpoonacularBaseURL = "https://api.spoonacular.com"

// ErrNoRecipe is returned when a title search yields no match.
var ErrNoRecipe = errors.New("no recipe found with that title")

// Spoonacular is a thin adapter over the key-based Spoonacular API. The api
// key is appended to every request. Search and random results are passed
// through unreshaped since the client renders them as-is.
type Spoonacular struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewSpoonacular(client *http.Client, baseURL, apiKey string) *Spoonacular {
	return &Spoonacular{client: client, baseURL: baseURL, apiKey: apiKey}
}

func (s *Spoonacular) get(path string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apiKey", s.apiKey)
	return getJSON(s.client, s.baseURL+path+"?"+params.Encode(), out)
}

// Search runs a complexSearch with recipe information and nutrition attached
// and returns the raw results array.
func (s *Spoonacular) Search(query string, number int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("number", strconv.Itoa(number))
	params.Set("addRecipeInformation", "true")
	params.Set("addRecipeNutrition", "true")

	var resp struct {
		Results json.RawMessage `json:"results"`
	}
	if err := s.get("/recipes/complexSearch", params, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return json.RawMessage("[]"), nil
	}
	return resp.Results, nil
}

// Random returns the raw recipes array from the random endpoint.
func (s *Spoonacular) Random(number int, includeNutrition bool) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("number", strconv.Itoa(number))
	params.Set("includeNutrition", strconv.FormatBool(includeNutrition))

	var resp struct {
		Recipes json.RawMessage `json:"recipes"`
	}
	if err := s.get("/recipes/random", params, &resp); err != nil {
		return nil, err
	}
	if resp.Recipes == nil {
		return json.RawMessage("[]"), nil
	}
	return resp.Recipes, nil
}

// Ingredient is one entry of a recipe's ingredient list.
type Ingredient struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// RecipeIngredients is the flattened ingredient listing for a recipe id.
type RecipeIngredients struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Ingredients []Ingredient `json:"ingredients"`
}

type nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type recipeInformation struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	Nutrition *struct {
		Nutrients []nutrient `json:"nutrients"`
	} `json:"nutrition"`
	ExtendedIngredients []struct {
		ID           int64   `json:"id"`
		Name         string  `json:"name"`
		OriginalName string  `json:"originalName"`
		Amount       float64 `json:"amount"`
		Unit         string  `json:"unit"`
	} `json:"extendedIngredients"`
}

// Ingredients fetches a recipe's information and flattens its extended
// ingredients, preferring the original name over the normalized one.
func (s *Spoonacular) Ingredients(id string) (*RecipeIngredients, error) {
	params := url.Values{}
	params.Set("includeNutrition", "false")

	var info recipeInformation
	if err := s.get("/recipes/"+url.PathEscape(id)+"/information", params, &info); err != nil {
		return nil, err
	}

	out := &RecipeIngredients{ID: id, Title: info.Title, Ingredients: []Ingredient{}}
	for _, ing := range info.ExtendedIngredients {
		name := ing.OriginalName
		if name == "" {
			name = ing.Name
		}
		out.Ingredients = append(out.Ingredients, Ingredient{
			ID:     ing.ID,
			Name:   name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}
	return out, nil
}

// Macros are the integer-rounded macronutrients of a recipe.
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// Micros are a small set of integer-rounded micronutrients.
type Micros struct {
	Sodium int `json:"sodium"`
	Sugar  int `json:"sugar"`
	Fiber  int `json:"fiber"`
}

// RecipeMacros is the nutrition summary for the best title match.
type RecipeMacros struct {
	Title  string `json:"title"`
	ID     int64  `json:"id"`
	Image  string `json:"image"`
	Macros Macros `json:"macros"`
	Micros Micros `json:"micros"`
}

// MacrosByTitle searches for the single best match of title and extracts its
// macro and micronutrients from the flat nutrient list. A nutrient missing
// from the list counts as zero. Returns ErrNoRecipe when nothing matches.
func (s *Spoonacular) MacrosByTitle(title string) (*RecipeMacros, error) {
	params := url.Values{}
	params.Set("query", title)
	params.Set("number", "1")
	params.Set("addRecipeInformation", "true")
	params.Set("addRecipeNutrition", "true")

	var resp struct {
		Results []recipeInformation `json:"results"`
	}
	if err := s.get("/recipes/complexSearch", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, ErrNoRecipe
	}

	result := resp.Results[0]
	var nutrients []nutrient
	if result.Nutrition != nil {
		nutrients = result.Nutrition.Nutrients
	}
	amount := func(name string) int {
		for _, n := range nutrients {
			if n.Name == name {
				return int(math.Round(n.Amount))
			}
		}
		return 0
	}

	return &RecipeMacros{
		Title: result.Title,
		ID:    result.ID,
		Image: result.Image,
		Macros: Macros{
			Protein: amount("Protein"),
			Carbs:   amount("Carbohydrates"),
			Fat:     amount("Fat"),
		},
		Micros: Micros{
			Sodium: amount("Sodium"),
			Sugar:  amount("Sugar"),
			Fiber:  amount("Fiber"),
		},
	}, nil
}
