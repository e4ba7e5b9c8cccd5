package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturpasiut/poke-sky-api/pkg/apperrors"
	"github.com/arturpasiut/poke-sky-api/pkg/evolution"
	"github.com/arturpasiut/poke-sky-api/pkg/middleware"
	"github.com/arturpasiut/poke-sky-api/pkg/pokeapi"
)

type stubUpstream struct {
	chains  map[int64]*pokeapi.EvolutionChain
	pokemon map[string]*pokeapi.Pokemon
}

func (s *stubUpstream) EvolutionChainByID(ctx context.Context, chainID int64) (*pokeapi.EvolutionChain, error) {
	if chainID <= 0 {
		return nil, apperrors.InvalidInput("chain id must be a positive number")
	}
	chain, ok := s.chains[chainID]
	if !ok {
		return nil, apperrors.UpstreamNotFound("resource not found in PokeAPI")
	}
	return chain, nil
}

func (s *stubUpstream) EvolutionChainByURL(ctx context.Context, url string) (*pokeapi.EvolutionChain, error) {
	id, _ := pokeapi.ExtractID(url)
	return s.EvolutionChainByID(ctx, id)
}

func (s *stubUpstream) Species(ctx context.Context, identifier string) (*pokeapi.PokemonSpecies, error) {
	return nil, apperrors.UpstreamNotFound("resource not found in PokeAPI")
}

func (s *stubUpstream) PokemonDetail(ctx context.Context, identifier string, timeout time.Duration) (*pokeapi.Pokemon, error) {
	if p, ok := s.pokemon[identifier]; ok {
		return p, nil
	}
	return nil, apperrors.UpstreamNotFound("resource not found in PokeAPI")
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func speciesURL(id int64) string {
	return fmt.Sprintf("https://pokeapi.co/api/v2/pokemon-species/%d/", id)
}

func stubChain() *pokeapi.EvolutionChain {
	minLevel := 16
	root := pokeapi.ChainLink{
		Species: pokeapi.NamedResource{Name: "bulbasaur", URL: speciesURL(1)},
		EvolvesTo: []pokeapi.ChainLink{{
			Species: pokeapi.NamedResource{Name: "ivysaur", URL: speciesURL(2)},
			EvolutionDetails: []pokeapi.EvolutionDetail{{
				Trigger:  &pokeapi.NamedResource{Name: "level-up"},
				MinLevel: &minLevel,
			}},
		}},
	}
	return &pokeapi.EvolutionChain{ID: 1, Chain: &root}
}

func evolutionTestServer() *echo.Echo {
	upstream := &stubUpstream{
		chains:  map[int64]*pokeapi.EvolutionChain{1: stubChain()},
		pokemon: map[string]*pokeapi.Pokemon{},
	}
	service := evolution.NewService(upstream, nil, nil, testLogger())

	e := echo.New()
	e.HTTPErrorHandler = middleware.Error(testLogger())
	NewEvolutionHandler(service, nil, testLogger()).Register(e.Group("/api/evolutions"))
	return e
}

func getEvolutions(t *testing.T, e *echo.Echo, query string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/evolutions"+query, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestResolveEndpointHappyPath(t *testing.T) {
	e := evolutionTestServer()

	rec, body := getEvolutions(t, e, "?chain_id=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", body["chainId"])
	stages := body["stages"].([]any)
	assert.Len(t, stages, 2)
}

func TestResolveEndpointRequiresSelector(t *testing.T) {
	e := evolutionTestServer()

	rec, body := getEvolutions(t, e, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", body["code"])
}

func TestResolveEndpointRejectsBadChainID(t *testing.T) {
	e := evolutionTestServer()

	rec, _ := getEvolutions(t, e, "?chain_id=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = getEvolutions(t, e, "?chain_id=-2")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveEndpointRejectsBadBranching(t *testing.T) {
	e := evolutionTestServer()

	rec, _ := getEvolutions(t, e, "?chain_id=1&branching=zigzag")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveEndpointRejectsBadGeneration(t *testing.T) {
	e := evolutionTestServer()

	rec, _ := getEvolutions(t, e, "?chain_id=1&generation=12")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = getEvolutions(t, e, "?chain_id=1&generation=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveEndpointUnknownChainIs404(t *testing.T) {
	e := evolutionTestServer()

	rec, body := getEvolutions(t, e, "?chain_id=999")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "POKEAPI_NOT_FOUND", body["code"])
}

func TestResolveEndpointFilterMismatchIs404(t *testing.T) {
	e := evolutionTestServer()

	rec, body := getEvolutions(t, e, "?chain_id=1&branching=branching")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "INVALID_INPUT", body["code"])
}

func TestParseChainRequestFilters(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?type=water&generation=1&branching=linear&identifier=eevee", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	parsed, err := parseChainRequest(c)
	require.NoError(t, err)

	assert.Equal(t, "eevee", parsed.Identifier)
	assert.Equal(t, "water", parsed.Type)
	require.NotNil(t, parsed.Generation)
	assert.Equal(t, 1, *parsed.Generation)
	assert.Equal(t, "linear", parsed.Branching)
	assert.Nil(t, parsed.ChainID)
}
