package pokeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturpasiut/poke-sky-api/pkg/apperrors"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func testClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL}, testLogger())
}

func TestEvolutionChainByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/evolution-chain/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 1,
			"chain": {
				"species": {"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon-species/1/"},
				"evolves_to": [{
					"species": {"name": "ivysaur", "url": "https://pokeapi.co/api/v2/pokemon-species/2/"},
					"evolution_details": [{"trigger": {"name": "level-up"}, "min_level": 16}],
					"evolves_to": []
				}]
			}
		}`))
	}))
	defer server.Close()

	chain, err := testClient(server.URL).EvolutionChainByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), chain.ID)
	require.NotNil(t, chain.Chain)
	assert.Equal(t, "bulbasaur", chain.Chain.Species.Name)
	require.Len(t, chain.Chain.EvolvesTo, 1)
	require.Len(t, chain.Chain.EvolvesTo[0].EvolutionDetails, 1)
	assert.Equal(t, 16, *chain.Chain.EvolvesTo[0].EvolutionDetails[0].MinLevel)
}

func TestEvolutionChainByIDRejectsNonPositive(t *testing.T) {
	client := testClient("http://localhost:1")

	for _, id := range []int64{0, -1} {
		_, err := client.EvolutionChainByID(context.Background(), id)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
	}
}

func TestClientTranslates404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Species(context.Background(), "missingno")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePokeAPINotFound, apperrors.GetCode(err))
	assert.Equal(t, http.StatusNotFound, apperrors.GetStatusCode(err))
}

func TestClientTranslates500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server.URL).EvolutionChainByID(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePokeAPIError, apperrors.GetCode(err))
	assert.Equal(t, http.StatusBadGateway, apperrors.GetStatusCode(err))
}

func TestClientTranslatesMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": `))
	}))
	defer server.Close()

	_, err := testClient(server.URL).EvolutionChainByID(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePokeAPIError, apperrors.GetCode(err))
}

func TestPokemonDetailTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	start := time.Now()
	_, err := testClient(server.URL).PokemonDetail(context.Background(), "slowpoke", 50*time.Millisecond)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodePokeAPITimeout, apperrors.GetCode(err))
	assert.Equal(t, http.StatusGatewayTimeout, apperrors.GetStatusCode(err))
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestClientTranslatesNetworkError(t *testing.T) {
	// nothing listens here
	_, err := testClient("http://127.0.0.1:1/").Species(context.Background(), "pikachu")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePokeAPIError, apperrors.GetCode(err))
}

func TestListPokemonBuildsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pokemon", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.Equal(t, "40", r.URL.Query().Get("offset"))
		_, _ = w.Write([]byte(`{"count": 1302, "results": [{"name": "pikachu", "url": "https://pokeapi.co/api/v2/pokemon/25/"}]}`))
	}))
	defer server.Close()

	page, err := testClient(server.URL).ListPokemon(context.Background(), 100, 40)
	require.NoError(t, err)
	assert.Equal(t, 1302, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "pikachu", page.Results[0].Name)
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon/1", BuildURL("https://pokeapi.co/api/v2/", "pokemon/1"))
	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon/1", BuildURL("https://pokeapi.co/api/v2", "/pokemon/1"))
	// absolute URLs bypass the base entirely
	assert.Equal(t, "https://other.example/x", BuildURL("https://pokeapi.co/api/v2/", "https://other.example/x"))
}

func TestExtractID(t *testing.T) {
	id, ok := ExtractID("https://pokeapi.co/api/v2/pokemon-species/133/")
	assert.True(t, ok)
	assert.Equal(t, int64(133), id)

	id, ok = ExtractID("https://pokeapi.co/api/v2/pokemon-species/7")
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	_, ok = ExtractID("")
	assert.False(t, ok)

	_, ok = ExtractID("https://pokeapi.co/api/v2/pokemon-species/abc/")
	assert.False(t, ok)

	_, ok = ExtractID("https://pokeapi.co/api/v2/pokemon-species/-4/")
	assert.False(t, ok)

	_, ok = ExtractID("https://pokeapi.co/api/v2/pokemon-species/0/")
	assert.False(t, ok)
}
