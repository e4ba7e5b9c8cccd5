package pokeapi

// NamedResource is the upstream {name, url} reference pair.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ResourceRef is an unnamed upstream {url} reference.
type ResourceRef struct {
	URL string `json:"url"`
}

// ResourcePage is one page of an upstream resource index.
type ResourcePage struct {
	Count   int             `json:"count"`
	Results []NamedResource `json:"results"`
}

// EvolutionDetail describes one way a species evolves into the node carrying
// it. Nearly every field is optional; the describer walks them all.
type EvolutionDetail struct {
	Trigger               *NamedResource `json:"trigger"`
	Item                  *NamedResource `json:"item"`
	MinLevel              *int           `json:"min_level"`
	TimeOfDay             string         `json:"time_of_day"`
	Gender                *int           `json:"gender"`
	HeldItem              *NamedResource `json:"held_item"`
	KnownMove             *NamedResource `json:"known_move"`
	KnownMoveType         *NamedResource `json:"known_move_type"`
	Location              *NamedResource `json:"location"`
	MinAffection          *int           `json:"min_affection"`
	MinBeauty             *int           `json:"min_beauty"`
	MinHappiness          *int           `json:"min_happiness"`
	NeedsOverworldRain    bool           `json:"needs_overworld_rain"`
	PartySpecies          *NamedResource `json:"party_species"`
	PartyType             *NamedResource `json:"party_type"`
	RelativePhysicalStats *int           `json:"relative_physical_stats"`
	TradeSpecies          *NamedResource `json:"trade_species"`
	TurnUpsideDown        bool           `json:"turn_upside_down"`
}

// ChainLink is one node of the recursively-branching evolution graph. The
// evolution details describe how the parent evolves into this node.
type ChainLink struct {
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

// EvolutionChain is the upstream evolution-chain resource.
type EvolutionChain struct {
	ID    int64      `json:"id"`
	Chain *ChainLink `json:"chain"`
}

// PokemonSpecies carries the indirection from a species to its chain.
type PokemonSpecies struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	EvolutionChain *ResourceRef `json:"evolution_chain"`
}

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

type SpriteImage struct {
	FrontDefault *string `json:"front_default"`
}

type OtherSprites struct {
	Home            SpriteImage `json:"home"`
	DreamWorld      SpriteImage `json:"dream_world"`
	OfficialArtwork SpriteImage `json:"official-artwork"`
}

type SpriteSet struct {
	FrontDefault *string       `json:"front_default"`
	Other        *OtherSprites `json:"other"`
}

// Pokemon is the upstream pokemon detail resource, trimmed to the fields the
// service consumes.
type Pokemon struct {
	ID      int64         `json:"id"`
	Name    string        `json:"name"`
	Types   []PokemonType `json:"types"`
	Stats   []PokemonStat `json:"stats"`
	Sprites SpriteSet     `json:"sprites"`
}
