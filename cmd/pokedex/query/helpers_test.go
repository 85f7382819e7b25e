package query

import (
	"github.com/SanteonNL/pokedex/models/pokemon"
)

func typePtr(t pokemon.Type) *pokemon.Type { return &t }

// samplePokemon mirrors the built-in sample catalog.
func samplePokemon() []pokemon.Pokemon {
	return []pokemon.Pokemon{
		{
			ID: 1, Name: "Bulbasaur",
			Stats:       pokemon.Stats{HP: 45, Attack: 49, Defense: 49, SpecialAttack: 65, SpecialDefense: 65, Speed: 45},
			PrimaryType: pokemon.TypeGrass, SecondaryType: typePtr(pokemon.TypePoison),
			Height: 0.7, Weight: 6.9, CaptureRate: 45,
		},
		{
			ID: 4, Name: "Charmander",
			Stats:       pokemon.Stats{HP: 39, Attack: 52, Defense: 43, SpecialAttack: 60, SpecialDefense: 50, Speed: 65},
			PrimaryType: pokemon.TypeFire,
			Height:      0.6, Weight: 8.5, CaptureRate: 45,
		},
		{
			ID: 7, Name: "Squirtle",
			Stats:       pokemon.Stats{HP: 44, Attack: 48, Defense: 65, SpecialAttack: 50, SpecialDefense: 64, Speed: 43},
			PrimaryType: pokemon.TypeWater,
			Height:      0.5, Weight: 9.0, CaptureRate: 45,
		},
		{
			ID: 25, Name: "Pikachu",
			Stats:       pokemon.Stats{HP: 35, Attack: 55, Defense: 40, SpecialAttack: 50, SpecialDefense: 50, Speed: 90},
			PrimaryType: pokemon.TypeElectric,
			Height:      0.4, Weight: 6.0, CaptureRate: 190,
		},
		{
			ID: 144, Name: "Articuno",
			Stats:       pokemon.Stats{HP: 90, Attack: 85, Defense: 100, SpecialAttack: 95, SpecialDefense: 125, Speed: 85},
			PrimaryType: pokemon.TypeIce, SecondaryType: typePtr(pokemon.TypeFlying),
			Height: 1.7, Weight: 55.4, CaptureRate: 3, Legendary: true,
		},
	}
}

func ids(list []pokemon.Pokemon) []int {
	out := make([]int, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func names(list []pokemon.Pokemon) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Name)
	}
	return out
}
