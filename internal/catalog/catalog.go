package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

type Champion struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

type Map struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Catalog holds the static reference data loaded once at startup. It is
// read-only after Load; membership checks are pure lookups.
type Catalog struct {
	Champions []Champion
	Spells    []string
	Maps      []Map

	championNames map[string]struct{}
	spellNames    map[string]struct{}
	mapIDs        map[int]struct{}
}

type championsFile struct {
	Champions []Champion `json:"champions"`
}

type spellsFile struct {
	Spells []string `json:"spells"`
}

type mapsFile struct {
	Maps []Map `json:"maps"`
}

func Load(championsPath, spellsPath, mapsPath string) (*Catalog, error) {
	var cf championsFile
	if err := readJSON(championsPath, &cf); err != nil {
		return nil, fmt.Errorf("load champions: %w", err)
	}

	var sf spellsFile
	if err := readJSON(spellsPath, &sf); err != nil {
		return nil, fmt.Errorf("load spells: %w", err)
	}

	var mf mapsFile
	if err := readJSON(mapsPath, &mf); err != nil {
		return nil, fmt.Errorf("load maps: %w", err)
	}

	return New(cf.Champions, sf.Spells, mf.Maps), nil
}

func New(champions []Champion, spells []string, maps []Map) *Catalog {
	c := &Catalog{
		Champions:     champions,
		Spells:        spells,
		Maps:          maps,
		championNames: make(map[string]struct{}, len(champions)),
		spellNames:    make(map[string]struct{}, len(spells)),
		mapIDs:        make(map[int]struct{}, len(maps)),
	}
	for _, ch := range champions {
		c.championNames[ch.Name] = struct{}{}
	}
	for _, sp := range spells {
		c.spellNames[sp] = struct{}{}
	}
	for _, m := range maps {
		c.mapIDs[m.ID] = struct{}{}
	}
	return c
}

func (c *Catalog) HasChampion(name string) bool {
	_, ok := c.championNames[name]
	return ok
}

func (c *Catalog) HasSpell(name string) bool {
	_, ok := c.spellNames[name]
	return ok
}

func (c *Catalog) HasMap(id int) bool {
	_, ok := c.mapIDs[id]
	return ok
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
