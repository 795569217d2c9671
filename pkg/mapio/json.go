package mapio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kagamiz/mapsolver/pkg/room"
)

// WalkInput is the CLI's input file shape: the room count, the door
// sequence submitted to the oracle, and the labels observed in reply.
type WalkInput struct {
	N      int    `json:"n"`
	Doors  string `json:"doors"`
	Labels []int  `json:"labels"`
}

// LoadWalkInput reads and parses a walk input file.
func LoadWalkInput(path string) (*WalkInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading walk input file: %w", err)
	}
	var in WalkInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing walk input JSON: %w", err)
	}
	return &in, nil
}

// ExportJSON serializes a solved map to indented JSON matching the
// oracle's guess payload shape exactly.
func ExportJSON(m *room.MapData) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// ExportJSONCompact serializes a solved map to compact JSON.
func ExportJSONCompact(m *room.MapData) ([]byte, error) {
	return json.Marshal(m)
}

// SaveJSONToFile writes a solved map to path as indented JSON.
func SaveJSONToFile(m *room.MapData, path string) error {
	data, err := ExportJSON(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveJSONCompactToFile writes a solved map to path as compact JSON.
func SaveJSONCompactToFile(m *room.MapData, path string) error {
	data, err := ExportJSONCompact(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadMapData reads and parses a previously exported MapData file.
func LoadMapData(path string) (*room.MapData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map data file: %w", err)
	}
	var m room.MapData
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing map data JSON: %w", err)
	}
	return &m, nil
}
