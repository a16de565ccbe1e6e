package geo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeduceZone_LyonDistricts(t *testing.T) {
	for d := 1; d <= 9; d++ {
		zip := fmt.Sprintf("6900%d", d)
		assert.Equal(t, fmt.Sprintf("LYON_%d", d), DeduceZone(zip))
	}
}

func TestDeduceCity_LyonDistricts(t *testing.T) {
	assert.Equal(t, "Lyon 1er", DeduceCity("69001"))
	for d := 2; d <= 9; d++ {
		zip := fmt.Sprintf("6900%d", d)
		assert.Equal(t, fmt.Sprintf("Lyon %dème", d), DeduceCity(zip))
	}
}

func TestDeduceZone(t *testing.T) {
	tests := []struct {
		name     string
		zip      string
		expected string
	}{
		{"East suburb", "69800", ZoneEstLyonnais},
		{"Villeurbanne is east", "69100", ZoneEstLyonnais},
		{"West suburb", "69160", ZoneOuestLyonnais},
		{"Unknown code defaults west", "69999", ZoneOuestLyonnais},
		{"Out of department defaults west", "75001", ZoneOuestLyonnais},
		{"Empty input", "", ZoneAutre},
		{"Whitespace tolerated", "69 800", ZoneEstLyonnais},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeduceZone(tt.zip))
		})
	}
}

func TestDeduceCity(t *testing.T) {
	tests := []struct {
		name     string
		zip      string
		expected string
	}{
		{"Known suburb", "69800", "Saint-Priest"},
		{"Another suburb", "69100", "Villeurbanne"},
		{"Unknown code", "69999", ""},
		{"Empty input", "", ""},
		{"Whitespace tolerated", "69 002", "Lyon 2ème"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeduceCity(tt.zip))
		})
	}
}

func TestPrettyZone(t *testing.T) {
	assert.Equal(t, "Lyon 2", PrettyZone("LYON_2"))
	assert.Equal(t, "EST LYONNAIS", PrettyZone(ZoneEstLyonnais))
	assert.Equal(t, "OUEST LYONNAIS", PrettyZone(ZoneOuestLyonnais))
	assert.Equal(t, "AUTRE", PrettyZone(ZoneAutre))
}
