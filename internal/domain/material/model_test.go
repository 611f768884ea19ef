package material_test

import (
	"testing"

	"bafs/internal/domain/material"
)

// TestMaterial_Validate tests validation of Material.
func TestMaterial_Validate(t *testing.T) {
	tests := []struct {
		name     string
		material material.Material
		wantErr  bool
	}{
		{
			name:     "valid video",
			material: material.Material{ID: "m-1", Title: "Double-entry basics", Type: material.TypeVideo, URL: "https://example.com/v1"},
			wantErr:  false,
		},
		{
			name:     "valid article with markdown description",
			material: material.Material{ID: "m-2", Title: "Ratio analysis", Type: material.TypeArticle, URL: "https://example.com/a1", Description: "Covers **liquidity** ratios."},
			wantErr:  false,
		},
		{
			name:     "empty title",
			material: material.Material{ID: "m-3", Type: material.TypeVideo, URL: "https://example.com"},
			wantErr:  true,
		},
		{
			name:     "empty url",
			material: material.Material{ID: "m-4", Title: "t", Type: material.TypeVideo},
			wantErr:  true,
		},
		{
			name:     "unknown type",
			material: material.Material{ID: "m-5", Title: "t", Type: "Podcast", URL: "https://example.com"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.material.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
