package main

import (
	"testing"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		gltfPath  string
		wantErr   bool
	}{
		{name: "default scene", sceneType: "default"},
		{name: "cornell scene", sceneType: "cornell"},
		{name: "gltf without path", sceneType: "gltf", wantErr: true},
		{name: "gltf with missing file", sceneType: "gltf", gltfPath: "no-such-model.glb", wantErr: true},
		{name: "unknown scene", sceneType: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, tt.gltfPath, 100)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for scene type %q", tt.sceneType)
				}
				return
			}
			if err != nil {
				t.Fatalf("createScene(%q) failed: %v", tt.sceneType, err)
			}
			if s.Camera == nil {
				t.Error("Expected scene to have a camera")
			}
			if len(s.Shapes) == 0 {
				t.Error("Expected scene to have shapes")
			}
			if err := s.Preprocess(); err != nil {
				t.Errorf("Preprocess failed: %v", err)
			}
		})
	}
}
