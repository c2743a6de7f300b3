package service

import "testing"

func TestAdaptChunk(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		chunkRows int
		want      int
	}{
		{"small dataset shrinks to 1pct", 1000, 0, 10},
		{"large dataset keeps default", 10_000_000, 0, defaultChunkRows},
		{"explicit chunk respected when small", 1000, 5, 5},
		{"explicit chunk capped at 1pct", 1000, 500, 10},
		{"tiny total never below one", 3, 0, 1},
		{"rounds 1pct up", 150, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adaptChunk(tt.total, tt.chunkRows); got != tt.want {
				t.Fatalf("adaptChunk(%d, %d) = %d; want %d", tt.total, tt.chunkRows, got, tt.want)
			}
		})
	}
}
