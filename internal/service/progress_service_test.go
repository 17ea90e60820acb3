package service

import (
	"testing"

	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func chapters(orders ...int) []*domain.Chapter {
	out := make([]*domain.Chapter, 0, len(orders))
	for i, order := range orders {
		out = append(out, &domain.Chapter{ID: uint64(i + 1), Order: order})
	}
	return out
}

func TestComputeStoryProgress(t *testing.T) {
	tests := []struct {
		name            string
		chapters        []*domain.Chapter
		currentID       uint64
		chapterProgress float64
		want            float64
	}{
		{
			// 2 chapters read + half of the third, out of 4
			name:            "mid story",
			chapters:        chapters(1, 2, 3, 4),
			currentID:       3,
			chapterProgress: 50,
			want:            62.5,
		},
		{
			name:            "last chapter finished is exactly 100",
			chapters:        chapters(1, 2, 3, 4),
			currentID:       4,
			chapterProgress: 100,
			want:            100,
		},
		{
			name:            "no chapters",
			chapters:        nil,
			currentID:       1,
			chapterProgress: 50,
			want:            0,
		},
		{
			name:            "chapter missing from published list",
			chapters:        chapters(1, 2),
			currentID:       99,
			chapterProgress: 50,
			want:            0,
		},
		{
			name:            "first chapter just opened",
			chapters:        chapters(1, 2, 3, 4),
			currentID:       1,
			chapterProgress: 0,
			want:            0,
		},
		{
			name:            "single chapter halfway",
			chapters:        chapters(1),
			currentID:       1,
			chapterProgress: 50,
			want:            50,
		},
		{
			// (2 + 1/3) / 3 * 100 = 77.777... rounds to 77.78
			name:            "rounds to two decimals",
			chapters:        chapters(1, 2, 3),
			currentID:       3,
			chapterProgress: 33.333,
			want:            77.78,
		},
		{
			// Gaps in the order sequence only matter relatively
			name:            "non contiguous orders",
			chapters:        chapters(10, 20, 30, 40),
			currentID:       3,
			chapterProgress: 50,
			want:            62.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStoryProgress(tt.chapters, tt.currentID, tt.chapterProgress)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}
