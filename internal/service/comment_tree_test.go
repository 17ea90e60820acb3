package service

import (
	"testing"
	"time"

	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func uptr(v uint64) *uint64 { return &v }

func makeComment(id uint64, parentID *uint64, createdAt time.Time) *domain.Comment {
	return &domain.Comment{
		ID:        id,
		ParentID:  parentID,
		AuthorID:  "user",
		Content:   "content",
		CreatedAt: createdAt,
	}
}

func TestBuildCommentTree_DepthBound(t *testing.T) {
	base := time.Now()

	// A single chain: 1 <- 2 <- 3 <- 4 <- 5 <- 6 (depths 0..5)
	root := makeComment(1, nil, base)
	replies := []*domain.Comment{
		makeComment(2, uptr(1), base.Add(time.Second)),
		makeComment(3, uptr(2), base.Add(2*time.Second)),
		makeComment(4, uptr(3), base.Add(3*time.Second)),
		makeComment(5, uptr(4), base.Add(4*time.Second)),
		makeComment(6, uptr(5), base.Add(5*time.Second)),
	}

	forest := BuildCommentTree([]*domain.Comment{root}, replies, 3)

	assert.Len(t, forest, 1)
	node := forest[0]
	assert.Equal(t, uint64(1), node.ID)
	// All five descendants count toward the reply total
	assert.Equal(t, 5, node.ReplyCount)

	// Depth 1 and 2 are materialized, depth 3 and beyond are not
	assert.Len(t, node.Replies, 1)
	depth1 := node.Replies[0]
	assert.Equal(t, uint64(2), depth1.ID)
	assert.Equal(t, 4, depth1.ReplyCount)

	assert.Len(t, depth1.Replies, 1)
	depth2 := depth1.Replies[0]
	assert.Equal(t, uint64(3), depth2.ID)
	assert.Equal(t, 3, depth2.ReplyCount)
	assert.Empty(t, depth2.Replies)
}

func TestBuildCommentTree_EveryShallowCommentAppearsOnce(t *testing.T) {
	base := time.Now()

	roots := []*domain.Comment{
		makeComment(1, nil, base),
		makeComment(2, nil, base.Add(time.Second)),
	}
	replies := []*domain.Comment{
		makeComment(10, uptr(1), base.Add(2*time.Second)),
		makeComment(11, uptr(1), base.Add(3*time.Second)),
		makeComment(20, uptr(2), base.Add(4*time.Second)),
		makeComment(100, uptr(10), base.Add(5*time.Second)),
	}

	forest := BuildCommentTree(roots, replies, 3)

	seen := map[uint64]int{}
	var walk func(nodes []*domain.CommentResponse)
	walk = func(nodes []*domain.CommentResponse) {
		for _, n := range nodes {
			seen[n.ID]++
			walk(n.Replies)
		}
	}
	walk(forest)

	for _, id := range []uint64{1, 2, 10, 11, 20, 100} {
		assert.Equal(t, 1, seen[id], "comment %d should appear exactly once", id)
	}
}

func TestBuildCommentTree_RepliesSortedAscending(t *testing.T) {
	base := time.Now()

	root := makeComment(1, nil, base)
	replies := []*domain.Comment{
		makeComment(3, uptr(1), base.Add(3*time.Second)),
		makeComment(2, uptr(1), base.Add(time.Second)),
		makeComment(4, uptr(1), base.Add(2*time.Second)),
	}

	forest := BuildCommentTree([]*domain.Comment{root}, replies, 3)

	assert.Len(t, forest[0].Replies, 3)
	assert.Equal(t, uint64(2), forest[0].Replies[0].ID)
	assert.Equal(t, uint64(4), forest[0].Replies[1].ID)
	assert.Equal(t, uint64(3), forest[0].Replies[2].ID)
}

func TestBuildCommentTree_DeletedContentMasked(t *testing.T) {
	base := time.Now()

	root := makeComment(1, nil, base)
	deleted := makeComment(2, uptr(1), base.Add(time.Second))
	deleted.IsDeleted = true

	forest := BuildCommentTree([]*domain.Comment{root}, []*domain.Comment{deleted}, 3)

	assert.Len(t, forest[0].Replies, 1)
	assert.Equal(t, domain.DeletedContentPlaceholder, forest[0].Replies[0].Content)
	assert.Equal(t, 1, forest[0].ReplyCount)
}

func TestBuildCommentTree_OrphanRepliesIgnored(t *testing.T) {
	base := time.Now()

	root := makeComment(1, nil, base)
	orphan := makeComment(99, uptr(42), base.Add(time.Second))

	forest := BuildCommentTree([]*domain.Comment{root}, []*domain.Comment{orphan}, 3)

	assert.Len(t, forest, 1)
	assert.Empty(t, forest[0].Replies)
	assert.Equal(t, 0, forest[0].ReplyCount)
}

func TestBuildCommentTree_EmptyInput(t *testing.T) {
	forest := BuildCommentTree(nil, nil, 3)
	assert.Empty(t, forest)
}
