package service

import (
	"sort"

	"github.com/storynest/storynest-backend/internal/domain"
)

// BuildCommentTree assembles a depth-bounded reply forest from the fetched
// root comments (pagination order preserved) and their flat descendant set.
//
// Depth is assigned by a single breadth-first pass over a parent->children
// adjacency map, so the build is O(n) regardless of nesting. A node whose
// depth reaches maxDepth is left out of the forest (it stays fetchable by
// id) but still counts toward reply totals, as do soft-deleted nodes,
// whose content is masked. Replies whose parent is absent from the fetched
// set are never attached.
func BuildCommentTree(roots []*domain.Comment, replies []*domain.Comment, maxDepth int) []*domain.CommentResponse {
	children := make(map[uint64][]*domain.Comment, len(replies))
	for _, reply := range replies {
		if reply.ParentID == nil {
			continue
		}
		children[*reply.ParentID] = append(children[*reply.ParentID], reply)
	}

	sizes := make(map[uint64]int)

	type queued struct {
		comment *domain.Comment
		node    *domain.CommentResponse
		depth   int
	}

	forest := make([]*domain.CommentResponse, 0, len(roots))
	for _, root := range roots {
		rootNode := root.ToResponse()
		forest = append(forest, rootNode)

		queue := []queued{{comment: root, node: rootNode, depth: 0}}
		visited := map[uint64]bool{}
		for len(queue) > 0 {
			item := queue[0]
			queue = queue[1:]

			// Defensive: a malformed parent chain must not loop forever
			if visited[item.comment.ID] {
				continue
			}
			visited[item.comment.ID] = true

			item.node.ReplyCount = subtreeSize(item.comment.ID, children, sizes)

			// Children of a node at maxDepth-1 would land at maxDepth and
			// are excluded from the materialized tree
			if item.depth+1 >= maxDepth {
				continue
			}
			for _, child := range children[item.comment.ID] {
				childNode := child.ToResponse()
				item.node.Replies = append(item.node.Replies, childNode)
				queue = append(queue, queued{comment: child, node: childNode, depth: item.depth + 1})
			}
		}

		sortRepliesRecursive(rootNode)
	}
	return forest
}

// subtreeSize counts all descendants of id, memoized across the forest
func subtreeSize(id uint64, children map[uint64][]*domain.Comment, sizes map[uint64]int) int {
	if n, ok := sizes[id]; ok {
		return n
	}
	// Mark before recursing so a cyclic chain terminates
	sizes[id] = 0

	total := 0
	for _, child := range children[id] {
		total += 1 + subtreeSize(child.ID, children, sizes)
	}
	sizes[id] = total
	return total
}

// sortRepliesRecursive orders every reply level by creation time ascending
func sortRepliesRecursive(node *domain.CommentResponse) {
	sort.SliceStable(node.Replies, func(i, j int) bool {
		return node.Replies[i].CreatedAt.Before(node.Replies[j].CreatedAt)
	})
	for _, reply := range node.Replies {
		sortRepliesRecursive(reply)
	}
}
