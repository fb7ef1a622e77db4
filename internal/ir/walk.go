// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package ir

// Walk visits every node of the tree rooted at n in depth-first,
// construction order, calling fn before descending. Returning false from fn
// prunes the subtree below the current node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch node := n.(type) {
	case *LoopNode:
		if node.Body != nil {
			Walk(node.Body, fn)
		}
	case *ClassifyNode:
		if node.Call != nil {
			Walk(node.Call, fn)
		}
		for _, h := range node.Handlers {
			Walk(h, fn)
		}
	case *ExtractNode:
		if node.Filter != nil {
			Walk(node.Filter, fn)
		}
	case *FilterNode:
		for _, c := range node.Clauses {
			Walk(c, fn)
		}
	case *CallNode, *HandlerNode, *ClauseNode, *ClientNode:
		// Leaves.
	}
}

// AttachClient wires a compiled client into every call site of the
// fragment. This is the capacity-specific fragment combination step the
// orchestrator performs around repository merge.
func AttachClient(frag *Fragment, client *ClientNode) {
	if frag == nil || client == nil {
		return
	}
	Walk(frag.Root, func(n Node) bool {
		switch node := n.(type) {
		case *CallNode:
			node.Client = client
		case *ExtractNode:
			node.Client = client
		}
		return true
	})
}
