// Package graph (lvlath) is your in-memory playground for building,
// exploring, and analyzing graphs in Go.
//
// 🚀 What is lvlath/graph?
//
//	A modern, thread-safe, zero-dependency library that brings together:
//
//	  • Core primitives: create vertices & edges, mutate safely under locks
//	  • Classic algorithms: BFS, DFS, Dijkstra, max-flow
//	  • A general-graph maximum weight matching engine (Edmonds blossoms)
//
// ✨ Why choose lvlath?
//
//   - Beginner-friendly    — minimal API, clear, intuitive naming
//   - Rock-solid           — built-in R/W locks ensure thread-safety
//   - Extensible           — attach OnVisit/OnEnqueue hooks for custom logic
//   - Pure Go              — no cgo, no hidden dependencies
//
// Under the hood, everything is organized under subpackages:
//
//	core/      — fundamental Graph, Vertex, Edge types & thread-safe primitives
//	bfs/, dfs/ — traversal and connectivity
//	dijkstra/  — single-source shortest paths
//	flow/      — max-flow (Dinic, Edmonds-Karp, Ford-Fulkerson)
//	matching/  — maximum weight matching on general weighted graphs
//	            (Galil-Micali-Gabow variant of Edmonds' blossom algorithm,
//	            with Gabow's dynamic LCA / split-find-min acceleration)
//
// Quick ASCII example:
//
//	    A───B
//	    │   │
//	    C───D
//
//	represents a square with four vertices and four edges.
//
// Dive into README.md for full examples and our roadmap to parallelism and beyond.
//
//	go get github.com/vlath-dev/lvlath
package graph
