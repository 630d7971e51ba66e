// Package bplustree implements an in-memory, ordered B+ tree container: a
// balanced, block-structured search tree in which key/value pairs live only
// in leaves, leaves are chained in ascending key order for range scans, and
// interior nodes hold routing keys only.
//
// The tree is not safe for concurrent use, and iterators are invalidated by
// any structural mutation of the tree that created them. Callers that need
// shared access must serialize it externally (e.g. with sync.RWMutex),
// treating an active iterator as a read section.
package bplustree
