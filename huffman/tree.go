// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"container/heap"

	"github.com/go-compress/divarc/bitio"
	"github.com/go-compress/divarc/internal/divarcerr"
)

// node is either an internal node with two children or a leaf carrying one
// byte value. freq and tieKey are only meaningful during construction.
type node struct {
	isLeaf      bool
	b           byte
	left, right *node

	freq   int
	tieKey byte // smallest leaf byte value in this node's subtree
}

// Tree is either empty (the input was empty) or has a non-empty root. The
// degenerate single-symbol case is represented by a root that is itself a
// leaf.
type Tree struct {
	root *node
}

// Empty reports whether the tree has no nodes at all (empty input).
func (t *Tree) Empty() bool { return t.root == nil }

// nodeHeap is a min-heap over *node ordered by (freq asc, tieKey asc),
// the deterministic tie-break spec.md §4.4/§9 requires so that two
// implementations given the same input produce byte-identical encodings.
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].tieKey < h[j].tieKey
}
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// BuildTree constructs a Huffman tree from byte frequencies, repeatedly
// joining the two lowest-frequency nodes until one remains (spec.md
// §4.4). A nil/empty freq map produces an empty Tree. A single distinct
// byte produces a Tree whose root is that byte's leaf directly.
func BuildTree(freq map[byte]int) *Tree {
	if len(freq) == 0 {
		return &Tree{}
	}

	h := make(nodeHeap, 0, len(freq))
	for b, f := range freq {
		h = append(h, &node{isLeaf: true, b: b, freq: f, tieKey: b})
	}
	heap.Init(&h)

	for h.Len() > 1 {
		n1 := heap.Pop(&h).(*node)
		n2 := heap.Pop(&h).(*node)
		tie := n1.tieKey
		if n2.tieKey < tie {
			tie = n2.tieKey
		}
		joined := &node{left: n1, right: n2, freq: n1.freq + n2.freq, tieKey: tie}
		heap.Push(&h, joined)
	}

	return &Tree{root: heap.Pop(&h).(*node)}
}

// CountFrequencies counts byte frequencies in data, the input to
// BuildTree.
func CountFrequencies(data []byte) map[byte]int {
	freq := make(map[byte]int)
	for _, b := range data {
		freq[b]++
	}
	return freq
}

// EncodeTree serializes t pre-order: "0 <left> <right>" for an internal
// node, "1 <8-bit byte>" for a leaf (spec.md §4.4). An empty tree
// serializes to an empty BitVector.
func (t *Tree) EncodeTree() *bitio.BitVector {
	bv := new(bitio.BitVector)
	if t.root != nil {
		encodeNode(t.root, bv)
	}
	return bv
}

func encodeNode(n *node, bv *bitio.BitVector) {
	if n.isLeaf {
		bv.PushBit(1)
		bv.PushByte(n.b)
		return
	}
	bv.PushBit(0)
	encodeNode(n.left, bv)
	encodeNode(n.right, bv)
}

// bitSource is the minimal reader DecodeTree needs; bitio.ByteReader
// satisfies it.
type bitSource interface {
	ReadBit() (byte, bool)
}

// DecodeTree reconstructs a tree from br, mirroring the pre-order
// EncodeTree layout. It rejects malformed input (more than maxTreeNodes
// nodes, or the stream ending mid-tree) as BadFormat rather than
// recursing forever, per spec.md §9 open question 4.
func DecodeTree(br bitSource) (*Tree, error) {
	count := 0
	root, err := decodeNode(br, &count)
	if err != nil {
		return nil, err
	}
	return &Tree{root: root}, nil
}

func decodeNode(br bitSource, count *int) (*node, error) {
	*count++
	if *count > maxTreeNodes {
		return nil, errBadFormat("tree encoding exceeds maximum node count")
	}

	tag, ok := br.ReadBit()
	if !ok {
		return nil, divarcerr.New(divarcerr.Truncated, "stream ended while reading tree encoding")
	}
	if tag == 1 {
		var b byte
		for i := 0; i < 8; i++ {
			bit, ok := br.ReadBit()
			if !ok {
				return nil, divarcerr.New(divarcerr.Truncated, "stream ended while reading leaf byte")
			}
			b = b<<1 | bit
		}
		return &node{isLeaf: true, b: b}, nil
	}

	left, err := decodeNode(br, count)
	if err != nil {
		return nil, err
	}
	right, err := decodeNode(br, count)
	if err != nil {
		return nil, err
	}
	return &node{left: left, right: right}, nil
}

// Codebook walks t assigning 0 to every left edge and 1 to every right
// edge; the codeword for a leaf is the accumulated path from the root.
// The degenerate single-leaf tree is special-cased to the single bit 0
// (spec.md §4.4), since an empty codeword cannot be decoded unambiguously.
func (t *Tree) Codebook() map[byte]*bitio.BitVector {
	book := make(map[byte]*bitio.BitVector)
	if t.root == nil {
		return book
	}
	if t.root.isLeaf {
		bv := new(bitio.BitVector)
		bv.PushBit(0)
		book[t.root.b] = bv
		return book
	}
	walkCodebook(t.root, new(bitio.BitVector), book)
	return book
}

func walkCodebook(n *node, prefix *bitio.BitVector, book map[byte]*bitio.BitVector) {
	if n.isLeaf {
		cw := new(bitio.BitVector)
		for i := 0; i < prefix.Len(); i++ {
			cw.PushBit(prefix.Get(i))
		}
		book[n.b] = cw
		return
	}
	prefix.PushBit(0)
	walkCodebook(n.left, prefix, book)
	prefix.Pop()

	prefix.PushBit(1)
	walkCodebook(n.right, prefix, book)
	prefix.Pop()
}
