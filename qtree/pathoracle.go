// SPDX-License-Identifier: MIT
package qtree

// freshenSPM rebuilds the next-hop table when stale. For each source s,
// a single BFS from s fills spm[s][from] for every node "from" with the
// neighbor of "from" that lies on the unique path toward s. This is the
// O(N^2)-time, O(N^2)-space sweep; edits never
// attempt incremental repair, they only flip spmFresh.
func (t *Tree) freshenSPM() {
	if t.spmFresh {
		return
	}
	total := len(t.nodes)
	if t.spm == nil || len(t.spm) != total {
		t.spm = make([][]NodeID, total)
		for i := range t.spm {
			t.spm[i] = make([]NodeID, total)
		}
	}

	queue := make([]NodeID, 0, total)
	visited := make([]bool, total)
	for s := 0; s < total; s++ {
		src := NodeID(s)
		row := t.spm[s]
		for i := range visited {
			visited[i] = false
		}
		queue = queue[:0]
		queue = append(queue, src)
		visited[src] = true
		// next hop from the source toward itself is itself; FindPath
		// stops before reading it, and NextHop(s, s) returns it.
		row[src] = src
		for head := 0; head < len(queue); head++ {
			cur := queue[head]
			n := &t.nodes[cur]
			for i := uint8(0); i < n.degree; i++ {
				nb := n.neighbors[i]
				if visited[nb] {
					continue
				}
				visited[nb] = true
				// the hop from nb toward src is cur, since cur is how
				// the BFS reached nb.
				row[nb] = cur
				queue = append(queue, nb)
			}
		}
	}
	t.spmFresh = true
}

// FindPath returns the sequence of node ids on the unique path from a to
// b, inclusive of both endpoints, via the PathOracle's next-hop table.
func (t *Tree) FindPath(a, b NodeID) []NodeID {
	t.freshenSPM()
	total := len(t.nodes)
	result := make([]NodeID, 0, total)
	cur := a
	for step := 0; step <= total; step++ {
		result = append(result, cur)
		if cur == b {
			break
		}
		cur = t.spm[b][cur]
	}
	return result
}

// FindPathLength returns len(FindPath(a,b)).
func (t *Tree) FindPathLength(a, b NodeID) int {
	return len(t.FindPath(a, b))
}

// NextHop returns the neighbor of from that lies on the unique path
// toward target. Returns from itself when from == target.
func (t *Tree) NextHop(from, target NodeID) NodeID {
	t.freshenSPM()
	return t.spm[target][from]
}
