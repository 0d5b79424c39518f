package ftprime

// idMap translates opaque simulator "input IDs" to the dense, row-index
// "node IDs" used inside TableCollection, mirroring argrecorder.py's
// plain self.node_ids dict. A single map is kept in each direction so
// rebind (used after Simplify renumbers surviving nodes) stays O(n).
type idMap struct {
	toNode  map[int]int32
	toInput map[int32]int
}

func newIDMap() *idMap {
	return &idMap{
		toNode:  make(map[int]int32),
		toInput: make(map[int32]int),
	}
}

// assign records a fresh input ID -> node ID binding. Fails with
// DuplicateId if the input ID is already registered.
func (m *idMap) assign(inputID int, nodeID int32) error {
	if _, ok := m.toNode[inputID]; ok {
		return errDuplicateID(inputID)
	}
	m.toNode[inputID] = nodeID
	m.toInput[nodeID] = inputID
	return nil
}

// lookup resolves an input ID to its node ID. Fails with UnknownId if
// the input ID has never been assigned.
func (m *idMap) lookup(inputID int) (int32, error) {
	nodeID, ok := m.toNode[inputID]
	if !ok {
		return 0, errUnknownID(inputID)
	}
	return nodeID, nil
}

// has reports whether inputID is currently registered, without
// raising an error; used by the combined add_individual+add_record
// call form to tolerate a child that was already added earlier in the
// same call (argrecorder.py.__call__'s "if child not in self.node_ids").
func (m *idMap) has(inputID int) bool {
	_, ok := m.toNode[inputID]
	return ok
}

// rebind replaces the entire mapping following a Simplify pass: oldToNew
// gives, for every node ID that survived simplification, its new node
// ID. Input IDs whose node did not survive are dropped from the map.
func (m *idMap) rebind(oldToNew map[int32]int32) {
	newToNode := make(map[int]int32, len(oldToNew))
	newToInput := make(map[int32]int, len(oldToNew))
	for inputID, oldNode := range m.toNode {
		newNode, ok := oldToNew[oldNode]
		if !ok {
			continue
		}
		newToNode[inputID] = newNode
		newToInput[newNode] = inputID
	}
	m.toNode = newToNode
	m.toInput = newToInput
}

// inputFor returns the input ID registered for nodeID, if any.
func (m *idMap) inputFor(nodeID int32) (int, bool) {
	inputID, ok := m.toInput[nodeID]
	return inputID, ok
}
