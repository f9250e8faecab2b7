package document

import "gopkg.in/yaml.v3"

// Container identifies where a visited value sits in its parent.
type Container int

const (
	// MappingValue is the value half of a key/value pair.
	MappingValue Container = iota
	// SequenceElement is an element of a sequence.
	SequenceElement
)

func (c Container) String() string {
	switch c {
	case MappingValue:
		return "mapping"
	case SequenceElement:
		return "sequence"
	default:
		return "unknown"
	}
}

// Step tells Walk whether to descend into the value just visited.
type Step int

const (
	// Descend continues into the value if it is a mapping or sequence.
	Descend Step = iota
	// SkipChildren treats the value as a leaf.
	SkipChildren
)

// Entry is a single value handed to a Visitor.
// A visitor may assign a different node to Value; Walk stores it back into the
// parent container before descending.
type Entry struct {
	Container Container
	Key       *yaml.Node // nil for sequence elements
	Value     *yaml.Node
}

// KeyString returns the mapping key as text, or "" for sequence elements.
func (e *Entry) KeyString() string {
	if e.Key == nil {
		return ""
	}
	return e.Key.Value
}

// Visitor is called once for every mapping value and sequence element.
type Visitor func(e *Entry) (Step, error)

type frame struct {
	node *yaml.Node
	next int
}

// Walk visits every mapping value and sequence element under root depth-first,
// in document order. Keys are not visited. Alias nodes are leaves, so anchored
// content is seen once, at its anchor.
// Walk keeps its own stack and does not recurse.
func Walk(root *yaml.Node, visit Visitor) error {
	if root == nil {
		return nil
	}
	for root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		root = root.Content[0]
	}
	if !isContainer(root) {
		return nil
	}

	stack := []frame{{node: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		node := top.node

		width := 1
		if node.Kind == yaml.MappingNode {
			width = 2
		}
		if top.next+width > len(node.Content) {
			stack = stack[:len(stack)-1]
			continue
		}
		pos := top.next
		top.next += width

		var entry Entry
		valuePos := pos
		if node.Kind == yaml.MappingNode {
			entry.Container = MappingValue
			entry.Key = node.Content[pos]
			valuePos = pos + 1
		} else {
			entry.Container = SequenceElement
		}
		entry.Value = node.Content[valuePos]

		step, err := visit(&entry)
		if err != nil {
			return err
		}
		if entry.Value != nil {
			node.Content[valuePos] = entry.Value
		}
		if step == SkipChildren || !isContainer(entry.Value) {
			continue
		}
		stack = append(stack, frame{node: entry.Value})
	}
	return nil
}

func isContainer(n *yaml.Node) bool {
	return n != nil && (n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode)
}

// IsString reports whether n is a scalar holding a string.
func IsString(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}
