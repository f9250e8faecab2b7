package document

import "gopkg.in/yaml.v3"

// EntityIDKey is the key under which a document declares its identifier.
const EntityIDKey = "entity_id"

// EntityID returns the string value of the top-level entity_id field.
// The lookup is exact and case-sensitive. ok is false when the document is not
// a mapping, has no such field, or the value is not a string.
func EntityID(doc *yaml.Node) (id string, ok bool) {
	root := doc
	for root != nil && root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return "", false
		}
		root = root.Content[0]
	}
	if root == nil || root.Kind != yaml.MappingNode {
		return "", false
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != EntityIDKey {
			continue
		}
		value := root.Content[i+1]
		if !IsString(value) {
			return "", false
		}
		return value.Value, true
	}
	return "", false
}
